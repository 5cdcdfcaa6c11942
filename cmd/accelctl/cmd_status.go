package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zenrouter/accelctl/internal/config"
	"github.com/zenrouter/accelctl/internal/exitcodes"
	"github.com/zenrouter/accelctl/internal/procstat"
	"github.com/zenrouter/accelctl/internal/update"
)

// statusResult models the fields shown by the `status` command. It is also
// used for JSON/YAML output.
type statusResult struct {
	Process string `json:"process,omitempty" yaml:"process,omitempty"`
	Running bool   `json:"running" yaml:"running"`
	PID     int32  `json:"pid,omitempty" yaml:"pid,omitempty"`

	Components []componentStatus `json:"components" yaml:"components"`
}

type componentStatus struct {
	Name            string `json:"name" yaml:"name"`
	LocalVersion    string `json:"local_version" yaml:"local_version"`
	RemoteVersion   string `json:"remote_version,omitempty" yaml:"remote_version,omitempty"`
	UpdateAvailable bool   `json:"update_available" yaml:"update_available"`
	CheckedAt       string `json:"checked_at,omitempty" yaml:"checked_at,omitempty"`
}

// computeStatus gathers companion-process liveness and per-component
// version state. Remote versions come from the check cache only; status
// never touches the network.
func computeStatus(d *deps) statusResult {
	res := statusResult{}

	if spec, ok := d.cfg.Spec(config.ComponentAccel); ok && spec.ProcessName != "" {
		res.Process = spec.ProcessName
		if pid, ok := d.lookup.Find(spec.ProcessName); ok {
			res.Running = true
			res.PID = pid
		}
	}

	for _, comp := range []config.Component{config.ComponentAccel, config.ComponentWebUI} {
		spec, ok := d.cfg.Spec(comp)
		if !ok {
			continue
		}
		cs := componentStatus{
			Name:         string(comp),
			LocalVersion: localVersion(d.store, comp),
		}
		if entry, err := update.LoadCache(d.cfg.StateDir, spec.ReleaseURL); err == nil && update.IsCacheValid(entry) {
			cs.RemoteVersion = entry.RemoteVersion
			cs.UpdateAvailable = entry.UpdateAvailable
			cs.CheckedAt = entry.CheckedAt.Format(time.RFC3339)
		}
		res.Components = append(res.Components, cs)
	}
	return res
}

var (
	statusHeaderStyle = lipgloss.NewStyle().Bold(true)
	statusOKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusBadStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusDimStyle    = lipgloss.NewStyle().Faint(true)
)

func printStatusText(res statusResult) {
	fmt.Println(statusHeaderStyle.Render("Process"))
	if res.Running {
		fmt.Printf("  %s %s (pid %d)\n", statusOKStyle.Render("●"), res.Process, res.PID)
	} else if res.Process != "" {
		fmt.Printf("  %s %s not running\n", statusBadStyle.Render("●"), res.Process)
	} else {
		fmt.Println(statusDimStyle.Render("  no companion process configured"))
	}

	fmt.Println(statusHeaderStyle.Render("Components"))
	for _, c := range res.Components {
		line := fmt.Sprintf("  %-8s %s", c.Name, c.LocalVersion)
		if c.UpdateAvailable {
			line += " " + statusOKStyle.Render(fmt.Sprintf("(update to %s available)", c.RemoteVersion))
		} else if c.CheckedAt != "" {
			line += " " + statusDimStyle.Render("(up to date)")
		} else {
			line += " " + statusDimStyle.Render("(not checked recently)")
		}
		fmt.Println(line)
	}
}

func init() {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and component status",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := newDeps()
			res := computeStatus(d)

			switch flagOutput {
			case "json":
				getPrinter().JSON(res)
			case "yaml":
				data, err := yaml.Marshal(res)
				if err != nil {
					return err
				}
				fmt.Print(string(data))
			case "text", "":
				if flagQuiet {
					fmt.Printf("running=%v\n", res.Running)
				} else {
					printStatusText(res)
				}
			default:
				return exitcodes.InvalidArgsErrorf("invalid --output: %s (use json|yaml|text)", flagOutput)
			}
			return nil
		},
	}
	rootCmd.AddCommand(statusCmd)

	runningCmd := &cobra.Command{
		Use:   "running",
		Short: "Exit 0 if the acceleration daemon is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := newDeps()
			spec, _ := d.cfg.Spec(config.ComponentAccel)
			if !procstat.Running(d.lookup, spec.ProcessName) {
				return exitcodes.PreconditionError(fmt.Sprintf("%s is not running", spec.ProcessName))
			}
			if !flagQuiet {
				getPrinter().Success(fmt.Sprintf("%s is running", spec.ProcessName))
			}
			return nil
		},
	}
	rootCmd.AddCommand(runningCmd)
}
