package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zenrouter/accelctl/internal/config"
	"github.com/zenrouter/accelctl/internal/exitcodes"
	ui "github.com/zenrouter/accelctl/internal/ui"
	"github.com/zenrouter/accelctl/internal/update"
)

// runCheckCore performs the update check for one component and records the
// result in the state cache.
func runCheckCore(d *deps, comp config.Component) (update.CheckResult, error) {
	spec, ok := d.cfg.Spec(comp)
	if !ok {
		return update.CheckResult{}, exitcodes.PreconditionError(fmt.Sprintf("component %q not configured", comp))
	}

	local := localVersion(d.store, comp)
	res := d.checker.Check(spec, local)

	if res.Code == 0 {
		_ = update.SaveCache(d.cfg.StateDir, spec.ReleaseURL, &update.CacheEntry{
			CheckedAt:       time.Now(),
			Component:       string(comp),
			RemoteVersion:   res.RemoteVersion,
			UpdateAvailable: res.UpdateAvailable,
		})
	}
	return res, nil
}

func printCheckText(p ui.Printer, comp config.Component, local string, res update.CheckResult) {
	if res.Code != 0 {
		p.Error(res.Err)
		return
	}
	if !res.UpdateAvailable {
		p.Success(fmt.Sprintf("%s is up to date (%s)", comp, local))
		return
	}
	p.Info(fmt.Sprintf("Update available for %s: %s → %s", comp, local, res.RemoteVersion))
	p.KeyValueLine("Release", res.HTMLURL)
	p.KeyValueLine("Package", res.PackageURL)
	for _, u := range res.I18nURLs {
		p.KeyValueLine("Localization", u)
	}
}

func init() {
	checkCmd := &cobra.Command{
		Use:   "check [accel|webui]",
		Short: "Check for a newer release",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := parseComponent(args)
			if err != nil {
				return err
			}
			d := newDeps()
			res, err := runCheckCore(d, comp)
			if err != nil {
				return err
			}

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
				printCheckText(getPrinter(), comp, localVersion(d.store, comp), res)
			default:
				return exitcodes.InvalidArgsErrorf("invalid --output: %s (use json|yaml|text)", flagOutput)
			}

			if res.Code != 0 {
				return exitcodes.NetworkErr(res.Err)
			}
			return nil
		},
	}
	rootCmd.AddCommand(checkCmd)
}
