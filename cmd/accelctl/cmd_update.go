package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zenrouter/accelctl/internal/config"
	"github.com/zenrouter/accelctl/internal/exitcodes"
	"github.com/zenrouter/accelctl/internal/procstat"
	ui "github.com/zenrouter/accelctl/internal/ui"
)

type updateCoreOpts struct {
	component      config.Component
	urlOverride    string
	preserveConfig bool
	assumeYes      bool
}

// runUpdateCore contains the core update logic, testable with fakes wired
// through deps and an injected confirm func.
func runUpdateCore(d *deps, opts updateCoreOpts, p ui.Printer, confirm func(prompt string) bool) error {
	// Direct install path: the caller already knows the package URL.
	if opts.urlOverride != "" {
		p.Info(fmt.Sprintf("Installing %s...", opts.urlOverride))
		if res := d.installer.Install(opts.urlOverride, opts.preserveConfig); res.Code != 0 {
			return exitcodes.InstallErr(res.Err)
		}
		p.Success("Package installed")
		return nil
	}

	local := localVersion(d.store, opts.component)
	p.Info(fmt.Sprintf("Checking for %s updates...", opts.component))
	check, err := runCheckCore(d, opts.component)
	if err != nil {
		return err
	}
	if check.Code != 0 {
		return exitcodes.NetworkErr(check.Err)
	}
	if !check.UpdateAvailable {
		p.Success(fmt.Sprintf("%s is up to date (%s)", opts.component, local))
		return nil
	}

	p.Info(fmt.Sprintf("Update available: %s → %s", local, check.RemoteVersion))
	if check.HTMLURL != "" {
		p.KeyValueLine("Release", check.HTMLURL)
	}

	if !opts.assumeYes && !confirm("Update now? [Y/n]: ") {
		p.Warn("Update cancelled")
		return nil
	}

	p.Info("Downloading and installing package...")
	if res := d.installer.Install(check.PackageURL, opts.preserveConfig); res.Code != 0 {
		return exitcodes.InstallErr(res.Err)
	}

	// Localization packages are best-effort: a broken translation must not
	// fail the main update.
	for _, u := range check.I18nURLs {
		if res := d.installer.Install(u, opts.preserveConfig); res.Code != 0 {
			p.Warn(res.Err)
		}
	}

	if err := d.store.Set("accelctl", string(opts.component), "version", check.RemoteVersion); err != nil {
		p.Warn(fmt.Sprintf("installed, but could not record version: %v", err))
	}
	p.Success(fmt.Sprintf("Updated %s to %s", opts.component, check.RemoteVersion))

	if spec, ok := d.cfg.Spec(opts.component); ok && spec.ProcessName != "" {
		if procstat.Running(d.lookup, spec.ProcessName) {
			p.Info(fmt.Sprintf("%s is running; restart it to pick up the new version", spec.ProcessName))
		}
	}
	return nil
}

func init() {
	var (
		urlOverride    string
		preserveConfig bool
	)

	updateCmd := &cobra.Command{
		Use:   "update [accel|webui]",
		Short: "Download and install the latest release",
		Long: `Check for and install the latest release of a managed component.

Packages are fetched from GitHub release assets and handed to opkg with
--force-downgrade --force-reinstall. Maintainer scripts are force-skipped
unless --preserve-config is given.

Examples:
  accelctl update                  # update the acceleration daemon
  accelctl update webui            # update the LuCI frontend
  accelctl update --url https://…  # install a specific package file
  accelctl update -y               # skip confirmation`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := parseComponent(args)
			if err != nil {
				return err
			}
			opts := updateCoreOpts{
				component:      comp,
				urlOverride:    urlOverride,
				preserveConfig: preserveConfig,
				assumeYes:      flagYes,
			}
			return runUpdateCore(newDeps(), opts, getPrinter(), ttyConfirm)
		},
	}

	updateCmd.Flags().StringVar(&urlOverride, "url", "", "Install this package URL directly, skipping the release check")
	updateCmd.Flags().BoolVar(&preserveConfig, "preserve-config", false, "Run maintainer scripts so shipped config is preserved")
	rootCmd.AddCommand(updateCmd)
}

// ttyConfirm asks on stdin; any answer other than empty/y/yes declines.
func ttyConfirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y" || answer == "yes"
}
