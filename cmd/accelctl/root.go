package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zenrouter/accelctl/internal/config"
	"github.com/zenrouter/accelctl/internal/exitcodes"
	"github.com/zenrouter/accelctl/internal/files"
	"github.com/zenrouter/accelctl/internal/i18n"
	"github.com/zenrouter/accelctl/internal/procstat"
	"github.com/zenrouter/accelctl/internal/runner"
	ui "github.com/zenrouter/accelctl/internal/ui"
	"github.com/zenrouter/accelctl/internal/update"
)

// Version information - set via -ldflags during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// rootCmd wires the CLI surface using Cobra. Persistent flags are applied
// to a loaded config in loadCfg(). Subcommands implement the actual
// operations (check, update, status, logs).
var rootCmd = &cobra.Command{
	Use:           "accelctl",
	Short:         "Router acceleration manager",
	Long:          "Check for, download, and install updates for the acceleration daemon and its web UI, and report daemon status.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.InitGlobal(ui.Config{
			NoColor: flagNoColor,
			NoEmoji: flagNoEmoji,
			Yes:     flagYes,
			Quiet:   flagQuiet,
			Verbose: flagVerbose,
		})
		if flagNoColor {
			os.Setenv("NO_COLOR", "1")
		}
	},
}

var (
	flagConfigDir string
	flagStateDir  string
	flagLogFolder string
	flagLang      string
	flagOutput    string
	flagVerbose   bool
	flagQuiet     bool
	flagNoColor   bool
	flagNoEmoji   bool
	flagYes       bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "UCI config root (overrides env)")
	rootCmd.PersistentFlags().StringVar(&flagStateDir, "state-dir", "", "State directory for check caches (overrides env)")
	rootCmd.PersistentFlags().StringVar(&flagLogFolder, "log-folder", "", "Component log folder (overrides env)")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "Message language (e.g. zh-cn)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format: json|yaml|text")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Quiet mode: minimal output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable ANSI colors")
	rootCmd.PersistentFlags().BoolVar(&flagNoEmoji, "no-emoji", false, "Disable emoji output")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Assume yes for all prompts")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcodes.CodeForError(err))
	}
}

// loadCfg reads defaults + env via internal/config.Load() and then applies
// overrides from persistent flags.
func loadCfg() config.Config {
	cfg := config.Load()
	if flagConfigDir != "" {
		cfg.ConfigDir = flagConfigDir
	}
	if flagStateDir != "" {
		cfg.StateDir = flagStateDir
	}
	if flagLogFolder != "" {
		cfg.LogFolder = flagLogFolder
	}
	if flagLang != "" {
		cfg.Language = flagLang
	}
	return cfg
}

// deps bundles the collaborators every command needs; tests swap in fakes.
type deps struct {
	cfg       config.Config
	store     files.Store
	lookup    procstat.Lookup
	checker   *update.Checker
	installer *update.Installer
}

func newDeps() *deps {
	cfg := loadCfg()
	tr := loadTranslator(cfg)
	run := runner.New()
	return &deps{
		cfg:       cfg,
		store:     files.New(cfg.ConfigDir),
		lookup:    procstat.SystemLookup{},
		checker:   update.NewChecker(cfg, run, tr),
		installer: update.NewInstaller(cfg, run, tr),
	}
}

func loadTranslator(cfg config.Config) i18n.Translator {
	c, err := i18n.Load(cfg.I18nDir, cfg.Language)
	if err != nil {
		// A broken catalog should not take the tool down.
		return i18n.Passthrough{}
	}
	return c
}

// localVersion reads the installed version for a component from the UCI
// option group, "0" when unset.
func localVersion(store files.Store, comp config.Component) string {
	return store.Get("accelctl", string(comp), "version", "0")
}

func getPrinter() ui.Printer {
	return ui.NewPrinterFromGlobal(flagOutput)
}

// parseComponent validates the optional component argument, defaulting to
// the daemon.
func parseComponent(args []string) (config.Component, error) {
	if len(args) == 0 {
		return config.ComponentAccel, nil
	}
	switch config.Component(args[0]) {
	case config.ComponentAccel:
		return config.ComponentAccel, nil
	case config.ComponentWebUI:
		return config.ComponentWebUI, nil
	}
	return "", exitcodes.InvalidArgsErrorf("unknown component %q (use accel|webui)", args[0])
}
