package update

import (
	"os"
	"path/filepath"

	"github.com/zenrouter/accelctl/internal/config"
	"github.com/zenrouter/accelctl/internal/i18n"
	"github.com/zenrouter/accelctl/internal/runner"
)

const (
	msgURLRequired    = "Package url is required."
	msgDownloadFailed = "Download %s failed or timed out."
	msgInstallFailed  = "Package update failed."

	// Downloaded packages are staged under this pattern so stale leftovers
	// from interrupted runs can be swept by glob.
	tmpPattern = "accelctl_dl_*.ipk"
)

// Installer downloads a package file and hands it to the package manager.
type Installer struct {
	cfg config.Config
	run runner.CommandRunner
	tr  i18n.Translator
}

func NewInstaller(cfg config.Config, run runner.CommandRunner, tr i18n.Translator) *Installer {
	return &Installer{cfg: cfg, run: run, tr: tr}
}

// Install downloads url into a unique temp file and installs it, forcing
// downgrade and reinstall. Maintainer scripts are force-skipped unless the
// caller asked to preserve the package's shipped configuration. Temp files
// are removed on every path; cache directories are cleared best-effort on
// success.
func (ins *Installer) Install(url string, preserveConfig bool) InstallResult {
	if url == "" {
		return InstallResult{Code: 1, Err: ins.tr.T(msgURLRequired)}
	}

	ins.sweepStale()

	f, err := os.CreateTemp(ins.cfg.TmpDir, tmpPattern)
	if err != nil {
		return InstallResult{Code: 1, Err: ins.tr.T(msgDownloadFailed, url)}
	}
	tmp := f.Name()
	_ = f.Close()

	res, err := ins.run.Run(ins.cfg.WgetBin, fetchArgs(ins.cfg, tmp, url),
		runner.Options{Timeout: ins.cfg.DownloadTimeout})
	if err != nil || !res.OK() {
		_ = os.Remove(tmp)
		return InstallResult{Code: 1, Err: ins.tr.T(msgDownloadFailed, url)}
	}

	args := []string{"install", tmp, "--force-downgrade", "--force-reinstall"}
	if !preserveConfig {
		args = append(args, "--force-maintainer")
	}
	res, err = ins.run.Run(ins.cfg.OpkgBin, args, runner.Options{})
	if err != nil || !res.OK() {
		_ = os.Remove(tmp)
		return InstallResult{Code: 1, Err: ins.tr.T(msgInstallFailed)}
	}

	_ = os.Remove(tmp)
	for _, dir := range ins.cfg.CacheDirs {
		_ = os.RemoveAll(dir)
	}
	return InstallResult{Code: 0}
}

// sweepStale removes temp packages left behind by interrupted installs.
func (ins *Installer) sweepStale() {
	matches, err := filepath.Glob(filepath.Join(ins.cfg.TmpDir, tmpPattern))
	if err != nil {
		return
	}
	for _, m := range matches {
		_ = os.Remove(m)
	}
}
