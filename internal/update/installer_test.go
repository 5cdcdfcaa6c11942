package update

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zenrouter/accelctl/internal/i18n"
	"github.com/zenrouter/accelctl/internal/runner"
)

func stagedPackages(t *testing.T, tmpDir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(tmpDir, tmpPattern))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

func TestInstallEmptyURL(t *testing.T) {
	cfg := testCfg(t)
	run := &fakeRunner{}
	ins := NewInstaller(cfg, run, i18n.Passthrough{})

	res := ins.Install("", false)
	if res.Code != 1 {
		t.Errorf("Code = %d, want 1", res.Code)
	}
	if res.Err == "" {
		t.Error("Err is empty")
	}
	if len(run.calls) != 0 {
		t.Errorf("runner called %d times, want 0", len(run.calls))
	}
}

func TestInstallDownloadFailure(t *testing.T) {
	cfg := testCfg(t)
	run := &fakeRunner{handler: func(string, []string, runner.Options) (runner.Result, error) {
		return runner.Result{Code: 1, TimedOut: true}, nil
	}}
	ins := NewInstaller(cfg, run, i18n.Passthrough{})

	const url = "https://dl.test/app.ipk"
	res := ins.Install(url, false)
	if res.Code != 1 {
		t.Errorf("Code = %d, want 1", res.Code)
	}
	if !strings.Contains(res.Err, url) {
		t.Errorf("Err = %q, should include the URL", res.Err)
	}
	if len(run.calls) != 1 {
		t.Errorf("runner called %d times, want 1 (no opkg after failed download)", len(run.calls))
	}
	if left := stagedPackages(t, cfg.TmpDir); len(left) != 0 {
		t.Errorf("partial temp files not removed: %q", left)
	}
}

func TestInstallSuccess(t *testing.T) {
	cfg := testCfg(t)
	cacheDir := filepath.Join(t.TempDir(), "luci-indexcache")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg.CacheDirs = []string{cacheDir}

	run := &fakeRunner{}
	ins := NewInstaller(cfg, run, i18n.Passthrough{})

	res := ins.Install("https://dl.test/app.ipk", false)
	if res.Code != 0 {
		t.Fatalf("result = %+v", res)
	}
	if len(run.calls) != 2 {
		t.Fatalf("runner called %d times, want wget then opkg", len(run.calls))
	}

	wget := strings.Join(run.calls[0], " ")
	if !strings.Contains(wget, "https://dl.test/app.ipk") {
		t.Errorf("download command = %q", wget)
	}

	opkg := strings.Join(run.calls[1], " ")
	for _, flag := range []string{"install", "--force-downgrade", "--force-reinstall", "--force-maintainer"} {
		if !strings.Contains(opkg, flag) {
			t.Errorf("opkg command %q missing %q", opkg, flag)
		}
	}

	if left := stagedPackages(t, cfg.TmpDir); len(left) != 0 {
		t.Errorf("temp files not cleaned up: %q", left)
	}
	if _, err := os.Stat(cacheDir); !os.IsNotExist(err) {
		t.Error("cache dir not cleared after install")
	}
}

func TestInstallPreserveConfigSkipsForceMaintainer(t *testing.T) {
	cfg := testCfg(t)
	run := &fakeRunner{}
	ins := NewInstaller(cfg, run, i18n.Passthrough{})

	if res := ins.Install("https://dl.test/app.ipk", true); res.Code != 0 {
		t.Fatalf("result = %+v", res)
	}
	opkg := strings.Join(run.calls[1], " ")
	if strings.Contains(opkg, "--force-maintainer") {
		t.Errorf("opkg command %q must not force maintainer scripts", opkg)
	}
}

func TestInstallPackageManagerFailure(t *testing.T) {
	cfg := testCfg(t)
	run := &fakeRunner{handler: func(name string, _ []string, _ runner.Options) (runner.Result, error) {
		if name == cfg.OpkgBin {
			return runner.Result{Code: 255}, nil
		}
		return runner.Result{Code: 0}, nil
	}}
	ins := NewInstaller(cfg, run, i18n.Passthrough{})

	res := ins.Install("https://dl.test/app.ipk", false)
	if res.Code != 1 {
		t.Errorf("Code = %d, want 1", res.Code)
	}
	if res.Err != msgInstallFailed {
		t.Errorf("Err = %q", res.Err)
	}
	if left := stagedPackages(t, cfg.TmpDir); len(left) != 0 {
		t.Errorf("temp files not removed after opkg failure: %q", left)
	}
}

func TestInstallSweepsStaleTempFiles(t *testing.T) {
	cfg := testCfg(t)
	stale := filepath.Join(cfg.TmpDir, "accelctl_dl_stale.ipk")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	ins := NewInstaller(cfg, &fakeRunner{}, i18n.Passthrough{})
	if res := ins.Install("https://dl.test/app.ipk", false); res.Code != 0 {
		t.Fatalf("result = %+v", res)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale temp package not swept before download")
	}
}

func TestInstallDownloadUsesOuterDeadline(t *testing.T) {
	cfg := testCfg(t)
	var gotTimeout bool
	run := &fakeRunner{handler: func(name string, _ []string, opts runner.Options) (runner.Result, error) {
		if name == cfg.WgetBin {
			gotTimeout = opts.Timeout == cfg.DownloadTimeout
		}
		return runner.Result{Code: 0}, nil
	}}
	NewInstaller(cfg, run, i18n.Passthrough{}).Install("https://dl.test/app.ipk", false)
	if !gotTimeout {
		t.Error("download was not bounded by the configured outer deadline")
	}
}
