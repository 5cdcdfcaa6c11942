package config

import (
	"os"
	"path/filepath"
	"time"
)

// Component identifies one of the two managed packages.
type Component string

const (
	// ComponentAccel is the VPN-acceleration daemon package.
	ComponentAccel Component = "accel"
	// ComponentWebUI is the LuCI frontend package for the daemon.
	ComponentWebUI Component = "webui"
)

// ComponentSpec fixes the release feed and package identity of a component.
type ComponentSpec struct {
	// Name of the opkg package.
	Package string
	// ReleaseURL is the GitHub "latest release" JSON endpoint.
	ReleaseURL string
	// AssetPattern matches the main ipk asset name.
	AssetPattern string
	// I18nPattern matches localization ipk asset names; empty when the
	// component ships none.
	I18nPattern string
	// ProcessName is the executable name checked for liveness; empty when
	// the component has no companion process.
	ProcessName string
}

// Config holds paths, tool locations, and network settings. Defaults match
// a stock OpenWrt install; env vars and CLI flags override.
type Config struct {
	WgetBin string
	OpkgBin string

	// ConfigDir is the UCI config root (normally /etc/config).
	ConfigDir string
	// StateDir holds the update-check cache.
	StateDir string
	// LogFolder holds component logs as <folder>/<type>.general.log.
	LogFolder string
	// TmpDir receives downloaded packages before install.
	TmpDir string
	// CacheDirs are cleared best-effort after a successful install.
	CacheDirs []string

	// Language selects the i18n catalog (empty = untranslated).
	Language string
	// I18nDir holds translation catalogs as <dir>/<lang>.yml.
	I18nDir string

	// FetchTimeout bounds the tool-level connect timeout (wget -T).
	FetchTimeout time.Duration
	// FetchRetries is the tool-level retry count (wget -t).
	FetchRetries int
	// DownloadTimeout is the outer wall-clock deadline on package downloads.
	DownloadTimeout time.Duration

	Components map[Component]ComponentSpec
}

// Defaults returns settings for a stock router install.
func Defaults() Config {
	return Config{
		WgetBin:   "wget",
		OpkgBin:   "opkg",
		ConfigDir: "/etc/config",
		StateDir:  "/var/run/accelctl",
		LogFolder: "/var/log/accelctl",
		TmpDir:    os.TempDir(),
		CacheDirs: []string{
			"/tmp/luci-indexcache",
			"/tmp/luci-modulecache",
		},
		I18nDir:         "/usr/share/accelctl/i18n",
		FetchTimeout:    10 * time.Second,
		FetchRetries:    2,
		DownloadTimeout: 40 * time.Second,
		Components: map[Component]ComponentSpec{
			ComponentAccel: {
				Package:      "accelerd",
				ReleaseURL:   "https://api.github.com/repos/accelerd/accelerd/releases/latest",
				AssetPattern: `^accelerd[_-].+\.ipk$`,
				ProcessName:  "accelerd",
			},
			ComponentWebUI: {
				Package:      "luci-app-accelerd",
				ReleaseURL:   "https://api.github.com/repos/accelerd/luci-app-accelerd/releases/latest",
				AssetPattern: `^luci-app-accelerd[_-].+\.ipk$`,
				I18nPattern:  `^luci-i18n-accelerd-.+\.ipk$`,
			},
		},
	}
}

// Load returns defaults with environment overrides applied. Flag overrides
// are layered on top by the CLI.
func Load() Config {
	cfg := Defaults()
	if v := os.Getenv("ACCELCTL_CONFIG_DIR"); v != "" {
		cfg.ConfigDir = v
	}
	if v := os.Getenv("ACCELCTL_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv("ACCELCTL_LOG_FOLDER"); v != "" {
		cfg.LogFolder = v
	}
	if v := os.Getenv("ACCELCTL_LANG"); v != "" {
		cfg.Language = v
	}
	return cfg
}

// Spec returns the component spec, with ok=false for unknown names.
func (c Config) Spec(name Component) (ComponentSpec, bool) {
	s, ok := c.Components[name]
	return s, ok
}

// LogPath resolves the log file for a component type.
func (c Config) LogPath(typ string) string {
	return filepath.Join(c.LogFolder, typ+".general.log")
}
