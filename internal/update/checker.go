package update

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/zenrouter/accelctl/internal/config"
	"github.com/zenrouter/accelctl/internal/i18n"
	"github.com/zenrouter/accelctl/internal/runner"
	"github.com/zenrouter/accelctl/internal/version"
)

// Message templates; the i18n catalog is keyed by these English strings.
const (
	msgRemoteVersionFailed = "Failed to get remote version."
	msgPackageURLMissing   = "Failed to get package download url."
)

// Checker decides whether a newer release is published for a component.
type Checker struct {
	cfg config.Config
	run runner.CommandRunner
	tr  i18n.Translator
}

func NewChecker(cfg config.Config, run runner.CommandRunner, tr i18n.Translator) *Checker {
	return &Checker{cfg: cfg, run: run, tr: tr}
}

// fetchArgs builds the download-tool argument list for streaming a URL to
// stdout: certificate checks off, quiet, bounded connect timeout, retries.
func fetchArgs(cfg config.Config, dest, url string) []string {
	return []string{
		"--no-check-certificate",
		"-q",
		"-O", dest,
		"-T", strconv.Itoa(int(cfg.FetchTimeout.Seconds())),
		"-t", strconv.Itoa(cfg.FetchRetries),
		url,
	}
}

// fetchRelease shells out to the download tool and decodes the release
// JSON. An empty body decodes as an empty release rather than an error.
func (c *Checker) fetchRelease(url string) (Release, bool) {
	out, res, err := runner.Capture(c.run, c.cfg.WgetBin, fetchArgs(c.cfg, "-", url), 0)
	if err != nil || !res.OK() {
		return Release{}, false
	}
	if out == "" {
		out = "{}"
	}
	var rel Release
	if err := json.Unmarshal([]byte(out), &rel); err != nil {
		return Release{}, false
	}
	return rel, true
}

// Check fetches the component's latest release and compares it against the
// locally installed version. The asset list is only scanned when an update
// is actually needed.
func (c *Checker) Check(spec config.ComponentSpec, localVersion string) CheckResult {
	rel, ok := c.fetchRelease(spec.ReleaseURL)
	if !ok || rel.TagName == "" {
		return CheckResult{Code: 1, Err: c.tr.T(msgRemoteVersionFailed)}
	}

	remote := strings.TrimPrefix(rel.TagName, "v")
	if !version.Compare(localVersion, version.OpLess, remote) {
		return CheckResult{
			Code:          0,
			RemoteVersion: remote,
			HTMLURL:       rel.HTMLURL,
		}
	}

	pkgRe := regexp.MustCompile(spec.AssetPattern)
	var i18nRe *regexp.Regexp
	if spec.I18nPattern != "" {
		i18nRe = regexp.MustCompile(spec.I18nPattern)
	}

	result := CheckResult{
		RemoteVersion: remote,
		HTMLURL:       rel.HTMLURL,
	}
	for _, a := range rel.Assets {
		if result.PackageURL == "" && pkgRe.MatchString(a.Name) {
			result.PackageURL = a.BrowserDownloadURL
			continue
		}
		if i18nRe != nil && i18nRe.MatchString(a.Name) {
			result.I18nURLs = append(result.I18nURLs, a.BrowserDownloadURL)
		}
	}

	if result.PackageURL == "" {
		result.Code = 1
		result.Err = c.tr.T(msgPackageURLMissing)
		return result
	}

	result.UpdateAvailable = true
	return result
}
