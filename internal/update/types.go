package update

// Release represents a GitHub release descriptor. Fetched fresh on every
// check, never persisted.
type Release struct {
	TagName string  `json:"tag_name"`
	HTMLURL string  `json:"html_url"`
	Assets  []Asset `json:"assets"`
}

// Asset represents a downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// CheckResult holds the outcome of an update check. Code keeps the 0/1
// convention the surrounding UI expects; Err is already localized.
type CheckResult struct {
	Code            int      `json:"code"`
	UpdateAvailable bool     `json:"update_available"`
	RemoteVersion   string   `json:"remote_version,omitempty"`
	HTMLURL         string   `json:"html_url,omitempty"`
	PackageURL      string   `json:"package_url,omitempty"`
	I18nURLs        []string `json:"i18n_urls,omitempty"`
	Err             string   `json:"error,omitempty"`
}

// InstallResult holds the outcome of a package install.
type InstallResult struct {
	Code int    `json:"code"`
	Err  string `json:"error,omitempty"`
}

// OK reports success.
func (r CheckResult) OK() bool   { return r.Code == 0 }
func (r InstallResult) OK() bool { return r.Code == 0 }
