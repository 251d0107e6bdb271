// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Portal Selection - these keys describe which lecture-capture backend is contacted.
const (
	PortalHostname         = "portal.hostname"
	PortalCloud            = "portal.cloud"
	PortalAlternativeFeeds = "portal.alternative_feeds"
)

// Credentials - these keys control how login details are obtained.
const (
	CredentialsUsername   = "credentials.username"
	CredentialsUseKeyring = "credentials.use_keyring"
)

// Browser Automation - these keys configure the headless browser session.
const (
	BrowserBin       = "browser.bin"
	BrowserHeadless  = "browser.headless"
	BrowserUserAgent = "browser.user_agent"
)

// Downloads - these keys govern where and how lectures are stored.
const (
	DownloadsPath         = "downloads.path"
	DownloadsTimeout      = "downloads.timeout"
	DownloadsInteractive  = "downloads.interactive"
	DownloadsHistory      = "downloads.history"
	DownloadsSkipExisting = "downloads.skip_existing"
)

// Network - transport tuning for requests issued outside of the browser.
const (
	NetworkTLSFingerprint = "network.tls_fingerprint"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-interactive application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
