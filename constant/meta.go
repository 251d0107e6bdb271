// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "echo360"

	// Version is the current application semantic version string.
	Version = "0.4.0"

	// UserAgent is presented by the automated browser. The portal serves its lightweight
	// HLS player to tablet clients, which keeps stream URLs visible in the page source.
	UserAgent = "Mozilla/5.0 (iPad; CPU OS 6_0 like Mac OS X) AppleWebKit/536.26 (KHTML, like Gecko) Version/6.0 Mobile/10A5376e Safari/8536.25"
)

// Portal defaults.
const (
	ClassicHostname = "https://view.streaming.sydney.edu.au:8443"
	CloudHostname   = "https://echo360.org.au"
	UntitledCourse  = "[[UNTITLED]]"
)

// GOOS values open.Start knows a file manager for.
const (
	Linux   = "linux"
	Android = "android"
	Darwin  = "darwin"
	Windows = "windows"
)
