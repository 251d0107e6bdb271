package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/echo360-dl/echo360/color"
	"github.com/echo360-dl/echo360/constant"
	"github.com/echo360-dl/echo360/key"
	"github.com/echo360-dl/echo360/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a single configuration option with its default.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env is the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.App + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Type names the Go type of the default value.
func (f *Field) Type() string {
	return fmt.Sprintf("%T", f.Value)
}

// Pretty renders the field for `config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(fieldTemplate.Execute(&b, f))
	return b.String()
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"key":         f.Key,
		"env":         f.Env(),
		"type":        f.Type(),
		"value":       viper.Get(f.Key),
		"default":     f.Value,
		"description": f.Description,
	})
}

var fields = []Field{
	// portal
	{key.PortalHostname, "", "Portal hostname, e.g. https://echo360.org.au\nLeave empty to use the default of the selected backend"},
	{key.PortalCloud, false, "Use the cloud backend (echo360.org, echo360.org.au, ...) instead of the classic ESS portal"},
	{key.PortalAlternativeFeeds, false, "Cloud backend only. Download every camera/screen feed of a lecture as separate parts"},

	// credentials
	{key.CredentialsUsername, "", "Username used to log into the portal.\nWill prompt if not set"},
	{key.CredentialsUseKeyring, true, "Look up the password in the system keyring.\nType \"echo360 credentials set\" to store one"},

	// browser
	{key.BrowserBin, "", "Path to a Chromium/Chrome binary.\nA matching Chromium build is downloaded if not set"},
	{key.BrowserHeadless, true, "Run the automated browser without a window"},
	{key.BrowserUserAgent, constant.UserAgent, "User agent presented by the browser and the HTTP client"},

	// downloads
	{key.DownloadsPath, "", "Directory lectures are saved into.\nDefaults to the current directory"},
	{key.DownloadsTimeout, 0, "Seconds a single lecture download may take before it is marked failed.\n0 disables the limit"},
	{key.DownloadsInteractive, false, "Ask which lectures to download before starting"},
	{key.DownloadsHistory, true, "Record downloaded lectures in the history file"},
	{key.DownloadsSkipExisting, true, "Skip lectures whose file already exists in the output directory"},

	{key.NetworkTLSFingerprint, false, "Present a Chrome TLS fingerprint on requests made outside of the browser"},
	{key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)"},

	// logs
	{key.LogsWrite, false, "Write logs"},
	{key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace"},
	{key.LogsJson, false, "Use json format for logs"},

	// cli
	{key.CliColored, true, "Enable colored CLI output"},
	{key.CliVersionCheck, true, "Check for a newer release after printing help"},
}

// Default maps every known key to its field.
var Default = lo.SliceToMap(fields, func(f Field) (string, Field) {
	return f.Key, f
})

func init() {
	if dup := lo.FindDuplicatesBy(fields, func(f Field) string { return f.Key }); len(dup) > 0 {
		panic("duplicate config key: " + dup[0].Key)
	}
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Green)(strconv.FormatBool(value))
		}
		return style.Fg(color.Red)(strconv.FormatBool(value))
	case string:
		if value == "" {
			return style.Faint(`""`)
		}
		return style.Fg(color.Yellow)(value)
	default:
		return fmt.Sprint(value)
	}
}

var fieldTemplate = lo.Must(template.New("field").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"bold":   style.Bold,
	"purple": style.Fg(color.Purple),
	"cyan":   style.Fg(color.Cyan),
	"hl":     highlight,
	"get":    viper.Get,
}).Parse(`{{ purple .Key }} {{ faint (printf "(%s)" .Type) }}
{{ faint .Description }}
{{ cyan "env" }}     {{ .Env }}
{{ cyan "current" }} {{ hl (get .Key) }}
{{ cyan "default" }} {{ hl .Value }}`))
