package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/echo360-dl/echo360/color"
	"github.com/echo360-dl/echo360/constant"
	"github.com/echo360-dl/echo360/style"
	"github.com/echo360-dl/echo360/version"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Only print the version")
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}      {{ bold .Version }}
  {{ faint "Git Commit" }}   {{ bold .Revision }}
  {{ faint "Build Date" }}   {{ bold .BuiltAt }}
  {{ faint "Built By" }}     {{ bold .BuiltBy }}
  {{ faint "Platform" }}     {{ bold .Platform }}
  {{ faint "Go" }}           {{ bold .Go }}
  {{ faint "Chromium" }}     {{ bold .Chromium }}
`))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify()

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), map[string]string{
			"App":      constant.App,
			"Version":  constant.Version,
			"Revision": constant.Revision,
			"BuiltAt":  strings.TrimSpace(constant.BuiltAt),
			"BuiltBy":  constant.BuiltBy,
			"Platform": runtime.GOOS + "/" + runtime.GOARCH,
			"Go":       runtime.Version(),
			"Chromium": fmt.Sprintf("r%d (used when no browser is installed)", launcher.RevisionDefault),
		}))
	},
}
