package cmd

import (
	"fmt"
	"os"

	"github.com/echo360-dl/echo360/color"
	"github.com/echo360-dl/echo360/style"
	"github.com/echo360-dl/echo360/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type location struct {
	flag, short string
	title       string
	path        func() string
}

// Locations without a short flag are hidden from help and from the listing.
var locations = []location{
	{"config", "c", "Config", where.Config},
	{"downloads", "d", "Downloads", where.Downloads},
	{"logs", "l", "Logs", where.Logs},
	{"history", "s", "History", where.History},
	{"browser", "", "Browser builds", where.Browser},
	{"cache", "", "Cache", where.Cache},
	{"temp", "", "Temp", where.Temp},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	flags := whereCmd.Flags()
	for _, l := range locations {
		flags.BoolP(l.flag, l.short, false, fmt.Sprintf("Print the %s path", l.flag))
		if l.short == "" {
			lo.Must0(flags.MarkHidden(l.flag))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string { return l.flag })...)
	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration, logs and downloads are kept",
	Run: func(cmd *cobra.Command, args []string) {
		if l, ok := lo.Find(locations, func(l location) bool {
			return lo.Must(cmd.Flags().GetBool(l.flag))
		}); ok {
			cmd.Println(l.path())
			return
		}

		title := style.New().Bold(true).Foreground(color.HiPurple).Render
		for _, l := range lo.Filter(locations, func(l location, _ int) bool { return l.short != "" }) {
			cmd.Printf("%s %s\n%s\n\n", title(l.title), style.Faint("--"+l.flag), l.path())
		}
	},
}
