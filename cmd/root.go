// Package cmd implements the command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"time"

	"github.com/echo360-dl/echo360/color"
	"github.com/echo360-dl/echo360/constant"
	"github.com/echo360-dl/echo360/course"
	"github.com/echo360-dl/echo360/downloader"
	"github.com/echo360-dl/echo360/driver"
	"github.com/echo360-dl/echo360/icon"
	"github.com/echo360-dl/echo360/key"
	"github.com/echo360-dl/echo360/log"
	"github.com/echo360-dl/echo360/network"
	"github.com/echo360-dl/echo360/open"
	"github.com/echo360-dl/echo360/prompt"
	"github.com/echo360-dl/echo360/style"
	"github.com/echo360-dl/echo360/util"
	"github.com/echo360-dl/echo360/version"
	"github.com/echo360-dl/echo360/where"
	"github.com/google/uuid"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().Bool("debug", false, "Write debug logs, including dumps of every page visited")

	flags := rootCmd.Flags()
	flags.StringP("output", "o", "", "Directory the course directory is created in")
	flags.StringP("after", "a", "", "Only download lectures recorded on or after this date (YYYY-MM-DD)")
	flags.StringP("before", "b", "", "Only download lectures recorded on or before this date (YYYY-MM-DD)")
	flags.StringP("username", "u", "", "Username used to log in")
	flags.StringP("password", "p", "", "Password used to log in")
	flags.Bool("setup-credentials", false, "Open a browser window and log in by hand, e.g. for single sign-on")
	flags.BoolP("interactive", "i", false, "Choose the lectures to download")
	flags.BoolP("cloud", "e", false, "The course is on the cloud portal (echo360.org, echo360.org.au, ...)")
	flags.String("hostname", "", "Portal hostname, taken from the course URL when one is given")
	flags.Bool("alternative-feeds", false, "Download every feed of a cloud lecture as a separate part")
	flags.String("browser-bin", "", "Path to a Chromium/Chrome binary")
	flags.Bool("open", false, "Open the course directory when done")

	for flag, k := range map[string]string{
		"username":          key.CredentialsUsername,
		"interactive":       key.DownloadsInteractive,
		"cloud":             key.PortalCloud,
		"hostname":          key.PortalHostname,
		"alternative-feeds": key.PortalAlternativeFeeds,
		"browser-bin":       key.BrowserBin,
	} {
		lo.Must0(viper.BindPFlag(k, flags.Lookup(flag)))
	}

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

var rootCmd = &cobra.Command{
	Use:   constant.App + " <course url or id>",
	Short: "Download lecture recordings from an Echo360 portal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Download lecture recordings from an Echo360 portal"),
	Example: `  echo360 https://view.streaming.sydney.edu.au:8443/ess/portal/section/ed9b26eb-a785-4f4e-bd51-69f3faab388a
  echo360 https://echo360.org.au/section/8d1f6f0c-5a3b-4ad0-9b1a-0c2b7f2d9e11/home --after 2024-03-01
  echo360 ed9b26eb-a785-4f4e-bd51-69f3faab388a -u alice -o ~/Lectures`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("debug")) {
			viper.Set(key.LogsWrite, true)
			viper.Set(key.LogsLevel, "debug")
			handleErr(log.Setup())
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		handleErr(download(cmd, args[0]))
	},
}

var sectionPattern = regexp.MustCompile(`[0-9a-zA-Z]{8}-[0-9a-zA-Z]{4}-[0-9a-zA-Z]{4}-[0-9a-zA-Z]{4}-[0-9a-zA-Z]{12}`)

// target is the course named on the command line.
type target struct {
	uuid     string
	hostname string

	// cloud is known only when a full URL was given.
	cloud mo.Option[bool]
}

// parseTarget accepts a course id or the URL of any page of the course.
func parseTarget(arg string) (target, error) {
	arg = strings.TrimSpace(arg)
	if !strings.HasPrefix(arg, "http://") && !strings.HasPrefix(arg, "https://") {
		if arg == "" {
			return target{}, errors.New("course id is empty")
		}
		id, err := uuid.Parse(arg)
		if err != nil {
			return target{}, fmt.Errorf("course id %q: %w", arg, err)
		}
		return target{uuid: id.String(), cloud: mo.None[bool]()}, nil
	}

	u, err := url.Parse(arg)
	if err != nil {
		return target{}, fmt.Errorf("course url: %w", err)
	}

	section := sectionPattern.FindString(u.Path)
	if section == "" {
		return target{}, fmt.Errorf("no course id in %s", arg)
	}

	return target{
		uuid:     section,
		hostname: u.Scheme + "://" + u.Host,
		cloud:    mo.Some(!strings.Contains(u.Path, "/ess/")),
	}, nil
}

func download(cmd *cobra.Command, arg string) error {
	t, err := parseTarget(arg)
	if err != nil {
		return err
	}

	variant := course.VariantClassic
	if t.cloud.OrElse(viper.GetBool(key.PortalCloud)) {
		variant = course.VariantCloud
	}

	hostname := viper.GetString(key.PortalHostname)
	if !cmd.Flags().Changed("hostname") && t.hostname != "" {
		hostname = t.hostname
	}

	dates, err := downloader.ParseDateRange(
		lo.Must(cmd.Flags().GetString("after")),
		lo.Must(cmd.Flags().GetString("before")),
	)
	if err != nil {
		return err
	}

	output := lo.Must(cmd.Flags().GetString("output"))
	if output == "" {
		output = where.Downloads()
	}

	setup := lo.Must(cmd.Flags().GetBool("setup-credentials"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	erase := util.PrintErasable(fmt.Sprintf("%s Starting browser...", icon.Get(icon.Progress)))
	drv, err := driver.NewRod(ctx, driver.Options{
		Bin:       viper.GetString(key.BrowserBin),
		Headless:  viper.GetBool(key.BrowserHeadless) && !setup,
		UserAgent: viper.GetString(key.BrowserUserAgent),
	})
	erase()
	if err != nil {
		return err
	}

	c := course.New(variant, t.uuid, hostname, drv, network.API(), course.Options{
		AlternativeFeeds: viper.GetBool(key.PortalAlternativeFeeds),
	})
	log.Infof("%s course %s at %s", variant, t.uuid, c.URL())

	if setup {
		if err := drv.Navigate(ctx, c.URL()); err != nil {
			_ = drv.Close()
			return err
		}
	}

	d := downloader.New(c, drv, prompt.New(), downloader.Options{
		Output:          output,
		Range:           dates,
		Username:        viper.GetString(key.CredentialsUsername),
		Password:        lo.Must(cmd.Flags().GetString("password")),
		UseKeyring:      viper.GetBool(key.CredentialsUseKeyring),
		SetupCredential: setup,
		Interactive:     viper.GetBool(key.DownloadsInteractive),
		Timeout:         time.Duration(viper.GetInt(key.DownloadsTimeout)) * time.Second,
		History:         viper.GetBool(key.DownloadsHistory),
	})

	report, err := d.Run(ctx)
	if err != nil {
		return err
	}

	if lo.Must(cmd.Flags().GetBool("open")) && len(report.Downloaded) > 0 {
		return open.Start(report.Directory)
	}

	return nil
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// handleErr prints err and exits. Details are kept in the log.
func handleErr(err error) {
	if err == nil {
		return
	}

	log.Error(err)

	message := strings.Trim(err.Error(), " \n")
	var authErr *downloader.AuthenticationError
	if errors.As(err, &authErr) {
		message = fmt.Sprintf("%s (%s)", authErr.Reason, authErr.URL)
	}

	_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), message)
	os.Exit(1)
}
