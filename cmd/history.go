package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/echo360-dl/echo360/color"
	"github.com/echo360-dl/echo360/history"
	"github.com/echo360-dl/echo360/icon"
	"github.com/echo360-dl/echo360/stream"
	"github.com/echo360-dl/echo360/style"
	"github.com/echo360-dl/echo360/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyForgetCmd)
	historyCmd.Flags().Bool("missing", false, "Only list lectures whose file is no longer on disk")
	historyCmd.SetOut(os.Stdout)
}

var historyCmd = &cobra.Command{
	Use:   "history [course]",
	Short: "List the lectures downloaded so far",
	Long: `List the lectures downloaded so far, grouped by course.
Courses are named as in the download directory, e.g. "CS101 - Intro to CS".`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeCourses,
	Run: func(cmd *cobra.Command, args []string) {
		courses, err := history.Courses()
		handleErr(err)

		if len(args) == 1 {
			courses = []string{args[0]}
		}

		missing := lo.Must(cmd.Flags().GetBool("missing"))
		for _, course := range courses {
			records, err := history.Of(course)
			handleErr(err)
			if missing {
				records = lo.Reject(records, func(r *history.Record, _ int) bool { return onDisk(r) })
			}
			printCourse(cmd.OutOrStdout(), course, records)
		}
	},
}

var historyForgetCmd = &cobra.Command{
	Use:               "forget <course>",
	Short:             "Remove the records of a course",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeCourses,
	Run: func(cmd *cobra.Command, args []string) {
		n, err := history.Forget(args[0])
		handleErr(err)
		fmt.Printf("%s Forgot %s of %s\n", icon.Get(icon.Success), util.Quantify(n, "lecture", "lectures"), args[0])
	},
}

func completeCourses(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	courses, err := history.Courses()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return courses, cobra.ShellCompDirectiveNoFileComp
}

func onDisk(r *history.Record) bool {
	return util.Exists(stream.Target(r.Directory, r.Filename, r.URL))
}

func printCourse(w io.Writer, course string, records []*history.Record) {
	if len(records) == 0 {
		return
	}

	title := style.New().Bold(true).Foreground(color.HiPurple).Render
	_, _ = fmt.Fprintf(w, "%s %s\n", title(course), style.Faint(util.Quantify(len(records), "lecture", "lectures")))
	for _, r := range records {
		mark := icon.Get(icon.Success)
		if !onDisk(r) {
			mark = icon.Get(icon.Skip)
		}
		_, _ = fmt.Fprintf(w, "  %s %s\n", mark, r)
	}
	_, _ = fmt.Fprintln(w)
}
