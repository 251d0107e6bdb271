package downloader

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/echo360-dl/echo360/icon"
	"github.com/echo360-dl/echo360/style"
	"github.com/echo360-dl/echo360/util"
	"github.com/muesli/reflow/indent"
)

// Report summarizes a run.
type Report struct {
	Course    string
	Directory string

	// Total counts every video of the course, Selected the tasks that were attempted.
	Total    int
	Selected int

	// Downloaded lists the saved files in lecture order.
	Downloaded []string
	Skipped    []string
	Failed     []string
}

func banner(lines ...string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder(), true, false).
		BorderForeground(style.AccentColor).
		Width(util.TerminalWidth(65)).
		Render(indent.String(strings.Join(lines, "\n"), 4))
}

// Header is printed before the downloads start.
func (r *Report) Header() string {
	return banner(
		fmt.Sprintf("%s %s", style.Bold("Course:"), r.Course),
		fmt.Sprintf("Total videos to download: %d out of %d", r.Selected, r.Total),
	)
}

func list(title string, items []string) string {
	var b strings.Builder
	b.WriteString(title)
	for _, item := range items {
		b.WriteString("\n")
		b.WriteString(indent.String(item, 4))
	}
	return b.String()
}

func (r *Report) String() string {
	lines := []string{
		fmt.Sprintf("%s %s", style.Bold("Course:"), r.Course),
		list(fmt.Sprintf("%s Successfully downloaded %s:", icon.Get(icon.Success), util.Quantify(len(r.Downloaded), "video", "videos")), r.Downloaded),
	}

	if len(r.Skipped) > 0 {
		lines = append(lines, list(icon.Get(icon.Skip)+" Without video:", r.Skipped))
	}
	if len(r.Failed) > 0 {
		lines = append(lines, list(icon.Get(icon.Fail)+" Failed:", r.Failed))
	}

	return banner(lines...)
}
