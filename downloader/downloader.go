// Package downloader logs into the lecture portal and saves the recordings of a course.
package downloader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/echo360-dl/echo360/course"
	"github.com/echo360-dl/echo360/driver"
	"github.com/echo360-dl/echo360/history"
	"github.com/echo360-dl/echo360/icon"
	"github.com/echo360-dl/echo360/log"
	"github.com/echo360-dl/echo360/style"
	"github.com/echo360-dl/echo360/util"
	"github.com/samber/lo"
)

// Options of a run.
type Options struct {
	// Output is the directory the course directory is created in.
	Output string
	Range  DateRange

	Username   string
	Password   string
	UseKeyring bool

	// SetupCredential skips the login: the browser is visible and the user logs in by hand.
	SetupCredential bool

	// Interactive lets the user pick the files to download.
	Interactive bool

	// Timeout bounds each download; zero means no limit.
	Timeout time.Duration

	// History records every saved file.
	History bool
}

// Downloader runs the whole pipeline for one course on one browser session.
type Downloader struct {
	Authenticator *Authenticator

	course   course.Course
	driver   driver.Driver
	prompter Prompter
	options  Options
	out      io.Writer
}

func New(c course.Course, drv driver.Driver, prompter Prompter, options Options) *Downloader {
	authenticator := NewAuthenticator(c, drv, prompter)
	authenticator.Username = options.Username
	authenticator.Password = options.Password
	authenticator.UseKeyring = options.UseKeyring

	return &Downloader{
		Authenticator: authenticator,
		course:        c,
		driver:        drv,
		prompter:      prompter,
		options:       options,
		out:           os.Stdout,
	}
}

// SetOutput redirects progress messages, stdout by default.
func (d *Downloader) SetOutput(w io.Writer) {
	d.out = w
}

func (d *Downloader) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(d.out, format, a...)
}

// Run logs in, plans and downloads. Authentication, metadata and date errors abort the run;
// a failed download is reported and the run goes on. The driver is closed on return.
func (d *Downloader) Run(ctx context.Context) (*Report, error) {
	defer func() {
		if err := d.driver.Close(); err != nil {
			log.Warnf("closing browser: %v", err)
		}
	}()

	if err := d.establish(ctx); err != nil {
		return nil, err
	}

	d.printf("%s Retrieving course info... ", icon.Get(icon.Info))
	videos, err := d.course.Videos(ctx)
	if err != nil {
		d.printf("\n")
		return nil, err
	}

	id, err := d.course.ID(ctx)
	if err != nil {
		d.printf("\n")
		return nil, err
	}

	name, err := d.course.DisplayName(ctx)
	if err != nil {
		d.printf("\n")
		return nil, err
	}
	d.printf("Done!\n")

	directory := filepath.Join(d.options.Output, util.SanitizeFilename(strings.TrimSpace(name)))

	filtered, err := Filter(videos, d.options.Range)
	if err != nil {
		return nil, err
	}
	log.Infof("%d of %d videos within %s", len(filtered), len(videos), d.options.Range)

	tasks := Plan(id, videos, filtered)

	if d.options.Interactive && len(tasks) > 0 {
		if tasks, err = d.choose(tasks); err != nil {
			return nil, err
		}
	}

	report := &Report{
		Course:    name,
		Directory: directory,
		Total:     len(videos),
		Selected:  len(tasks),
	}
	d.printf("%s\n", report.Header())

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		url, ok := task.Video.URL().Get()
		if !ok {
			d.printf("%s Skipping %s, it does not contain any video\n", icon.Get(icon.Skip), style.Italic(task.Filename))
			report.Skipped = append(report.Skipped, task.Filename)
			continue
		}

		d.printf("%s %s\n", icon.Get(icon.Download), task.Filename)
		if !d.download(ctx, task, directory) {
			log.Errorf("failed to download %s from %s", task.Filename, url)
			report.Failed = append(report.Failed, task.Filename)
			continue
		}

		report.Downloaded = append([]string{task.Filename}, report.Downloaded...)

		if d.options.History {
			if err := history.Save(name, task.Filename, directory, url); err != nil {
				log.Warnf("history: %v", err)
			}
		}
	}

	d.printf("%s\n", report)
	return report, nil
}

// establish makes sure the browser session is allowed to read the course.
func (d *Downloader) establish(ctx context.Context) error {
	if d.options.SetupCredential {
		d.printf("%s Log in using the browser window, then come back here\n", icon.Get(icon.Login))
		_, err := d.prompter.PromptText("Press Enter once you are logged in")
		return err
	}

	d.printf("%s Logging into %s... ", icon.Get(icon.Login), d.course.URL())
	result, err := d.Authenticator.Authenticate(ctx)
	if err != nil {
		d.printf("Failed!\n")
		return err
	}

	if uuid, ok := result.RecoveredUUID.Get(); ok {
		if err := d.course.Rebind(uuid); err != nil {
			log.Warnf("rebinding course to %s: %v", uuid, err)
		}
	}

	d.printf("Done!\n")
	return nil
}

// choose narrows tasks to the user's selection, keeping their order.
func (d *Downloader) choose(tasks []Task) ([]Task, error) {
	names := lo.Map(tasks, func(t Task, _ int) string { return t.Filename })

	chosen, err := d.prompter.PromptMultiSelect("Select the videos to download", names)
	if err != nil {
		return nil, err
	}

	selected := lo.SliceToMap(chosen, func(name string) (string, struct{}) { return name, struct{}{} })
	return lo.Filter(tasks, func(t Task, _ int) bool {
		_, ok := selected[t.Filename]
		return ok
	}), nil
}

func (d *Downloader) download(ctx context.Context, task Task, directory string) bool {
	if d.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.options.Timeout)
		defer cancel()
	}

	return task.Video.Download(ctx, directory, task.Filename)
}
