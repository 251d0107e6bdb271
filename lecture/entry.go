// Package lecture models the recordings listed by a course and knows how to save them.
package lecture

import (
	"context"
	"net/http"
	"time"

	"github.com/echo360-dl/echo360/driver"
	"github.com/samber/mo"
	"github.com/spf13/cast"
)

// DateLayout is the layout of every Entry date.
const DateLayout = "2006-01-02"

// Entry is one recording of a course.
type Entry interface {
	// Date is the recording date, normally formatted with DateLayout.
	// Entries whose backend date could not be understood return it verbatim.
	Date() string

	Title() string

	// URL is the playable stream, or mo.None when the recording has no video.
	URL() mo.Option[string]

	// Parts expands a multi-part recording into its segments in playback order.
	// Single recordings return themselves.
	Parts() []Entry

	// Download saves the recording as dir/filename plus an extension and reports success.
	Download(ctx context.Context, dir, filename string) bool
}

// Session is the browser session and portal the entries of one course belong to.
type Session struct {
	Driver   driver.Driver
	Client   *http.Client
	Hostname string

	// Cookies authenticate requests made outside of the browser.
	Cookies []*http.Cookie

	// AlternativeFeeds keeps every camera/screen feed of a cloud recording as its own part.
	AlternativeFeeds bool
}

// normalizeDate reformats a backend timestamp with DateLayout, returning it unchanged if it cannot be parsed.
func normalizeDate(raw string) string {
	t, err := cast.ToTimeE(raw)
	if err != nil {
		return raw
	}
	return t.Format(DateLayout)
}

// ResolveAttempts and ResolveInterval bound how long a player page is polled for its stream URL.
var (
	ResolveAttempts = 30
	ResolveInterval = time.Second
)
