package lecture

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/echo360-dl/echo360/log"
	"github.com/samber/mo"
)

var streamURLPattern = regexp.MustCompile(`https?://[^"'\s<>]+?\.(?:m3u8|mp4)(?:\?[^"'\s<>]*)?`)

// Classic is a recording listed by the classic ESS portal.
type Classic struct {
	session *Session
	date    string
	title   string
	url     mo.Option[string]
}

// NewClassic builds an entry from one element of section.presentations.pageContents.
// The stream URL is located by opening the entry's player page in the browser.
func NewClassic(ctx context.Context, session *Session, raw []byte) (*Classic, error) {
	startTime, err := jsonparser.GetString(raw, "startTime")
	if err != nil {
		return nil, fmt.Errorf("presentation start time: %w", err)
	}

	title, err := jsonparser.GetString(raw, "title")
	if err != nil {
		title = "Untitled"
	}

	c := &Classic{
		session: session,
		date:    normalizeDate(startTime),
		title:   strings.TrimSpace(title),
		url:     mo.None[string](),
	}

	player, err := jsonparser.GetString(raw, "richMedia")
	if err != nil || player == "" {
		log.Infof("%s has no player page", c.title)
		return c, nil
	}

	found, err := findStreamURL(ctx, session, player)
	if err != nil {
		return nil, err
	}
	c.url = found

	return c, nil
}

// findStreamURL polls the player page until its markup references a stream.
func findStreamURL(ctx context.Context, session *Session, player string) (mo.Option[string], error) {
	if err := session.Driver.Navigate(ctx, player); err != nil {
		return mo.None[string](), err
	}

	for attempt := 0; attempt < ResolveAttempts; attempt++ {
		source, err := session.Driver.PageSource(ctx)
		if err != nil {
			return mo.None[string](), err
		}

		if match := streamURLPattern.FindString(source); match != "" {
			return mo.Some(strings.ReplaceAll(match, "&amp;", "&")), nil
		}

		if attempt == ResolveAttempts-1 {
			log.Dump("player page", player, source)
			break
		}

		select {
		case <-ctx.Done():
			return mo.None[string](), ctx.Err()
		case <-time.After(ResolveInterval):
		}
	}

	log.Warnf("no stream found on %s", player)
	return mo.None[string](), nil
}

func (c *Classic) Date() string {
	return c.date
}

func (c *Classic) Title() string {
	return c.title
}

func (c *Classic) URL() mo.Option[string] {
	return c.url
}

func (c *Classic) Parts() []Entry {
	return []Entry{c}
}

func (c *Classic) Download(ctx context.Context, dir, filename string) bool {
	u, ok := c.url.Get()
	if !ok {
		return false
	}
	return save(ctx, c.session.Driver, u, dir, filename)
}
