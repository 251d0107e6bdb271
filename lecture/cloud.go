package lecture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/echo360-dl/echo360/log"
	"github.com/echo360-dl/echo360/network"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Cloud is a lesson listed by the cloud portal's syllabus.
// A lesson with several media (or several feeds when alternative feeds are
// enabled) is a multi-part recording.
type Cloud struct {
	session  *Session
	lessonID string
	date     string
	title    string
	url      mo.Option[string]
	parts    []*Cloud
}

// NewCloud builds an entry from one lesson element of the syllabus "data" array.
// Stream URLs are read from the player properties of every media of the lesson.
func NewCloud(ctx context.Context, session *Session, raw []byte) (*Cloud, error) {
	lessonID, err := jsonparser.GetString(raw, "lesson", "lesson", "id")
	if err != nil {
		return nil, fmt.Errorf("lesson id: %w", err)
	}

	c := &Cloud{
		session:  session,
		lessonID: lessonID,
		date:     normalizeDate(firstString(raw, [][]string{{"lesson", "startTimeUTC"}, {"lesson", "lesson", "timing", "start"}, {"lesson", "lesson", "createdAt"}})),
		title:    strings.TrimSpace(firstString(raw, [][]string{{"lesson", "lesson", "name"}, {"lesson", "lesson", "displayName"}})),
		url:      mo.None[string](),
	}
	if c.title == "" {
		c.title = "Untitled"
	}

	if available, err := jsonparser.GetBoolean(raw, "lesson", "hasAvailableVideo"); err == nil && !available {
		log.Infof("lesson %s has no available video", lessonID)
		return c, nil
	}

	var streams []string
	for _, mediaID := range mediaIDs(raw) {
		uris, err := c.playableMedias(ctx, mediaID)
		if err != nil {
			return nil, err
		}

		if !session.AlternativeFeeds && len(uris) > 1 {
			uris = uris[:1]
		}
		streams = append(streams, uris...)
	}

	streams = lo.Uniq(streams)
	if len(streams) == 0 {
		return c, nil
	}

	c.url = mo.Some(streams[0])
	if len(streams) > 1 {
		for _, s := range streams {
			c.parts = append(c.parts, &Cloud{
				session:  session,
				lessonID: lessonID,
				date:     c.date,
				title:    c.title,
				url:      mo.Some(s),
			})
		}
	}

	return c, nil
}

func firstString(raw []byte, paths [][]string) string {
	for _, path := range paths {
		if s, err := jsonparser.GetString(raw, path...); err == nil && s != "" {
			return s
		}
	}
	return ""
}

func mediaIDs(raw []byte) []string {
	var ids []string
	_, _ = jsonparser.ArrayEach(raw, func(value []byte, _ jsonparser.ValueType, _ int, _ error) {
		if id, err := jsonparser.GetString(value, "id"); err == nil && id != "" {
			ids = append(ids, id)
		}
	}, "lesson", "medias")

	if len(ids) == 0 {
		if id, err := jsonparser.GetString(raw, "lesson", "video", "media", "id"); err == nil && id != "" {
			ids = append(ids, id)
		}
	}

	return ids
}

func (c *Cloud) playerPropertiesURL(mediaID string) string {
	return fmt.Sprintf("%s/api/ui/echoplayer/lessons/%s/medias/%s/player-properties", c.session.Hostname, c.lessonID, mediaID)
}

// playableMedias lists the stream URIs of a media, HLS playlists first.
func (c *Cloud) playableMedias(ctx context.Context, mediaID string) ([]string, error) {
	url := c.playerPropertiesURL(mediaID)
	req, err := network.NewRequest(ctx, url, c.session.Cookies)
	if err != nil {
		return nil, err
	}

	client := c.session.Client
	if client == nil {
		client = network.API()
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("player properties of %s: %w", c.lessonID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnf("player properties of lesson %s media %s: %s", c.lessonID, mediaID, resp.Status)
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("player properties of %s: %w", c.lessonID, err)
	}

	var playlists, files []string
	_, _ = jsonparser.ArrayEach(body, func(value []byte, _ jsonparser.ValueType, _ int, _ error) {
		uri, err := jsonparser.GetString(value, "uri")
		if err != nil || uri == "" {
			return
		}
		if strings.Contains(uri, ".m3u8") {
			playlists = append(playlists, uri)
		} else {
			files = append(files, uri)
		}
	}, "data", "playableAudioVideo", "playableMedias")

	return append(playlists, files...), nil
}

func (c *Cloud) Date() string {
	return c.date
}

func (c *Cloud) Title() string {
	return c.title
}

func (c *Cloud) URL() mo.Option[string] {
	return c.url
}

func (c *Cloud) Parts() []Entry {
	if len(c.parts) < 2 {
		return []Entry{c}
	}
	return lo.Map(c.parts, func(p *Cloud, _ int) Entry { return p })
}

func (c *Cloud) Download(ctx context.Context, dir, filename string) bool {
	u, ok := c.url.Get()
	if !ok {
		return false
	}
	return save(ctx, c.session.Driver, u, dir, filename)
}
