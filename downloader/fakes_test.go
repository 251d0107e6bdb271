package downloader

import (
	"context"
	"errors"

	"github.com/echo360-dl/echo360/course"
	"github.com/echo360-dl/echo360/lecture"
	"github.com/samber/mo"
)

type fakeVideo struct {
	date  string
	title string
	url   mo.Option[string]
	parts []*fakeVideo

	fail     bool
	block    bool
	attempts *[]string
}

func video(date, title string) *fakeVideo {
	return &fakeVideo{date: date, title: title, url: mo.Some("https://stream.example/" + title + ".m3u8")}
}

func (v *fakeVideo) Date() string           { return v.date }
func (v *fakeVideo) Title() string          { return v.title }
func (v *fakeVideo) URL() mo.Option[string] { return v.url }

func (v *fakeVideo) Parts() []lecture.Entry {
	if len(v.parts) == 0 {
		return []lecture.Entry{v}
	}
	parts := make([]lecture.Entry, len(v.parts))
	for i, p := range v.parts {
		parts[i] = p
	}
	return parts
}

func (v *fakeVideo) Download(ctx context.Context, _, filename string) bool {
	if v.attempts != nil {
		*v.attempts = append(*v.attempts, filename)
	}
	if v.block {
		<-ctx.Done()
		return false
	}
	return !v.fail
}

type fakeCourse struct {
	url     string
	id      string
	name    string
	variant course.Variant
	videos  []lecture.Entry
	err     error
	rebound []string
}

func (c *fakeCourse) URL() string          { return c.url }
func (c *fakeCourse) VideoListURL() string { return c.url + "/videos" }
func (c *fakeCourse) Invalidate()          {}
func (c *fakeCourse) Variant() course.Variant {
	return c.variant
}

func (c *fakeCourse) Metadata(context.Context) ([]byte, error) {
	return []byte("{}"), c.err
}

func (c *fakeCourse) Videos(context.Context) ([]lecture.Entry, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.videos, nil
}

func (c *fakeCourse) ID(context.Context) (string, error)   { return c.id, nil }
func (c *fakeCourse) Name(context.Context) (string, error) { return c.name, nil }

func (c *fakeCourse) DisplayName(context.Context) (string, error) {
	if c.id == "" {
		return c.name, nil
	}
	return c.id + " - " + c.name, nil
}

func (c *fakeCourse) Rebind(uuid string) error {
	if c.variant == course.VariantCloud {
		return course.ErrRebindUnsupported
	}
	c.rebound = append(c.rebound, uuid)
	return nil
}

type fakePrompter struct {
	texts   []string
	secrets []string
	pick    func(options []string) []string

	asked []string
}

var errNoAnswer = errors.New("no answer")

func (p *fakePrompter) PromptText(message string) (string, error) {
	p.asked = append(p.asked, message)
	if len(p.texts) == 0 {
		return "", errNoAnswer
	}
	answer := p.texts[0]
	p.texts = p.texts[1:]
	return answer, nil
}

func (p *fakePrompter) PromptSecret(message string) (string, error) {
	p.asked = append(p.asked, message)
	if len(p.secrets) == 0 {
		return "", errNoAnswer
	}
	answer := p.secrets[0]
	p.secrets = p.secrets[1:]
	return answer, nil
}

func (p *fakePrompter) PromptMultiSelect(message string, options []string) ([]string, error) {
	p.asked = append(p.asked, message)
	if p.pick == nil {
		return options, nil
	}
	return p.pick(options), nil
}
