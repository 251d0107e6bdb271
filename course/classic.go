package course

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/buger/jsonparser"
	"github.com/echo360-dl/echo360/lecture"
	"github.com/echo360-dl/echo360/log"
)

// Classic is a section of the ESS portal. Its metadata is a JSON document the
// browser renders inside a <pre> element.
type Classic struct {
	base
	rebound bool
}

func (c *Classic) Variant() Variant {
	return VariantClassic
}

func (c *Classic) URL() string {
	return fmt.Sprintf("%s/ess/portal/section/%s", c.hostname, c.uuid)
}

func (c *Classic) VideoListURL() string {
	return fmt.Sprintf("%s/ess/client/api/sections/%s/section-data.json?pageSize=100", c.hostname, c.uuid)
}

func (c *Classic) Rebind(uuid string) error {
	if c.rebound {
		return ErrAlreadyRebound
	}

	log.Infof("course %s rebound to %s", c.uuid, uuid)
	c.uuid = uuid
	c.rebound = true
	c.Invalidate()
	return nil
}

func (c *Classic) Metadata(ctx context.Context) ([]byte, error) {
	if c.metadata != nil {
		return c.metadata, nil
	}

	url := c.VideoListURL()
	if err := c.driver.Navigate(ctx, url); err != nil {
		return nil, err
	}

	source, err := c.driver.PageSource(ctx)
	if err != nil {
		return nil, err
	}
	log.Dump("course page", url, source)

	document, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}

	pre := document.Find("pre").First()
	if pre.Length() == 0 {
		return nil, fmt.Errorf("%w: no document at %s", ErrMetadataUnavailable, url)
	}

	c.metadata = []byte(pre.Text())
	return c.metadata, nil
}

func (c *Classic) Videos(ctx context.Context) ([]lecture.Entry, error) {
	if c.loaded {
		return c.videos, nil
	}

	metadata, err := c.Metadata(ctx)
	if err != nil {
		return nil, err
	}

	contents, _, _, err := jsonparser.Get(metadata, "section", "presentations", "pageContents")
	if err != nil {
		return nil, fmt.Errorf("%w: section.presentations.pageContents: %v", ErrVideoListParse, err)
	}

	session := c.session(nil)
	var (
		videos  []lecture.Entry
		failure error
	)
	_, err = jsonparser.ArrayEach(contents, func(value []byte, _ jsonparser.ValueType, _ int, _ error) {
		if failure != nil {
			return
		}

		entry, err := lecture.NewClassic(ctx, session, value)
		if err != nil {
			failure = entryError(err)
			return
		}
		videos = append(videos, entry)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVideoListParse, err)
	}
	if failure != nil {
		return nil, failure
	}

	c.videos = videos
	c.loaded = true
	return videos, nil
}

// identity visits the landing page first; the portal hands out its anonymous session cookie there.
func (c *Classic) identity(ctx context.Context) ([]byte, error) {
	if c.metadata == nil {
		if err := c.driver.Navigate(ctx, c.URL()); err != nil {
			return nil, err
		}
	}
	return c.Metadata(ctx)
}

func (c *Classic) ID(ctx context.Context) (string, error) {
	metadata, err := c.identity(ctx)
	if err != nil {
		return "", err
	}

	id, err := jsonparser.GetString(metadata, "section", "course", "identifier")
	if err != nil {
		return "", fmt.Errorf("%w: section.course.identifier: %v", ErrVideoListParse, err)
	}
	return id, nil
}

func (c *Classic) Name(ctx context.Context) (string, error) {
	metadata, err := c.identity(ctx)
	if err != nil {
		return "", err
	}

	name, err := jsonparser.GetString(metadata, "section", "course", "name")
	if err != nil {
		return "", fmt.Errorf("%w: section.course.name: %v", ErrVideoListParse, err)
	}
	return name, nil
}

func (c *Classic) DisplayName(ctx context.Context) (string, error) {
	id, err := c.ID(ctx)
	if err != nil {
		return "", err
	}

	name, err := c.Name(ctx)
	if err != nil {
		return "", err
	}

	return id + " - " + name, nil
}

// entryError classifies a failure to build one entry: malformed entries are parse errors,
// anything else (driver, network, cancellation) is returned as is.
func entryError(err error) error {
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return fmt.Errorf("%w: %w", ErrVideoListParse, err)
	}
	return err
}
