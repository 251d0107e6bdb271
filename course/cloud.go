package course

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/buger/jsonparser"
	"github.com/echo360-dl/echo360/constant"
	"github.com/echo360-dl/echo360/lecture"
	"github.com/echo360-dl/echo360/log"
	"github.com/echo360-dl/echo360/network"
)

// Cloud is a section of the cloud portal. The syllabus is loaded in the browser to
// establish the session and then requested again over HTTP with the browser's cookies.
type Cloud struct {
	base
	cookies []*http.Cookie
}

func (c *Cloud) Variant() Variant {
	return VariantCloud
}

func (c *Cloud) URL() string {
	return fmt.Sprintf("%s/section/%s/home", c.hostname, c.uuid)
}

func (c *Cloud) VideoListURL() string {
	return fmt.Sprintf("%s/section/%s/syllabus", c.hostname, c.uuid)
}

func (c *Cloud) Rebind(string) error {
	return ErrRebindUnsupported
}

func (c *Cloud) Metadata(ctx context.Context) ([]byte, error) {
	if c.metadata != nil {
		return c.metadata, nil
	}

	url := c.VideoListURL()
	if err := c.driver.Navigate(ctx, url); err != nil {
		return nil, err
	}

	if source, err := c.driver.PageSource(ctx); err == nil {
		log.Dump("course page", url, source)
	}

	cookies, err := c.driver.Cookies(ctx)
	if err != nil {
		return nil, err
	}
	c.cookies = cookies

	req, err := network.NewRequest(ctx, url, cookies)
	if err != nil {
		return nil, err
	}

	client := c.client
	if client == nil {
		client = network.API()
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrMetadataUnavailable, url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}

	c.metadata = body
	return body, nil
}

// lessons flattens the syllabus: an element of "data" is either a lesson or a group
// carrying its lessons in a "lessons" array.
func lessons(metadata []byte) ([][]byte, error) {
	data, _, _, err := jsonparser.Get(metadata, "data")
	if err != nil {
		return nil, fmt.Errorf("%w: data: %v", ErrVideoListParse, err)
	}

	var result [][]byte
	_, err = jsonparser.ArrayEach(data, func(value []byte, _ jsonparser.ValueType, _ int, _ error) {
		group, kind, _, err := jsonparser.Get(value, "lessons")
		if err == nil && kind == jsonparser.Array {
			_, _ = jsonparser.ArrayEach(group, func(lesson []byte, _ jsonparser.ValueType, _ int, _ error) {
				result = append(result, lesson)
			})
			return
		}
		result = append(result, value)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVideoListParse, err)
	}

	return result, nil
}

func (c *Cloud) Videos(ctx context.Context) ([]lecture.Entry, error) {
	if c.loaded {
		return c.videos, nil
	}

	metadata, err := c.Metadata(ctx)
	if err != nil {
		return nil, err
	}

	items, err := lessons(metadata)
	if err != nil {
		return nil, err
	}

	session := c.session(c.cookies)
	videos := make([]lecture.Entry, 0, len(items))
	for _, item := range items {
		entry, err := lecture.NewCloud(ctx, session, item)
		if err != nil {
			return nil, entryError(err)
		}
		videos = append(videos, entry)
	}

	c.videos = videos
	c.loaded = true
	return videos, nil
}

// ID is always empty: course codes vary too much between institutions to be extracted reliably.
func (c *Cloud) ID(context.Context) (string, error) {
	return "", nil
}

// Name is the first course name published by any lesson.
func (c *Cloud) Name(ctx context.Context) (string, error) {
	metadata, err := c.Metadata(ctx)
	if err != nil {
		return "", err
	}

	items, err := lessons(metadata)
	if err != nil {
		return constant.UntitledCourse, nil
	}

	for _, item := range items {
		if name, err := jsonparser.GetString(item, "lesson", "video", "published", "courseName"); err == nil && name != "" {
			return name, nil
		}
	}

	return constant.UntitledCourse, nil
}

func (c *Cloud) DisplayName(ctx context.Context) (string, error) {
	return c.Name(ctx)
}
