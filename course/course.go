// Package course represents one course section of the lecture portal and
// the list of recordings it publishes.
package course

import (
	"context"
	"errors"
	"net/http"

	"github.com/echo360-dl/echo360/constant"
	"github.com/echo360-dl/echo360/driver"
	"github.com/echo360-dl/echo360/lecture"
)

var (
	// ErrMetadataUnavailable is returned when the course metadata document cannot be retrieved.
	ErrMetadataUnavailable = errors.New("course metadata unavailable")

	// ErrVideoListParse is returned when the metadata does not contain a recognizable list of recordings.
	ErrVideoListParse = errors.New("unable to parse course videos")

	// ErrRebindUnsupported is returned by Rebind on portals that do not rename sections.
	ErrRebindUnsupported = errors.New("course identifier cannot be rebound")

	// ErrAlreadyRebound is returned by a second Rebind.
	ErrAlreadyRebound = errors.New("course identifier was already rebound")
)

// Variant selects the portal generation a course lives on.
type Variant int

const (
	VariantClassic Variant = iota
	VariantCloud
)

func (v Variant) String() string {
	switch v {
	case VariantCloud:
		return "cloud"
	default:
		return "classic"
	}
}

// DefaultHostname is the portal used when none is configured.
func (v Variant) DefaultHostname() string {
	if v == VariantCloud {
		return constant.CloudHostname
	}
	return constant.ClassicHostname
}

// Course is a section on the portal. Metadata and Videos are fetched through
// the browser session on first use and cached until Invalidate.
type Course interface {
	// URL is the landing page of the course; visiting it triggers the login form when needed.
	URL() string

	// VideoListURL is the document listing the recordings.
	VideoListURL() string

	Metadata(ctx context.Context) ([]byte, error)
	Videos(ctx context.Context) ([]lecture.Entry, error)

	ID(ctx context.Context) (string, error)
	Name(ctx context.Context) (string, error)
	DisplayName(ctx context.Context) (string, error)

	Invalidate()

	// Rebind replaces the section identifier with the one the portal redirected to after login.
	Rebind(uuid string) error

	Variant() Variant
}

// Options tune how recordings are resolved.
type Options struct {
	AlternativeFeeds bool
}

// New returns a course of the given variant. An empty hostname selects the variant's default portal.
func New(variant Variant, uuid, hostname string, drv driver.Driver, client *http.Client, options Options) Course {
	if hostname == "" {
		hostname = variant.DefaultHostname()
	}

	b := base{
		uuid:     uuid,
		hostname: hostname,
		driver:   drv,
		client:   client,
		options:  options,
	}

	if variant == VariantCloud {
		return &Cloud{base: b}
	}
	return &Classic{base: b}
}

// base holds the state shared by both variants.
type base struct {
	uuid     string
	hostname string
	driver   driver.Driver
	client   *http.Client
	options  Options

	metadata []byte
	videos   []lecture.Entry
	loaded   bool
}

func (b *base) Invalidate() {
	b.metadata = nil
	b.videos = nil
	b.loaded = false
}

func (b *base) session(cookies []*http.Cookie) *lecture.Session {
	return &lecture.Session{
		Driver:           b.driver,
		Client:           b.client,
		Hostname:         b.hostname,
		Cookies:          cookies,
		AlternativeFeeds: b.options.AlternativeFeeds,
	}
}
