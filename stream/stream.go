// Package stream transfers lecture recordings to disk. HLS playlists are
// flattened into a single transport stream; anything else is copied verbatim.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/echo360-dl/echo360/filesystem"
	"github.com/echo360-dl/echo360/log"
	"github.com/echo360-dl/echo360/network"
	"github.com/grafov/m3u8"
	"github.com/schollz/progressbar/v3"
)

// ErrEncrypted is returned for playlists whose segments need a decryption key.
var ErrEncrypted = errors.New("encrypted streams are not supported")

// Options carries the session a transfer runs in.
type Options struct {
	Client  *http.Client
	Cookies []*http.Cookie

	// Progress receives the progress bar; nil silences it.
	Progress io.Writer
}

// IsPlaylist reports whether rawURL points at an HLS playlist.
func IsPlaylist(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.Contains(rawURL, ".m3u8")
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".m3u8")
}

// Target returns the path a recording at rawURL is saved to.
func Target(dir, filename, rawURL string) string {
	ext := ".mp4"
	if IsPlaylist(rawURL) {
		ext = ".ts"
	} else if u, err := url.Parse(rawURL); err == nil {
		if e := path.Ext(u.Path); e != "" && len(e) <= 5 {
			ext = strings.ToLower(e)
		}
	}
	return filepath.Join(dir, filename+ext)
}

// Fetch downloads rawURL into dir. The data is written to a ".part" file first
// and only renamed to its Target once complete.
func Fetch(ctx context.Context, options Options, rawURL, dir, filename string) (string, error) {
	if options.Client == nil {
		options.Client = network.Stream()
	}

	target := Target(dir, filename, rawURL)
	err := filesystem.WriteAtomic(target, func(w io.Writer) error {
		if IsPlaylist(rawURL) {
			return fetchPlaylist(ctx, options, rawURL, filename, w)
		}
		return fetchFile(ctx, options, rawURL, filename, w)
	})
	if err != nil {
		return "", err
	}

	return target, nil
}

func get(ctx context.Context, options Options, rawURL string) (*http.Response, error) {
	req, err := network.NewRequest(ctx, rawURL, options.Cookies)
	if err != nil {
		return nil, err
	}

	resp, err := options.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("get %s: unexpected status %s", rawURL, resp.Status)
	}

	return resp, nil
}

func fetchFile(ctx context.Context, options Options, rawURL, description string, w io.Writer) error {
	resp, err := get(ctx, options, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bar := newBar(options, resp.ContentLength, description, true)
	defer func() { _ = bar.Finish() }()

	if _, err := io.Copy(io.MultiWriter(w, bar), resp.Body); err != nil {
		return fmt.Errorf("save stream: %w", err)
	}
	return nil
}

func fetchPlaylist(ctx context.Context, options Options, rawURL, description string, w io.Writer) error {
	media, base, err := resolveMediaPlaylist(ctx, options, rawURL)
	if err != nil {
		return err
	}

	if media.Key != nil && media.Key.Method != "" && media.Key.Method != "NONE" {
		return ErrEncrypted
	}

	var uris []string
	if media.Map != nil && media.Map.URI != "" {
		uris = append(uris, resolveURL(base, media.Map.URI))
	}
	for _, seg := range media.Segments {
		if seg == nil || seg.URI == "" {
			continue
		}
		if seg.Key != nil && seg.Key.Method != "" && seg.Key.Method != "NONE" {
			return ErrEncrypted
		}
		uris = append(uris, resolveURL(base, seg.URI))
	}

	if len(uris) == 0 {
		return fmt.Errorf("playlist %s has no segments", rawURL)
	}

	log.Debugf("fetching %d segments from %s", len(uris), rawURL)
	bar := newBar(options, int64(len(uris)), description, false)
	defer func() { _ = bar.Finish() }()

	for _, uri := range uris {
		if err := copySegment(ctx, options, uri, w); err != nil {
			return err
		}
		_ = bar.Add(1)
	}

	return nil
}

func copySegment(ctx context.Context, options Options, uri string, w io.Writer) error {
	resp, err := get(ctx, options, uri)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("save segment %s: %w", uri, err)
	}
	return nil
}

// resolveMediaPlaylist follows a master playlist to its highest bandwidth variant.
func resolveMediaPlaylist(ctx context.Context, options Options, rawURL string) (*m3u8.MediaPlaylist, *url.URL, error) {
	for depth := 0; depth < 3; depth++ {
		base, err := url.Parse(rawURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse %s: %w", rawURL, err)
		}

		resp, err := get(ctx, options, rawURL)
		if err != nil {
			return nil, nil, err
		}

		playlist, listType, err := m3u8.DecodeFrom(resp.Body, false)
		_ = resp.Body.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("decode playlist %s: %w", rawURL, err)
		}

		switch listType {
		case m3u8.MEDIA:
			return playlist.(*m3u8.MediaPlaylist), base, nil
		case m3u8.MASTER:
			variant := bestVariant(playlist.(*m3u8.MasterPlaylist))
			if variant == nil {
				return nil, nil, fmt.Errorf("playlist %s has no variants", rawURL)
			}
			rawURL = resolveURL(base, variant.URI)
		default:
			return nil, nil, fmt.Errorf("unknown playlist type at %s", rawURL)
		}
	}

	return nil, nil, fmt.Errorf("playlist %s nests too deeply", rawURL)
}

func bestVariant(master *m3u8.MasterPlaylist) *m3u8.Variant {
	var best *m3u8.Variant
	for _, v := range master.Variants {
		if v == nil || v.URI == "" {
			continue
		}
		if best == nil || v.Bandwidth > best.Bandwidth {
			best = v
		}
	}
	return best
}

// resolveURL resolves a relative reference against a base URL
func resolveURL(base *url.URL, ref string) string {
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(refURL).String()
}

func newBar(options Options, max int64, description string, bytes bool) *progressbar.ProgressBar {
	w := options.Progress
	if w == nil {
		w = io.Discard
	}

	return progressbar.NewOptions64(
		max,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(bytes),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}
