package driver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/echo360-dl/echo360/log"
	"github.com/echo360-dl/echo360/where"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/hashicorp/go-multierror"
)

// SubmitTimeout bounds the wait for the page a submitted form leads to.
var SubmitTimeout = 15 * time.Second

// Options configures the browser launched by NewRod.
type Options struct {
	// Bin is the browser executable. Empty means look one up on the system,
	// falling back to downloading a Chromium build into where.Browser().
	Bin string

	// Headless hides the browser window. Disabled when the user logs in by hand.
	Headless bool

	UserAgent string
}

// Rod drives a Chromium instance over the DevTools protocol.
type Rod struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// NewRod launches a browser and opens the single page every navigation happens in.
func NewRod(ctx context.Context, options Options) (*Rod, error) {
	bin, err := resolveBin(options.Bin)
	if err != nil {
		return nil, err
	}

	l := launcher.New().
		Context(ctx).
		Bin(bin).
		Headless(options.Headless).
		Set("window-size", "1920,1080")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("open page: %w", err)
	}

	if options.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: options.UserAgent}); err != nil {
			_ = browser.Close()
			l.Kill()
			return nil, fmt.Errorf("set user agent: %w", err)
		}
	}

	return &Rod{launcher: l, browser: browser, page: page}, nil
}

// resolveBin prefers an explicit binary, then a system install, then a downloaded Chromium.
func resolveBin(bin string) (string, error) {
	if bin != "" {
		return bin, nil
	}

	if path, ok := launcher.LookPath(); ok {
		return path, nil
	}

	log.Info("no browser found on the system, downloading chromium")
	b := launcher.NewBrowser()
	b.RootDir = where.Browser()
	path, err := b.Get()
	if err != nil {
		return "", fmt.Errorf("download browser: %w", err)
	}
	return path, nil
}

func (r *Rod) Navigate(ctx context.Context, url string) error {
	page := r.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for %s: %w", url, err)
	}
	return nil
}

func (r *Rod) PageSource(ctx context.Context) (string, error) {
	return r.page.Context(ctx).HTML()
}

func (r *Rod) FindByAttributeSubstring(ctx context.Context, attribute, substr string) (Element, error) {
	el, err := r.page.
		Context(ctx).
		Sleeper(rod.NotFoundSleeper).
		ElementX(substringXPath(attribute, substr))
	if err != nil {
		var notFound *rod.ElementNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s containing %q", ErrElementNotFound, attribute, substr)
		}
		return nil, err
	}

	return &rodElement{el: el}, nil
}

func (r *Rod) Cookies(ctx context.Context) ([]*http.Cookie, error) {
	cookies, err := r.browser.Context(ctx).GetCookies()
	if err != nil {
		return nil, fmt.Errorf("read cookies: %w", err)
	}
	return toHTTPCookies(cookies), nil
}

// Close shuts the page and the browser down and removes the browser profile.
func (r *Rod) Close() error {
	var result error
	if err := r.page.Close(); err != nil {
		result = multierror.Append(result, multierror.Prefix(err, "page:"))
	}
	if err := r.browser.Close(); err != nil {
		result = multierror.Append(result, multierror.Prefix(err, "browser:"))
	}
	r.launcher.Cleanup()
	return result
}

// substringXPath matches any element whose attribute contains substr.
func substringXPath(attribute, substr string) string {
	quote := "'"
	if strings.Contains(substr, quote) {
		quote = `"`
	}
	return fmt.Sprintf("//*[contains(@%s,%s%s%s)]", attribute, quote, substr, quote)
}

func toHTTPCookies(cookies []*proto.NetworkCookie) []*http.Cookie {
	converted := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		cookie := &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		}
		if c.Expires > 0 {
			cookie.Expires = c.Expires.Time()
		}
		converted = append(converted, cookie)
	}
	return converted
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Clear() error {
	if err := e.el.SelectAllText(); err != nil {
		return err
	}
	return e.el.Type(input.Backspace)
}

func (e *rodElement) Input(text string) error {
	return e.el.Input(text)
}

func (e *rodElement) Submit() error {
	return e.navigating(func() error {
		return e.el.Click(proto.InputMouseButtonLeft, 1)
	})
}

func (e *rodElement) PressEnter() error {
	// give the page's own key handlers a moment after the password was typed
	time.Sleep(50 * time.Millisecond)
	return e.navigating(func() error {
		return e.el.Type(input.Enter)
	})
}

// navigating runs action and waits for the page load it triggers. The listener is
// armed before the action so a fast navigation is not missed. A form that does not
// navigate costs SubmitTimeout.
func (e *rodElement) navigating(action func() error) error {
	page := e.el.Page().Timeout(SubmitTimeout)
	defer page.CancelTimeout()

	wait := page.WaitNavigation(proto.PageLifecycleEventNameLoad)
	if err := action(); err != nil {
		return err
	}
	wait()
	return nil
}
