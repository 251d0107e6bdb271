// Package drivertest provides an in-memory driver.Driver for tests.
package drivertest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/echo360-dl/echo360/driver"
)

// Page is a canned page. Elements are keyed by the attribute substring they are looked up with.
type Page struct {
	Source   string
	Elements map[string]*Element
}

// Element records what was done to it.
type Element struct {
	Value     string
	Submitted bool
	Entered   bool

	// HiddenFor makes the element miss that many lookups before it appears,
	// imitating asynchronous rendering.
	HiddenFor int

	driver *Driver
}

// Driver serves Pages by URL. Navigating to an unknown URL yields an empty page.
type Driver struct {
	Pages   map[string]*Page
	Current string
	Visited []string
	Lookups map[string]int
	Jar     []*http.Cookie
	Closed  bool

	// NavigateErr, when set, fails every navigation.
	NavigateErr error

	// OnSubmit runs when an element is submitted or receives Enter, before the call
	// returns, the way a real driver waits for the navigation. Tests swap pages in it.
	OnSubmit func(d *Driver)
}

// New returns a driver serving pages.
func New(pages map[string]*Page) *Driver {
	if pages == nil {
		pages = make(map[string]*Page)
	}
	return &Driver{Pages: pages, Lookups: make(map[string]int)}
}

func (d *Driver) page() *Page {
	if p, ok := d.Pages[d.Current]; ok {
		return p
	}
	return &Page{}
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.NavigateErr != nil {
		return d.NavigateErr
	}
	d.Current = url
	d.Visited = append(d.Visited, url)
	return nil
}

func (d *Driver) PageSource(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.page().Source, nil
}

func (d *Driver) FindByAttributeSubstring(ctx context.Context, attribute, substr string) (driver.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.Lookups[substr]++

	el, ok := d.page().Elements[substr]
	if !ok || el == nil {
		return nil, fmt.Errorf("%w: %s containing %q", driver.ErrElementNotFound, attribute, substr)
	}
	if el.HiddenFor > 0 {
		el.HiddenFor--
		return nil, fmt.Errorf("%w: %s containing %q", driver.ErrElementNotFound, attribute, substr)
	}

	el.driver = d
	return el, nil
}

func (d *Driver) Cookies(context.Context) ([]*http.Cookie, error) {
	return d.Jar, nil
}

func (d *Driver) Close() error {
	d.Closed = true
	return nil
}

func (e *Element) Clear() error {
	e.Value = ""
	return nil
}

func (e *Element) Input(text string) error {
	e.Value += text
	return nil
}

func (e *Element) Submit() error {
	e.Submitted = true
	e.fire()
	return nil
}

func (e *Element) PressEnter() error {
	e.Entered = true
	e.fire()
	return nil
}

func (e *Element) fire() {
	if e.driver != nil && e.driver.OnSubmit != nil {
		e.driver.OnSubmit(e.driver)
	}
}
