// Package driver defines the browser automation capability consumed by the downloader,
// together with a go-rod backed implementation.
package driver

import (
	"context"
	"errors"
	"net/http"
)

// ErrElementNotFound is returned whenever a page query matches nothing.
var ErrElementNotFound = errors.New("element not found")

// Element is a handle to a node of the currently loaded page.
type Element interface {
	// Clear empties an input field.
	Clear() error

	// Input types text into the element.
	Input(text string) error

	// Submit activates the element, e.g. clicks a login button, and returns once the
	// page it navigates to has loaded. Page reads after Submit see the new page.
	Submit() error

	// PressEnter sends a carriage return keystroke to the element and waits like Submit.
	PressEnter() error
}

// Driver is a single browser session. It is not safe for concurrent use:
// navigations are strictly ordered and page reads refer to the last navigation.
type Driver interface {
	// Navigate loads url and waits for the page load event.
	Navigate(ctx context.Context, url string) error

	// PageSource returns the serialized DOM of the current page.
	PageSource(ctx context.Context) (string, error)

	// FindByAttributeSubstring returns the first element whose attribute contains substr,
	// or ErrElementNotFound.
	FindByAttributeSubstring(ctx context.Context, attribute, substr string) (Element, error)

	// Cookies returns every cookie held by the browser session.
	Cookies(ctx context.Context) ([]*http.Cookie, error)

	// Close shuts the browser down.
	Close() error
}
