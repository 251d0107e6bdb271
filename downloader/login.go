package downloader

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/echo360-dl/echo360/auth"
	"github.com/echo360-dl/echo360/course"
	"github.com/echo360-dl/echo360/driver"
	"github.com/echo360-dl/echo360/log"
	"github.com/echo360-dl/echo360/util"
	"github.com/samber/mo"
)

// State of the login handshake.
type State int

const (
	StateStart State = iota
	StateAlreadyAuthenticated
	StateNetworkError
	StateCoursePageNotFound
	StateCredentialsRequired
	StateLoginSubmitted
	StateLoginFailed
)

func (s State) String() string {
	return [...]string{
		"start",
		"already authenticated",
		"network error",
		"course page not found",
		"credentials required",
		"login submitted",
		"login failed",
	}[s]
}

// Page fingerprints that tell a failed landing page apart from one that needs no login.
const (
	emptyPageFingerprint    = "<html><head></head><body></body></html>"
	pageNotFoundFingerprint = "check your URL"
)

// Element id substrings of the login form.
const (
	usernameField = "username"
	passwordField = "password"
	loginButton   = "login-btn"
)

var sectionPattern = regexp.MustCompile(`/ess/client/section/(?P<uuid>[0-9a-zA-Z]{8}-[0-9a-zA-Z]{4}-[0-9a-zA-Z]{4}-[0-9a-zA-Z]{4}-[0-9a-zA-Z]{12})`)

// Result of an authentication.
type Result struct {
	State State

	// RecoveredUUID is the canonical section id found in the page after logging in to a classic
	// portal through an alias. The caller applies it with course.Rebind.
	RecoveredUUID mo.Option[string]
}

// Authenticator logs the browser session into the portal of a course.
type Authenticator struct {
	Course   course.Course
	Driver   driver.Driver
	Prompter Prompter

	Username string
	Password string

	// UseKeyring looks the password up in the system keyring before prompting.
	UseKeyring bool

	// PollAttempts and PollInterval bound the wait for a form field to render.
	PollAttempts int
	PollInterval time.Duration
}

// NewAuthenticator returns an authenticator polling form fields 10 times, 100ms apart.
func NewAuthenticator(c course.Course, drv driver.Driver, prompter Prompter) *Authenticator {
	return &Authenticator{
		Course:       c,
		Driver:       drv,
		Prompter:     prompter,
		PollAttempts: 10,
		PollInterval: 100 * time.Millisecond,
	}
}

// Authenticate opens the course page and logs in when the portal asks for it.
// Terminal failures are returned as *AuthenticationError; the login is never retried.
func (a *Authenticator) Authenticate(ctx context.Context) (Result, error) {
	result := Result{State: StateStart, RecoveredUUID: mo.None[string]()}
	url := a.Course.URL()

	if err := a.Driver.Navigate(ctx, url); err != nil {
		return result, a.fail(&result, StateNetworkError, ReasonNoNetwork, err)
	}

	if _, err := a.Driver.FindByAttributeSubstring(ctx, "id", usernameField); err != nil {
		if !errors.Is(err, driver.ErrElementNotFound) {
			return result, a.fail(&result, StateNetworkError, ReasonNoNetwork, err)
		}

		source, err := a.Driver.PageSource(ctx)
		if err != nil {
			return result, a.fail(&result, StateNetworkError, ReasonNoNetwork, err)
		}

		switch {
		case strings.Contains(source, emptyPageFingerprint):
			log.Dump("landing page", url, source)
			return result, a.fail(&result, StateNetworkError, ReasonNoNetwork, nil)
		case strings.Contains(source, pageNotFoundFingerprint):
			log.Dump("landing page", url, source)
			return result, a.fail(&result, StateCoursePageNotFound, ReasonCoursePageNotFound, nil)
		}

		log.Info("no login form, the course is accessible")
		log.Dump("landing page", url, source)
		result.State = StateAlreadyAuthenticated
	} else {
		result.State = StateCredentialsRequired
		if err := a.login(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return result, err
			}
			return result, a.fail(&result, StateLoginFailed, ReasonLoginFailed, err)
		}

		result.State = StateLoginSubmitted
		if err := a.verify(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return result, err
			}
			return result, a.fail(&result, StateLoginFailed, ReasonLoginFailed, err)
		}
		result.State = StateAlreadyAuthenticated
	}

	if a.Course.Variant() == course.VariantClassic {
		result.RecoveredUUID = a.recoverUUID(ctx)
	}

	return result, nil
}

func (a *Authenticator) fail(result *Result, state State, reason Reason, err error) error {
	result.State = state
	log.Errorf("authentication at %s: %s (%v)", a.Course.URL(), state, err)
	return &AuthenticationError{Reason: reason, URL: a.Course.URL(), Err: err}
}

// credentials returns the configured username and password, completing them from the
// keyring and then by prompting.
func (a *Authenticator) credentials() (username, password string, err error) {
	username, password = a.Username, a.Password

	if username == "" {
		if username, err = a.Prompter.PromptText("Username"); err != nil {
			return "", "", err
		}
	}

	if password == "" && a.UseKeyring {
		switch stored, err := auth.GetPassword(username); {
		case err == nil:
			log.Infof("using the stored password of %s", username)
			password = stored
		case !errors.Is(err, auth.ErrNotFound):
			log.Warnf("keyring: %v", err)
		}
	}

	if password == "" {
		if password, err = a.Prompter.PromptSecret(fmt.Sprintf("Password for %s", username)); err != nil {
			return "", "", err
		}
	}

	return username, password, nil
}

func (a *Authenticator) login(ctx context.Context) error {
	log.Info("logging in with credentials")

	username, password, err := a.credentials()
	if err != nil {
		return err
	}

	userField, err := a.poll(ctx, usernameField)
	if err != nil {
		return err
	}
	if err := fill(userField, username); err != nil {
		return fmt.Errorf("username: %w", err)
	}

	passField, err := a.poll(ctx, passwordField)
	if err != nil {
		return err
	}
	if err := fill(passField, password); err != nil {
		return fmt.Errorf("password: %w", err)
	}

	button, err := a.poll(ctx, loginButton)
	switch {
	case err == nil:
		if err := button.Submit(); err != nil {
			return fmt.Errorf("submit: %w", err)
		}
	case errors.Is(err, driver.ErrElementNotFound):
		if err := passField.PressEnter(); err != nil {
			return fmt.Errorf("submit: %w", err)
		}
	default:
		return err
	}

	return nil
}

// verify checks the page the submitted form led to. The portal answers a rejected
// login with the form again.
func (a *Authenticator) verify(ctx context.Context) error {
	_, err := a.Driver.FindByAttributeSubstring(ctx, "id", usernameField)
	switch {
	case err == nil:
		if source, err := a.Driver.PageSource(ctx); err == nil {
			log.Dump("rejected login", a.Course.URL(), source)
		}
		return ErrCredentialsRejected
	case errors.Is(err, driver.ErrElementNotFound):
		log.Info("logged in")
		return nil
	default:
		return err
	}
}

func fill(element driver.Element, text string) error {
	if err := element.Clear(); err != nil {
		return err
	}
	return element.Input(text)
}

// poll looks an element up until it renders or the attempts run out.
func (a *Authenticator) poll(ctx context.Context, idSubstring string) (driver.Element, error) {
	var lastErr error
	for attempt := 0; attempt < a.PollAttempts; attempt++ {
		element, err := a.Driver.FindByAttributeSubstring(ctx, "id", idSubstring)
		if err == nil {
			return element, nil
		}
		if !errors.Is(err, driver.ErrElementNotFound) {
			return nil, err
		}
		lastErr = err
		if attempt == a.PollAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.PollInterval):
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: id containing %q", driver.ErrElementNotFound, idSubstring)
	}
	return nil, lastErr
}

func (a *Authenticator) recoverUUID(ctx context.Context) mo.Option[string] {
	source, err := a.Driver.PageSource(ctx)
	if err != nil {
		log.Warnf("reading page for the section id: %v", err)
		return mo.None[string]()
	}

	uuid, ok := util.ReGroups(sectionPattern, source)["uuid"]
	if !ok {
		return mo.None[string]()
	}

	log.Infof("found section id %s in page", uuid)
	return mo.Some(uuid)
}
