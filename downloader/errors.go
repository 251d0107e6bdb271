package downloader

import (
	"errors"
	"fmt"
)

// ErrCredentialsRejected means the portal showed the login form again after submitting it.
var ErrCredentialsRejected = errors.New("the portal rejected the credentials")

// Reason tells why authentication failed.
type Reason int

const (
	ReasonNoNetwork Reason = iota + 1
	ReasonCoursePageNotFound
	ReasonLoginFailed
)

func (r Reason) String() string {
	switch r {
	case ReasonNoNetwork:
		return "failed to connect to the server, is your internet working?"
	case ReasonCoursePageNotFound:
		return "failed to open the course page, is the course id correct?"
	case ReasonLoginFailed:
		return "failed to log in, are your username and password correct?"
	default:
		return "authentication failed"
	}
}

// AuthenticationError ends a run before anything is downloaded.
type AuthenticationError struct {
	Reason Reason
	URL    string
	Err    error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason.String()
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// DateParseError is returned when a recording carries a date that cannot be understood.
// It is fatal: it usually means the portal changed its format.
type DateParseError struct {
	Date string
	Err  error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("unable to parse date %q: %v", e.Date, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}
