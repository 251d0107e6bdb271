package downloader

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// DateRange is an inclusive range of days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// AllTime spans from the Unix epoch to today.
func AllTime() DateRange {
	return DateRange{
		Start: time.Unix(0, 0).UTC(),
		End:   time.Now(),
	}
}

// ParseDateRange parses the bounds of a range; an empty bound is left open.
func ParseDateRange(after, before string) (DateRange, error) {
	r := AllTime()

	if after != "" {
		start, err := cast.ToTimeE(after)
		if err != nil {
			return r, fmt.Errorf("after: %w", &DateParseError{Date: after, Err: err})
		}
		r.Start = start
	}

	if before != "" {
		end, err := cast.ToTimeE(before)
		if err != nil {
			return r, fmt.Errorf("before: %w", &DateParseError{Date: before, Err: err})
		}
		r.End = end
	}

	if day(r.End).Before(day(r.Start)) {
		return r, fmt.Errorf("date range ends (%s) before it starts (%s)", r.End.Format(time.DateOnly), r.Start.Format(time.DateOnly))
	}

	return r, nil
}

// Contains reports whether date falls on a day within the range, bounds included.
func (r DateRange) Contains(date string) (bool, error) {
	t, err := cast.ToTimeE(date)
	if err != nil {
		return false, &DateParseError{Date: date, Err: err}
	}

	d := day(t)
	return !d.Before(day(r.Start)) && !d.After(day(r.End)), nil
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s .. %s", r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
}

// day drops the time of day, keeping the calendar date as written.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
