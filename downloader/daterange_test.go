package downloader

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDateRange(t *testing.T) {
	Convey("Given the range 2024-03-01 .. 2024-03-10", t, func() {
		r, err := ParseDateRange("2024-03-01", "2024-03-10")
		So(err, ShouldBeNil)

		Convey("Both bounds are included", func() {
			for _, date := range []string{"2024-03-01", "2024-03-05", "2024-03-10", "2024-03-10T23:59:00Z"} {
				ok, err := r.Contains(date)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
			}
		})

		Convey("Days outside are excluded", func() {
			for _, date := range []string{"2024-02-29", "2024-03-11", "2023-03-05"} {
				ok, err := r.Contains(date)
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			}
		})

		Convey("An unparsable date is an error", func() {
			_, err := r.Contains("next tuesday-ish")
			var dateErr *DateParseError
			So(errors.As(err, &dateErr), ShouldBeTrue)
			So(dateErr.Date, ShouldEqual, "next tuesday-ish")
		})

		So(r.String(), ShouldEqual, "2024-03-01 .. 2024-03-10")
	})

	Convey("Given open bounds", t, func() {
		r, err := ParseDateRange("", "")
		So(err, ShouldBeNil)
		So(r.Start.Year(), ShouldEqual, 1970)
		So(r.End.Format(time.DateOnly), ShouldEqual, time.Now().Format(time.DateOnly))
	})

	Convey("Given bounds in the wrong order", t, func() {
		_, err := ParseDateRange("2024-03-10", "2024-03-01")
		So(err, ShouldNotBeNil)
	})

	Convey("Given an unparsable bound", t, func() {
		_, err := ParseDateRange("yesterday", "")
		var dateErr *DateParseError
		So(errors.As(err, &dateErr), ShouldBeTrue)
	})
}
