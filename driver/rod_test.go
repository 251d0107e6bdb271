package driver

import (
	"testing"
	"time"

	"github.com/go-rod/rod/lib/proto"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSubstringXPath(t *testing.T) {
	Convey("substringXPath", t, func() {
		So(substringXPath("id", "username"), ShouldEqual, "//*[contains(@id,'username')]")
		So(substringXPath("id", "login-btn"), ShouldEqual, "//*[contains(@id,'login-btn')]")

		Convey("Should switch quotes when the needle contains one", func() {
			So(substringXPath("title", "it's"), ShouldEqual, `//*[contains(@title,"it's")]`)
		})
	})
}

func TestToHTTPCookies(t *testing.T) {
	Convey("Given DevTools cookies", t, func() {
		expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		cookies := []*proto.NetworkCookie{
			{Name: "PLAY_SESSION", Value: "abc", Domain: ".echo360.org.au", Path: "/", Secure: true, HTTPOnly: true, Expires: proto.TimeSinceEpoch(expires.Unix())},
			{Name: "anon", Value: "1", Domain: "view.streaming.sydney.edu.au"},
		}

		Convey("They convert to net/http cookies", func() {
			converted := toHTTPCookies(cookies)
			So(converted, ShouldHaveLength, 2)
			So(converted[0].Name, ShouldEqual, "PLAY_SESSION")
			So(converted[0].Secure, ShouldBeTrue)
			So(converted[0].HttpOnly, ShouldBeTrue)
			So(converted[0].Expires.Unix(), ShouldEqual, expires.Unix())
			So(converted[1].Expires.IsZero(), ShouldBeTrue)
		})
	})
}
