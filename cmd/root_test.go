package cmd

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseTarget(t *testing.T) {
	Convey("Given a classic course URL", t, func() {
		target, err := parseTarget("https://view.streaming.sydney.edu.au:8443/ess/portal/section/ed9b26eb-a785-4f4e-bd51-69f3faab388a")
		So(err, ShouldBeNil)
		So(target.uuid, ShouldEqual, "ed9b26eb-a785-4f4e-bd51-69f3faab388a")
		So(target.hostname, ShouldEqual, "https://view.streaming.sydney.edu.au:8443")
		So(target.cloud.MustGet(), ShouldBeFalse)
	})

	Convey("Given a cloud course URL", t, func() {
		target, err := parseTarget("https://echo360.org.au/section/8d1f6f0c-5a3b-4ad0-9b1a-0c2b7f2d9e11/home")
		So(err, ShouldBeNil)
		So(target.uuid, ShouldEqual, "8d1f6f0c-5a3b-4ad0-9b1a-0c2b7f2d9e11")
		So(target.hostname, ShouldEqual, "https://echo360.org.au")
		So(target.cloud.MustGet(), ShouldBeTrue)
	})

	Convey("Given a bare course id", t, func() {
		target, err := parseTarget(" ed9b26eb-a785-4f4e-bd51-69f3faab388a ")
		So(err, ShouldBeNil)
		So(target.uuid, ShouldEqual, "ed9b26eb-a785-4f4e-bd51-69f3faab388a")
		So(target.hostname, ShouldBeEmpty)
		So(target.cloud.IsPresent(), ShouldBeFalse)
	})

	Convey("Given a bare course id in upper case", t, func() {
		target, err := parseTarget("ED9B26EB-A785-4F4E-BD51-69F3FAAB388A")
		So(err, ShouldBeNil)
		So(target.uuid, ShouldEqual, "ed9b26eb-a785-4f4e-bd51-69f3faab388a")
	})

	Convey("Given a mistyped course id", t, func() {
		_, err := parseTarget("ed9b26eb-a785-4f4e-bd51-69f3faab388")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "course id")

		_, err = parseTarget("section-ed9b26eb")
		So(err, ShouldNotBeNil)
	})

	Convey("Given a URL without a course id", t, func() {
		_, err := parseTarget("https://echo360.org.au/courses")
		So(err, ShouldNotBeNil)
	})

	Convey("Given nothing", t, func() {
		_, err := parseTarget("  ")
		So(err, ShouldNotBeNil)
	})
}
