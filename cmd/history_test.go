package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/echo360-dl/echo360/filesystem"
	"github.com/echo360-dl/echo360/history"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPrintCourse(t *testing.T) {
	Convey("Given two recorded lectures, one still on disk", t, func() {
		at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		kept := &history.Record{Course: "CS101", Filename: "Lecture 1", Directory: "/lectures/CS101", URL: "https://stream.example/1.mp4", DownloadedAt: at}
		gone := &history.Record{Course: "CS101", Filename: "Lecture 2", Directory: "/lectures/CS101", URL: "https://stream.example/2.m3u8", DownloadedAt: at}
		So(filesystem.API().WriteFile("/lectures/CS101/Lecture 1.mp4", []byte("video"), 0o644), ShouldBeNil)

		So(onDisk(kept), ShouldBeTrue)
		So(onDisk(gone), ShouldBeFalse)

		Convey("Both are listed under the course", func() {
			var out bytes.Buffer
			printCourse(&out, "CS101", []*history.Record{kept, gone})
			So(out.String(), ShouldContainSubstring, "CS101")
			So(out.String(), ShouldContainSubstring, "2 lectures")
			So(out.String(), ShouldContainSubstring, "Lecture 1 (2024-03-01 10:00:00)")
			So(out.String(), ShouldContainSubstring, "Lecture 2")
		})

		Convey("A course without records prints nothing", func() {
			var out bytes.Buffer
			printCourse(&out, "CS101", nil)
			So(out.String(), ShouldBeEmpty)
		})
	})
}
