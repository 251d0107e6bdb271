package filesystem

import (
	"errors"
	"io"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAPI(t *testing.T) {
	Convey("The backend can be swapped", t, func() {
		SetOsFs()
		So(API().Name(), ShouldEqual, "OsFs")

		SetMemMapFs()
		So(API().Name(), ShouldEqual, "MemMapFS")
	})
}

func TestWriteAtomic(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		SetMemMapFs()
		path := "/lectures/CS101/Lecture 1.mp4"

		Convey("A successful write creates the file and no partial file", func() {
			err := WriteAtomic(path, func(w io.Writer) error {
				_, err := io.WriteString(w, "video")
				return err
			})
			So(err, ShouldBeNil)

			content, err := API().ReadFile(path)
			So(err, ShouldBeNil)
			So(string(content), ShouldEqual, "video")

			exists, _ := API().Exists(path + PartialSuffix)
			So(exists, ShouldBeFalse)
		})

		Convey("A failed write leaves nothing behind", func() {
			boom := errors.New("connection reset")
			err := WriteAtomic(path, func(w io.Writer) error {
				_, _ = io.WriteString(w, "vid")
				return boom
			})
			So(errors.Is(err, boom), ShouldBeTrue)

			for _, p := range []string{path, path + PartialSuffix} {
				exists, _ := API().Exists(p)
				So(exists, ShouldBeFalse)
			}
		})
	})
}
