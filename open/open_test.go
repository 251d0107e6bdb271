package open

import (
	"path/filepath"
	"testing"

	"github.com/echo360-dl/echo360/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given a course directory", t, func() {
		dir := "/home/alice/Lectures/CS101 - Intro to CS"

		Convey("Each platform uses its file manager", func() {
			cmd, ok := command(constant.Linux, dir)
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", dir})

			cmd, ok = command(constant.Darwin, dir)
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{"open", dir})

			cmd, ok = command(constant.Windows, dir)
			So(ok, ShouldBeTrue)
			So(filepath.Base(cmd.Args[0]), ShouldEqual, "explorer.exe")
		})

		Convey("Other platforms are unsupported", func() {
			_, ok := command("plan9", dir)
			So(ok, ShouldBeFalse)
		})
	})
}
