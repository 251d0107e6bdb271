package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/echo360-dl/echo360/filesystem"
	"github.com/echo360-dl/echo360/key"
	"github.com/echo360-dl/echo360/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup should succeed and leave logging off", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeFalse)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		Convey("Setup should create today's log file", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeTrue)

			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			So(lo.Must(filesystem.API().Exists(path)), ShouldBeTrue)

			Dump("course page", "https://example.org", "<html></html>")
			content := lo.Must(filesystem.API().ReadFile(path))
			So(string(content), ShouldContainSubstring, "dumping course page")
		})
	})
}
