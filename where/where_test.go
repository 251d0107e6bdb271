package where

import (
	"path/filepath"
	"testing"

	"github.com/echo360-dl/echo360/filesystem"
	"github.com/echo360-dl/echo360/key"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestDirectories(t *testing.T) {
	Convey("Directories are created when resolved", t, func() {
		for name, resolve := range map[string]func() string{
			"config":  Config,
			"cache":   Cache,
			"logs":    Logs,
			"browser": Browser,
			"temp":    Temp,
		} {
			path := resolve()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			Printf("%s=%s ", name, path)
		}
	})

	Convey("Browser builds are cached, logs sit with the config", t, func() {
		So(Browser(), ShouldStartWith, Cache())
		So(Logs(), ShouldStartWith, Config())
		So(History(), ShouldEqual, filepath.Join(Config(), "history.json"))
	})

	Convey("The config directory can be overridden", t, func() {
		t.Setenv(EnvConfigPath, "/custom/echo360")
		So(Config(), ShouldEqual, "/custom/echo360")
	})

	Convey("Downloads follows downloads.path", t, func() {
		viper.Set(key.DownloadsPath, "/lectures")
		defer viper.Set(key.DownloadsPath, "")

		So(Downloads(), ShouldEqual, "/lectures")
		So(lo.Must(filesystem.API().IsDir("/lectures")), ShouldBeTrue)
	})
}
