package config

import (
	"testing"

	"github.com/echo360-dl/echo360/filesystem"
	"github.com/echo360-dl/echo360/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetBool(key.DownloadsSkipExisting), ShouldBeTrue)
			So(viper.GetInt(key.DownloadsTimeout), ShouldEqual, 0)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("downloads.skip_existing")
			So(result, ShouldEqual, "downloads_skip_existing")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.PortalCloud]

		Convey("Env should be prefixed with the application name", func() {
			So(field.Env(), ShouldEqual, "ECHO360_PORTAL_CLOUD")
		})

		Convey("Pretty should mention the key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.PortalCloud)
		})

		Convey("MarshalJSON should report the type", func() {
			b, err := field.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"env":"ECHO360_PORTAL_CLOUD"`)
			So(field.Type(), ShouldEqual, "bool")
		})
	})
}
