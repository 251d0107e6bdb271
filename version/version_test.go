package version

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/echo360-dl/echo360/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCompare(t *testing.T) {
	Convey("Versions are compared component by component", t, func() {
		for _, c := range []struct {
			a, b string
			want int
		}{
			{"0.4.0", "0.4.0", 0},
			{"v0.4.1", "0.4.0", 1},
			{"0.10.0", "0.9.9", 1},
			{"1.0.0", "1.2.0", -1},
		} {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}

		_, err := Compare("latest", "0.4.0")
		So(err, ShouldNotBeNil)
	})
}

func TestLatest(t *testing.T) {
	Convey("Given a release registry", t, func() {
		var requests int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			fmt.Fprint(w, `{"tag_name":"v0.5.2","name":"0.5.2"}`)
		}))
		defer server.Close()
		ReleasesURL = server.URL

		Convey("The latest tag is returned without its prefix and cached", func() {
			So(versionCacher.Set(""), ShouldBeNil)

			latest, err := Latest(context.Background())
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "0.5.2")

			latest, err = Latest(context.Background())
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "0.5.2")
			So(requests, ShouldEqual, 1)
		})
	})
}
