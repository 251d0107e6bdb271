package lecture

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/echo360-dl/echo360/driver/drivertest"
	"github.com/echo360-dl/echo360/filesystem"
	"github.com/echo360-dl/echo360/key"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	ResolveAttempts = 2
	ResolveInterval = 0
}

func TestClassic(t *testing.T) {
	Convey("Given a classic presentation", t, func() {
		drv := drivertest.New(map[string]*drivertest.Page{
			"https://ess.example/player/1": {Source: `<video src="https://stream.example/1/s1q1.m3u8?x=1&amp;y=2"></video>`},
			"https://ess.example/player/2": {Source: `<p>loading...</p>`},
		})
		session := &Session{Driver: drv}

		Convey("A player page with a stream yields a URL", func() {
			raw := []byte(`{"title":" Week 1 ","startTime":"2024-03-01T09:00:00.000","richMedia":"https://ess.example/player/1"}`)
			c, err := NewClassic(context.Background(), session, raw)
			So(err, ShouldBeNil)
			So(c.Title(), ShouldEqual, "Week 1")
			So(c.Date(), ShouldEqual, "2024-03-01")
			So(c.URL().MustGet(), ShouldEqual, "https://stream.example/1/s1q1.m3u8?x=1&y=2")
			So(c.Parts(), ShouldHaveLength, 1)
			So(c.Parts()[0], ShouldEqual, c)
		})

		Convey("A player page without a stream yields no URL", func() {
			raw := []byte(`{"title":"Week 2","startTime":"2024-03-08","richMedia":"https://ess.example/player/2"}`)
			c, err := NewClassic(context.Background(), session, raw)
			So(err, ShouldBeNil)
			So(c.URL().IsPresent(), ShouldBeFalse)
			So(c.Download(context.Background(), "/out", "x"), ShouldBeFalse)
		})

		Convey("A presentation without a player page yields no URL", func() {
			raw := []byte(`{"title":"Week 3","startTime":"2024-03-15"}`)
			c, err := NewClassic(context.Background(), session, raw)
			So(err, ShouldBeNil)
			So(c.URL().IsPresent(), ShouldBeFalse)
		})

		Convey("A presentation without a start time is rejected", func() {
			_, err := NewClassic(context.Background(), session, []byte(`{"title":"Week 4"}`))
			So(err, ShouldNotBeNil)
		})

		Convey("An unparsable start time is kept verbatim", func() {
			c, err := NewClassic(context.Background(), session, []byte(`{"title":"Week 5","startTime":"sometime"}`))
			So(err, ShouldBeNil)
			So(c.Date(), ShouldEqual, "sometime")
		})
	})
}

func newPortal() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ui/echoplayer/lessons/L1/medias/M1/player-properties", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"playableAudioVideo":{"playableMedias":[
			{"uri":"https://content.example/L1/s1_av.mp4"},
			{"uri":"https://content.example/L1/s1q1.m3u8"},
			{"uri":"https://content.example/L1/s2q1.m3u8"}
		]}}}`)
	})
	mux.HandleFunc("/api/ui/echoplayer/lessons/L2/medias/M2a/player-properties", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"playableAudioVideo":{"playableMedias":[{"uri":"https://content.example/L2/a.m3u8"}]}}}`)
	})
	mux.HandleFunc("/api/ui/echoplayer/lessons/L2/medias/M2b/player-properties", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"playableAudioVideo":{"playableMedias":[{"uri":"https://content.example/L2/b.m3u8"}]}}}`)
	})
	mux.HandleFunc("/files/L4.mp4", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "VIDEO")
	})
	return httptest.NewServer(mux)
}

func TestCloud(t *testing.T) {
	Convey("Given a cloud portal", t, func() {
		server := newPortal()
		defer server.Close()

		session := &Session{Driver: drivertest.New(nil), Client: server.Client(), Hostname: server.URL}

		Convey("A single media lesson prefers its HLS playlist", func() {
			raw := []byte(`{"lesson":{"lesson":{"id":"L1","name":"Intro","createdAt":"2024-02-01T00:00:00Z"},"startTimeUTC":"2024-03-01T02:00:00.000Z","hasAvailableVideo":true,"medias":[{"id":"M1"}]}}`)
			c, err := NewCloud(context.Background(), session, raw)
			So(err, ShouldBeNil)
			So(c.Title(), ShouldEqual, "Intro")
			So(c.Date(), ShouldEqual, "2024-03-01")
			So(c.URL().MustGet(), ShouldEqual, "https://content.example/L1/s1q1.m3u8")
			So(c.Parts(), ShouldHaveLength, 1)
		})

		Convey("Alternative feeds turn a lesson into a multi-part recording", func() {
			session.AlternativeFeeds = true
			raw := []byte(`{"lesson":{"lesson":{"id":"L1","name":"Intro"},"startTimeUTC":"2024-03-01","medias":[{"id":"M1"}]}}`)
			c, err := NewCloud(context.Background(), session, raw)
			So(err, ShouldBeNil)

			parts := c.Parts()
			So(parts, ShouldHaveLength, 3)
			So(parts[0].URL().MustGet(), ShouldEqual, "https://content.example/L1/s1q1.m3u8")
			So(parts[1].URL().MustGet(), ShouldEqual, "https://content.example/L1/s2q1.m3u8")
			So(parts[2].URL().MustGet(), ShouldEqual, "https://content.example/L1/s1_av.mp4")
		})

		Convey("Several medias are parts in backend order", func() {
			raw := []byte(`{"lesson":{"lesson":{"id":"L2","displayName":"Lab"},"startTimeUTC":"2024-03-08","medias":[{"id":"M2a"},{"id":"M2b"}]}}`)
			c, err := NewCloud(context.Background(), session, raw)
			So(err, ShouldBeNil)
			So(c.Title(), ShouldEqual, "Lab")

			parts := c.Parts()
			So(parts, ShouldHaveLength, 2)
			So(parts[0].URL().MustGet(), ShouldEqual, "https://content.example/L2/a.m3u8")
			So(parts[1].URL().MustGet(), ShouldEqual, "https://content.example/L2/b.m3u8")
			So(parts[1].Date(), ShouldEqual, "2024-03-08")
		})

		Convey("A lesson without video has no URL", func() {
			raw := []byte(`{"lesson":{"lesson":{"id":"L3","name":"Cancelled"},"startTimeUTC":"2024-03-15","hasAvailableVideo":false,"medias":[{"id":"M1"}]}}`)
			c, err := NewCloud(context.Background(), session, raw)
			So(err, ShouldBeNil)
			So(c.URL().IsPresent(), ShouldBeFalse)
			So(c.Parts(), ShouldHaveLength, 1)
		})

		Convey("A lesson without id is rejected", func() {
			_, err := NewCloud(context.Background(), session, []byte(`{"lesson":{}}`))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDownload(t *testing.T) {
	Convey("Given a recording with a stream", t, func() {
		server := newPortal()
		defer server.Close()

		c := &Cloud{
			session: &Session{Driver: drivertest.New(nil)},
			url:     mo.Some(server.URL + "/files/L4.mp4"),
		}
		dir := "/lectures/CS101"

		Convey("Download saves it into the directory", func() {
			So(c.Download(context.Background(), dir, "Lecture 4"), ShouldBeTrue)
			content := lo.Must(filesystem.API().ReadFile(filepath.Join(dir, "Lecture 4.mp4")))
			So(string(content), ShouldEqual, "VIDEO")
		})

		Convey("An existing file is skipped when configured", func() {
			viper.Set(key.DownloadsSkipExisting, true)
			defer viper.Set(key.DownloadsSkipExisting, false)

			So(filesystem.API().WriteFile(filepath.Join(dir, "Lecture 5.mp4"), []byte("OLD"), 0644), ShouldBeNil)
			c.url = mo.Some(server.URL + "/missing.mp4")
			So(c.Download(context.Background(), dir, "Lecture 5"), ShouldBeTrue)
		})

		Convey("A failing transfer reports false", func() {
			c.url = mo.Some(server.URL + "/missing.mp4")
			So(c.Download(context.Background(), dir, "Lecture 6"), ShouldBeFalse)
		})
	})
}
