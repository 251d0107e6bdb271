package stream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/echo360-dl/echo360/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

const master = `#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=400000,RESOLUTION=640x360
low/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=1200000,RESOLUTION=1280x720
high/index.m3u8
`

const media = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:10.0,
seg0.ts
#EXTINF:10.0,
seg1.ts
#EXT-X-ENDLIST
`

const encrypted = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-KEY:METHOD=AES-128,URI="key.bin"
#EXTINF:10.0,
seg0.ts
#EXT-X-ENDLIST
`

func newServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/lecture/master.m3u8", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, master)
	})
	mux.HandleFunc("/lecture/high/index.m3u8", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, media)
	})
	mux.HandleFunc("/lecture/low/index.m3u8", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "wrong variant", http.StatusTeapot)
	})
	mux.HandleFunc("/lecture/high/seg0.ts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "AAAA")
	})
	mux.HandleFunc("/lecture/high/seg1.ts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "BBBB")
	})
	mux.HandleFunc("/locked/index.m3u8", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, encrypted)
	})
	mux.HandleFunc("/files/lecture.mp4", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err != nil || c.Value != "ok" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		fmt.Fprint(w, "MP4DATA")
	})
	return httptest.NewServer(mux)
}

func TestTarget(t *testing.T) {
	Convey("Target", t, func() {
		So(Target("/out", "L1", "https://x/a/s1q1.m3u8?token=1"), ShouldEqual, filepath.Join("/out", "L1.ts"))
		So(Target("/out", "L1", "https://x/a/video.MP4"), ShouldEqual, filepath.Join("/out", "L1.mp4"))
		So(Target("/out", "L1", "https://x/a/video.webm"), ShouldEqual, filepath.Join("/out", "L1.webm"))
		So(Target("/out", "L1", "https://x/a/video"), ShouldEqual, filepath.Join("/out", "L1.mp4"))
	})
}

func TestFetch(t *testing.T) {
	Convey("Given a server with lecture recordings", t, func() {
		server := newServer()
		defer server.Close()

		options := Options{Client: server.Client()}
		fs := filesystem.API()

		Convey("A master playlist is flattened from its best variant", func() {
			path, err := Fetch(context.Background(), options, server.URL+"/lecture/master.m3u8", "/out/CS101", "Lecture 1")
			So(err, ShouldBeNil)
			So(path, ShouldEqual, filepath.Join("/out/CS101", "Lecture 1.ts"))
			So(string(lo.Must(fs.ReadFile(path))), ShouldEqual, "AAAABBBB")

			exists := lo.Must(fs.Exists(path + ".part"))
			So(exists, ShouldBeFalse)
		})

		Convey("A plain file is copied with the session cookies", func() {
			options.Cookies = []*http.Cookie{{Name: "session", Value: "ok"}}
			path, err := Fetch(context.Background(), options, server.URL+"/files/lecture.mp4", "/out/CS101", "Lecture 2")
			So(err, ShouldBeNil)
			So(string(lo.Must(fs.ReadFile(path))), ShouldEqual, "MP4DATA")
		})

		Convey("A failed transfer leaves nothing behind", func() {
			_, err := Fetch(context.Background(), options, server.URL+"/files/lecture.mp4", "/out/CS101", "Lecture 3")
			So(err, ShouldNotBeNil)
			So(lo.Must(fs.Exists(filepath.Join("/out/CS101", "Lecture 3.mp4"))), ShouldBeFalse)
			So(lo.Must(fs.Exists(filepath.Join("/out/CS101", "Lecture 3.mp4.part"))), ShouldBeFalse)
		})

		Convey("Encrypted playlists are refused", func() {
			_, err := Fetch(context.Background(), options, server.URL+"/locked/index.m3u8", "/out/CS101", "Lecture 4")
			So(err, ShouldEqual, ErrEncrypted)
		})

		Convey("A cancelled context aborts the transfer", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := Fetch(ctx, options, server.URL+"/lecture/master.m3u8", "/out/CS101", "Lecture 5")
			So(err, ShouldNotBeNil)
		})
	})
}
