package lecture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/echo360-dl/echo360/driver"
	"github.com/echo360-dl/echo360/icon"
	"github.com/echo360-dl/echo360/key"
	"github.com/echo360-dl/echo360/log"
	"github.com/echo360-dl/echo360/network"
	"github.com/echo360-dl/echo360/stream"
	"github.com/echo360-dl/echo360/util"
	"github.com/spf13/viper"
)

// save transfers streamURL with the cookies currently held by the browser.
func save(ctx context.Context, drv driver.Driver, streamURL, dir, filename string) bool {
	target := stream.Target(dir, filename, streamURL)
	if viper.GetBool(key.DownloadsSkipExisting) && util.Exists(target) {
		fmt.Printf("%s %s already exists, skipping\n", icon.Get(icon.Skip), filepath.Base(target))
		return true
	}

	cookies, err := drv.Cookies(ctx)
	if err != nil {
		log.Warnf("downloading %s without cookies: %v", filename, err)
	}

	options := stream.Options{
		Client:   network.Stream(),
		Cookies:  cookies,
		Progress: os.Stderr,
	}

	log.Infof("downloading %s from %s", filename, streamURL)
	path, err := stream.Fetch(ctx, options, streamURL, dir, filename)
	if err != nil {
		log.Errorf("download %s: %v", filename, err)
		fmt.Fprintf(os.Stderr, "%s %s: %v\n", icon.Get(icon.Fail), filename, err)
		return false
	}

	log.Infof("saved %s", path)
	return true
}
