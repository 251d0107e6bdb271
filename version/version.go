// Package version looks up the latest release and tells the user about it.
package version

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/echo360-dl/echo360/filesystem"
	"github.com/echo360-dl/echo360/network"
	"github.com/echo360-dl/echo360/util"
	"github.com/echo360-dl/echo360/where"
	"github.com/metafates/gache"
)

// ReleasesURL answers with the latest published release.
var ReleasesURL = "https://api.github.com/repos/echo360-dl/echo360/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the latest released version without its "v" prefix.
// Answers are cached for two days.
func Latest(ctx context.Context) (string, error) {
	cached, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && cached != "" {
		return cached, nil
	}

	req, err := network.NewRequest(ctx, ReleasesURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := network.API().Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("latest release: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	tag, err := jsonparser.GetString(body, "tag_name")
	if err != nil {
		return "", fmt.Errorf("latest release: %w", err)
	}
	if tag == "" {
		return "", errors.New("empty tag name")
	}

	version := strings.TrimPrefix(tag, "v")
	_ = versionCacher.Set(version)
	return version, nil
}
