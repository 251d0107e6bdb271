// Package where resolves the directories the tool reads and writes.
// Every directory returned is created on the active filesystem.
package where

import (
	"os"
	"path/filepath"

	"github.com/echo360-dl/echo360/constant"
	"github.com/echo360-dl/echo360/filesystem"
	"github.com/echo360-dl/echo360/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath overrides Config.
const EnvConfigPath = "ECHO360_CONFIG_PATH"

func mkdir(elem ...string) string {
	path := filepath.Join(elem...)
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config holds echo360.toml, the logs and the download history.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return mkdir(custom)
	}
	return mkdir(lo.Must(os.UserConfigDir()), constant.App)
}

// Cache holds data that can be rebuilt: the version check and browser builds.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = "cache"
	}
	return mkdir(base, constant.App)
}

func Logs() string {
	return mkdir(Config(), "logs")
}

// Browser is where launcher unpacks Chromium when browser.bin is unset.
func Browser() string {
	return mkdir(Cache(), "browser")
}

// History is a file, not a directory.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Downloads is the parent of the per-course directories.
// It falls back to the working directory, as the original tool did.
func Downloads() string {
	if path := viper.GetString(key.DownloadsPath); path != "" {
		return mkdir(path)
	}
	return lo.Must(os.Getwd())
}

func Temp() string {
	return mkdir(os.TempDir(), constant.App)
}
