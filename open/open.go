// Package open reveals files and directories with the system's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/echo360-dl/echo360/constant"
)

// Start opens path with the default handler without waiting for it.
func Start(path string) error {
	cmd, ok := command(runtime.GOOS, path)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return cmd.Start()
}

func command(goos, path string) (*exec.Cmd, bool) {
	switch goos {
	case constant.Windows:
		return exec.Command(filepath.Join(os.Getenv("SYSTEMROOT"), "explorer.exe"), path), true
	case constant.Darwin:
		return exec.Command("open", path), true
	case constant.Linux:
		return exec.Command("xdg-open", path), true
	case constant.Android:
		return exec.Command("termux-open", path), true
	default:
		return nil, false
	}
}
