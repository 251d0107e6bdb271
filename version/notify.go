package version

import (
	"context"
	"fmt"
	"time"

	"github.com/echo360-dl/echo360/color"
	"github.com/echo360-dl/echo360/constant"
	"github.com/echo360-dl/echo360/icon"
	"github.com/echo360-dl/echo360/key"
	"github.com/echo360-dl/echo360/style"
	"github.com/echo360-dl/echo360/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release exists. Lookup failures are silent.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/echo360-dl/echo360/releases/tag/v"+latest),
	)
}
