package main

import (
	"github.com/echo360-dl/echo360/cmd"
	"github.com/echo360-dl/echo360/config"
	"github.com/echo360-dl/echo360/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
