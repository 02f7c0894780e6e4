package main

import (
	"os"

	"github.com/itchan-dev/msgboard/backend/internal/cli"
	"github.com/itchan-dev/msgboard/shared/logger"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		logger.Log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
