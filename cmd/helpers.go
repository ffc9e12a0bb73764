package cmd

import (
	"github.com/finddups/finddups/pkg/logger"
)

var (
	// Global flags
	FlagLogLevel   = 0
	FlagLogFile    = ""
	FlagConfigFile = ""

	initialized bool
)

func initCore() {
	if initialized {
		return
	}

	logger.Init(FlagLogLevel, FlagLogFile)
	initialized = true
}
