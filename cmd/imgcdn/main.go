// Command imgcdn builds CDN delivery URLs, previews transformations on local
// images and serves both as MCP tools over stdio.
package main

import (
	"os"

	"github.com/charmbracelet/log"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// stdout may carry MCP traffic, so failures go to stderr
		logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "imgcdn"})
		logger.Error(err)
		os.Exit(1)
	}
}
