// Package cli implements the layerflow command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// appName is used for the root command's Use/version banner.
const appName = "layerflow"

// Log levels used by Execute.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger writing to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			Level:           level,
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
		}),
	}
}

func (c *CLI) setLevel(level log.Level) {
	c.Logger.SetLevel(level)
}
