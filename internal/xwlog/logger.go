// Package xwlog builds the structured logger used across the orchestrator
// and the MCTS run loop.
//
// Grounded in macondo/cmd/shell/main.go's zerolog.ConsoleWriter setup, pared
// down to what a short-lived CLI run needs.
package xwlog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console-formatted zerolog.Logger writing to stderr.
// When debug is false, Debug-level events are suppressed.
func New(debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i any) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i any) string {
		return fmt.Sprintf("%s:", i)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
