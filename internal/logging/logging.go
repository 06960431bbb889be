// Package logging builds the structured logger shared by the binaries.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/kurobon/gitbttf/internal/config"
)

// New returns a timestamped logger writing to stderr. An unknown level
// falls back to info.
func New(cfg *config.Config, prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, cfg, prefix)
}

func NewWithWriter(w io.Writer, cfg *config.Config, prefix string) *log.Logger {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}
