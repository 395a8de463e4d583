package shared

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a charmbracelet logger writing to stderr. format is
// one of "text", "json" or "logfmt".
func SetupLogger(level, format string) (*log.Logger, error) {
	return NewLogger(os.Stderr, level, format)
}

// NewLogger is SetupLogger with an explicit destination.
func NewLogger(w io.Writer, level, format string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "pixelshuffle",
	}

	switch format {
	case "", "text":
		opts.Formatter = log.TextFormatter
	case "json":
		opts.Formatter = log.JSONFormatter
		opts.TimeFormat = time.RFC3339Nano
	case "logfmt":
		opts.Formatter = log.LogfmtFormatter
		opts.TimeFormat = time.RFC3339Nano
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	return log.NewWithOptions(w, opts), nil
}
