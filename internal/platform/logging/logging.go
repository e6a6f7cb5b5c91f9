package logging

import (
	"io"
	"os"
	"strings"

	hclog "github.com/hashicorp/go-hclog"
)

const DefaultLevel = "warn"

// New builds the process logger. Unknown levels fall back to DefaultLevel.
func New(level string, w io.Writer) hclog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl := hclog.LevelFromString(strings.TrimSpace(level))
	if lvl == hclog.NoLevel {
		lvl = hclog.LevelFromString(DefaultLevel)
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "gocycling",
		Level:  lvl,
		Output: w,
	})
}

// Discard is used where callers pass no logger.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

// OrDiscard returns l, or a null logger when l is nil.
func OrDiscard(l hclog.Logger) hclog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
