package logging

import (
	"io"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions selects a size-rotated log file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

// Output returns a rotating file writer when opts.Path is set and fallback
// otherwise. The returned closer is a no-op for the fallback.
func Output(opts FileOptions, fallback io.Writer) (io.Writer, func() error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return fallback, func() error { return nil }
	}
	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 100
	}
	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: opts.MaxBackups,
		Compress:   opts.Compress,
	}
	return rotating, rotating.Close
}
