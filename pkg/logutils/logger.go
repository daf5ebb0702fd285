// Package logutils builds the process-wide zerolog logger.
package logutils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// MaxFileSize is the size past which an existing log file is rotated when
// the logger is opened. Only one previous generation, file.1, is kept.
const MaxFileSize int64 = 5 << 20

// New returns a logger at level that appends JSON lines to file, or writes
// human-readable lines to stderr when file is empty. The returned func closes
// the log file and is never nil.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("parse log level %q: %w", level, err)
	}

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	if file != "" {
		f, err := openFile(file, MaxFileSize)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = f.Close() }
		w = f
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), closer, nil
}

func openFile(file string, maxSize int64) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}
	if err := rotate(file, maxSize); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// rotate renames file to file.1, replacing any older generation, once it has
// grown past maxSize.
func rotate(file string, maxSize int64) error {
	info, err := os.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("stat log file: %w", err)
	case info.Size() <= maxSize:
		return nil
	}

	if err := os.Rename(file, file+".1"); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}
