// Package logging sets up the file-backed structured logger.
// A full-screen session owns the terminal, so logs never go to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pkt.systems/pslog"
)

// Options builds pslog options for a level name
func Options(level string) (pslog.Options, error) {
	opts := pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		VerboseFields: true,
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "", "info":
		opts.MinLevel = pslog.InfoLevel
	case "warn", "warning":
		opts.MinLevel = pslog.WarnLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	default:
		return pslog.Options{}, fmt.Errorf("unknown log level %q", level)
	}
	return opts, nil
}

// Open returns a logger appending to path, rotating it first when larger than maxSize.
// An empty path yields a logger that discards everything. The stdlib log package
// is redirected to the returned logger.
func Open(path, level string, maxSize int64) (pslog.Logger, io.Closer, error) {
	opts, err := Options(level)
	if err != nil {
		return nil, nil, err
	}

	if path == "" {
		logger := pslog.NewWithOptions(io.Discard, opts)
		log.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	if err := rotate(path, maxSize, time.Now()); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := pslog.NewWithOptions(f, opts)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)
	return logger, f, nil
}

// rotate renames path aside with a timestamp suffix when it exceeds maxSize; maxSize <= 0 disables
func rotate(path string, maxSize int64, now time.Time) error {
	if maxSize <= 0 {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() <= maxSize {
		return nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	if ext == "" {
		ext = ".log"
	}
	rotated := fmt.Sprintf("%s-%s%s", base, now.Format("20060102-150405"), ext)
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
