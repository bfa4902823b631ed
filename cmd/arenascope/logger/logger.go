// Package logger provides file-backed debug logging for the TUI. Log output
// must never reach stdout or stderr while the alternate screen is active, so
// everything goes to a JSON file under the log directory, or nowhere at all.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the package logger. It discards everything until Init enables it.
var L = discard()

const (
	filePrefix = "arenascope-"
	fileSuffix = ".log"

	// Log files untouched for this long are deleted on startup.
	retention = 30 * 24 * time.Hour
)

// Options configures Init.
type Options struct {
	Enabled bool       // when false, logging stays discarded
	LogDir  string     // defaults to ~/.arenascope/logs
	Level   slog.Level // defaults to slog.LevelInfo
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Init opens today's log file and points L at it. Call once from main before
// the TUI starts; with opts.Enabled false it resets L to the discard logger.
func Init(opts Options) error {
	if !opts.Enabled {
		L = discard()
		return nil
	}

	dir := opts.LogDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, ".arenascope", "logs")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	pruneOldLogs(dir)

	name := filePrefix + time.Now().Format("2006-01-02") + fileSuffix
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}
	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return nil
}

// pruneOldLogs deletes log files whose modification time is past retention.
// Best effort: unreadable entries are skipped.
func pruneOldLogs(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-retention)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(dir, name))
		}
	}
}

// Debug logs at debug level through L.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at info level through L.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at warn level through L.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at error level through L.
func Error(msg string, args ...any) { L.Error(msg, args...) }
