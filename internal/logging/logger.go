package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const logFileName = "app.log"

// Logger wraps a charmbracelet logger together with the log file it may own.
type Logger struct {
	*log.Logger
	file *os.File
}

// New builds the process logger. With a non-empty dir, output also goes to
// dir/app.log; the directory is created if needed.
func New(level, dir string) (*Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var out io.Writer = os.Stderr
	var file *os.File
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err = os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, file)
	}

	base := log.NewWithOptions(out, log.Options{
		Level:           lvl,
		Prefix:          "fileshelf",
		ReportTimestamp: true,
		ReportCaller:    lvl == log.DebugLevel,
	})
	return &Logger{Logger: base, file: file}, nil
}

// BaseLogger returns the underlying logger to hand to components.
func (l *Logger) BaseLogger() *log.Logger {
	return l.Logger
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Discard returns a logger that drops everything. Meant for tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
