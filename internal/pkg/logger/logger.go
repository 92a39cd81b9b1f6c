package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the shared application logger. It is initialized by Init; before
// that it writes to stderr with default settings.
var Log = logrus.New()

// Options controls logger initialization.
type Options struct {
	Level      string // debug, info, warn, error (default: info)
	FilePath   string // when set, logs are also written to this rotating file
	JSONFormat bool
}

// Init configures the shared logger. When FilePath is set, output goes to
// both stderr and a size-rotated file via lumberjack.
func Init(opts Options) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if opts.JSONFormat {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if opts.FilePath == "" {
		Log.SetOutput(os.Stderr)
		return
	}

	if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
		Log.SetOutput(os.Stderr)
		Log.WithError(err).Warn("failed to create log directory, falling back to stderr")
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}

	Log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}

// WithField is a shorthand for Log.WithField.
func WithField(key string, value any) *logrus.Entry {
	return Log.WithField(key, value)
}

// WithError is a shorthand for Log.WithError.
func WithError(err error) *logrus.Entry {
	return Log.WithError(err)
}
