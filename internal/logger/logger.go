package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide structured logger
var Logger = newLogger(os.Stdout, logrus.InfoLevel)

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	return l
}

// Init sets the level of the shared logger. Unknown levels fall back to info.
func Init(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Logger.WithField("level", level).Warn("Unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)
}

// SetOutput redirects the shared logger, mostly for tests
func SetOutput(out io.Writer) {
	Logger.SetOutput(out)
}

// WithFields creates a new entry with the given fields
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Logger.WithFields(fields)
}

// WithField creates a new entry with a single field
func WithField(key string, value interface{}) *logrus.Entry {
	return Logger.WithField(key, value)
}

// WithError creates a new entry with an error field
func WithError(err error) *logrus.Entry {
	return Logger.WithError(err)
}

// Info logs msg at info level
func Info(msg string) {
	Logger.Info(msg)
}

// Warn logs msg at warn level
func Warn(msg string) {
	Logger.Warn(msg)
}
