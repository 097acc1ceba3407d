package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const application = "bloodbank"

// New builds the service logger. format is "text" or "json"; out defaults to
// stderr when nil.
func New(level, format string, out io.Writer) (logrus.FieldLogger, error) {
	logger := logrus.New()
	if out == nil {
		out = os.Stderr
	}
	logger.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	return logger.WithField("application", application), nil
}

// Discard returns a logger that drops everything.
func Discard() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
