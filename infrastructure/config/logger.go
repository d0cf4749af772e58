package config

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger - creates the suite logger at the configured level
func NewLogger(level string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
		logger.Warnf("unknown log level %q, using info", level)
	}
	logger.SetLevel(parsed)

	return logger
}
