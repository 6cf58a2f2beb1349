package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New создает JSON логгер; неизвестный уровень заменяется на info
func New(level string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(out)
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}
