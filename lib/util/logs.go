package util

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// SetLogLevel sets the logger level from the LOG_LEVEL value.
// Anything unrecognized falls back to error to keep CloudWatch volume low.
func SetLogLevel(logger *logrus.Logger, level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn", "warning":
		logger.SetLevel(logrus.WarnLevel)
	default:
		logger.SetLevel(logrus.ErrorLevel)
	}
}
