package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger. Unknown levels fall back to info.
func Init(level, format string) {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stdout)

	switch strings.ToLower(format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// For returns an entry tagged with the component name, e.g. "SERVICE".
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
