package observability

import (
	"github.com/sirupsen/logrus"
)

// Logger adapts logrus to the narrow interface the services log through.
type Logger struct {
	entry *logrus.Entry
}

func NewLogger(component string) *Logger {
	return &Logger{entry: logrus.WithField("component", component)}
}

func (l *Logger) Info(msg string) {
	l.entry.Info(msg)
}

func (l *Logger) Error(msg string) {
	l.entry.Error(msg)
}

func Setup() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
}
