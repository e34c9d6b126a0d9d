package core

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

// SetOutput redirects future log output to w at the given level. Intended
// for tests that want to assert on log lines without polluting stderr. It
// replaces the logger whenever it is called, including after earlier log
// calls have lazily created the default stderr logger.
func SetOutput(w io.Writer, level log.Level) {
	once.Do(func() {})
	singleton = &logger{newLoggerWithOptions(w, level)}
}

func newLoggerWithOptions(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "nbrengine ",
	})
	l.SetLevel(level)
	return l
}

func getLogger() *logger {
	if singleton == nil {
		once.Do(func() {
			singleton = &logger{newLoggerWithOptions(os.Stderr, log.DebugLevel)}
		})
	}
	return singleton
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}
