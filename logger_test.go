package drr

import (
	"fmt"
	"sync"
	"testing"
)

// testLogger implements the StdLogger interface, keeps every line it is given and
// echoes it to the logs of t when set.
//
// nolint
type testLogger struct {
	t *testing.T

	mu    sync.Mutex
	lines []string
}

func (l *testLogger) record(line string) {
	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()
}

func (l *testLogger) Print(v ...interface{}) {
	l.record(fmt.Sprint(v...))
	if l.t != nil {
		l.t.Helper()
		l.t.Log(v...)
	}
}

func (l *testLogger) Printf(format string, v ...interface{}) {
	l.record(fmt.Sprintf(format, v...))
	if l.t != nil {
		l.t.Helper()
		l.t.Logf(format, v...)
	}
}

func (l *testLogger) Println(v ...interface{}) {
	l.record(fmt.Sprintln(v...))
	if l.t != nil {
		l.t.Helper()
		l.t.Log(v...)
	}
}

// useTestLoggers swaps Logger and DebugLogger for recording loggers until the test ends.
func useTestLoggers(t *testing.T) (logger, debug *testLogger) {
	logger, debug = &testLogger{t: t}, &testLogger{}
	prevLogger, prevDebug := Logger, DebugLogger
	Logger, DebugLogger = logger, debug
	t.Cleanup(func() {
		Logger, DebugLogger = prevLogger, prevDebug
	})
	return logger, debug
}
