package aprspos

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Fields carries structured key/value context for a log line
type Fields map[string]any

// Logger is the logging surface used by the client and commands
type Logger interface {
	Debug(fields Fields, args ...any)
	Info(fields Fields, args ...any)
	Warn(fields Fields, args ...any)
	Error(fields Fields, args ...any)
}

// charmLogger adapts a charmbracelet logger to Logger
type charmLogger struct {
	l *log.Logger
}

// NewLogger creates the default logger writing to stderr at info level
func NewLogger() Logger {
	return &charmLogger{
		l: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          Name,
			Level:           log.InfoLevel,
		}),
	}
}

// NewLoggerWithLevel creates a logger writing to w, level is one of debug/info/warn/error
func NewLoggerWithLevel(w io.Writer, level string) (Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	return &charmLogger{
		l: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			Prefix:          Name,
			Level:           lvl,
		}),
	}, nil
}

func (c *charmLogger) Debug(fields Fields, args ...any) {
	c.l.Debug(message(args), keyvals(fields)...)
}

func (c *charmLogger) Info(fields Fields, args ...any) {
	c.l.Info(message(args), keyvals(fields)...)
}

func (c *charmLogger) Warn(fields Fields, args ...any) {
	c.l.Warn(message(args), keyvals(fields)...)
}

func (c *charmLogger) Error(fields Fields, args ...any) {
	c.l.Error(message(args), keyvals(fields)...)
}

// message joins args the way fmt.Println does, without the newline
func message(args []any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}

// keyvals flattens fields in key order
func keyvals(fields Fields) []any {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}
	return kv
}
