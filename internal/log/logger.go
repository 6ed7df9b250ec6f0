// Package log provides the logging facade for peekd, backed by logrus.
// It exposes package-level helpers plus structured logging via fields so
// callers never import logrus directly.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"peekd/internal/errors"
)

// Field is a single structured logging field
type Field struct {
	Key   string
	Value interface{}
}

// F constructs a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus logger with the application's defaults
type Logger struct {
	lg   *logrus.Logger
	file *os.File
}

// Option configures a Logger
type Option func(*Logger)

// WithOutput directs log output to w
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.lg.SetOutput(w)
	}
}

// WithJSON switches the logger to JSON formatting
func WithJSON() Option {
	return func(l *Logger) {
		l.lg.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	}
}

// WithFile tees log output to the named file in addition to stdout.
// A file that cannot be opened is ignored and logging continues on stdout.
func WithFile(path string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return
		}
		l.file = f
		l.lg.SetOutput(io.MultiWriter(os.Stdout, f))
	}
}

var logger = NewLogger()

// NewLogger creates a logger with the application defaults applied
func NewLogger(opts ...Option) *Logger {
	lg := logrus.New()
	lg.SetOutput(os.Stdout)
	lg.SetLevel(logrus.InfoLevel)
	lg.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	l := &Logger{lg: lg}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the global logger's settings
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
	if isDebug {
		logger.lg.SetLevel(logrus.DebugLevel)
	}
}

var isDebug = false

// SetDebug toggles debug-level logging globally
func SetDebug(debug bool) {
	isDebug = debug
	if debug {
		logger.lg.SetLevel(logrus.DebugLevel)
	} else {
		logger.lg.SetLevel(logrus.InfoLevel)
	}
}

// Entry is a log entry carrying structured fields
type Entry struct {
	entry *logrus.Entry
}

// With attaches fields to the logger, returning an entry for chaining
func (l *Logger) With(fields ...Field) *Entry {
	return &Entry{entry: l.lg.WithFields(toLogrus(fields))}
}

// WithContext is a placeholder for context-aware logging
func (l *Logger) WithContext(_ interface{}) *Entry {
	return &Entry{entry: logrus.NewEntry(l.lg)}
}

func (l *Logger) Info(msg string)                          { l.lg.Info(msg) }
func (l *Logger) Infof(format string, args ...interface{}) { l.lg.Infof(format, args...) }
func (l *Logger) Warn(msg string)                          { l.lg.Warn(msg) }
func (l *Logger) Warnf(format string, args ...interface{}) { l.lg.Warnf(format, args...) }
func (l *Logger) Error(msg string)                         { l.lg.Error(msg) }
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.lg.Errorf(format, args...)
}
func (l *Logger) Debug(msg string) {
	if isDebug {
		l.lg.Debug(msg)
	}
}
func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug {
		l.lg.Debugf(format, args...)
	}
}

// With attaches fields to the entry, allowing chained field accumulation
func (e *Entry) With(fields ...Field) *Entry {
	return &Entry{entry: e.entry.WithFields(toLogrus(fields))}
}

func (e *Entry) Info(msg string)                          { e.entry.Info(msg) }
func (e *Entry) Infof(format string, args ...interface{}) { e.entry.Infof(format, args...) }
func (e *Entry) Warn(msg string)                          { e.entry.Warn(msg) }
func (e *Entry) Error(msg string)                         { e.entry.Error(msg) }
func (e *Entry) Debug(msg string) {
	if isDebug {
		e.entry.Debug(msg)
	}
}

// Package-level helpers on the global logger

// Info logs a message at info level
func Info(msg string) { logger.Info(msg) }

// Infof logs a formatted message at info level
func Infof(format string, args ...interface{}) { logger.Infof(format, args...) }

// Warn logs a message at warning level
func Warn(msg string) { logger.Warn(msg) }

// Warnf logs a formatted message at warning level
func Warnf(format string, args ...interface{}) { logger.Warnf(format, args...) }

// Error logs a message at error level
func Error(msg string) { logger.Error(msg) }

// Errorf logs a formatted message at error level
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }

// Debug logs a message at debug level when debug logging is enabled
func Debug(msg string) { logger.Debug(msg) }

// Debugf logs a formatted message at debug level when debug logging is enabled
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }

// LogWithFields returns an entry on the global logger carrying the fields
func LogWithFields(fields ...Field) *Entry {
	return logger.With(fields...)
}

// LogWithError returns an entry carrying the error plus any typed metadata
// the application error types expose (kind, view, program, config param).
func LogWithError(err error) *Entry {
	fields := []Field{F("error", err)}

	type kinder interface {
		Kind() errors.ErrorKind
	}
	var k kinder
	if errors.As(err, &k) {
		fields = append(fields, F("error_kind", int(k.Kind())))
	}

	var viewErr *errors.ViewError
	if errors.As(err, &viewErr) && viewErr.View() != "" {
		fields = append(fields, F("view", viewErr.View()))
	}

	var procErr *errors.ProcessError
	if errors.As(err, &procErr) {
		fields = append(fields, F("program", procErr.Program()))
	}

	var cfgErr *errors.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Param() != "" {
		fields = append(fields, F("param", cfgErr.Param()))
	}

	return logger.With(fields...)
}

// LogError logs an error with its typed metadata at error level
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

func toLogrus(fields []Field) logrus.Fields {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return lf
}
