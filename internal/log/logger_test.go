package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peekd/internal/errors"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "warn message")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "error message")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer

	SetDebug(false)
	l := NewLogger(WithOutput(&buf))
	l.Debug("debug message")
	assert.Empty(t, buf.String())

	SetDebug(true)
	defer SetDebug(false)

	// Debug level applies to the global logger once reconfigured
	originalLogger := logger
	defer func() { logger = originalLogger }()
	Configure(WithOutput(&buf))
	Debug("debug message")
	assert.Contains(t, buf.String(), "debug message")
	buf.Reset()

	Debugf("formatted %s", "debug")
	assert.Contains(t, buf.String(), "formatted debug")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	// Chained fields accumulate
	l.With(F("key1", "value1")).With(F("key2", 123)).Info("chained fields")
	output = buf.String()
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.Info("json message")

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry)
	require.NoError(t, err)
	assert.Equal(t, "info", logEntry["level"])
	assert.Equal(t, "json message", logEntry["message"])
	assert.Contains(t, logEntry, "timestamp")
	buf.Reset()

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured json")
	err = json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry)
	require.NoError(t, err)
	assert.Equal(t, "value1", logEntry["key1"])
	assert.Equal(t, float64(123), logEntry["key2"]) // JSON numbers are float64
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	Configure(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	stdErr := fmt.Errorf("standard error")
	LogWithFields(F("error", stdErr.Error())).Error("error occurred")
	output := buf.String()
	assert.Contains(t, output, "error occurred")
	assert.Contains(t, output, "standard error")
	buf.Reset()

	appErr := errors.New("application error")
	LogWithError(appErr).Error("app error occurred")
	output = buf.String()
	assert.Contains(t, output, "app error occurred")
	assert.Contains(t, output, "application error")
	assert.Contains(t, output, "error_kind=0")
	buf.Reset()

	procErr := errors.NewProcessError("head", []string{"head", "--lines", "10", "a.txt"}, stdErr)
	LogWithError(procErr).Error("process error occurred")
	output = buf.String()
	assert.Contains(t, output, "process error occurred")
	assert.Contains(t, output, "program=head")
	buf.Reset()

	viewErr := errors.NewViewError("no file selected", errors.NoFileSelected, nil).WithView("tail a.txt")
	LogWithError(viewErr).Error("view error occurred")
	output = buf.String()
	assert.Contains(t, output, "view error occurred")
	assert.Contains(t, output, `view="tail a.txt"`)
	buf.Reset()

	cfgErr := errors.NewConfigError("config error", "commands", nil)
	LogWithError(cfgErr).Error("config error occurred")
	output = buf.String()
	assert.Contains(t, output, "param=commands")
	buf.Reset()

	LogError(procErr, "convenient error log")
	assert.Contains(t, buf.String(), "convenient error log")
}

func TestNilErrorHandling(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	Configure(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	// Must not panic
	LogWithError(nil).Error("nil error test")
	assert.Contains(t, buf.String(), "nil error test")
}
