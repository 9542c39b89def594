// Package log provides the structured logger used by the generator.
// It wraps "github.com/go-kit/log" and adds level helpers, so that callers can write
//
//	logger.Warn().Log("msg", "scheduler directive downgraded", "method", "Fetch")
package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger wraps a "github.com/go-kit/log/Logger" to provide a more convenient way
// to log with a particular level.
// Note that it implements the "github.com/go-kit/log/Logger" interface.
type Logger struct {
	l      log.Logger
	format Format
}

func (l Logger) Log(keyvals ...interface{}) error {
	return l.l.Log(keyvals...)
}

func (l Logger) Debug() Logger {
	l.l = level.Debug(l.l)
	return l
}

func (l Logger) Info() Logger {
	l.l = level.Info(l.l)
	return l
}

func (l Logger) Warn() Logger {
	l.l = level.Warn(l.l)
	return l
}

func (l Logger) Error() Logger {
	l.l = level.Error(l.l)
	return l
}

func (l Logger) With(keyvals ...interface{}) Logger {
	l.l = log.With(l.l, keyvals...)
	return l
}

// WithError adds err under the key "err".
// In json format an error with a ToMap method (e.g. errors.Error) is logged as a nested object,
// including its stack trace. Logfmt cannot encode nested values, there the error message is used.
func (l Logger) WithError(err error) Logger {
	if m, ok := err.(interface{ ToMap() map[string]interface{} }); ok && l.format == FormatJSON {
		return l.With("err", m.ToMap())
	}
	return l.With("err", err.Error())
}

type Option string

const AllowDebug Option = "allowDebug"
const AllowInfo Option = "allowInfo"
const AllowWarn Option = "allowWarn"
const AllowError Option = "allowError"
const PrettyPrint Option = "prettyPrint"

// Format of the log events written by a Logger.
type Format string

const FormatLogfmt Format = "logfmt"
const FormatJSON Format = "json"

// ParseFormat maps a format name as given on the command line to a format and options.
// "pretty" is FormatJSON with indented output.
func ParseFormat(s string) (Format, []Option, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "logfmt":
		return FormatLogfmt, nil, nil
	case "json":
		return FormatJSON, nil, nil
	case "pretty":
		return FormatJSON, []Option{PrettyPrint}, nil
	default:
		return "", nil, fmt.Errorf("unknown log format: %v", s)
	}
}

// ParseLevel maps a level name as given on the command line ("debug", "info", "warn", "error")
// to the corresponding option.
func ParseLevel(s string) (Option, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return AllowDebug, nil
	case "", "info":
		return AllowInfo, nil
	case "warn", "warning":
		return AllowWarn, nil
	case "error":
		return AllowError, nil
	default:
		return "", fmt.Errorf("unknown log level: %v", s)
	}
}

// New creates a logger that writes events in the given format to w.
// Utc timestamps are added to each log event.
//
// There are four different log levels: error/warn/info/debug (in descending order of severity).
// Pass an option to filter out log messages below a certain level.
// E.g. if AllowWarn is passed, only log messages with level warn/error or without a level will be logged.
// By default only log messages with or above level info are logged.
// PrettyPrint only has an effect for FormatJSON.
func New(w io.Writer, format Format, options ...Option) *Logger {
	levelFilter := level.AllowInfo()
	prettyPrint := false
	for _, option := range options {
		switch option {
		case AllowDebug:
			levelFilter = level.AllowDebug()
		case AllowInfo:
			levelFilter = level.AllowInfo()
		case AllowWarn:
			levelFilter = level.AllowWarn()
		case AllowError:
			levelFilter = level.AllowError()
		case PrettyPrint:
			prettyPrint = true
		}
	}

	var logger log.Logger
	{
		w = log.NewSyncWriter(w)
		switch format {
		case FormatJSON:
			if prettyPrint {
				w = newPrettyJSONWriter(w)
			}
			logger = log.NewJSONLogger(w)
		default:
			logger = log.NewLogfmtLogger(w)
		}
		logger = level.NewFilter(logger, levelFilter, level.SquelchNoLevel(false))
		logger = log.With(logger, "timestamp", log.DefaultTimestampUTC)
	}

	return &Logger{l: logger, format: format}
}

// Default logger of the command line tool, writes events in the given format to stderr.
// Stdout is kept free for output that other tools might consume, e.g. the file list of a dry run.
func DefaultLogger(format Format, options ...Option) *Logger {
	return New(os.Stderr, format, options...)
}

// Logger that discards everything, useful in tests.
func NewNopLogger() *Logger {
	return &Logger{l: log.NewNopLogger()}
}

// Can be used to pretty print json log messages,
// e.g. useful for development/testing.
type prettyJSONWriter struct {
	w io.Writer
}

func newPrettyJSONWriter(w io.Writer) prettyJSONWriter {
	return prettyJSONWriter{w: w}
}

func (w prettyJSONWriter) Write(p []byte) (int, error) {
	var buf bytes.Buffer

	err := json.Indent(&buf, p, "", "  ")
	if err != nil {
		return w.w.Write(p)
	}
	return w.w.Write(buf.Bytes())
}
