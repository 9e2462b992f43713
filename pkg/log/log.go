package log

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

const RequestIDKey = "request_id"

type Fields = logrus.Fields

// Options controls where and how the process logs. Zero values fall back to
// debug level, nested text output and ./storage/logs.
type Options struct {
	Level   string
	Env     string
	Format  string
	Dir     string
	NoFile  bool
	Console io.Writer
}

func optionsFromEnv() Options {
	return Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Env:    os.Getenv("APP_ENV"),
		Format: os.Getenv("LOG_FORMAT"),
		Dir:    os.Getenv("LOG_DIR"),
		NoFile: os.Getenv("APP_ENV") == "test",
	}
}

// NewLogger builds the process wide logger once from LOG_LEVEL, LOG_FORMAT,
// LOG_DIR and APP_ENV.
func NewLogger() *logrus.Logger {
	once.Do(func() {
		logger = New(optionsFromEnv())
	})

	return logger
}

func New(opts Options) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)
	l.SetFormatter(newFormatter(opts))
	l.SetReportCaller(true)

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{console}

	if !opts.NoFile {
		dir := opts.Dir
		if dir == "" {
			dir = "./storage/logs"
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(dir, fmt.Sprintf("app-%s.log", time.Now().Format("2006-01-02"))),
			LocalTime:  true,
			Compress:   true,
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 3,
		})
	}

	l.SetOutput(io.MultiWriter(writers...))
	return l
}

func newFormatter(opts Options) logrus.Formatter {
	if strings.EqualFold(opts.Format, "json") {
		return &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				return shortFunc(f.Function), fmt.Sprintf("%s:%d", path.Base(f.File), f.Line)
			},
		}
	}

	return &formatter.Formatter{
		NoColors:        opts.Env == "production",
		TimestampFormat: "02 Jan 06 - 15:04",
		HideKeys:        false,
		CallerFirst:     true,
		CustomCallerFormatter: func(f *runtime.Frame) string {
			return fmt.Sprintf(" \x1b[%dm[%s:%d][%s()]", 34, path.Base(f.File), f.Line, shortFunc(f.Function))
		},
	}
}

func shortFunc(function string) string {
	s := strings.Split(function, ".")
	return s[len(s)-1]
}

// current falls back to the logrus standard logger until NewLogger has run.
func current() *logrus.Logger {
	if logger == nil {
		return logrus.StandardLogger()
	}
	return logger
}

// ErrorWithTraceID logs msg at error level and returns the trace id attached
// to it: the request id when one is known, a fresh UUID otherwise.
func ErrorWithTraceID(fields Fields, msg string) string {
	if fields == nil {
		fields = Fields{}
	}

	var traceID string
	if reqID, ok := fields[RequestIDKey].(string); ok && reqID != "" && reqID != "unknown" {
		traceID = reqID
	} else {
		id, err := uuid.NewRandom()
		if err != nil {
			current().WithField("error", err.Error()).Error("[log.ErrorWithTraceID] failed to generate trace ID")
			traceID = "unknown"
		} else {
			traceID = id.String()
		}
	}

	fields["trace_id"] = traceID
	current().WithFields(fields).Error(msg)

	return traceID
}
