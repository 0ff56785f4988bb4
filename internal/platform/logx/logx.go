// internal/platform/logx/logx.go
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// EnvLevel es la variable de entorno que fija el nivel inicial.
const EnvLevel = "CONTACTS_LOG_LEVEL"

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

type zeroLogger struct {
	mu sync.Mutex
	zl zerolog.Logger
}

func New() Logger {
	return NewWriter(os.Stderr, parseLevel(os.Getenv(EnvLevel)))
}

// NewWithLevel creates a logger with a specific log level
func NewWithLevel(lvl Level) Logger {
	return NewWriter(os.Stderr, lvl)
}

// NewSilent creates a logger that only outputs errors (keeps the terminal clean for pterm output)
func NewSilent() Logger {
	return NewWithLevel(LevelError)
}

// NewWriter creates a logger writing human-readable lines to w.
func NewWriter(w io.Writer, lvl Level) Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: "15:04:05",
	}
	zl := zerolog.New(out).With().Timestamp().Logger().Level(toZerolog(lvl))
	return &zeroLogger{zl: zl}
}

func (s *zeroLogger) With(kv ...any) Logger {
	s.mu.Lock()
	ctx := s.zl.With()
	s.mu.Unlock()
	for _, f := range kvPairs(kv...) {
		ctx = ctx.Interface(f.key, f.val)
	}
	return &zeroLogger{zl: ctx.Logger()}
}

func (s *zeroLogger) SetLevel(lvl Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zl = s.zl.Level(toZerolog(lvl))
}

func (s *zeroLogger) Debug(msg string, kv ...any) { s.log(zerolog.DebugLevel, msg, nil, kv...) }
func (s *zeroLogger) Info(msg string, kv ...any)  { s.log(zerolog.InfoLevel, msg, nil, kv...) }
func (s *zeroLogger) Warn(msg string, kv ...any)  { s.log(zerolog.WarnLevel, msg, nil, kv...) }
func (s *zeroLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	s.log(zerolog.ErrorLevel, "", err, kv...)
}

func (s *zeroLogger) log(l zerolog.Level, msg string, err error, kv ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := s.zl.WithLevel(l)
	if ev == nil {
		return
	}
	if err != nil {
		ev = ev.Err(err)
	}
	for _, f := range kvPairs(kv...) {
		ev = ev.Interface(f.key, f.val)
	}
	ev.Msg(msg)
}

type field struct {
	key string
	val any
}

func kvPairs(kv ...any) []field {
	out := make([]field, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		var v any = "(missing)"
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		out = append(out, field{key: fmt.Sprint(kv[i]), val: v})
	}
	return out
}

func toZerolog(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "info", "inf", "":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return LevelInfo
	}
}
