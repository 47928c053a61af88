// Package log provides the process-wide structured logger used across the
// verifier DAG packages. It wraps zerolog with a level controlled by
// $LOG_LEVEL so that CI and interactive runs can both tune verbosity
// without threading a logger through every constructor.
package log

import (
	"cmp"
	"fmt"
	"os"
	"path"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	timeFormat = "2006-01-02T15:04:05.000Z07:00"
)

var (
	logger zerolog.Logger
	mu     sync.RWMutex
)

func init() {
	Init(cmp.Or(os.Getenv("LOG_LEVEL"), "info"), "stderr")
}

// Init (re)configures the global logger. output is "stdout", "stderr", or a
// file path.
func Init(level, output string) {
	var out *os.File
	switch output {
	case "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			panic(fmt.Sprintf("cannot open log output %q: %v", output, err))
		}
		out = f
	}

	cw := zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerolog.CallerSkipFrameCount = 3
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		return fmt.Sprintf("%s/%s:%d", path.Base(path.Dir(file)), path.Base(file), line)
	}

	l := zerolog.New(cw).With().Timestamp().Caller().Logger()
	switch strings.ToLower(level) {
	case LevelDebug:
		l = l.Level(zerolog.DebugLevel)
	case LevelInfo:
		l = l.Level(zerolog.InfoLevel)
	case LevelWarn:
		l = l.Level(zerolog.WarnLevel)
	case LevelError:
		l = l.Level(zerolog.ErrorLevel)
	default:
		panic(fmt.Sprintf("invalid log level: %q", level))
	}

	setLogger(l)
}

func setLogger(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Logger returns the current global logger.
func Logger() *zerolog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	return &l
}

func Debug(args ...any) { Logger().Debug().Msg(fmt.Sprint(args...)) }
func Info(args ...any)  { Logger().Info().Msg(fmt.Sprint(args...)) }
func Warn(args ...any)  { Logger().Warn().Msg(fmt.Sprint(args...)) }
func Error(args ...any) { Logger().Error().Msg(fmt.Sprint(args...)) }

func Debugf(template string, args ...any) { Logger().Debug().Msgf(template, args...) }
func Infof(template string, args ...any)  { Logger().Info().Msgf(template, args...) }
func Warnf(template string, args ...any)  { Logger().Warn().Msgf(template, args...) }
func Errorf(template string, args ...any) { Logger().Error().Msgf(template, args...) }

// Fatalf logs at fatal level with a stack trace and exits the process.
func Fatalf(template string, args ...any) {
	Logger().Fatal().Msgf(template+"\n"+string(debug.Stack()), args...)
	panic("unreachable")
}

// Errorw logs err alongside msg, the pattern used throughout orchestrate
// for retryable back-end failures.
func Errorw(err error, msg string) {
	Logger().Error().Err(err).Msg(msg)
}

// Retryf logs a retry attempt at warn level with structured attempt/max
// fields, used by orchestrate's UnsafeError retry loop.
func Retryf(attempt, max int, err error, msg string) {
	Logger().Warn().Int("attempt", attempt).Int("max", max).Err(err).Msg(msg)
}
