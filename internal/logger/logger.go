package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"mangadesk/internal/domain"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger interface {
	Log() *zerolog.Event
	Fatal() *zerolog.Event
	Error() *zerolog.Event
	Err(err error) *zerolog.Event
	Warn() *zerolog.Event
	Info() *zerolog.Event
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	With() zerolog.Context
	SetLogLevel(level string)
	Module(name string) zerolog.Logger
}

type DefaultLogger struct {
	log     zerolog.Logger
	writers []io.Writer
}

func New(cfg *domain.Config) Logger {
	l := &DefaultLogger{}

	zerolog.TimeFieldFormat = time.RFC3339

	l.writers = append(l.writers, consoleWriter(os.Stderr))

	if cfg.LogPath != "" {
		l.writers = append(l.writers, &lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    cfg.LogMaxSize, // megabytes
			MaxBackups: cfg.LogMaxBackups,
		})
	}

	l.log = zerolog.New(io.MultiWriter(l.writers...)).With().Timestamp().Logger()
	l.SetLogLevel(cfg.LogLevel)

	return l
}

// consoleWriter only colours output when f is a terminal.
func consoleWriter(f *os.File) io.Writer {
	noColor := !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())

	return zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.DateTime}
}

// SetLogLevel changes the global level so module sub-loggers follow reloads too.
func (l *DefaultLogger) SetLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(lvl)
}

func (l *DefaultLogger) Log() *zerolog.Event {
	return l.log.Log()
}

func (l *DefaultLogger) Fatal() *zerolog.Event {
	return l.log.Fatal()
}

func (l *DefaultLogger) Error() *zerolog.Event {
	return l.log.Error()
}

func (l *DefaultLogger) Err(err error) *zerolog.Event {
	return l.log.Err(err)
}

func (l *DefaultLogger) Warn() *zerolog.Event {
	return l.log.Warn()
}

func (l *DefaultLogger) Info() *zerolog.Event {
	return l.log.Info()
}

func (l *DefaultLogger) Trace() *zerolog.Event {
	return l.log.Trace()
}

func (l *DefaultLogger) Debug() *zerolog.Event {
	return l.log.Debug()
}

func (l *DefaultLogger) With() zerolog.Context {
	return l.log.With()
}

// Module returns a sub-logger tagged with the component name.
func (l *DefaultLogger) Module(name string) zerolog.Logger {
	return l.log.With().Str("module", name).Logger()
}
