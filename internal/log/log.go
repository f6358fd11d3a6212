// Package log configures zerolog for the node and hands out per-component
// loggers.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the root logger. Init replaces it; the zero-config default is
// colored console output at info level.
var Logger zerolog.Logger

// Shared component loggers for packages that log from free functions.
// Components with their own struct state take a logger via WithComponent
// instead.
var (
	Registry zerolog.Logger
	Mint     zerolog.Logger
	Vault    zerolog.Logger
)

func init() {
	Logger = build(consoleWriter(os.Stdout), "info")
	rebindComponents()
}

// Init reconfigures the root logger. Console output is colored unless
// jsonOutput is set; when file is non-empty the same events are also
// appended there, always as JSON so the file stays machine-parseable.
func Init(level string, jsonOutput bool, file string) error {
	var console io.Writer = os.Stdout
	if !jsonOutput {
		console = consoleWriter(os.Stdout)
	}

	w := console
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		w = zerolog.MultiLevelWriter(console, f)
	}

	Logger = build(w, level)
	rebindComponents()
	return nil
}

// WithComponent returns a child logger tagged with a component field.
func WithComponent(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}

func rebindComponents() {
	Registry = WithComponent("registry")
	Mint = WithComponent("mint")
	Vault = WithComponent("vault")
}

func consoleWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}
}

func build(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// parseLevel maps a config string to a zerolog level, defaulting to info.
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
