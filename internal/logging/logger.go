package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON console logger as the process default. level is
// the textual LOG_LEVEL value; anything unparseable falls back to info.
func Setup(level string) {
	slog.SetDefault(slog.New(ConsoleHandler(level)))
}

// ConsoleHandler builds the stdout JSON handler used both standalone at
// startup and as the console branch of the tee once the database sink
// is attached.
func ConsoleHandler(level string) slog.Handler {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
}
