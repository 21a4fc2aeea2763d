// Package logging configures the global zerolog logger for the CLI.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup routes the global logger to stderr at the given level. Colour is
// only used when stderr is a terminal. An unparsable level falls back to warn.
func Setup(level string) {
	noColor := !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd())
	SetupWriter(level, colorable.NewColorableStderr(), noColor)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(level string, w io.Writer, noColor bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}).With().Timestamp().Logger()

	if err != nil {
		log.Warn().Str("level", level).Msg("Unknown log level, using warn")
	}
}
