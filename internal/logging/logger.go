package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	Level  string    // debug, info, warn, error
	Format string    // console or json
	Out    io.Writer // defaults to os.Stderr
	Color  bool      // console format only
}

// New returns a *slog.Logger that writes through zerolog.
func New(opts Options) *slog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var w io.Writer = out
	if !strings.EqualFold(opts.Format, "json") {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
			NoColor:    !opts.Color,
		}
	}

	zl := zerolog.New(w).Level(ParseLevel(opts.Level)).With().Timestamp().Logger()
	return slog.New(NewHandler(zl))
}
