// Package logging builds the CLI's slog.Logger from persistent command flags.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Log format flag.
const (
	FormatFlagName = "log-format"

	FormatText = "text"
	FormatJSON = "json"
)

// Log level flag.
const (
	LevelFlagName = "log-level"

	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Log output flag.
const (
	OutputFlagName = "log-output"

	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

var (
	formats = []string{FormatText, FormatJSON}
	levels  = []string{LevelWarn, LevelDebug, LevelInfo, LevelError}
	outputs = []string{OutputStderr, OutputStdout}
)

// RegisterFlags adds the logging flags to flags. The first value of each
// list is the default.
//
//	--log-format json --log-level debug --log-output stdout
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(FormatFlagName, formats[0], "log format: "+strings.Join(formats, "|"))
	flags.String(LevelFlagName, levels[0], "log level: "+strings.Join(levels, "|"))
	flags.String(OutputFlagName, outputs[0], "log destination: "+strings.Join(outputs, "|"))
}

// FromCommand creates a logger from the flags of cmd.
func FromCommand(cmd *cobra.Command) (*slog.Logger, error) {
	format, err := get(cmd.Flags(), FormatFlagName, formats)
	if err != nil {
		return nil, err
	}

	level, err := get(cmd.Flags(), LevelFlagName, levels)
	if err != nil {
		return nil, err
	}

	output, err := get(cmd.Flags(), OutputFlagName, outputs)
	if err != nil {
		return nil, err
	}

	var w io.Writer
	switch output {
	case OutputStdout:
		w = cmd.OutOrStdout()
	default:
		w = cmd.ErrOrStderr()
	}

	return New(w, format, parseLevel(level)), nil
}

// New creates a logger writing to w in the given format.
func New(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func get(flags *pflag.FlagSet, name string, allowed []string) (string, error) {
	v, err := flags.GetString(name)
	if err != nil {
		return "", fmt.Errorf("reading flag %s: %w", name, err)
	}

	if !slices.Contains(allowed, v) {
		return "", fmt.Errorf("invalid --%s %q, want one of %s", name, v, strings.Join(allowed, ", "))
	}

	return v, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
