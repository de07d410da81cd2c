package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

// Global carries the process streams and logger into subcommands.
type Global struct {
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
}

// NewGlobal returns a Global bound to the real process streams and the default logger.
func NewGlobal() *Global {
	return &Global{
		Logger: slog.Default(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

// CLI definition & global flags.
type CLI struct {
	Verbose   bool             `short:"v" help:"Enable verbose logging (same as --log-level=debug)"`
	LogLevel  string           `name:"log-level" help:"Log level" enum:"debug,info,warn,error" default:"info" env:"MDBOOK_METADATA_LOG"`
	LogFormat string           `name:"log-format" help:"Log output format" enum:"text,json" default:"text"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run      RunCmd      `cmd:"" default:"1" help:"Read [context, book] from stdin and write the processed book to stdout"`
	Supports SupportsCmd `cmd:"" help:"Renderer compatibility handshake: exit 0 if the renderer is supported"`

	logOutput io.Writer `kong:"-"`
}

// AfterApply runs after flag parsing; setup logging once.
// Logs always go to stderr because stdout carries the processed book.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	out := c.logOutput
	if out == nil {
		out = os.Stderr
	}
	slog.SetDefault(slog.New(c.handler(out)))
	return nil
}

func (c *CLI) handler(out io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: c.level()}
	if c.LogFormat == "json" {
		return slog.NewJSONHandler(out, opts)
	}
	return slog.NewTextHandler(out, opts)
}

func (c *CLI) level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
