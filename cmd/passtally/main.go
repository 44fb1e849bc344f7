package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/passtally/internal/render"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Debug   bool `help:"Enable debug logging"`
	NoColor bool `name:"no-color" help:"Disable coloured output"`

	out io.Writer
}

// Stdout is where commands write their results
func (g *Globals) Stdout() io.Writer {
	if g.out == nil {
		return os.Stdout
	}
	return g.out
}

// Logger returns a stderr logger at the level the flags ask for
func (g *Globals) Logger(prefix string) *log.Logger {
	level := log.InfoLevel
	if g.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
		Level:           level,
	})
}

// Renderer returns a text renderer for Stdout
func (g *Globals) Renderer() *render.Renderer {
	return render.New(g.Stdout(), g.NoColor)
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Trace    TraceCmd         `cmd:"" help:"Trace a signal across a board"`
	Play     PlayCmd          `cmd:"" help:"Replay a scenario file turn by turn"`
	Simulate SimulateCmd      `cmd:"" help:"Run random self-play matches"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("passtally"),
		kong.Description("Rules engine for the passtally tile game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
