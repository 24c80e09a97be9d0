package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/nvvi9/kotlin/cmd/kotlintypes/internal/check"
	"github.com/nvvi9/kotlin/cmd/kotlintypes/internal/expand"
)

type CLI struct {
	Verbose bool `help:"Enable debug logging." short:"v"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Check   check.Cmd  `cmd:"" help:"Validate a declaration document and all alias expansions."`
	Expand  expand.Cmd `cmd:"" help:"Expand type aliases from a declaration document to canonical types."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("kotlintypes"),
		kong.Description("Type-alias expansion engine over Kotlin-style classifier declarations."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
