package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/chenyuan/blogsite/cmd/blogsite/commands"
	"git.home.luguber.info/chenyuan/blogsite/internal/config"
	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

func main() {
	// .env supplies secrets such as GITHUB_TOKEN before kong reads env-backed flags.
	config.LoadEnvFiles()

	cli := &commands.CLI{}
	global := &commands.Global{}
	parser := kong.Must(cli,
		kong.Name("blogsite"),
		kong.Description("Generate and serve the blog/documentation site with Hugo."),
		kong.UsageOnError(),
		kong.Bind(global),
	)
	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}
	if err := ctx.Run(global, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
