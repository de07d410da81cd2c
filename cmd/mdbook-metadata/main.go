package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdbook-metadata/cmd/mdbook-metadata/commands"
	"git.home.luguber.info/inful/mdbook-metadata/internal/foundation/errors"
	"git.home.luguber.info/inful/mdbook-metadata/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("mdbook-metadata"),
		kong.Description("An mdbook preprocessor that turns page frontmatter into title and meta tags"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := parser.Run(commands.NewGlobal(), cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
