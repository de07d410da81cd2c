package commands

import (
	"git.home.luguber.info/inful/mdbook-metadata/internal/config"
	"git.home.luguber.info/inful/mdbook-metadata/internal/logfields"
	"git.home.luguber.info/inful/mdbook-metadata/internal/mdbook"
	"git.home.luguber.info/inful/mdbook-metadata/internal/metadata"
)

// RunCmd implements the preprocessing pass mdBook invokes without arguments.
type RunCmd struct{}

func (r *RunCmd) Run(g *Global, _ *CLI) error {
	ctx, book, err := mdbook.ParseInput(g.Stdin)
	if err != nil {
		return err
	}

	logger := g.Logger.With(logfields.Renderer(ctx.Renderer))
	if err := mdbook.CheckHostVersion(ctx, mdbook.SupportedHostVersions); err != nil {
		logger.Warn("mdbook version check failed; continuing",
			logfields.MdbookVersion(ctx.MdbookVersion),
			logfields.Error(err))
	}

	cfg, err := config.Decode(ctx.PreprocessorConfig(config.SectionNames...))
	if err != nil {
		return err
	}
	for _, key := range cfg.Unknown {
		logger.Warn("Ignoring unknown configuration key", logfields.Key(key))
	}
	logger.Debug("Loaded configuration",
		"valid_tags", cfg.ValidTags,
		"default_author", cfg.DefaultAuthor,
		"continue_on_error", cfg.ContinueOnError,
		"title_fallback", string(cfg.TitleFallback))

	pre := metadata.New(cfg, metadata.WithLogger(logger))
	processed, err := pre.Run(ctx, book)
	if err != nil {
		return err
	}
	return mdbook.WriteBook(g.Stdout, processed)
}
