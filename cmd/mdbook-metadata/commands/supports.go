package commands

import (
	"fmt"

	"git.home.luguber.info/inful/mdbook-metadata/internal/config"
	"git.home.luguber.info/inful/mdbook-metadata/internal/metadata"
)

// SupportsCmd implements `supports <renderer>`.
type SupportsCmd struct {
	Renderer string `arg:"" help:"Renderer name, e.g. html"`
}

// Run exits 0 when the renderer is supported. An unclassified error exits 1,
// which tells the host to skip this preprocessor for that renderer.
func (s *SupportsCmd) Run(g *Global, _ *CLI) error {
	pre := metadata.New(config.Default(), metadata.WithLogger(g.Logger))
	if !pre.Supports(s.Renderer) {
		return fmt.Errorf("renderer %q is not supported", s.Renderer)
	}
	return nil
}
