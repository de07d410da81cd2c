package version

import "fmt"

// Set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/mdbook-metadata/internal/version.Version=v0.2.0".
var (
	Version   = "unknown"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the line printed by --version.
func String() string {
	return fmt.Sprintf("mdbook-metadata %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
