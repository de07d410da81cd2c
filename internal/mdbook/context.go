package mdbook

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// SupportedHostVersions is the range of mdBook releases whose protocol this module speaks.
const SupportedHostVersions = ">= 0.4.0, < 0.6.0"

// Context is the first element of the host's input pair.
type Context struct {
	Root          string         `json:"root"`
	Config        map[string]any `json:"config"`
	Renderer      string         `json:"renderer"`
	MdbookVersion string         `json:"mdbook_version"`
}

// PreprocessorConfig returns the [preprocessor.<name>] table for the first
// name present in the book configuration, or nil.
func (c *Context) PreprocessorConfig(names ...string) map[string]any {
	if c == nil {
		return nil
	}
	tables, _ := c.Config["preprocessor"].(map[string]any)
	for _, name := range names {
		if table, ok := tables[name].(map[string]any); ok {
			return table
		}
	}
	return nil
}

// VersionMismatchError reports a host version outside the supported range.
type VersionMismatchError struct {
	Host       string
	Constraint string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("mdbook version %s is outside the supported range %q", e.Host, e.Constraint)
}

// CheckHostVersion compares the host's mdbook_version against constraint.
// Pre-release suffixes are ignored so that release candidates of a supported
// line are accepted.
func CheckHostVersion(ctx *Context, constraint string) error {
	if ctx == nil || ctx.MdbookVersion == "" {
		return fmt.Errorf("host did not report an mdbook version")
	}

	host, err := goversion.NewVersion(ctx.MdbookVersion)
	if err != nil {
		return fmt.Errorf("parse mdbook version %q: %w", ctx.MdbookVersion, err)
	}
	constraints, err := goversion.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parse version constraint %q: %w", constraint, err)
	}

	if !constraints.Check(host.Core()) {
		return &VersionMismatchError{Host: ctx.MdbookVersion, Constraint: constraint}
	}
	return nil
}
