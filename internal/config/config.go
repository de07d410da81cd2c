package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"

	"git.home.luguber.info/inful/mdbook-metadata/internal/foundation/errors"
	"git.home.luguber.info/inful/mdbook-metadata/internal/util/sets"
)

// SectionNames are the [preprocessor.<name>] tables read from book.toml, in order of preference.
var SectionNames = []string{"metadata", "metadata-preprocessor"}

// hostKeys are interpreted by mdBook itself and never reach this preprocessor's logic.
var hostKeys = []string{"command", "renderer", "renderers", "before", "after", "optional"}

// Config is the decoded [preprocessor.metadata] table.
type Config struct {
	// ValidTags lists the permitted frontmatter keys. See Allows.
	ValidTags       []string      `mapstructure:"valid-tags"`
	DefaultAuthor   string        `mapstructure:"default-author"`
	ContinueOnError bool          `mapstructure:"continue-on-error"`
	TitleFallback   TitleFallback `mapstructure:"title-fallback"`

	// Unknown holds table keys that neither this preprocessor nor mdBook recognise.
	Unknown []string `mapstructure:"-"`

	restrictTags bool
	validSet     sets.Set[string]
}

// Default returns the configuration used when book.toml has no table for this preprocessor.
func Default() Config {
	return Config{
		ContinueOnError: true,
		TitleFallback:   TitleFallbackNone,
	}
}

// Decode builds a validated Config from the raw host table. Scalars are
// converted leniently: "false" decodes as a bool and a single string
// decodes as a one-element valid-tags list.
func Decode(table map[string]any) (Config, error) {
	cfg := Default()
	if table == nil {
		return cfg, nil
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		Metadata:         &md,
	})
	if err != nil {
		return cfg, errors.InternalError("create config decoder").WithCause(err).Build()
	}
	if err := decoder.Decode(table); err != nil {
		return cfg, errors.ConfigError("decode [preprocessor.metadata]").WithCause(err).Build()
	}

	unknown := sets.New[string]()
	for _, key := range md.Unused {
		if !slices.Contains(hostKeys, key) {
			unknown.Add(key)
		}
	}
	if len(unknown) > 0 {
		cfg.Unknown = sets.Sorted(unknown)
	}

	_, cfg.restrictTags = table["valid-tags"]
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate normalises the record and rejects values the preprocessor cannot act on.
func (c *Config) Validate() error {
	if c.TitleFallback == "" {
		c.TitleFallback = TitleFallbackNone
	}
	normalized := NormalizeTitleFallback(string(c.TitleFallback))
	if normalized == "" {
		return errors.ConfigError(fmt.Sprintf("invalid title-fallback %q (expected none, chapter or heading)", c.TitleFallback)).
			WithContext("title-fallback", string(c.TitleFallback)).
			Build()
	}
	c.TitleFallback = normalized

	c.validSet = sets.New[string]()
	for i, tag := range c.ValidTags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return errors.ConfigError(fmt.Sprintf("valid-tags entry %d is blank", i)).Build()
		}
		c.ValidTags[i] = tag
		c.validSet.Add(tag)
	}
	if c.ValidTags != nil {
		c.restrictTags = true
	}
	return nil
}

// Allows reports whether key may appear in a page's frontmatter. With no
// valid-tags configured every key is allowed; an empty list allows none.
func (c *Config) Allows(key string) bool {
	if !c.restrictTags {
		return true
	}
	return c.validSet.Has(key)
}

// TitleFallback selects where a missing title comes from.
type TitleFallback string

const (
	TitleFallbackNone    TitleFallback = "none"    // leave the title out
	TitleFallbackChapter TitleFallback = "chapter" // use the chapter name from SUMMARY.md
	TitleFallbackHeading TitleFallback = "heading" // use the first level-1 heading of the page
)

// NormalizeTitleFallback canonicalizes user input returning empty string if unknown.
func NormalizeTitleFallback(raw string) TitleFallback {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(TitleFallbackNone):
		return TitleFallbackNone
	case string(TitleFallbackChapter):
		return TitleFallbackChapter
	case string(TitleFallbackHeading):
		return TitleFallbackHeading
	default:
		return ""
	}
}
