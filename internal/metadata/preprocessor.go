// Package metadata turns chapter frontmatter into HTML head tags.
package metadata

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/hashicorp/go-multierror"

	"git.home.luguber.info/inful/mdbook-metadata/internal/config"
	"git.home.luguber.info/inful/mdbook-metadata/internal/foundation/errors"
	"git.home.luguber.info/inful/mdbook-metadata/internal/frontmatter"
	"git.home.luguber.info/inful/mdbook-metadata/internal/headtags"
	"git.home.luguber.info/inful/mdbook-metadata/internal/logfields"
	"git.home.luguber.info/inful/mdbook-metadata/internal/markdown"
	"git.home.luguber.info/inful/mdbook-metadata/internal/mdbook"
	"git.home.luguber.info/inful/mdbook-metadata/internal/util/sets"
)

// Name is the name this preprocessor registers under with the host.
const Name = "metadata-preprocessor"

const authorKey = "author"

// Preprocessor rewrites every chapter of a book. It holds no per-page state.
type Preprocessor struct {
	cfg    config.Config
	logger *slog.Logger
}

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithLogger sets the logger used for per-entry warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Preprocessor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Preprocessor for a validated configuration.
func New(cfg config.Config, opts ...Option) *Preprocessor {
	p := &Preprocessor{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the registered preprocessor name.
func (p *Preprocessor) Name() string { return Name }

// Supports answers the host's renderer handshake. Head tags are plain HTML
// in the chapter source, so every renderer is accepted.
func (p *Preprocessor) Supports(renderer string) bool {
	p.logger.Debug("Renderer handshake", logfields.Renderer(renderer))
	return true
}

// Run processes every chapter of book. Chapters are independent: a failing
// chapter does not stop the others from being checked, but any failure fails
// the whole run and the book is not returned.
func (p *Preprocessor) Run(_ *mdbook.Context, book *mdbook.Book) (*mdbook.Book, error) {
	start := time.Now()

	var failures *multierror.Error
	chapters := 0
	err := book.ForEachChapter(func(ch *mdbook.Chapter) error {
		chapters++
		if err := p.ProcessChapter(ch); err != nil {
			p.logger.Error("Failed to process chapter metadata", logfields.Chapter(ch.Name), logfields.Error(err))
			failures = multierror.Append(failures, err)
		}
		return nil
	})
	if err != nil {
		return nil, errors.InternalError("walk book chapters").WithCause(err).Build()
	}

	if failures.ErrorOrNil() != nil {
		failures.ErrorFormat = listFormat
		return nil, errors.MetadataError(fmt.Sprintf("metadata errors in %d of %d chapters", failures.Len(), chapters)).
			WithCause(failures).
			Build()
	}

	p.logger.Info("Processed book metadata",
		slog.Int("chapters", chapters),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return book, nil
}

// ProcessChapter rewrites a single chapter in place. Content without a
// frontmatter block is left untouched. On error the chapter is not modified.
func (p *Preprocessor) ProcessChapter(ch *mdbook.Chapter) error {
	log := p.logger.With(logfields.Chapter(ch.Name))

	block, body, had, err := frontmatter.Split([]byte(ch.Content))
	if stderrors.Is(err, frontmatter.ErrMissingClosingDelimiter) {
		log.Warn("Frontmatter has no closing delimiter; leaving chapter unchanged")
		return nil
	}
	if !had {
		return nil
	}

	entries, malformed := frontmatter.ParseEntries(block)

	var problems []error
	for _, bad := range malformed {
		if p.cfg.ContinueOnError {
			log.Warn("Improperly formatted metadata line skipped", logfields.Line(bad.Line), slog.String("text", bad.Text))
			continue
		}
		problems = append(problems, bad)
	}

	tags := make([]headtags.Tag, 0, len(entries)+2)
	present := sets.New[string]()
	for _, entry := range entries {
		if !p.cfg.Allows(entry.Key) {
			if p.cfg.ContinueOnError {
				log.Warn("Metadata key not in valid-tags skipped", logfields.Key(entry.Key), logfields.Line(entry.Line))
				continue
			}
			problems = append(problems, fmt.Errorf("metadata key %q on line %d is not in valid-tags", entry.Key, entry.Line))
			continue
		}
		if entry.Value == "" {
			log.Debug("Empty metadata value treated as absent", logfields.Key(entry.Key))
			continue
		}
		log.Debug("Parsed metadata", logfields.Key(entry.Key), slog.String("value", entry.Value))
		tags = append(tags, headtags.Tag{Name: entry.Key, Content: entry.Value})
		present.Add(entry.Key)
	}

	if len(problems) > 0 {
		return errors.ValidationError(fmt.Sprintf("chapter %q", ch.Name)).
			WithCause(&multierror.Error{Errors: problems, ErrorFormat: inlineFormat}).
			WithContext(logfields.KeyChapter, ch.Name).
			Build()
	}

	content := strings.TrimLeftFunc(string(body), unicode.IsSpace)

	if !present.Has(headtags.TitleKey) && p.cfg.Allows(headtags.TitleKey) {
		if title := p.fallbackTitle(ch, content); title != "" {
			tags = append(tags, headtags.Tag{Name: headtags.TitleKey, Content: title})
		}
	}
	if !present.Has(authorKey) && p.cfg.DefaultAuthor != "" && p.cfg.Allows(authorKey) {
		tags = append(tags, headtags.Tag{Name: authorKey, Content: p.cfg.DefaultAuthor})
	}

	if len(tags) > 0 {
		content = headtags.Render(headtags.Order(tags)) + "\n" + content
	}
	log.Debug("Rewrote chapter head tags", logfields.Tags(len(tags)))
	ch.Content = content
	return nil
}

func (p *Preprocessor) fallbackTitle(ch *mdbook.Chapter, body string) string {
	switch p.cfg.TitleFallback {
	case config.TitleFallbackChapter:
		return ch.Name
	case config.TitleFallbackHeading:
		return markdown.FirstHeading([]byte(body))
	default:
		return ""
	}
}

func listFormat(errs []error) string {
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "\n")
}

func inlineFormat(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}
