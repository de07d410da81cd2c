package mdbook

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	keySections      = "sections"
	keyItems         = "items"
	keyNonExhaustive = "__non_exhaustive"

	keyName     = "name"
	keyContent  = "content"
	keySubItems = "sub_items"

	variantChapter   = "Chapter"
	variantPartTitle = "PartTitle"
	variantSeparator = "Separator"
)

// Book is the second element of the host's input pair and the sole output.
// mdBook 0.4 lists the table of contents under "sections" and requires a
// "__non_exhaustive" marker; 0.5 uses "items" without the marker. The layout
// read from the host is the layout written back.
type Book struct {
	Sections []BookItem

	itemsKey string
	extra    map[string]json.RawMessage
}

// BookItem is one entry of a book's table of contents. Exactly one of
// Chapter, Separator or PartTitle is set for known variants; unknown
// variants are preserved verbatim.
type BookItem struct {
	Chapter   *Chapter
	Separator bool
	PartTitle *string

	raw json.RawMessage
}

// Chapter is a single page of the book.
type Chapter struct {
	Name     string
	Content  string
	SubItems []BookItem

	extra map[string]json.RawMessage
}

// ForEachChapter visits every chapter depth-first, parents before their
// sub-chapters, and stops at the first error fn returns.
func (b *Book) ForEachChapter(fn func(*Chapter) error) error {
	if b == nil {
		return nil
	}
	return walkItems(b.Sections, fn)
}

func walkItems(items []BookItem, fn func(*Chapter) error) error {
	for i := range items {
		ch := items[i].Chapter
		if ch == nil {
			continue
		}
		if err := fn(ch); err != nil {
			return err
		}
		if err := walkItems(ch.SubItems, fn); err != nil {
			return err
		}
	}
	return nil
}

// SourcePath returns the chapter's path relative to the book's src
// directory, or "" for draft chapters.
func (c *Chapter) SourcePath() string {
	for _, key := range []string{"source_path", "path"} {
		var p *string
		if raw, ok := c.extra[key]; ok && json.Unmarshal(raw, &p) == nil && p != nil {
			return *p
		}
	}
	return ""
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Book) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	b.itemsKey = ""
	for _, key := range []string{keySections, keyItems} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &b.Sections); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		delete(fields, key)
		b.itemsKey = key
		break
	}
	b.extra = fields
	return nil
}

func (b *Book) key() string {
	if b.itemsKey == "" {
		return keySections
	}
	return b.itemsKey
}

// MarshalJSON implements json.Marshaler.
func (b Book) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.extra)+2)
	for k, v := range b.extra {
		out[k] = v
	}
	sections := b.Sections
	if sections == nil {
		sections = []BookItem{}
	}
	key := b.key()
	out[key] = sections
	if _, ok := out[keyNonExhaustive]; !ok && key == keySections {
		out[keyNonExhaustive] = nil
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (it *BookItem) UnmarshalJSON(data []byte) error {
	*it = BookItem{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var variant string
		if err := json.Unmarshal(trimmed, &variant); err != nil {
			return err
		}
		if variant == variantSeparator {
			it.Separator = true
			return nil
		}
		it.raw = append(json.RawMessage(nil), trimmed...)
		return nil
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return fmt.Errorf("decode book item: %w", err)
	}
	if raw, ok := fields[variantChapter]; ok && len(fields) == 1 {
		it.Chapter = &Chapter{}
		return json.Unmarshal(raw, it.Chapter)
	}
	if raw, ok := fields[variantPartTitle]; ok && len(fields) == 1 {
		var title string
		if err := json.Unmarshal(raw, &title); err != nil {
			return fmt.Errorf("decode part title: %w", err)
		}
		it.PartTitle = &title
		return nil
	}
	it.raw = append(json.RawMessage(nil), trimmed...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (it BookItem) MarshalJSON() ([]byte, error) {
	switch {
	case it.Chapter != nil:
		return json.Marshal(map[string]*Chapter{variantChapter: it.Chapter})
	case it.Separator:
		return json.Marshal(variantSeparator)
	case it.PartTitle != nil:
		return json.Marshal(map[string]string{variantPartTitle: *it.PartTitle})
	case it.raw != nil:
		return it.raw, nil
	default:
		return nil, fmt.Errorf("empty book item")
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Chapter) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	decode := func(key string, dst any) error {
		raw, ok := fields[key]
		if !ok {
			return nil
		}
		delete(fields, key)
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("decode chapter %s: %w", key, err)
		}
		return nil
	}

	if err := decode(keyName, &c.Name); err != nil {
		return err
	}
	if err := decode(keyContent, &c.Content); err != nil {
		return err
	}
	if err := decode(keySubItems, &c.SubItems); err != nil {
		return err
	}
	c.extra = fields
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c *Chapter) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.extra)+3)
	for k, v := range c.extra {
		out[k] = v
	}
	subItems := c.SubItems
	if subItems == nil {
		subItems = []BookItem{}
	}
	out[keyName] = c.Name
	out[keyContent] = c.Content
	out[keySubItems] = subItems
	return json.Marshal(out)
}
