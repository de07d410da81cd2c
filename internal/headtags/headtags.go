// Package headtags renders page metadata as HTML head elements.
package headtags

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

// TitleKey is the metadata key rendered as a <title> element.
const TitleKey = "title"

// Tag is one metadata key and its display value.
type Tag struct {
	Name    string
	Content string
}

// Render emits one element per tag, each on its own line. The title tag
// becomes <title>; every other tag becomes <meta name=... content=...>.
// Values are NFC-normalised and HTML-escaped.
func Render(tags []Tag) string {
	var sb strings.Builder
	for _, tag := range tags {
		// Writes to a strings.Builder cannot fail.
		_ = html.Render(&sb, node(tag))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Order returns tags with the title first, keeping the relative order of the rest.
func Order(tags []Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		if tag.Name == TitleKey {
			out = append(out, tag)
		}
	}
	for _, tag := range tags {
		if tag.Name != TitleKey {
			out = append(out, tag)
		}
	}
	return out
}

func node(tag Tag) *html.Node {
	content := norm.NFC.String(tag.Content)

	if tag.Name == TitleKey {
		n := &html.Node{Type: html.ElementNode, DataAtom: atom.Title, Data: "title"}
		n.AppendChild(&html.Node{Type: html.TextNode, Data: content})
		return n
	}

	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Meta,
		Data:     "meta",
		Attr: []html.Attribute{
			{Key: "name", Val: tag.Name},
			{Key: "content", Val: content},
		},
	}
}
