package mdbook

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdbook-metadata/internal/foundation/errors"
)

func loadInput(t *testing.T) (*Context, *Book, []json.RawMessage) {
	t.Helper()
	data, err := os.ReadFile("testdata/input.json")
	require.NoError(t, err)

	ctx, book, err := ParseInput(bytes.NewReader(data))
	require.NoError(t, err)

	var pair []json.RawMessage
	require.NoError(t, json.Unmarshal(data, &pair))
	return ctx, book, pair
}

func TestParseInput_Context(t *testing.T) {
	ctx, _, _ := loadInput(t)

	assert.Equal(t, "/home/user/book", ctx.Root)
	assert.Equal(t, "html", ctx.Renderer)
	assert.Equal(t, "0.4.40", ctx.MdbookVersion)

	table := ctx.PreprocessorConfig("metadata")
	require.NotNil(t, table)
	assert.Equal(t, "Docs Team", table["default-author"])
	assert.Equal(t, false, table["continue-on-error"])
}

func TestParseInput_BookItems(t *testing.T) {
	_, book, _ := loadInput(t)

	require.Len(t, book.Sections, 5)
	require.NotNil(t, book.Sections[0].Chapter)
	assert.Equal(t, "Introduction", book.Sections[0].Chapter.Name)
	assert.Equal(t, "intro.md", book.Sections[0].Chapter.SourcePath())
	require.NotNil(t, book.Sections[1].PartTitle)
	assert.Equal(t, "User Guide", *book.Sections[1].PartTitle)
	assert.True(t, book.Sections[3].Separator)
	assert.Equal(t, "", book.Sections[4].Chapter.SourcePath())
}

func TestWriteBook_RoundTripsUnchanged(t *testing.T) {
	_, book, pair := loadInput(t)

	var out bytes.Buffer
	require.NoError(t, WriteBook(&out, book))
	assert.JSONEq(t, string(pair[1]), out.String())
}

func TestWriteBook_CarriesEdits(t *testing.T) {
	_, book, _ := loadInput(t)
	book.Sections[0].Chapter.Content = "changed"

	var out bytes.Buffer
	require.NoError(t, WriteBook(&out, book))

	var decoded Book
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "changed", decoded.Sections[0].Chapter.Content)
	assert.Equal(t, "intro.md", decoded.Sections[0].Chapter.SourcePath())
}

func TestWriteBook_AddsNonExhaustiveMarker(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteBook(&out, &Book{}))
	assert.JSONEq(t, `{"sections": [], "__non_exhaustive": null}`, out.String())
}

func TestBook_ItemsLayout(t *testing.T) {
	input := `{"items": [{"Chapter": {"name": "Intro", "content": "Body", "number": [1], "sub_items": [], "path": "intro.md", "source_path": "intro.md", "parent_names": []}}, "Separator"]}`

	var book Book
	require.NoError(t, json.Unmarshal([]byte(input), &book))
	require.Len(t, book.Sections, 2)
	require.NotNil(t, book.Sections[0].Chapter)
	assert.Equal(t, "Intro", book.Sections[0].Chapter.Name)

	var names []string
	require.NoError(t, book.ForEachChapter(func(ch *Chapter) error {
		names = append(names, ch.Name)
		return nil
	}))
	assert.Equal(t, []string{"Intro"}, names)

	var out bytes.Buffer
	require.NoError(t, WriteBook(&out, &book))
	assert.JSONEq(t, input, out.String())
	assert.NotContains(t, out.String(), "sections")
	assert.NotContains(t, out.String(), "__non_exhaustive")
}

func TestBookItem_UnknownVariantPreserved(t *testing.T) {
	input := `{"sections": [{"Appendix": {"name": "x"}}, "Spacer"], "__non_exhaustive": null}`

	var book Book
	require.NoError(t, json.Unmarshal([]byte(input), &book))
	require.Len(t, book.Sections, 2)
	assert.Nil(t, book.Sections[0].Chapter)
	assert.False(t, book.Sections[1].Separator)

	out, err := json.Marshal(book)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestForEachChapter_DepthFirstPreOrder(t *testing.T) {
	_, book, _ := loadInput(t)

	var names []string
	require.NoError(t, book.ForEachChapter(func(ch *Chapter) error {
		names = append(names, ch.Name)
		return nil
	}))
	assert.Equal(t, []string{"Introduction", "Install", "Linux", "Draft"}, names)
}

func TestForEachChapter_StopsOnError(t *testing.T) {
	_, book, _ := loadInput(t)

	visited := 0
	err := book.ForEachChapter(func(ch *Chapter) error {
		visited++
		if ch.Name == "Install" {
			return assert.AnError
		}
		return nil
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 2, visited)
}

func TestForEachChapter_MutatesInPlace(t *testing.T) {
	_, book, _ := loadInput(t)

	require.NoError(t, book.ForEachChapter(func(ch *Chapter) error {
		ch.Content = strings.ToUpper(ch.Name)
		return nil
	}))
	assert.Equal(t, "LINUX", book.Sections[2].Chapter.SubItems[0].Chapter.Content)
}

func TestParseInput_Errors(t *testing.T) {
	cases := map[string]string{
		"not json":      "{",
		"single item":   `[{}]`,
		"bad context":   `[[], {"sections": []}]`,
		"bad book item": `[{}, {"sections": [42]}]`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseInput(strings.NewReader(input))
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryProtocol))
		})
	}
}
