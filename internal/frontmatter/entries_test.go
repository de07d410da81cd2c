package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntries_WellFormed(t *testing.T) {
	block := []byte("title: Test Chapter\nkeywords: rust, testing, mdbook\nreleased: true\n")

	entries, bad := ParseEntries(block)
	require.Empty(t, bad)
	require.Equal(t, []Entry{
		{Key: "title", Value: "Test Chapter", Line: 1},
		{Key: "keywords", Value: "rust, testing, mdbook", Line: 2},
		{Key: "released", Value: "true", Line: 3},
	}, entries)
}

func TestParseEntries_ForgivesIndentation(t *testing.T) {
	block := []byte("    title: Test Chapter\n   keywords:   rust, testing, mdbook\n    released :true\n")

	entries, bad := ParseEntries(block)
	require.Empty(t, bad)
	require.Len(t, entries, 3)
	assert.Equal(t, "Test Chapter", entries[0].Value)
	assert.Equal(t, "rust, testing, mdbook", entries[1].Value)
	assert.Equal(t, "released", entries[2].Key)
	assert.Equal(t, "true", entries[2].Value)
}

func TestParseEntries_MalformedLinesReported(t *testing.T) {
	block := []byte("title = Incorrect Format\nauthor: Jane\n: no key\n")

	entries, bad := ParseEntries(block)
	require.Equal(t, []Entry{{Key: "author", Value: "Jane", Line: 2}}, entries)
	require.Len(t, bad, 2)
	assert.Equal(t, 1, bad[0].Line)
	assert.Equal(t, "title = Incorrect Format", bad[0].Text)
	assert.Equal(t, 3, bad[1].Line)
	assert.Contains(t, bad[0].Error(), `"title = Incorrect Format"`)
}

func TestParseEntries_SkipsBlankAndCommentLines(t *testing.T) {
	entries, bad := ParseEntries([]byte("\n# note\n  \ntitle: A\r\n"))
	require.Empty(t, bad)
	require.Equal(t, []Entry{{Key: "title", Value: "A", Line: 4}}, entries)
}

func TestParseEntries_DuplicateKeyLastWinsFirstPosition(t *testing.T) {
	entries, bad := ParseEntries([]byte("author: A\ntitle: T\nauthor: B\n"))
	require.Empty(t, bad)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Key: "author", Value: "B", Line: 1}, entries[0])
	assert.Equal(t, "title", entries[1].Key)
}

func TestParseEntries_EmptyValue(t *testing.T) {
	entries, bad := ParseEntries([]byte("author:\n"))
	require.Empty(t, bad)
	require.Equal(t, []Entry{{Key: "author", Value: "", Line: 1}}, entries)
}

func TestParseEntries_ValueKeepsLaterColons(t *testing.T) {
	entries, _ := ParseEntries([]byte("homepage: https://example.org:8080/x\n"))
	require.Len(t, entries, 1)
	assert.Equal(t, "https://example.org:8080/x", entries[0].Value)
}

func TestDecodeValue(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"Title #1", "Title #1"},
		{`"Hello: World"`, "Hello: World"},
		{`'It''s'`, "It's"},
		{"[go, yaml]", "go, yaml"},
		{"[2024-01-01, 3]", "2024-01-01, 3"},
		{"[a, [b]]", "[a, [b]]"},
		{`"unterminated`, `"unterminated`},
		{"true", "true"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, DecodeValue(tc.raw))
		})
	}
}
