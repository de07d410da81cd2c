package frontmatter

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is a single `key: value` line of a frontmatter block.
type Entry struct {
	Key   string
	Value string
	// Line is the 1-based line number inside the block.
	Line int
}

// LineError reports a block line that is not a `key: value` pair.
type LineError struct {
	Line int
	Text string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("improperly formatted metadata line %d: %q", e.Line, e.Text)
}

// ParseEntries reads a frontmatter block line by line.
//
// Blank lines and `#` comment lines are skipped. Indentation and whitespace
// around the colon are ignored. A key with an empty value yields an Entry with
// an empty Value. Lines without a colon or with an empty key are returned as
// LineErrors and do not stop parsing. When a key repeats, the last value wins
// and the entry keeps the position of its first occurrence.
func ParseEntries(block []byte) ([]Entry, []*LineError) {
	var (
		entries []Entry
		bad     []*LineError
		index   = map[string]int{}
	)

	scanner := bufio.NewScanner(bytes.NewReader(block))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r")
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			bad = append(bad, &LineError{Line: lineNo, Text: raw})
			continue
		}

		entry := Entry{Key: key, Value: DecodeValue(strings.TrimSpace(value)), Line: lineNo}
		if i, seen := index[key]; seen {
			entries[i].Value = entry.Value
			continue
		}
		index[key] = len(entries)
		entries = append(entries, entry)
	}

	return entries, bad
}

// DecodeValue turns the raw text after the colon into a display string.
//
// Quoted scalars are unquoted and flow sequences such as `[go, yaml]` are
// joined with ", ". Anything else, including text YAML cannot parse, is
// returned as written.
func DecodeValue(raw string) string {
	if raw == "" {
		return ""
	}
	switch raw[0] {
	case '"', '\'', '[':
	default:
		return raw
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil || len(doc.Content) == 0 {
		return raw
	}

	node := doc.Content[0]
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value
	case yaml.SequenceNode:
		parts := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return raw
			}
			parts = append(parts, item.Value)
		}
		return strings.Join(parts, ", ")
	default:
		return raw
	}
}
