package frontmatter

import (
	"bytes"
	"errors"
)

const delimiter = "---"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrMissingClosingDelimiter indicates the document started with a frontmatter
// delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

// Split separates a `---` delimited frontmatter block from the Markdown body.
//
// The block must be the first non-blank content of the document. Delimiter
// lines may carry trailing whitespace and CRLF line endings are accepted. The
// returned block excludes both delimiter lines; body is everything after the
// closing delimiter line, untouched.
//
// If the document does not start with a delimiter, had is false and body is
// the full input. If the opening delimiter has no matching closing delimiter,
// had is false, body is the full input and err is ErrMissingClosingDelimiter.
func Split(content []byte) (block []byte, body []byte, had bool, err error) {
	rest := bytes.TrimPrefix(content, utf8BOM)

	pos := 0
	for pos < len(rest) {
		line, n := nextLine(rest[pos:])
		if len(bytes.TrimSpace(line)) > 0 {
			break
		}
		pos += n
	}
	if pos >= len(rest) {
		return nil, content, false, nil
	}

	open, n := nextLine(rest[pos:])
	if !isDelimiter(open) {
		return nil, content, false, nil
	}

	start := pos + n
	for p := start; p < len(rest); {
		line, n := nextLine(rest[p:])
		if isDelimiter(line) {
			return rest[start:p], rest[p+n:], true, nil
		}
		p += n
	}

	return nil, content, false, ErrMissingClosingDelimiter
}

// nextLine returns the first line of b without its terminator and the number
// of bytes consumed including the terminator.
func nextLine(b []byte) ([]byte, int) {
	idx := bytes.IndexByte(b, '\n')
	if idx < 0 {
		return b, len(b)
	}
	return b[:idx], idx + 1
}

func isDelimiter(line []byte) bool {
	return string(bytes.TrimSpace(line)) == delimiter
}
