package mdbook

import (
	"encoding/json"
	"fmt"
	"io"

	"git.home.luguber.info/inful/mdbook-metadata/internal/foundation/errors"
)

// ParseInput decodes the `[context, book]` pair the host writes to stdin.
func ParseInput(r io.Reader) (*Context, *Book, error) {
	var pair []json.RawMessage
	if err := json.NewDecoder(r).Decode(&pair); err != nil {
		return nil, nil, errors.ProtocolError("decode preprocessor input").WithCause(err).Build()
	}
	if len(pair) != 2 {
		return nil, nil, errors.ProtocolError(fmt.Sprintf("expected [context, book] pair, got %d elements", len(pair))).Build()
	}

	ctx := &Context{}
	if err := json.Unmarshal(pair[0], ctx); err != nil {
		return nil, nil, errors.ProtocolError("decode preprocessor context").WithCause(err).Build()
	}
	book := &Book{}
	if err := json.Unmarshal(pair[1], book); err != nil {
		return nil, nil, errors.ProtocolError("decode book").WithCause(err).Build()
	}
	return ctx, book, nil
}

// WriteBook encodes the processed book for the host.
func WriteBook(w io.Writer, book *Book) error {
	if err := json.NewEncoder(w).Encode(book); err != nil {
		return errors.ProtocolError("encode book").WithCause(err).Build()
	}
	return nil
}
