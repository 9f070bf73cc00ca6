package parser

import (
	"context"
	"fmt"

	sent "github.com/revelaction/qadecl/sentence"
	"github.com/revelaction/qadecl/storage"
)

// Lookup serves parses stored in advance, for offline runs. A sentence
// missing from the store is an error.
type Lookup struct {
	store storage.ParseReader
}

var _ Source = (*Lookup)(nil)

func NewLookup(store storage.ParseReader) *Lookup {
	return &Lookup{store: store}
}

func (l *Lookup) Tokens(ctx context.Context, sentence string) ([]sent.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens, err := l.store.Read(sentence)
	if err != nil {
		return nil, fmt.Errorf("no stored parse: %w", err)
	}
	return tokens, nil
}
