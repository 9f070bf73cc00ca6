package parser

import (
	"context"
	"errors"

	"github.com/tliron/commonlog"

	sent "github.com/revelaction/qadecl/sentence"
	"github.com/revelaction/qadecl/storage"
)

var log = commonlog.GetLogger("qadecl.parser")

// Cached consults a parse repository before the wrapped source and stores
// what the source returns.
type Cached struct {
	src  Source
	repo storage.ParseRepository
}

var _ Source = (*Cached)(nil)

func NewCached(src Source, repo storage.ParseRepository) *Cached {
	return &Cached{src: src, repo: repo}
}

func (c *Cached) Tokens(ctx context.Context, sentence string) ([]sent.Token, error) {
	tokens, err := c.repo.Read(sentence)
	if err == nil {
		return tokens, nil
	}

	if !errors.Is(err, storage.ErrNotFound) {
		log.Warningf("parse cache read failed: %s", err)
	}

	tokens, err = c.src.Tokens(ctx, sentence)
	if err != nil {
		return nil, err
	}

	if err := c.repo.Write(sentence, tokens); err != nil {
		log.Warningf("parse cache write failed: %s", err)
	}

	return tokens, nil
}
