package main

import (
	"context"
	"fmt"

	"github.com/revelaction/qadecl/render"
	sent "github.com/revelaction/qadecl/sentence"
)

func sentenceCommand(ctx context.Context, opts SentenceOptions, text string, ui UI) error {
	p := &Pool{size: 1}
	defer p.Close()

	src, _, err := newSource(opts.SourceOptions, p)
	if err != nil {
		return err
	}

	tokens, err := src.Tokens(ctx, text)
	if err != nil {
		return err
	}

	r := render.NewRenderer(ui.Out)
	r.HasColor = !opts.NoColor
	r.Tokens(tokens)

	if _, err := sent.New(tokens); err != nil {
		fmt.Fprintf(ui.Out, "\n%v\n", err)
	}
	return nil
}
