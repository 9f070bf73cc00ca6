package main

import (
	"context"

	"github.com/revelaction/qadecl/convert"
	"github.com/revelaction/qadecl/detok"
	"github.com/revelaction/qadecl/query"
	"github.com/revelaction/qadecl/render"
	"github.com/revelaction/qadecl/storage"
)

func queryCommand(ctx context.Context, opts QueryOptions, ui UI) error {
	p := &Pool{size: 1}
	defer p.Close()

	src, cache, err := newSource(opts.SourceOptions, p)
	if err != nil {
		return err
	}

	// stored question texts are offered as completions
	var repo storage.ParseReader
	if cache != nil {
		repo = cache
	}

	r := render.NewRenderer(ui.Out)
	r.HasColor = !opts.NoColor

	h, err := query.NewHandler(convert.New(src, detok.New()), r, repo)
	if err != nil {
		return err
	}

	return h.Run(ctx)
}
