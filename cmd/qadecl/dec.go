package main

import (
	"context"

	"github.com/davecgh/go-spew/spew"

	"github.com/revelaction/qadecl/convert"
	"github.com/revelaction/qadecl/detok"
	"github.com/revelaction/qadecl/render"
)

func decCommand(ctx context.Context, opts DecOptions, question, answer string, ui UI) error {
	p := &Pool{size: 1}
	defer p.Close()

	src, _, err := newSource(opts.SourceOptions, p)
	if err != nil {
		return err
	}

	passage := opts.Context
	if passage == "" {
		passage = question + " " + answer
	}

	res, masked, err := convert.New(src, detok.New()).Cloze(ctx, question, answer, passage)
	if err != nil {
		return err
	}

	if opts.Debug {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		cfg.Fdump(ui.Err, res.Question, res.Answer)
	}

	if opts.JSON {
		return render.NewJSONRenderer(ui.Out).Render([]render.Record{render.NewRecord(question, answer, res, masked)})
	}

	r := render.NewRenderer(ui.Out)
	r.HasColor = !opts.NoColor
	r.Result(res, masked)
	return nil
}
