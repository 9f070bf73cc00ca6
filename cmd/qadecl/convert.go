package main

import (
	"context"
	"fmt"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/qadecl/convert"
	"github.com/revelaction/qadecl/detok"
	"github.com/revelaction/qadecl/render"
	"github.com/revelaction/qadecl/squad"
	"github.com/revelaction/qadecl/stat"
)

func convertCommand(ctx context.Context, opts ConvertOptions, ui UI) error {
	d, err := squad.ReadFile(opts.In)
	if err != nil {
		return err
	}

	p := &Pool{size: opts.Workers}
	defer p.Close()

	newSrc, _, err := newSourceFactory(opts.SourceOptions, p)
	if err != nil {
		return err
	}

	pool, err := convert.NewPool(opts.Workers, func() (*convert.Converter, error) {
		return convert.New(newSrc(), detok.New()), nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "Converting %d questions of %d articles from %s with %d workers...\n", d.NumQas(), len(d.Data), opts.In, pool.Size())

	uiprogress.Start()
	bar := uiprogress.AddBar(len(d.Data))
	bar.AppendCompleted()
	bar.PrependElapsed()

	var skips []convert.Skip
	c := convert.Collect(pool.Run(ctx, d.Data), len(d.Data), func(done int, o convert.Outcome) {
		skips = append(skips, o.Skips...)
		bar.Incr()
	})
	uiprogress.Stop()

	r := render.NewRenderer(ui.Err)
	r.HasColor = !opts.NoColor
	for _, s := range skips {
		r.Skip(s)
	}

	for _, err := range c.Errors() {
		fprintErr(ui.Err, err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("conversion interrupted: %w", err)
	}

	out := squad.Dataset{Version: d.Version, Data: c.Articles(opts.Ordered)}
	if err := squad.WriteFile(opts.Out, out); err != nil {
		return err
	}

	stat.Fprint(ui.Out, c.Stats())
	fmt.Fprintf(ui.Out, "Successfully converted %d articles from %s to %s\n", len(out.Data), opts.In, opts.Out)
	return nil
}
