package main

import (
	"fmt"
	"os"

	"github.com/gosuri/uiprogress"

	sent "github.com/revelaction/qadecl/sentence"
	"github.com/revelaction/qadecl/storage/filesystem"
)

func importParseCommand(opts ImportParseOptions, ui UI) error {
	info, err := os.Stat(opts.From)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("conll directory not found: %s", opts.From)
	}

	fmt.Fprintf(ui.Out, "Reading parses from %s...\n", opts.From)
	src, err := filesystem.NewParseStore(opts.From)
	if err != nil {
		return err
	}

	p := &Pool{size: 1}
	defer p.Close()

	dst, err := NewParseRepository(p, opts.To)
	if err != nil {
		return err
	}

	total, err := src.Count()
	if err != nil {
		return err
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(total)
	bar.AppendCompleted()
	bar.PrependElapsed()

	count := 0
	err = src.List(func(text string, tokens []sent.Token) error {
		if err := dst.Write(text, tokens); err != nil {
			return fmt.Errorf("failed to write parse %q: %w", text, err)
		}
		count++
		bar.Incr()
		return nil
	})
	uiprogress.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "Successfully imported %d parses from %s to %s\n", count, opts.From, opts.To)
	return nil
}
