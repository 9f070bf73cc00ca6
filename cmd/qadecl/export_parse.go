package main

import (
	"fmt"

	sent "github.com/revelaction/qadecl/sentence"
	"github.com/revelaction/qadecl/storage/filesystem"
)

func exportParseCommand(opts ExportParseOptions, ui UI) error {
	p := &Pool{size: 1}
	defer p.Close()

	src, err := OpenParseRepository(p, opts.From)
	if err != nil {
		return err
	}

	dst, err := filesystem.NewParseStore(opts.To)
	if err != nil {
		return err
	}

	count := 0
	err = src.List(func(text string, tokens []sent.Token) error {
		if err := dst.Write(text, tokens); err != nil {
			return fmt.Errorf("failed to write parse %q: %w", text, err)
		}
		count++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "Successfully exported %d parses from %s to %s\n", count, opts.From, opts.To)
	return nil
}
