package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/revelaction/qadecl/parser"
	"github.com/revelaction/qadecl/storage"
	"github.com/revelaction/qadecl/storage/filesystem"
	"github.com/revelaction/qadecl/storage/sqlite/zombiezen"
)

// BoltExt selects the bbolt parse store.
const BoltExt = ".bolt"

// NewParseRepository opens the parse cache at path: a directory of CoNLL
// files, a bbolt file when path ends in BoltExt, a SQLite file otherwise.
// Files are created when missing.
func NewParseRepository(p *Pool, path string) (storage.ParseRepository, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filesystem.NewParseStore(path)
	}

	if filepath.Ext(path) == BoltExt {
		return p.OpenBolt(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}

	if err := zombiezen.CreateSchemas(pool, zombiezen.ParsesSchema); err != nil {
		return nil, fmt.Errorf("failed to create parses table: %w", err)
	}

	return zombiezen.NewParseStore(pool), nil
}

// OpenParseRepository is NewParseRepository for a cache that must exist.
func OpenParseRepository(p *Pool, path string) (storage.ParseRepository, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}
	return NewParseRepository(p, path)
}

// newSourceFactory returns a function building one parse source per
// caller, and the parse cache if one is configured. The stores behind the
// sources are opened once and shared; each source gets its own parser
// client.
func newSourceFactory(opts SourceOptions, p *Pool) (func() parser.Source, storage.ParseRepository, error) {
	var lookup *parser.Lookup
	if opts.Conll != "" {
		info, err := os.Stat(opts.Conll)
		if err != nil || !info.IsDir() {
			return nil, nil, fmt.Errorf("conll directory not found: %s", opts.Conll)
		}

		store, err := filesystem.NewParseStore(opts.Conll)
		if err != nil {
			return nil, nil, err
		}
		lookup = parser.NewLookup(store)
	}

	var repo storage.ParseRepository
	if opts.Cache != "" {
		r, err := NewParseRepository(p, opts.Cache)
		if err != nil {
			return nil, nil, err
		}
		repo = r
	}

	return func() parser.Source {
		var src parser.Source
		if lookup != nil {
			src = lookup
		} else {
			src = parser.NewAllenNLP(opts.ParserURL, opts.TaggerURL)
		}

		if repo != nil {
			src = parser.NewCached(src, repo)
		}
		return src
	}, repo, nil
}

// newSource builds a single parse source, for the commands that convert one
// pair at a time.
func newSource(opts SourceOptions, p *Pool) (parser.Source, storage.ParseRepository, error) {
	factory, repo, err := newSourceFactory(opts, p)
	if err != nil {
		return nil, nil, err
	}
	return factory(), repo, nil
}
