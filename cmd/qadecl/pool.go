package main

import (
	"errors"

	boltstore "github.com/revelaction/qadecl/storage/bolt"
	"github.com/revelaction/qadecl/storage/sqlite/zombiezen"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Pool holds the database handles opened by a command, so they are closed
// once when it ends.
type Pool struct {
	p    *sqlitex.Pool
	size int
	bolt []*boltstore.ParseStore
}

// Open returns the SQLite pool of path, opening it on first use with one
// connection per worker.
func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if p.p != nil {
		return p.p, nil
	}
	pool, err := zombiezen.NewPool(path, p.size)
	if err != nil {
		return nil, err
	}
	p.p = pool
	return p.p, nil
}

// OpenBolt opens the bbolt parse store at path.
func (p *Pool) OpenBolt(path string) (*boltstore.ParseStore, error) {
	s, err := boltstore.Open(path)
	if err != nil {
		return nil, err
	}
	p.bolt = append(p.bolt, s)
	return s, nil
}

func (p *Pool) Close() error {
	var errs []error
	if p.p != nil {
		errs = append(errs, p.p.Close())
	}
	for _, s := range p.bolt {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
