// Package bolt stores parses in a single bbolt bucket, keyed by sentence
// text, with the tokens as JSON values.
package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	sent "github.com/revelaction/qadecl/sentence"
	"github.com/revelaction/qadecl/storage"
	bolt "go.etcd.io/bbolt"
)

var bucket = []byte("parses")

type ParseStore struct {
	db *bolt.DB
}

var _ storage.ParseRepository = (*ParseStore)(nil)

// Open opens or creates the database at path.
func Open(path string) (*ParseStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ParseStore{db: db}, nil
}

func (s *ParseStore) Close() error {
	return s.db.Close()
}

func (s *ParseStore) Read(text string) ([]sent.Token, error) {
	var tokens []sent.Token
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucket).Get([]byte(text))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &tokens)
	})
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, fmt.Errorf("%w: %q", storage.ErrNotFound, text)
	}

	return tokens, nil
}

// List walks the bucket in key order, which is the byte order of the texts.
func (s *ParseStore) List(fn func(text string, tokens []sent.Token) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(k, v []byte) error {
			var tokens []sent.Token
			if err := json.Unmarshal(v, &tokens); err != nil {
				return err
			}
			return fn(string(k), tokens)
		})
	})
}

func (s *ParseStore) Count() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucket).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *ParseStore) Write(text string, tokens []sent.Token) error {
	data, err := json.Marshal(tokens)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(text), data)
	})
}
