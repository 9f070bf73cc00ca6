package storage

import (
	"errors"

	sent "github.com/revelaction/qadecl/sentence"
)

// ErrNotFound is returned by Read when no parse is stored for a text.
var ErrNotFound = errors.New("parse not found")

// ParseReader defines read operations for parse storage
type ParseReader interface {
	// Read returns the tokens stored for the raw sentence text
	Read(text string) ([]sent.Token, error)

	// List calls fn for every stored parse, in text order.
	List(fn func(text string, tokens []sent.Token) error) error

	// Count returns the number of stored parses
	Count() (int, error)
}

// ParseWriter defines write operations for parse storage
type ParseWriter interface {
	// Write persists the tokens of a raw sentence text, replacing any
	// previous parse of the same text.
	Write(text string, tokens []sent.Token) error
}

// ParseRepository combines read and write operations
type ParseRepository interface {
	ParseReader
	ParseWriter
}
