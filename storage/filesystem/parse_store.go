package filesystem

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/revelaction/qadecl/conll"
	sent "github.com/revelaction/qadecl/sentence"
	"github.com/revelaction/qadecl/storage"
)

// Ext is the extension of the parse files.
const Ext = ".conll"

// ParseStore keeps parses as CoNLL files in a directory. A file may hold
// many sentences; each sentence is keyed by its "# text = " comment, or by
// its space joined forms when the comment is missing. Write adds one file
// per sentence.
type ParseStore struct {
	dir string

	mu sync.RWMutex

	// In-memory cache
	parses map[string][]sent.Token
}

var _ storage.ParseRepository = (*ParseStore)(nil)

// NewParseStore loads all parse files of dir. The directory is created if it
// does not exist.
func NewParseStore(dir string) (*ParseStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	s := &ParseStore{dir: dir, parses: map[string][]sent.Token{}}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != Ext {
			continue
		}

		sentences, err := ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}

		for _, cs := range sentences {
			s.parses[Key(cs)] = cs.Tokens
		}
	}

	return s, nil
}

// Key returns the text a sentence is stored under.
func Key(cs conll.Sentence) string {
	if cs.Text != "" {
		return cs.Text
	}

	words := make([]string, len(cs.Tokens))
	for i, t := range cs.Tokens {
		words[i] = t.Text
	}
	return strings.Join(words, " ")
}

func (s *ParseStore) Read(text string) ([]sent.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens, ok := s.parses[text]
	if !ok {
		return nil, fmt.Errorf("%w: %q", storage.ErrNotFound, text)
	}

	cp := make([]sent.Token, len(tokens))
	copy(cp, tokens)
	return cp, nil
}

func (s *ParseStore) List(fn func(text string, tokens []sent.Token) error) error {
	s.mu.RLock()
	texts := make([]string, 0, len(s.parses))
	for text := range s.parses {
		texts = append(texts, text)
	}
	s.mu.RUnlock()

	sort.Strings(texts)
	for _, text := range texts {
		tokens, err := s.Read(text)
		if err != nil {
			return err
		}

		if err := fn(text, tokens); err != nil {
			return err
		}
	}

	return nil
}

func (s *ParseStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.parses), nil
}

func (s *ParseStore) Write(text string, tokens []sent.Token) error {
	if err := conll.CheckText(text); err != nil {
		return err
	}

	sum := sha1.Sum([]byte(text))
	path := filepath.Join(s.dir, hex.EncodeToString(sum[:])+Ext)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	if err := conll.Write(f, conll.Sentence{Text: text, Tokens: tokens}); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	cp := make([]sent.Token, len(tokens))
	copy(cp, tokens)

	s.mu.Lock()
	s.parses[text] = cp
	s.mu.Unlock()
	return nil
}

// ReadFile reads all sentences of a CoNLL file.
func ReadFile(path string) ([]conll.Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	sentences, err := conll.Read(f)
	if err != nil {
		return nil, fmt.Errorf("CoNLL decoding error in %s: %w", path, err)
	}

	return sentences, nil
}
