package bolt

import (
	"errors"
	"path/filepath"
	"testing"

	sent "github.com/revelaction/qadecl/sentence"
	"github.com/revelaction/qadecl/storage"
)

func TestParseStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parses.bolt")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	paris := []sent.Token{{Index: 1, Text: "Paris", Pos: "PROPN", Tag: "NNP", Head: 0, Dep: "root"}}
	if err := s.Write("Paris", paris); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Write("Hamlet", paris); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	got, err := s.Read("Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 || got[0] != paris[0] {
		t.Errorf("expected %v, got %v", paris, got)
	}

	if n, _ := s.Count(); n != 2 {
		t.Errorf("expected 2 parses, got %d", n)
	}

	var texts []string
	err = s.List(func(text string, tokens []sent.Token) error {
		texts = append(texts, text)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(texts) != 2 || texts[0] != "Hamlet" {
		t.Errorf("expected Hamlet first, got %v", texts)
	}

	if _, err := s.Read("London"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
