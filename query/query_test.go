package query

import (
	"testing"

	"github.com/revelaction/qadecl/render"
	sent "github.com/revelaction/qadecl/sentence"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		question string
		answer   string
		passage  string
		fails    bool
	}{
		{"Who wrote Hamlet? | Shakespeare", "Who wrote Hamlet?", "Shakespeare", "", false},
		{" Who wrote Hamlet?|Shakespeare | Shakespeare wrote Hamlet. ", "Who wrote Hamlet?", "Shakespeare", "Shakespeare wrote Hamlet.", false},
		{"Who wrote Hamlet?", "", "", "", true},
		{"Who wrote Hamlet? | ", "", "", "", true},
		{"a | b | c | d", "", "", "", true},
	}

	for _, tt := range tests {
		q, a, p, err := Parse(tt.in)
		if tt.fails {
			if err == nil {
				t.Errorf("%q: expected error", tt.in)
			}
			continue
		}

		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.in, err)
		}

		if q != tt.question || a != tt.answer || p != tt.passage {
			t.Errorf("%q: expected (%q, %q, %q), got (%q, %q, %q)", tt.in, tt.question, tt.answer, tt.passage, q, a, p)
		}
	}
}

type listStore []string

func (l listStore) Read(text string) ([]sent.Token, error) { return nil, nil }
func (l listStore) Count() (int, error)                    { return len(l), nil }
func (l listStore) List(fn func(string, []sent.Token) error) error {
	for _, text := range l {
		if err := fn(text, nil); err != nil {
			return err
		}
	}
	return nil
}

func TestSuggest(t *testing.T) {
	h, err := NewHandler(nil, render.NewRenderer(nil), listStore{"Who wrote Hamlet?", "What is the capital of France?", "Who painted it?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s := h.suggest("W"); len(s) != 0 {
		t.Errorf("expected no suggestions under the threshold, got %d", len(s))
	}

	s := h.suggest("Who")
	if len(s) != 2 || s[0].Text != "Who painted it?" {
		t.Errorf("expected sorted suggestions, got %v", s)
	}
}
