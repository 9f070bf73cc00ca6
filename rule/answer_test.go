package rule

import (
	"strings"
	"testing"
)

func TestNewAnswer(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		anchor   int
		category Category
	}{
		{"proper noun", []string{"1 Paris PROPN NNP 0 root"}, 1, NounPhrase},
		{"noun phrase", []string{"1 the DET DT 2 det", "2 capital NOUN NN 0 root"}, 2, NounPhrase},
		{"number", []string{"1 2 NUM CD 2 compound", "2 million NUM CD 0 root"}, 2, Number},
		{"prepositional", []string{"1 in ADP IN 0 root", "2 1990 NUM CD 1 pobj"}, 1, PrepPhrase},
		{"punctuation inside", []string{"1 Houston PROPN NNP 0 root", "2 , PUNCT , 1 punct", "3 Texas PROPN NNP 1 appos"}, 1, NounPhrase},
		{"adjective", []string{"1 red ADJ JJ 0 root"}, 1, Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnswer(parse(tt.rows...))
			if !a.Valid() {
				t.Fatalf("expected valid answer, got reason %q", a.Reason)
			}

			if a.Anchor() != tt.anchor {
				t.Errorf("expected anchor %d, got %d", tt.anchor, a.Anchor())
			}

			if a.Category() != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, a.Category())
			}

			if a.Len() != len(tt.rows) {
				t.Errorf("expected %d tokens, got %d", len(tt.rows), a.Len())
			}
		})
	}
}

func TestNewAnswerInvalid(t *testing.T) {
	tests := []struct {
		name      string
		rows      []string
		offending int
	}{
		// two roots
		{"disconnected", []string{"1 Houston PROPN NNP 0 root", "2 , PUNCT , 1 punct", "3 Texas PROPN NNP 0 root"}, 3},
		{"fragment relation", []string{"1 the DET DT 2 det", "2 city NOUN NN 0 root", "3 Texas PROPN NNP 2 dep"}, 3},
		{"cycle", []string{"1 x NOUN NN 0 root", "2 y NOUN NN 3 compound", "3 z NOUN NN 2 compound"}, 2},
		{"no anchor", []string{"1 x NOUN NN 2 compound", "2 y NOUN NN 1 compound"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnswer(parse(tt.rows...))
			if a.Valid() {
				t.Fatalf("expected invalid answer")
			}

			if a.Offending != tt.offending {
				t.Errorf("expected offending token %d, got %d (%s)", tt.offending, a.Offending, a.Reason)
			}

			if a.Reason == "" {
				t.Errorf("expected a reason")
			}
		})
	}

	if a := NewAnswer(nil); a.Valid() || a.Reason != "empty answer" {
		t.Errorf("expected empty answer to be invalid, got %q", a.Reason)
	}
}

func TestNewAnswerTrimsEdgePunctuation(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		words    string
		anchor   int
		category Category
	}{
		{"trailing period", []string{"1 1990 NUM CD 0 root", "2 . PUNCT . 1 punct"}, "1990", 1, Number},
		{"quoted", []string{"1 `` PUNCT `` 2 punct", "2 Hamlet PROPN NNP 0 root", "3 '' PUNCT '' 2 punct"}, "Hamlet", 1, NounPhrase},
		{"leading comma", []string{"1 , PUNCT , 3 punct", "2 the DET DT 3 det", "3 capital NOUN NN 0 root"}, "the capital", 2, NounPhrase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnswer(parse(tt.rows...))
			if !a.Valid() {
				t.Fatalf("expected valid answer, got reason %q", a.Reason)
			}

			if got := strings.Join(a.Words(), " "); got != tt.words {
				t.Errorf("expected words %q, got %q", tt.words, got)
			}

			if a.Anchor() != tt.anchor {
				t.Errorf("expected anchor %d, got %d", tt.anchor, a.Anchor())
			}

			if a.Category() != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, a.Category())
			}

			for i, tok := range a.Tokens() {
				if tok.Index != i+1 {
					t.Errorf("expected index %d, got %d", i+1, tok.Index)
				}
				if tok.Head < 0 || tok.Head > a.Len() {
					t.Errorf("expected head inside the span, got %d", tok.Head)
				}
			}
		})
	}

	a := NewAnswer(parse("1 . PUNCT . 0 root"))
	if a.Valid() || a.Reason != "answer is only punctuation" {
		t.Errorf("expected punctuation-only answer to be invalid, got %q", a.Reason)
	}
}

func TestNewAnswerTrimmedOffending(t *testing.T) {
	// offending index refers to the untrimmed parse
	a := NewAnswer(parse(
		"1 `` PUNCT `` 2 punct",
		"2 Houston PROPN NNP 0 root",
		"3 Texas PROPN NNP 0 root",
	))
	if a.Valid() {
		t.Fatalf("expected invalid answer")
	}

	if a.Offending != 3 {
		t.Errorf("expected offending token 3, got %d", a.Offending)
	}
}

func TestAnswerTokensReRooted(t *testing.T) {
	a := NewAnswer(parse(
		"1 in ADP IN 3 prep",
		"2 the DET DT 3 det",
		"3 city NOUN NN 0 ROOT",
	))

	tokens := a.Tokens()
	anchor := tokens[a.Anchor()-1]
	if anchor.Head != 0 || anchor.Dep != "root" {
		t.Errorf("expected anchor re-rooted, got %+v", anchor)
	}

	// the analysis keeps its own copy
	tokens[0].Text = "changed"
	if a.Words()[0] != "in" {
		t.Errorf("expected tokens to be a copy")
	}
}
