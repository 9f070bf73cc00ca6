package rule

import (
	"fmt"

	sent "github.com/revelaction/qadecl/sentence"
)

// Category is the syntactic category of an answer span.
type Category int

const (
	Other Category = iota
	NounPhrase
	PrepPhrase
	Number
)

func (c Category) String() string {
	switch c {
	case NounPhrase:
		return "NP"
	case PrepPhrase:
		return "PP"
	case Number:
		return "CD"
	}
	return "other"
}

// fragmentDeps are relations a parser uses when it could not attach a token
// to the rest of the span.
var fragmentDeps = map[string]bool{
	"dep":       true,
	"parataxis": true,
	"discourse": true,
	"list":      true,
	"root":      true,
}

// Answer is the analysis of the parse of an answer text on its own.
type Answer struct {
	tokens   []sent.Token
	anchor   int
	category Category
	valid    bool

	// number of punctuation tokens trimmed in front of the span
	offset int

	// Offending is the index of the token that made the span invalid
	Offending int
	Reason    string
}

// NewAnswer analyzes the tokens of an answer parse. The tokens are not
// required to form a valid sentence: an answer parsed into several roots is
// an invalid answer, not an error. Leading and trailing punctuation is
// trimmed before the analysis; Offending keeps the index of the untrimmed
// parse.
func NewAnswer(tokens []sent.Token) *Answer {
	a := &Answer{}

	if len(tokens) == 0 {
		a.Reason = "empty answer"
		return a
	}

	for i, t := range tokens {
		if t.Index != i+1 {
			a.Offending = t.Index
			a.Reason = fmt.Sprintf("index %d is not contiguous", t.Index)
			return a
		}
	}

	lo, hi := 0, len(tokens)-1
	for lo <= hi && isPunct(tokens[lo]) {
		lo++
	}
	for hi >= lo && isPunct(tokens[hi]) {
		hi--
	}

	if lo > hi {
		a.Reason = "answer is only punctuation"
		return a
	}

	a.offset = lo
	a.tokens = trim(tokens, lo, hi)

	n := len(a.tokens)
	for _, t := range a.tokens {
		if t.Head >= 1 && t.Head <= n && t.Head != t.Index {
			continue
		}

		if a.anchor != 0 {
			a.Offending = t.Index + a.offset
			a.Reason = fmt.Sprintf("disconnected fragments: tokens %d and %d are both unattached", a.anchor+a.offset, t.Index+a.offset)
			return a
		}
		a.anchor = t.Index
	}

	if a.anchor == 0 {
		a.Reason = "no anchor token"
		return a
	}

	for _, t := range a.tokens {
		if !a.reaches(t.Index) {
			a.Offending = t.Index + a.offset
			a.Reason = fmt.Sprintf("token %d does not reach the anchor", t.Index+a.offset)
			return a
		}

		if t.Index != a.anchor && fragmentDeps[t.Dep] && !isPunct(t) {
			a.Offending = t.Index + a.offset
			a.Reason = fmt.Sprintf("token %d is attached as a fragment (%s)", t.Index+a.offset, t.Dep)
			return a
		}
	}

	a.category = categorize(a.tokens[a.anchor-1])
	a.valid = true
	return a
}

// trim copies tokens[lo:hi+1] renumbered from 1. Heads pointing outside the
// kept span become 0.
func trim(tokens []sent.Token, lo, hi int) []sent.Token {
	out := make([]sent.Token, 0, hi-lo+1)
	for _, t := range tokens[lo : hi+1] {
		t.Index -= lo
		if t.Head > lo && t.Head <= hi+1 {
			t.Head -= lo
		} else {
			t.Head = 0
		}
		out = append(out, t)
	}
	return out
}

// reaches follows the head chain of index, and fails on cycles.
func (a *Answer) reaches(index int) bool {
	for steps := 0; steps <= len(a.tokens); steps++ {
		if index == a.anchor {
			return true
		}
		index = a.tokens[index-1].Head
	}
	return false
}

func categorize(anchor sent.Token) Category {
	switch {
	case anchor.Tag == "IN" || anchor.Tag == "TO":
		return PrepPhrase
	case anchor.Tag == "CD":
		return Number
	case isNominal(anchor):
		return NounPhrase
	}
	return Other
}

// Valid reports whether the span is a single constituent.
func (a *Answer) Valid() bool {
	return a.valid
}

// Category is only meaningful for valid answers.
func (a *Answer) Category() Category {
	return a.category
}

// Len returns the number of tokens of the span.
func (a *Answer) Len() int {
	return len(a.tokens)
}

// Anchor returns the 1-based index of the head of the span.
func (a *Answer) Anchor() int {
	return a.anchor
}

// Tokens returns a copy of the span, re-rooted: the anchor has head 0 and
// the relation "root". Heads are relative to the span.
func (a *Answer) Tokens() []sent.Token {
	cp := make([]sent.Token, len(a.tokens))
	copy(cp, a.tokens)
	if a.anchor > 0 {
		cp[a.anchor-1].Head = 0
		cp[a.anchor-1].Dep = "root"
	}
	return cp
}

// Words returns the surface forms of the span.
func (a *Answer) Words() []string {
	words := make([]string, len(a.tokens))
	for i, t := range a.tokens {
		words[i] = t.Text
	}
	return words
}
