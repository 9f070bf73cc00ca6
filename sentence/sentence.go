package sentence

import (
	"fmt"
	"sort"
	"strings"
)

// Token represents a word of a parsed sentence, with POS and dependency data.
type Token struct {
	// The position of the word in the sentence, starting at 1.
	Index int `json:"index"`

	// The unmodified word
	Text string `json:"text"`

	// Coarse POS tag, as given by the dependency parser
	Pos string `json:"pos"`

	// Fine grained POS tag (PTB), as given by the tagger
	Tag string `json:"tag"`

	// Index of the syntactic parent. 0 is the root.
	Head int    `json:"head"`
	Dep  string `json:"dep"`
}

// MalformedParseError is returned when the tokens of a parse do not form a
// single rooted sentence.
type MalformedParseError struct {
	Index  int
	Reason string
}

func (e *MalformedParseError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("malformed parse at token %d: %s", e.Index, e.Reason)
	}
	return "malformed parse: " + e.Reason
}

// Sentence is an ordered, index contiguous sequence of tokens with exactly
// one root. It has no mutation methods: transformations build new token
// slices.
type Sentence struct {
	tokens []Token
	root   int
}

// New validates the tokens and returns a Sentence holding a copy of them.
func New(tokens []Token) (Sentence, error) {
	if len(tokens) == 0 {
		return Sentence{}, &MalformedParseError{Reason: "no tokens"}
	}

	root := 0
	for i, t := range tokens {
		if t.Index != i+1 {
			return Sentence{}, &MalformedParseError{Index: i + 1, Reason: fmt.Sprintf("index %d is not contiguous", t.Index)}
		}

		if t.Head < 0 || t.Head > len(tokens) {
			return Sentence{}, &MalformedParseError{Index: t.Index, Reason: fmt.Sprintf("head %d out of range", t.Head)}
		}

		if t.Head == t.Index {
			return Sentence{}, &MalformedParseError{Index: t.Index, Reason: "token is its own head"}
		}

		if t.Head == 0 {
			if root != 0 {
				return Sentence{}, &MalformedParseError{Index: t.Index, Reason: fmt.Sprintf("second root (first at %d)", root)}
			}
			root = t.Index
		}
	}

	if root == 0 {
		return Sentence{}, &MalformedParseError{Reason: "no root token"}
	}

	// every head chain must reach the root within len(tokens) steps
	for _, t := range tokens {
		head, steps := t.Head, 0
		for head != 0 {
			steps++
			if steps > len(tokens) {
				return Sentence{}, &MalformedParseError{Index: t.Index, Reason: "cyclic head chain"}
			}
			head = tokens[head-1].Head
		}
	}

	cp := make([]Token, len(tokens))
	copy(cp, tokens)
	return Sentence{tokens: cp, root: root}, nil
}

// Len returns the number of tokens.
func (s Sentence) Len() int {
	return len(s.tokens)
}

// Root returns the token whose head is 0.
func (s Sentence) Root() Token {
	return s.tokens[s.root-1]
}

// TokenAt returns the token at the 1-based index. ok is false when the index
// is out of range.
func (s Sentence) TokenAt(index int) (Token, bool) {
	if index < 1 || index > len(s.tokens) {
		return Token{}, false
	}
	return s.tokens[index-1], true
}

// ChildrenOf returns the direct dependents of index, in sentence order.
func (s Sentence) ChildrenOf(index int) []Token {
	var children []Token
	for _, t := range s.tokens {
		if t.Head == index {
			children = append(children, t)
		}
	}
	return children
}

// Subtree returns the sorted indices of index and every token it dominates.
func (s Sentence) Subtree(index int) []int {
	if index < 1 || index > len(s.tokens) {
		return nil
	}

	seen := map[int]bool{index: true}
	indices := []int{index}
	for i := 0; i < len(indices); i++ {
		for _, c := range s.ChildrenOf(indices[i]) {
			if seen[c.Index] {
				continue
			}
			seen[c.Index] = true
			indices = append(indices, c.Index)
		}
	}

	sort.Ints(indices)
	return indices
}

// SpanText joins the words between start and end, both inclusive, with a
// single space.
func (s Sentence) SpanText(start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(s.tokens) {
		end = len(s.tokens)
	}
	if start > end {
		return ""
	}

	words := make([]string, 0, end-start+1)
	for _, t := range s.tokens[start-1 : end] {
		words = append(words, t.Text)
	}
	return strings.Join(words, " ")
}

// Words returns the surface forms in order.
func (s Sentence) Words() []string {
	words := make([]string, len(s.tokens))
	for i, t := range s.tokens {
		words[i] = t.Text
	}
	return words
}

// Tokens returns a copy of the tokens.
func (s Sentence) Tokens() []Token {
	cp := make([]Token, len(s.tokens))
	copy(cp, s.tokens)
	return cp
}
