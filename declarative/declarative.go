// Package declarative splices an answer constituent into a question to
// build a declarative sentence.
package declarative

import (
	"github.com/revelaction/qadecl/rule"
	sent "github.com/revelaction/qadecl/sentence"
)

// Detokenizer turns a token sequence into surface text.
type Detokenizer interface {
	Detokenize(words []string) string
}

// Declarative is the result of Insert.
type Declarative struct {
	Tokens []sent.Token

	// Start and End delimit the inserted constituent (preposition
	// included), 1-based and inclusive
	Start, End int
}

// Words returns the surface forms in order.
func (d Declarative) Words() []string {
	words := make([]string, len(d.Tokens))
	for i, t := range d.Tokens {
		words[i] = t.Text
	}
	return words
}

// origin of an output token
type origin struct {
	question int // question index, 0 if not from the question
	answer   int // answer index, 0 if not from the answer
	lead     bool
}

// Insert attaches the answer at the single slot of the question analysis
// (the default insertion policy). It returns false, and no tokens, when
// either analysis is invalid or the answer does not fit the slot.
//
// Indices of the result are contiguous from 1. Question heads are re-pointed
// through the new positions, dependents of removed tokens are attached to
// the answer anchor, and the anchor takes the slot head and relation.
func Insert(q *rule.Question, a *rule.Answer) (Declarative, bool) {
	if q == nil || a == nil || !q.Valid() || !a.Valid() || !q.Accepts(a) {
		return Declarative{}, false
	}

	lead, hasLead := q.Lead(a)
	answer := a.Tokens()
	s := q.Sentence()

	var d Declarative
	var origins []origin
	newIndex := map[int]int{}

	for _, qi := range q.Order() {
		if qi == rule.AnswerMarker {
			d.Start = len(d.Tokens) + 1
			if hasLead {
				d.Tokens = append(d.Tokens, lead)
				origins = append(origins, origin{lead: true})
			}

			for _, t := range answer {
				d.Tokens = append(d.Tokens, t)
				origins = append(origins, origin{answer: t.Index})
			}
			d.End = len(d.Tokens)
			continue
		}

		t, ok := s.TokenAt(qi)
		if !ok {
			return Declarative{}, false
		}
		t.Text = q.Form(qi)
		newIndex[qi] = len(d.Tokens) + 1
		d.Tokens = append(d.Tokens, t)
		origins = append(origins, origin{question: qi})
	}

	if d.Start == 0 {
		return Declarative{}, false
	}

	answerOffset := d.Start - 1
	leadIndex := 0
	if hasLead {
		leadIndex = d.Start
		answerOffset++
	}
	anchor := answerOffset + a.Anchor()

	// maps a question head to its new index
	mapHead := func(h int) int {
		if h == 0 {
			return 0
		}
		if n, ok := newIndex[h]; ok {
			return n
		}
		return anchor
	}

	slot := q.Slot()
	for i := range d.Tokens {
		t := &d.Tokens[i]
		o := origins[i]
		switch {
		case o.lead:
			t.Head = mapHead(slot.Head)
		case o.answer == a.Anchor():
			if hasLead {
				t.Head = leadIndex
				t.Dep = "pobj"
			} else {
				t.Head = mapHead(slot.Head)
				t.Dep = slot.Dep
			}
		case o.answer != 0:
			t.Head += answerOffset
		default:
			t.Head = mapHead(t.Head)
		}
		t.Index = i + 1
	}

	return d, true
}

// Format detokenizes the declarative.
func Format(d Declarative, dt Detokenizer) string {
	return dt.Detokenize(d.Words())
}
