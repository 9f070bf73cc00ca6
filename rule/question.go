package rule

import (
	"sort"
	"strings"

	sent "github.com/revelaction/qadecl/sentence"
)

// AnswerMarker is the value in Question.Order where the answer constituent
// goes.
const AnswerMarker = 0

// Slot is the attachment point of the answer constituent.
type Slot struct {
	// Head is the question token index the answer attaches to. 0 makes the
	// answer the root of the declarative.
	Head int
	Dep  string
}

// Question is the analysis of a parsed question. It is built once by
// NewQuestion and never changes afterwards.
type Question struct {
	s      sent.Sentence
	valid  bool
	rule   string
	reason string

	wh      sent.Token
	removed []int
	order   []int
	forms   map[int]string
	slot    Slot

	// prep is the preposition that introduces the answer when the answer is
	// not already a prepositional phrase ("where" -> "in").
	prep string
}

// NewQuestion classifies s against the rule table, in order. The first rule that
// matches wins. When none matches the question is returned invalid.
func NewQuestion(s sent.Sentence) *Question {
	q := &Question{s: s}

	if s.Len() == 0 {
		q.reason = "empty question"
		return q
	}

	f, reason := newFrame(s)
	if f == nil {
		q.reason = reason
		return q
	}
	q.wh = f.wh

	for _, r := range questionRules {
		if !r.Match(f) {
			continue
		}

		p, ok := r.Apply(f)
		if !ok {
			continue
		}

		q.valid = true
		q.rule = r.Name
		q.removed = p.removed
		q.order = p.order
		q.forms = p.forms
		q.slot = f.slot
		q.prep = p.prep
		return q
	}

	q.reason = "no rule matches " + strings.ToLower(f.wh.Text) + "-question"
	return q
}

// Valid reports whether some rule matched.
func (q *Question) Valid() bool {
	return q.valid
}

// Rule returns the name of the matched rule.
func (q *Question) Rule() string {
	return q.rule
}

// Reason explains why the question is invalid.
func (q *Question) Reason() string {
	return q.reason
}

// Sentence returns the analyzed question.
func (q *Question) Sentence() sent.Sentence {
	return q.s
}

// Len returns the number of question tokens.
func (q *Question) Len() int {
	return q.s.Len()
}

// WhWord returns the interrogative word.
func (q *Question) WhWord() sent.Token {
	return q.wh
}

// Removed returns the sorted indices of the question tokens that are not in
// the declarative: the interrogative element, plus the auxiliary of
// do-support.
func (q *Question) Removed() []int {
	cp := make([]int, len(q.removed))
	copy(cp, q.removed)
	return cp
}

// Order returns the question indices in declarative order, with
// AnswerMarker where the answer goes.
func (q *Question) Order() []int {
	cp := make([]int, len(q.order))
	copy(cp, q.order)
	return cp
}

// Form returns the surface form of the question token at index in the
// declarative.
func (q *Question) Form(index int) string {
	if f, ok := q.forms[index]; ok {
		return f
	}
	t, _ := q.s.TokenAt(index)
	return t.Text
}

// Slot returns the attachment point of the answer.
func (q *Question) Slot() Slot {
	return q.slot
}

// Accepts reports whether the answer fits the slot. A prepositional answer
// can not fill a nominal slot or follow a kept preposition.
func (q *Question) Accepts(a *Answer) bool {
	if !q.valid || !a.Valid() {
		return false
	}

	if a.Category() != PrepPhrase {
		return true
	}

	if q.prep != "" {
		return true
	}

	return false
}

// Lead returns the preposition to insert in front of the answer, if any. Its
// head is the slot head.
func (q *Question) Lead(a *Answer) (sent.Token, bool) {
	if q.prep == "" || a.Category() == PrepPhrase {
		return sent.Token{}, false
	}

	prep := q.prep
	if strings.ToLower(q.wh.Text) == "when" && isDate(a.Words()) {
		prep = "on"
	}

	return sent.Token{Text: prep, Pos: "ADP", Tag: "IN", Head: q.slot.Head, Dep: "prep"}, true
}

var months = map[string]bool{
	"january": true, "february": true, "march": true, "april": true, "may": true, "june": true,
	"july": true, "august": true, "september": true, "october": true, "november": true, "december": true,
}

// isDate reports a month name next to a day number ("May 5", "5 May").
func isDate(words []string) bool {
	for i, w := range words {
		if !months[strings.ToLower(w)] {
			continue
		}

		for _, j := range []int{i - 1, i + 1} {
			if j < 0 || j >= len(words) {
				continue
			}
			d := strings.TrimSuffix(words[j], ",")
			if len(d) >= 1 && len(d) <= 2 && strings.Trim(d, "0123456789") == "" {
				return true
			}
		}
	}
	return false
}

func contains(indices []int, i int) bool {
	n := sort.SearchInts(indices, i)
	return n < len(indices) && indices[n] == i
}
