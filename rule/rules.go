package rule

import (
	"sort"
	"strings"

	sent "github.com/revelaction/qadecl/sentence"
)

// questionRule is one entry of the rule table. Match is a predicate over the
// question frame, Apply computes the declarative order. A rule only counts
// as matched when both succeed.
type questionRule struct {
	Name  string
	Match func(f *frame) bool
	Apply func(f *frame) (plan, bool)
}

// questionRules are tried in this order. The first match wins.
var questionRules = []questionRule{
	{Name: "subject", Match: matchSubject, Apply: inPlace},
	{Name: "copula", Match: matchCopula, Apply: inPlace},
	{Name: "aux-inversion", Match: matchAuxInversion, Apply: applyAuxInversion},
}

var (
	whTags = map[string]bool{"WP": true, "WP$": true, "WDT": true, "WRB": true}

	subjDeps = map[string]bool{
		"nsubj": true, "nsubjpass": true, "nsubj:pass": true,
		"csubj": true, "csubjpass": true, "csubj:pass": true,
		"expl": true,
	}

	clauseDeps = map[string]bool{
		"relcl": true, "acl": true, "acl:relcl": true,
		"ccomp": true, "xcomp": true, "advcl": true,
	}

	auxDeps = map[string]bool{"aux": true, "auxpass": true, "aux:pass": true, "cop": true}

	advDeps = map[string]bool{
		"advmod": true, "npadvmod": true, "tmod": true, "prep": true,
		"obl": true, "obl:tmod": true,
	}

	beForms   = map[string]bool{"is": true, "are": true, "was": true, "were": true, "am": true, "'s": true, "'re": true, "'m": true}
	doForms   = map[string]bool{"do": true, "does": true, "did": true}
	haveForms = map[string]bool{"have": true, "has": true, "had": true}

	punctTags = map[string]bool{".": true, ",": true, ":": true, "``": true, "''": true, "-LRB-": true, "-RRB-": true}
)

func lower(t sent.Token) string {
	return strings.ToLower(t.Text)
}

func isPunct(t sent.Token) bool {
	return t.Dep == "punct" || t.Pos == "PUNCT" || punctTags[t.Tag]
}

func isNominal(t sent.Token) bool {
	return strings.HasPrefix(t.Tag, "NN") || t.Tag == "PRP" || t.Pos == "NOUN" || t.Pos == "PROPN"
}

func isProper(t sent.Token) bool {
	return t.Tag == "NNP" || t.Tag == "NNPS" || t.Text == "I"
}

func isAux(t sent.Token) bool {
	w := lower(t)
	return beForms[w] || doForms[w] || haveForms[w] || t.Tag == "MD"
}

// frame is the wh-phrase of a question and its place in the clause.
type frame struct {
	s  sent.Sentence
	wh sent.Token

	// head of the wh-phrase: the wh-word, the noun of "which NP", or the noun
	// of "how many NP"
	head sent.Token

	// pied piped preposition, 0 if none
	prep int

	// bounds of the block the phrase occupies, preposition included
	start, end int

	// relation and governor of the block as a whole
	dep string
	gov int

	removed []int

	// block in order, with AnswerMarker in place of the removed tokens
	block []int

	slot Slot

	// preposition wanted in front of adverbial answers
	prepWord string
}

func (f *frame) token(i int) sent.Token {
	t, _ := f.s.TokenAt(i)
	return t
}

func (f *frame) inBlock(i int) bool {
	return i >= f.start && i <= f.end
}

// inMainClause reports whether the head chain of the wh-phrase reaches the
// root without passing through a subordinate clause.
func (f *frame) inMainClause() bool {
	dep, head := f.dep, f.gov
	for steps := 0; steps <= f.s.Len(); steps++ {
		if clauseDeps[dep] {
			return false
		}
		if head == 0 {
			return true
		}
		t, ok := f.s.TokenAt(head)
		if !ok {
			return false
		}
		dep, head = t.Dep, t.Head
	}
	return false
}

func contiguous(indices []int) bool {
	for i := 1; i < len(indices); i++ {
		if indices[i] != indices[i-1]+1 {
			return false
		}
	}
	return len(indices) > 0
}

func newFrame(s sent.Sentence) (*frame, string) {
	f := &frame{s: s}

	found := false
	for _, t := range s.Tokens() {
		if whTags[t.Tag] {
			f.wh = t
			found = true
			break
		}
	}

	if !found {
		return nil, "no wh-word"
	}

	var phrase []int
	w := lower(f.wh)
	switch {
	case w == "why":
		return nil, "why-questions are not handled"

	case w == "how":
		many, ok := s.TokenAt(f.wh.Head)
		if !ok || (lower(many) != "many" && lower(many) != "much") || many.Index != f.wh.Index+1 {
			return nil, "how-question without quantity"
		}

		f.head = many
		if noun, ok := s.TokenAt(many.Head); ok && isNominal(noun) && noun.Index > many.Index {
			f.head = noun
		}

		phrase = s.Subtree(f.head.Index)
		f.removed = []int{f.wh.Index, many.Index}
		if f.head.Index == many.Index {
			f.slot = Slot{Head: many.Head, Dep: many.Dep}
		} else {
			f.slot = Slot{Head: f.head.Index, Dep: many.Dep}
		}

		f.block = []int{AnswerMarker}
		for _, i := range phrase {
			if !contains(f.removed, i) {
				f.block = append(f.block, i)
			}
		}

	case f.wh.Tag == "WDT" || f.wh.Tag == "WP$" || f.wh.Dep == "det":
		noun, ok := s.TokenAt(f.wh.Head)
		if !ok || !isNominal(noun) || noun.Index < f.wh.Index {
			return nil, "determiner wh-word without noun"
		}

		f.head = noun
		phrase = s.Subtree(noun.Index)
		f.removed = phrase
		f.block = []int{AnswerMarker}
		f.slot = Slot{Head: noun.Head, Dep: noun.Dep}

	default:
		f.head = f.wh
		phrase = s.Subtree(f.wh.Index)
		f.removed = phrase
		f.block = []int{AnswerMarker}
		f.slot = Slot{Head: f.wh.Head, Dep: f.wh.Dep}
	}

	if !contiguous(phrase) || phrase[0] != f.wh.Index {
		return nil, "wh-phrase is not contiguous"
	}

	f.start, f.end = phrase[0], phrase[len(phrase)-1]
	f.dep, f.gov = f.head.Dep, f.head.Head

	if f.head.Dep == "pobj" {
		p := f.token(f.head.Head)
		if (p.Tag == "IN" || p.Tag == "TO") && p.Index == f.start-1 {
			f.prep = p.Index
			f.start = p.Index
			f.block = append([]int{p.Index}, f.block...)
			f.dep, f.gov = p.Dep, p.Head
		}
	}

	if !f.inMainClause() {
		return nil, "wh-word is not in the main clause"
	}

	if f.prep == 0 && (w == "where" || w == "when") {
		f.prepWord = "in"
	}

	sort.Ints(f.removed)
	return f, ""
}

// plan is the outcome of a rule.
type plan struct {
	order   []int
	forms   map[int]string
	removed []int
	prep    string
}

func matchSubject(f *frame) bool {
	return f.prep == 0 && subjDeps[f.dep]
}

func matchCopula(f *frame) bool {
	if f.prep != 0 {
		return false
	}

	b, ok := f.s.TokenAt(f.end + 1)
	if !ok || !beForms[lower(b)] || b.Dep == "aux" || b.Dep == "auxpass" || b.Dep == "aux:pass" {
		return false
	}

	isCop := b.Dep == "cop" && b.Head == f.head.Index
	if f.dep != "attr" && f.dep != "root" && !isCop {
		return false
	}

	pred := b.Index
	if isCop {
		pred = f.head.Index
	}

	// "What is it?" must not become "Paris is it."
	for _, c := range f.s.ChildrenOf(pred) {
		if subjDeps[c.Dep] && c.Index > b.Index {
			return c.Tag != "PRP" && c.Pos != "PRON"
		}
	}
	return false
}

// inPlace replaces the interrogative element where it stands.
func inPlace(f *frame) (plan, bool) {
	var order []int
	for i := 1; i <= f.s.Len(); i++ {
		if i == f.start {
			order = append(order, f.block...)
		}

		if f.inBlock(i) {
			continue
		}
		order = append(order, i)
	}

	p := plan{order: order, forms: map[int]string{}, removed: f.removed, prep: f.prepWord}
	finish(f, &p)
	return p, true
}

// inversion holds what matchAuxInversion found.
type inversion struct {
	aux     sent.Token
	pred    sent.Token
	subject []int
}

func findInversion(f *frame) (inversion, bool) {
	var inv inversion
	if f.start != 1 {
		return inv, false
	}

	a, ok := f.s.TokenAt(f.end + 1)
	if !ok || !isAux(a) || (!auxDeps[a.Dep] && a.Dep != "root") {
		return inv, false
	}
	inv.aux = a

	inv.pred = a
	if auxDeps[a.Dep] {
		inv.pred = f.token(a.Head)
	}

	// the subject hangs from the predicate, or from a root copula
	for _, gov := range []int{inv.pred.Index, a.Index} {
		for _, c := range f.s.ChildrenOf(gov) {
			if !subjDeps[c.Dep] || c.Index <= a.Index {
				continue
			}

			sub := f.s.Subtree(c.Index)
			if contiguous(sub) && sub[0] == a.Index+1 {
				inv.subject = sub
				return inv, true
			}
		}
	}

	return inv, false
}

func matchAuxInversion(f *frame) bool {
	_, ok := findInversion(f)
	return ok
}

// applyAuxInversion moves the subject in front of the auxiliary and puts the
// answer after its governor, or at the end of the clause for adverbials.
func applyAuxInversion(f *frame) (plan, bool) {
	inv, ok := findInversion(f)
	if !ok {
		return plan{}, false
	}

	p := plan{forms: map[int]string{}, prep: f.prepWord}
	p.removed = append(p.removed, f.removed...)

	a := inv.aux
	doSupport := doForms[lower(a)] && a.Dep == "aux" && inv.pred.Tag == "VB" && !f.inBlock(inv.pred.Index)
	if doSupport {
		p.removed = append(p.removed, a.Index)
		sort.Ints(p.removed)

		switch lower(a) {
		case "did":
			p.forms[inv.pred.Index] = PastTense(inv.pred.Text)
		case "does":
			p.forms[inv.pred.Index] = ThirdSingular(inv.pred.Text)
		}
	}

	n := f.s.Len()
	clauseEnd, final := n, 0
	if last := f.token(n); isPunct(last) {
		clauseEnd, final = n-1, n
	}

	var rest []int
	for i := 1; i <= clauseEnd; i++ {
		if f.inBlock(i) || contains(inv.subject, i) || i == a.Index {
			continue
		}
		rest = append(rest, i)
	}

	// -1 is the end of the clause, 0 right after the auxiliary
	after := f.gov
	switch {
	case f.prep != 0, f.prepWord != "", advDeps[f.dep]:
		after = -1
	case after == 0, after == a.Index, f.inBlock(after):
		after = 0
	}

	pos := len(rest)
	switch after {
	case -1:
	case 0:
		pos = 0
	default:
		pos = -1
		for k, i := range rest {
			if i == after {
				pos = k + 1
				break
			}
		}

		if pos < 0 {
			return plan{}, false
		}

		// particles stay with their verb: "give up"
		for pos < len(rest) {
			t := f.token(rest[pos])
			if t.Dep != "prt" || t.Head != after {
				break
			}
			pos++
		}
	}

	order := append([]int{}, inv.subject...)
	if !doSupport {
		order = append(order, a.Index)
	}
	order = append(order, rest[:pos]...)
	order = append(order, f.block...)
	order = append(order, rest[pos:]...)
	if final != 0 {
		order = append(order, final)
	}

	p.order = order
	finish(f, &p)
	return p, true
}

// finish fixes casing and the final punctuation of the declarative.
func finish(f *frame, p *plan) {
	form := func(i int) string {
		if w, ok := p.forms[i]; ok {
			return w
		}
		return f.token(i).Text
	}

	if len(p.order) == 0 {
		return
	}

	if last := p.order[len(p.order)-1]; last != AnswerMarker && form(last) == "?" {
		p.forms[last] = "."
	}

	// the original first word lost its position
	first := f.token(1)
	for k, i := range p.order {
		if i == 1 && k > 0 && !isProper(first) {
			p.forms[1] = lowerFirst(form(1))
		}
	}

	if p.order[0] != AnswerMarker {
		p.forms[p.order[0]] = capitalize(form(p.order[0]))
	}
}
