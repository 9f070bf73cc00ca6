// Package convert turns question answering pairs into declarative cloze
// statements, one pair or one dataset article at a time.
package convert

import (
	"context"
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/revelaction/qadecl/cloze"
	"github.com/revelaction/qadecl/declarative"
	"github.com/revelaction/qadecl/parser"
	"github.com/revelaction/qadecl/rule"
	sent "github.com/revelaction/qadecl/sentence"
	"github.com/revelaction/qadecl/squad"
	"github.com/revelaction/qadecl/stat"
)

var log = commonlog.GetLogger("qadecl.convert")

// Kind is the reason an entry was not converted.
type Kind int

const (
	Converted Kind = iota
	InvalidQuestion
	InvalidAnswer
	SlotMismatch
	VerbatimMismatch
	AlreadyMasked
	MalformedParse
	CollaboratorFailure
	NoAnswer
)

func (k Kind) String() string {
	switch k {
	case Converted:
		return "converted"
	case InvalidQuestion:
		return "invalid-question"
	case InvalidAnswer:
		return "invalid-answer"
	case SlotMismatch:
		return "slot-mismatch"
	case VerbatimMismatch:
		return "verbatim-mismatch"
	case AlreadyMasked:
		return "already-masked"
	case MalformedParse:
		return "malformed-parse"
	case CollaboratorFailure:
		return "collaborator-failure"
	case NoAnswer:
		return "no-answer"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Skip describes one entry that produced no output record.
type Skip struct {
	Kind  Kind
	ID    string
	Title string

	// Index of the offending token, 0 if not known
	Index  int
	Reason string
}

func (s Skip) String() string {
	msg := fmt.Sprintf("skip %s (%s): %s", s.ID, s.Kind, s.Reason)
	if s.Index > 0 {
		msg += fmt.Sprintf(" at token %d", s.Index)
	}
	return msg
}

// CollaboratorError wraps a failure of the parser or the tagger.
type CollaboratorError struct {
	Stage string
	Err   error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// Result is the outcome of converting one question answer pair. Kind is
// Converted when Text holds the declarative.
type Result struct {
	Question    *rule.Question
	Answer      *rule.Answer
	Declarative declarative.Declarative
	Text        string

	Kind   Kind
	Index  int
	Reason string
}

// Converter owns one parse source. It is not shared between goroutines.
type Converter struct {
	src parser.Source
	dt  declarative.Detokenizer
}

func New(src parser.Source, dt declarative.Detokenizer) *Converter {
	return &Converter{src: src, dt: dt}
}

// Declarative parses the question and the answer and synthesizes the
// declarative sentence. Shapes the rules do not handle are reported in
// Result.Kind; the error is reserved for collaborator failures and
// malformed parses.
func (c *Converter) Declarative(ctx context.Context, question, answer string) (Result, error) {
	qTokens, err := c.src.Tokens(ctx, question)
	if err != nil {
		return Result{}, &CollaboratorError{Stage: "parse question", Err: err}
	}

	qs, err := sent.New(qTokens)
	if err != nil {
		return Result{}, fmt.Errorf("question: %w", err)
	}

	aTokens, err := c.src.Tokens(ctx, answer)
	if err != nil {
		return Result{}, &CollaboratorError{Stage: "parse answer", Err: err}
	}

	r := Result{
		Question: rule.NewQuestion(qs),
		Answer:   rule.NewAnswer(aTokens),
	}

	if !r.Question.Valid() {
		r.Kind, r.Reason = InvalidQuestion, r.Question.Reason()
		return r, nil
	}

	if !r.Answer.Valid() {
		r.Kind, r.Index, r.Reason = InvalidAnswer, r.Answer.Offending, r.Answer.Reason
		return r, nil
	}

	d, ok := declarative.Insert(r.Question, r.Answer)
	if !ok {
		r.Kind = SlotMismatch
		r.Reason = fmt.Sprintf("%s answer does not fit the %s slot", r.Answer.Category(), r.Question.Slot().Dep)
		return r, nil
	}

	r.Declarative = d
	r.Text = declarative.Format(d, c.dt)
	return r, nil
}

// Cloze converts one pair and masks the answer against the passage context.
func (c *Converter) Cloze(ctx context.Context, question, answer, passage string) (Result, string, error) {
	r, err := c.Declarative(ctx, question, answer)
	if err != nil || r.Kind != Converted {
		return r, "", err
	}

	masked, err := cloze.Format(r.Text, answer, passage)
	switch {
	case errors.Is(err, cloze.ErrVerbatimMismatch):
		r.Kind, r.Reason = VerbatimMismatch, fmt.Sprintf("%q not found verbatim in %q or in the context", answer, r.Text)
		return r, "", nil
	case errors.Is(err, cloze.ErrAlreadyMasked):
		r.Kind, r.Reason = AlreadyMasked, fmt.Sprintf("%q already carries the mask", r.Text)
		return r, "", nil
	case err != nil:
		return r, "", err
	}

	return r, masked, nil
}

// Entry converts all questions of an article. Each question uses its first
// answer only. The output keeps the converted questions with the masked
// declarative as question text and the original answers; paragraphs left
// without questions are dropped. skip is called for every question that is
// not converted, it may be nil.
func (c *Converter) Entry(ctx context.Context, article squad.Article, skip func(Skip)) (squad.Article, stat.Stats) {
	out := squad.Article{Title: article.Title}
	stats := stat.New()

	report := func(qa squad.QA, kind Kind, index int, reason string) {
		stats.Skip(kind.String())
		s := Skip{Kind: kind, ID: qa.ID, Title: article.Title, Index: index, Reason: reason}
		log.Infof("%s", s)
		if skip != nil {
			skip(s)
		}
	}

	for _, p := range article.Paragraphs {
		var qas []squad.QA
		for _, qa := range p.Qas {
			if len(qa.Answers) == 0 {
				report(qa, NoAnswer, 0, "question has no answer")
				continue
			}

			r, masked, err := c.Cloze(ctx, qa.Question, qa.Answers[0].Text, p.Context)
			if err != nil {
				var perr *sent.MalformedParseError
				if errors.As(err, &perr) {
					report(qa, MalformedParse, perr.Index, err.Error())
				} else {
					report(qa, CollaboratorFailure, 0, err.Error())
				}
				continue
			}

			if r.Kind != Converted {
				report(qa, r.Kind, r.Index, r.Reason)
				continue
			}

			stats.Convert(r.Question.Rule())
			qas = append(qas, squad.QA{
				ID:           qa.ID,
				Question:     masked,
				Answers:      qa.Answers,
				IsImpossible: false,
			})
		}

		if len(qas) > 0 {
			out.Paragraphs = append(out.Paragraphs, squad.Paragraph{Context: p.Context, Qas: qas})
		}
	}

	return out, stats
}
