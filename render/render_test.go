package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/revelaction/qadecl/convert"
	"github.com/revelaction/qadecl/detok"
	sent "github.com/revelaction/qadecl/sentence"
)

var hamlet = []sent.Token{
	{Index: 1, Text: "Who", Pos: "PRON", Tag: "WP", Head: 2, Dep: "nsubj"},
	{Index: 2, Text: "wrote", Pos: "VERB", Tag: "VBD", Head: 0, Dep: "root"},
	{Index: 3, Text: "Hamlet", Pos: "PROPN", Tag: "NNP", Head: 2, Dep: "dobj"},
	{Index: 4, Text: "?", Pos: "PUNCT", Tag: ".", Head: 2, Dep: "punct"},
}

type fakeSource map[string][]sent.Token

func (f fakeSource) Tokens(ctx context.Context, sentence string) ([]sent.Token, error) {
	if tokens, ok := f[sentence]; ok {
		return tokens, nil
	}
	return nil, errors.New("not found")
}

func convertedResult(t *testing.T) convert.Result {
	t.Helper()
	src := fakeSource{
		"Who wrote Hamlet?": hamlet,
		"Shakespeare":       {{Index: 1, Text: "Shakespeare", Pos: "PROPN", Tag: "NNP", Head: 0, Dep: "root"}},
	}

	res, err := convert.New(src, detok.New()).Declarative(context.Background(), "Who wrote Hamlet?", "Shakespeare")
	if err != nil || res.Kind != convert.Converted {
		t.Fatalf("unexpected conversion failure: %v %s", err, res.Reason)
	}
	return res
}

func TestTokens(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Tokens(hamlet)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}

	if fields := strings.Fields(lines[2]); strings.Join(fields, " ") != "3 Hamlet PROPN NNP 2 dobj" {
		t.Errorf("expected token row, got %q", lines[2])
	}
}

func TestResult(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.Result(convertedResult(t), "[MASK] wrote Hamlet.")

	expected := "rule subject\ndecl Shakespeare wrote Hamlet .\nmask [MASK] wrote Hamlet.\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}

	buf.Reset()
	r.Result(convert.Result{Kind: convert.InvalidAnswer, Index: 3, Reason: "disconnected fragments"}, "")
	if buf.String() != "invalid-answer: disconnected fragments (token 3)\n" {
		t.Errorf("unexpected skip line %q", buf.String())
	}
}

func TestDeclarativeColor(t *testing.T) {
	r := &Renderer{HasColor: true}
	got := r.Declarative(convertedResult(t).Declarative)

	if !strings.HasPrefix(got, Green256+"Shakespeare"+Off+" wrote") {
		t.Errorf("expected the answer colored, got %q", got)
	}
}

func TestSkip(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Skip(convert.Skip{Kind: convert.NoAnswer, ID: "q7", Title: "Paris", Reason: "question has no answer"})

	expected := "[Paris] skip q7 (no-answer): question has no answer\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
