package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/revelaction/qadecl/conll"
	sent "github.com/revelaction/qadecl/sentence"
	"github.com/revelaction/qadecl/squad"
)

var hamlet = conll.Sentence{
	Text: "Who wrote Hamlet?",
	Tokens: []sent.Token{
		{Index: 1, Text: "Who", Pos: "PRON", Tag: "WP", Head: 2, Dep: "nsubj"},
		{Index: 2, Text: "wrote", Pos: "VERB", Tag: "VBD", Head: 0, Dep: "root"},
		{Index: 3, Text: "Hamlet", Pos: "PROPN", Tag: "NNP", Head: 2, Dep: "dobj"},
		{Index: 4, Text: "?", Pos: "PUNCT", Tag: ".", Head: 2, Dep: "punct"},
	},
}

var shakespeare = conll.Sentence{
	Text:   "Shakespeare",
	Tokens: []sent.Token{{Index: 1, Text: "Shakespeare", Pos: "PROPN", Tag: "NNP", Head: 0, Dep: "root"}},
}

// writeConll writes the fixture parses to a new directory.
func writeConll(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	f, err := os.Create(filepath.Join(dir, "parses.conll"))
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := conll.Write(f, hamlet, shakespeare); err != nil {
		t.Fatalf("failed to write parses: %v", err)
	}
	return dir
}

func TestNewParseRepository(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"directory", t.TempDir()},
		{"bolt", filepath.Join(dir, "cache.bolt")},
		{"sqlite", filepath.Join(dir, "cache.db")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pool{size: 1}
			defer p.Close()

			repo, err := NewParseRepository(p, tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if err := repo.Write(hamlet.Text, hamlet.Tokens); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			tokens, err := repo.Read(hamlet.Text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(tokens) != 4 || tokens[2].Text != "Hamlet" {
				t.Errorf("expected the stored tokens, got %v", tokens)
			}
		})
	}
}

func TestOpenParseRepositoryMissing(t *testing.T) {
	p := &Pool{size: 1}
	defer p.Close()

	if _, err := OpenParseRepository(p, filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected error for a missing repository")
	}
}

func TestDecCommand(t *testing.T) {
	ui, out, _ := testUI()
	opts := DecOptions{SourceOptions: SourceOptions{Conll: writeConll(t)}, NoColor: true}

	if err := decCommand(context.Background(), opts, "Who wrote Hamlet?", "Shakespeare", ui); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "mask [MASK] wrote Hamlet.") {
		t.Errorf("expected the cloze sentence, got %q", out.String())
	}
}

func TestDecCommandCached(t *testing.T) {
	conllDir := writeConll(t)
	cache := filepath.Join(t.TempDir(), "cache.bolt")

	ui, out, _ := testUI()
	opts := DecOptions{SourceOptions: SourceOptions{Conll: conllDir, Cache: cache}, JSON: true}
	if err := decCommand(context.Background(), opts, "Who wrote Hamlet?", "Shakespeare", ui); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), `"cloze":"[MASK] wrote Hamlet."`) {
		t.Errorf("expected the JSON record, got %q", out.String())
	}

	// the parses were written back to the cache
	exportDir := t.TempDir()
	ui, out, _ = testUI()
	if err := exportParseCommand(ExportParseOptions{From: cache, To: exportDir}, ui); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "Successfully exported 2 parses") {
		t.Errorf("expected 2 exported parses, got %q", out.String())
	}
}

func TestSentenceCommand(t *testing.T) {
	ui, out, _ := testUI()
	opts := SentenceOptions{SourceOptions: SourceOptions{Conll: writeConll(t)}, NoColor: true}

	if err := sentenceCommand(context.Background(), opts, "Who wrote Hamlet?", ui); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 token lines, got %d", len(lines))
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "train.json")
	outPath := filepath.Join(dir, "cloze.json")

	d := squad.Dataset{
		Version: "v2.0",
		Data: []squad.Article{{
			Title: "Hamlet",
			Paragraphs: []squad.Paragraph{{
				Context: "Shakespeare wrote Hamlet around 1600.",
				Qas: []squad.QA{
					{ID: "q1", Question: "Who wrote Hamlet?", Answers: []squad.Answer{{Text: "Shakespeare", AnswerStart: 0}}},
					{ID: "q2", Question: "Who wrote Macbeth?", IsImpossible: true},
				},
			}},
		}},
	}
	if err := squad.WriteFile(in, d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out, errOut bytes.Buffer
	ui := UI{Out: &out, Err: &errOut}
	opts := ConvertOptions{
		SourceOptions: SourceOptions{Conll: writeConll(t)},
		In:            in,
		Out:           outPath,
		Workers:       2,
		Ordered:       true,
		NoColor:       true,
	}

	if err := convertCommand(context.Background(), opts, ui); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "attempted 2, converted 1") {
		t.Errorf("expected the summary, got %q", out.String())
	}

	if !strings.Contains(errOut.String(), "[Hamlet] skip q2 (no-answer)") {
		t.Errorf("expected the skip diagnostic, got %q", errOut.String())
	}

	got, err := squad.ReadFile(outPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Version != "v2.0" || got.NumQas() != 1 {
		t.Fatalf("expected one converted question, got %+v", got)
	}

	qa := got.Data[0].Paragraphs[0].Qas[0]
	if qa.Question != "[MASK] wrote Hamlet." {
		t.Errorf("expected the cloze question, got %q", qa.Question)
	}

	if qa.Answers[0].Text != "Shakespeare" {
		t.Errorf("expected the original answer, got %q", qa.Answers[0].Text)
	}
}
