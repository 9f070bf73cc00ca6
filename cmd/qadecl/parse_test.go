package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"strings"
	"testing"
)

func testUI() (UI, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return UI{Out: &out, Err: &errOut}, &out, &errOut
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"QADECL_PARSER_URL", "QADECL_TAGGER_URL", "QADECL_CACHE", "QADECL_WORKERS", "QADECL_LOG"} {
		t.Setenv(k, "")
	}
}

func TestParseMainArgs(t *testing.T) {
	clearEnv(t)
	ui, _, _ := testUI()

	opts, cmd, args, err := parseMainArgs([]string{"-v", "2", "convert", "-in", "a.json"}, ui)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.Verbose != 2 {
		t.Errorf("expected verbosity 2, got %d", opts.Verbose)
	}

	if cmd != "convert" {
		t.Errorf("expected command convert, got %q", cmd)
	}

	if strings.Join(args, " ") != "-in a.json" {
		t.Errorf("expected command args, got %v", args)
	}

	if _, _, _, err := parseMainArgs(nil, ui); err == nil {
		t.Error("expected error without command")
	}
}

func TestParseMainArgsHelp(t *testing.T) {
	ui, out, _ := testUI()

	_, _, _, err := parseMainArgs([]string{"-h"}, ui)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}

	if !strings.Contains(out.String(), "import-parse") {
		t.Errorf("expected the command list in the usage, got %q", out.String())
	}
}

func TestParseConvertArgs(t *testing.T) {
	clearEnv(t)
	t.Setenv("QADECL_WORKERS", "8")
	ui, _, _ := testUI()

	opts, err := parseConvertArgs([]string{"-in", "a.json", "-out", "b.json", "-conll", "parses", "-c", "cache.bolt", "-ordered"}, ui)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.In != "a.json" || opts.Out != "b.json" {
		t.Errorf("expected in and out, got %q %q", opts.In, opts.Out)
	}

	if opts.Workers != 8 {
		t.Errorf("expected 8 workers from the environment, got %d", opts.Workers)
	}

	if opts.Conll != "parses" || opts.Cache != "cache.bolt" || !opts.Ordered {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestParseConvertArgsErrors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing out", []string{"-in", "a.json", "-conll", "p"}},
		{"no source", []string{"-in", "a.json", "-out", "b.json"}},
		{"parser only", []string{"-in", "a.json", "-out", "b.json", "-parser-url", "http://localhost/p"}},
		{"zero workers", []string{"-in", "a.json", "-out", "b.json", "-conll", "p", "-workers", "0"}},
		{"extra argument", []string{"-in", "a.json", "-out", "b.json", "-conll", "p", "x"}},
		{"unknown flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, _, _ := testUI()
			if _, err := parseConvertArgs(tt.args, ui); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}

func TestParseConvertArgsEnvSource(t *testing.T) {
	clearEnv(t)
	t.Setenv("QADECL_PARSER_URL", "http://localhost:8000/predict")
	t.Setenv("QADECL_TAGGER_URL", "http://localhost:8001/predict")
	ui, _, _ := testUI()

	opts, err := parseConvertArgs([]string{"-in", "a.json", "-out", "b.json"}, ui)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.ParserURL != "http://localhost:8000/predict" || opts.TaggerURL != "http://localhost:8001/predict" {
		t.Errorf("expected URLs from the environment, got %q %q", opts.ParserURL, opts.TaggerURL)
	}
}

func TestParseDecArgs(t *testing.T) {
	clearEnv(t)
	ui, _, errOut := testUI()

	opts, q, a, err := parseDecArgs([]string{"-debug", "-conll", "p", "Who wrote Hamlet?", "Shakespeare"}, ui)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !opts.Debug || q != "Who wrote Hamlet?" || a != "Shakespeare" {
		t.Errorf("unexpected result %+v %q %q", opts, q, a)
	}

	if _, _, _, err := parseDecArgs([]string{"-conll", "p", "Who wrote Hamlet?"}, ui); err == nil {
		t.Error("expected error with one argument")
	}

	if !strings.Contains(errOut.String(), "Usage:") {
		t.Errorf("expected usage on stderr, got %q", errOut.String())
	}
}

func TestParseSentenceArgs(t *testing.T) {
	clearEnv(t)
	ui, _, _ := testUI()

	_, text, err := parseSentenceArgs([]string{"-conll", "p", "Who", "wrote", "Hamlet?"}, ui)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "Who wrote Hamlet?" {
		t.Errorf("expected joined text, got %q", text)
	}
}

func TestParseImportExportArgs(t *testing.T) {
	ui, _, _ := testUI()

	opts, err := parseImportParseArgs([]string{"-from", "parses", "-to", "cache.db"}, ui)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.From != "parses" || opts.To != "cache.db" {
		t.Errorf("unexpected options %+v", opts)
	}

	if _, err := parseExportParseArgs([]string{"-from", "cache.db"}, ui); err == nil {
		t.Error("expected error without -to")
	}
}

func TestRunCommandUnknown(t *testing.T) {
	ui, _, _ := testUI()
	err := runCommand(context.Background(), "nope", nil, ui)
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("expected unknown command error, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	ui, out, _ := testUI()
	if err := runCommand(context.Background(), "version", nil, ui); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.String() != "qadecl version dev (commit: none)\n" {
		t.Errorf("unexpected version %q", out.String())
	}
}

func TestGetCompletions(t *testing.T) {
	tests := []struct {
		args     []string
		expected []string
	}{
		{[]string{"--", "qadecl", "co"}, []string{"convert"}},
		{[]string{"qadecl", "e"}, []string{"export-parse"}},
		{[]string{"qadecl", "import-parse", "-"}, []string{"-from", "-to"}},
		{[]string{"qadecl", "dec", "-d"}, []string{"-debug"}},
		{[]string{"qadecl", "dec", "Who"}, nil},
		{nil, nil},
	}

	for _, tt := range tests {
		got := getCompletions(tt.args)
		if strings.Join(got, " ") != strings.Join(tt.expected, " ") {
			t.Errorf("%v: expected %v, got %v", tt.args, tt.expected, got)
		}
	}
}
