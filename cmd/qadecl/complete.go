package main

import (
	"fmt"
	"strings"
)

var commands = []string{
	"convert",
	"dec",
	"sentence",
	"query",
	"import-parse",
	"export-parse",
	"bash",
	"version",
	"help",
}

// commandFlags are the flags offered after each command.
var commandFlags = map[string][]string{
	"convert":      {"-in", "-out", "-workers", "-ordered", "-no-color", "-parser-url", "-tagger-url", "-conll", "-cache"},
	"dec":          {"-debug", "-json", "-context", "-no-color", "-parser-url", "-tagger-url", "-conll", "-cache"},
	"sentence":     {"-no-color", "-parser-url", "-tagger-url", "-conll", "-cache"},
	"query":        {"-no-color", "-parser-url", "-tagger-url", "-conll", "-cache"},
	"import-parse": {"-from", "-to"},
	"export-parse": {"-from", "-to"},
}

// completeCommand handles the autocompletion requests triggered by the bash completion script.
func completeCommand(args []string, ui UI) error {
	completions := getCompletions(args)
	for _, c := range completions {
		_, _ = fmt.Fprintln(ui.Out, c)
	}
	return nil
}

func getCompletions(args []string) []string {
	// the script passes "--" before the command line
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	if len(args) < 1 {
		return nil
	}

	// args[0] is "qadecl" (binary name from COMP_WORDS[0])
	commandIndex := 1
	cursorIndex := len(args) - 1
	lastWord := args[cursorIndex]

	if cursorIndex == commandIndex {
		return withPrefix(commands, lastWord)
	}

	if cursorIndex > commandIndex && strings.HasPrefix(lastWord, "-") {
		return withPrefix(commandFlags[args[commandIndex]], lastWord)
	}

	return nil
}

func withPrefix(words []string, prefix string) []string {
	var completions []string
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			completions = append(completions, w)
		}
	}
	return completions
}
