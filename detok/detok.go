// Package detok joins English word tokens back into text, in the manner of
// the Moses detokenizer: punctuation, clitics and quotes are attached to
// their neighbour, PTB bracket escapes are restored.
package detok

import (
	"strings"
)

var ptbEscapes = map[string]string{
	"-LRB-": "(", "-RRB-": ")",
	"-LSB-": "[", "-RSB-": "]",
	"-LCB-": "{", "-RCB-": "}",
	"``": `"`, "''": `"`,
}

// attachLeft tokens take no space before them.
var attachLeft = map[string]bool{
	",": true, ".": true, "?": true, "!": true, ":": true, ";": true,
	"%": true, ")": true, "]": true, "}": true, "...": true,
	"'s": true, "'S": true, "'re": true, "'ve": true, "'ll": true, "'d": true, "'m": true,
	"n't": true, "N'T": true,
}

// attachRight tokens take no space after them.
var attachRight = map[string]bool{
	"(": true, "[": true, "{": true, "$": true, "#": true, "£": true, "€": true,
}

// English is a stateless detokenizer, safe for concurrent use.
type English struct{}

// New returns an English detokenizer.
func New() English {
	return English{}
}

// Detokenize joins words into a sentence.
func (English) Detokenize(words []string) string {
	var b strings.Builder

	quoteOpen := false
	glue := true // no space before the next token
	for _, w := range words {
		orig := w
		if r, ok := ptbEscapes[w]; ok {
			w = r
		}

		if w == "" {
			continue
		}

		left := attachLeft[w]
		right := attachRight[w]

		switch {
		case orig == "``":
			right, quoteOpen = true, true
		case orig == "''":
			left, quoteOpen = true, false
		case w == `"`:
			if quoteOpen {
				left = true
			} else {
				right = true
			}
			quoteOpen = !quoteOpen
		case w == "'":
			// possessive of plural: students '
			left = true
		}

		if !glue && !left {
			b.WriteByte(' ')
		}
		b.WriteString(w)
		glue = right
	}

	return b.String()
}
