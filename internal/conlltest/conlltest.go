// Package conlltest builds token fixtures from compact CoNLL rows.
package conlltest

import (
	"fmt"
	"strings"

	"github.com/revelaction/qadecl/conll"
	sent "github.com/revelaction/qadecl/sentence"
)

// Rows builds the tokens of one sentence from compact rows of six fields:
// index form pos tag head dep. It panics on malformed rows.
func Rows(rows ...string) []sent.Token {
	var b strings.Builder
	for _, r := range rows {
		f := strings.Fields(r)
		if len(f) != 6 {
			panic(fmt.Sprintf("expected 6 fields, got %d in %q", len(f), r))
		}
		fmt.Fprintf(&b, "%s\t%s\t_\t%s\t%s\t_\t%s\t%s\t_\t_\n", f[0], f[1], f[2], f[3], f[4], f[5])
	}

	sentences, err := conll.Read(strings.NewReader(b.String()))
	if err != nil {
		panic(err)
	}
	if len(sentences) != 1 {
		panic(fmt.Sprintf("expected one sentence, got %d", len(sentences)))
	}
	return sentences[0].Tokens
}
