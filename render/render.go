package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/revelaction/qadecl/convert"
	"github.com/revelaction/qadecl/declarative"
	sent "github.com/revelaction/qadecl/sentence"
)

var (
	Red       = "\033[1;31m"
	Yellow    = "\033[0;33m"
	Gray      = "\033[0;37m"
	Off       = "\033[0m"
	Green256  = "\033[1;38;5;70m"
	Yellow256 = "\033[1;38;5;130m"
)

type Renderer struct {
	W        io.Writer
	HasColor bool
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w}
}

// Tokens writes one line per token: index, form, coarse and fine tags,
// head and relation.
func (r *Renderer) Tokens(tokens []sent.Token) {
	for _, t := range tokens {
		fmt.Fprintf(r.W, "%3d %-18s %-6s %-5s %3d %s\n", t.Index, r.color(t.Text, Yellow256), t.Pos, t.Tag, t.Head, t.Dep)
	}
}

// Result writes the outcome of one conversion: the matched rule and the
// declarative with the inserted constituent highlighted, or the reason it
// was skipped.
func (r *Renderer) Result(res convert.Result, masked string) {
	if res.Kind != convert.Converted {
		msg := fmt.Sprintf("%s: %s", res.Kind, res.Reason)
		if res.Index > 0 {
			msg += fmt.Sprintf(" (token %d)", res.Index)
		}
		fmt.Fprintln(r.W, r.color(msg, Red))
		return
	}

	fmt.Fprintf(r.W, "%s %s\n", r.color("rule", Gray), res.Question.Rule())
	fmt.Fprintf(r.W, "%s %s\n", r.color("decl", Gray), r.Declarative(res.Declarative))
	if masked != "" {
		fmt.Fprintf(r.W, "%s %s\n", r.color("mask", Gray), masked)
	}
}

// Declarative returns the words of d separated by spaces, with the
// inserted constituent colored.
func (r *Renderer) Declarative(d declarative.Declarative) string {
	words := make([]string, len(d.Tokens))
	for i, t := range d.Tokens {
		if t.Index >= d.Start && t.Index <= d.End {
			words[i] = r.color(t.Text, Green256)
			continue
		}
		words[i] = t.Text
	}
	return strings.Join(words, " ")
}

// Skip writes a diagnostic line for a skipped question.
func (r *Renderer) Skip(s convert.Skip) {
	prefix := fmt.Sprintf("[%s] ", s.Title)
	fmt.Fprintf(r.W, "%s%s\n", r.color(prefix, Yellow), s)
}

func (r *Renderer) color(text, color string) string {
	if !r.HasColor {
		return text
	}
	return color + text + Off
}
