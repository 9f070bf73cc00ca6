package query

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/qadecl/convert"
	"github.com/revelaction/qadecl/render"
	sent "github.com/revelaction/qadecl/sentence"
	"github.com/revelaction/qadecl/storage"
)

const (
	completionThreshold = 2

	// separator splits question, answer and optional context in the prompt
	separator = "|"
)

type Handler struct {
	Converter *convert.Converter
	Renderer  *render.Renderer

	// texts of the stored parses, offered as completions
	texts []string
}

// NewHandler builds the REPL handler. repo may be nil, then there are no
// completions.
func NewHandler(c *convert.Converter, r *render.Renderer, repo storage.ParseReader) (*Handler, error) {
	h := &Handler{Converter: c, Renderer: r}
	if repo == nil {
		return h, nil
	}

	err := repo.List(func(text string, _ []sent.Token) error {
		h.texts = append(h.texts, text)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(h.texts)
	return h, nil
}

func (h *Handler) Run(ctx context.Context) error {
	fmt.Println("🔑 question | answer [| context], Ctrl+X: Toggle color, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      ❓ ", h.completer,
			prompt.OptionTitle("qadecl query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.HasColor = !h.Renderer.HasColor
					fmt.Println("Color set to " + fmt.Sprintf("%t", h.Renderer.HasColor))
				}}),
		)

		if in == "quit" {
			return nil
		}

		if strings.TrimSpace(in) == "" {
			continue
		}

		history = append(history, in)
		question, answer, passage, err := Parse(in)
		if err != nil {
			fmt.Fprintf(h.Renderer.W, "%v\n", err)
			continue
		}

		if passage == "" {
			passage = question + " " + answer
		}

		res, masked, err := h.Converter.Cloze(ctx, question, answer, passage)
		if err != nil {
			fmt.Fprintf(h.Renderer.W, "Error converting: %v\n", err)
			continue
		}

		h.Renderer.Result(res, masked)
	}
}

// Parse splits a prompt line into question, answer and optional passage.
func Parse(in string) (string, string, string, error) {
	parts := strings.Split(in, separator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return "", "", "", errors.New("expected: question | answer [| context]")
	}

	passage := ""
	if len(parts) == 3 {
		passage = parts[2]
	}

	return parts[0], parts[1], passage, nil
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	befCursor := in.TextBeforeCursor()

	// only the question is completed
	if strings.Contains(befCursor, separator) {
		return []prompt.Suggest{}
	}

	return h.suggest(befCursor)
}

func (h *Handler) suggest(prefix string) []prompt.Suggest {
	s := []prompt.Suggest{}
	if len(prefix) < completionThreshold {
		return s
	}

	for _, text := range h.texts {
		if strings.HasPrefix(text, prefix) {
			s = append(s, prompt.Suggest{Text: text, Description: "🔖 parsed"})
		}
	}

	return s
}
