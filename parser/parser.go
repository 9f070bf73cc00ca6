// Package parser connects the converter to the dependency parser and POS
// tagger collaborators, and turns their output into tokens.
package parser

import (
	"context"
	"fmt"

	sent "github.com/revelaction/qadecl/sentence"
)

// Dependency is the output of a biaffine dependency parser predictor.
// Heads are 1-based, 0 is the root.
type Dependency struct {
	Words                 []string `json:"words"`
	Pos                   []string `json:"pos"`
	PredictedHeads        []int    `json:"predicted_heads"`
	PredictedDependencies []string `json:"predicted_dependencies"`
}

// Parser returns the dependency parse of a raw sentence.
type Parser interface {
	Parse(ctx context.Context, sentence string) (Dependency, error)
}

// Tagger returns one fine grained (PTB) tag per word of a raw sentence.
type Tagger interface {
	Tag(ctx context.Context, sentence string) ([]string, error)
}

// Source returns the tokens of a raw sentence. It is what the converter
// consumes.
type Source interface {
	Tokens(ctx context.Context, sentence string) ([]sent.Token, error)
}

// Merge combines a dependency parse and the tags of the same sentence
// position by position.
func Merge(dep Dependency, tags []string) ([]sent.Token, error) {
	n := len(dep.Words)
	if len(dep.Pos) != n || len(dep.PredictedHeads) != n || len(dep.PredictedDependencies) != n {
		return nil, fmt.Errorf("inconsistent parse: %d words, %d pos, %d heads, %d dependencies",
			n, len(dep.Pos), len(dep.PredictedHeads), len(dep.PredictedDependencies))
	}

	if len(tags) != n {
		return nil, fmt.Errorf("tokenization mismatch: %d words, %d tags", n, len(tags))
	}

	tokens := make([]sent.Token, n)
	for i := range dep.Words {
		tokens[i] = sent.Token{
			Index: i + 1,
			Text:  dep.Words[i],
			Pos:   dep.Pos[i],
			Tag:   tags[i],
			Head:  dep.PredictedHeads[i],
			Dep:   dep.PredictedDependencies[i],
		}
	}

	return tokens, nil
}

// Pipeline is a Source backed by a parser and a tagger.
type Pipeline struct {
	parser Parser
	tagger Tagger
}

var _ Source = (*Pipeline)(nil)

func NewPipeline(p Parser, t Tagger) *Pipeline {
	return &Pipeline{parser: p, tagger: t}
}

func (p *Pipeline) Tokens(ctx context.Context, sentence string) ([]sent.Token, error) {
	dep, err := p.parser.Parse(ctx, sentence)
	if err != nil {
		return nil, fmt.Errorf("dependency parse failed: %w", err)
	}

	tags, err := p.tagger.Tag(ctx, sentence)
	if err != nil {
		return nil, fmt.Errorf("tagging failed: %w", err)
	}

	return Merge(dep, tags)
}
