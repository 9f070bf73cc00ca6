package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	sent "github.com/revelaction/qadecl/sentence"
)

const DefaultTimeout = 30 * time.Second

// AllenNLP is a client for predictors served by "allennlp serve". The
// dependency parser and the tagger are usually two servers.
type AllenNLP struct {
	ParserURL string
	TaggerURL string

	client *http.Client
}

var (
	_ Parser = (*AllenNLP)(nil)
	_ Tagger = (*AllenNLP)(nil)
)

func NewAllenNLP(parserURL, taggerURL string) *AllenNLP {
	return &AllenNLP{
		ParserURL: parserURL,
		TaggerURL: taggerURL,
		client:    &http.Client{Timeout: DefaultTimeout},
	}
}

type predictRequest struct {
	Sentence string `json:"sentence"`
}

type tagResponse struct {
	PosTags []string `json:"pos_tags"`
}

func (a *AllenNLP) Parse(ctx context.Context, sentence string) (Dependency, error) {
	var dep Dependency
	if err := a.predict(ctx, a.ParserURL, sentence, &dep); err != nil {
		return Dependency{}, err
	}
	return dep, nil
}

func (a *AllenNLP) Tag(ctx context.Context, sentence string) ([]string, error) {
	var resp tagResponse
	if err := a.predict(ctx, a.TaggerURL, sentence, &resp); err != nil {
		return nil, err
	}
	return resp.PosTags, nil
}

// Tokens parses and tags the sentence.
func (a *AllenNLP) Tokens(ctx context.Context, sentence string) ([]sent.Token, error) {
	return NewPipeline(a, a).Tokens(ctx, sentence)
}

func (a *AllenNLP) predict(ctx context.Context, url, sentence string, v interface{}) error {
	if url == "" {
		return fmt.Errorf("no predictor url")
	}

	body, err := json.Marshal(predictRequest{Sentence: sentence})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("predictor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("predictor %s returned %s: %s", url, resp.Status, bytes.TrimSpace(msg))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode predictor response: %w", err)
	}

	return nil
}
