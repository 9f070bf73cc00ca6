// Package squad reads and writes question answering datasets in the SQuAD
// v1.1 and v2.0 JSON format.
package squad

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type Answer struct {
	Text        string `json:"text"`
	AnswerStart int    `json:"answer_start"`
}

type QA struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Answers      []Answer `json:"answers"`
	IsImpossible bool     `json:"is_impossible"`
}

type Paragraph struct {
	Context string `json:"context"`
	Qas     []QA   `json:"qas"`
}

type Article struct {
	Title      string      `json:"title"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

type Dataset struct {
	Version string    `json:"version,omitempty"`
	Data    []Article `json:"data"`
}

// NumQas returns the number of questions of the article.
func (a Article) NumQas() int {
	n := 0
	for _, p := range a.Paragraphs {
		n += len(p.Qas)
	}
	return n
}

// NumQas returns the number of questions of the dataset.
func (d Dataset) NumQas() int {
	n := 0
	for _, a := range d.Data {
		n += a.NumQas()
	}
	return n
}

// Read decodes a dataset.
func Read(r io.Reader) (Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Dataset{}, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return d, nil
}

// ReadFile decodes the dataset at path.
func ReadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()

	return Read(f)
}

// Write encodes the dataset, without HTML escaping.
func Write(w io.Writer, d Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	return nil
}

// WriteFile encodes the dataset to path, truncating it.
func WriteFile(path string, d Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, d); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
