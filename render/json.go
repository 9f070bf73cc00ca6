package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/qadecl/convert"
	sent "github.com/revelaction/qadecl/sentence"
)

// Record is the JSON form of one conversion.
type Record struct {
	Question    string       `json:"question"`
	Answer      string       `json:"answer"`
	Rule        string       `json:"rule,omitempty"`
	Declarative string       `json:"declarative,omitempty"`
	Cloze       string       `json:"cloze,omitempty"`
	Tokens      []sent.Token `json:"tokens,omitempty"`
	Skip        string       `json:"skip,omitempty"`
	Reason      string       `json:"reason,omitempty"`
}

// NewRecord builds the record of a conversion result.
func NewRecord(question, answer string, res convert.Result, masked string) Record {
	rec := Record{Question: question, Answer: answer}
	if res.Kind != convert.Converted {
		rec.Skip = res.Kind.String()
		rec.Reason = res.Reason
		return rec
	}

	rec.Rule = res.Question.Rule()
	rec.Declarative = res.Text
	rec.Cloze = masked
	rec.Tokens = res.Declarative.Tokens
	return rec
}

// JSONRenderer writes records as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the records as a JSON array.
func (r *JSONRenderer) Render(records []Record) error {
	if records == nil {
		records = []Record{}
	}

	enc := json.NewEncoder(r.W)
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}
