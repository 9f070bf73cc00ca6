// Package conll reads and writes the 10 column tab separated interchange
// format used to round trip parses:
//
//	index form _ coarse fine _ head relation _ _
//
// A sentence may be preceded by a "# text = ..." comment holding the raw
// sentence. Sentences are separated by an empty line.
package conll

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	sent "github.com/revelaction/qadecl/sentence"
)

const (
	FieldSeparator = "\t"
	NumFields      = 10
	Placeholder    = "_"
	textComment    = "# text = "
)

// ErrMultilineText is returned when a sentence text can not be held by a
// single comment line.
var ErrMultilineText = errors.New("sentence text spans several lines")

// Sentence is one block of the file.
type Sentence struct {
	// Text is the raw sentence, if the block had a text comment
	Text   string
	Tokens []sent.Token
}

// Row formats one token as a line, without the trailing newline.
func Row(t sent.Token) string {
	fields := []string{
		strconv.Itoa(t.Index),
		t.Text,
		Placeholder,
		orPlaceholder(t.Pos),
		orPlaceholder(t.Tag),
		Placeholder,
		strconv.Itoa(t.Head),
		orPlaceholder(t.Dep),
		Placeholder,
		Placeholder,
	}
	return strings.Join(fields, FieldSeparator)
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

func parseString(s string) string {
	if s == Placeholder {
		return ""
	}
	return s
}

// ParseRow parses the fields of a line.
func ParseRow(fields []string) (sent.Token, error) {
	var t sent.Token
	if len(fields) != NumFields {
		return t, fmt.Errorf("expected %d fields, got %d", NumFields, len(fields))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return t, fmt.Errorf("error parsing ID field (%s): %w", fields[0], err)
	}
	t.Index = id

	// a form may legitimately be "_"
	t.Text = fields[1]
	if t.Text == "" {
		return t, fmt.Errorf("empty FORM field")
	}

	t.Pos = parseString(fields[3])
	t.Tag = parseString(fields[4])

	head, err := strconv.Atoi(fields[6])
	if err != nil {
		return t, fmt.Errorf("error parsing HEAD field (%s): %w", fields[6], err)
	}
	t.Head = head

	t.Dep = parseString(fields[7])
	if t.Dep == "" {
		return t, fmt.Errorf("empty DEPREL field")
	}

	return t, nil
}

// Read parses all sentences of r.
//
// Lines are split on tabs instead of using encoding/csv: forms like `"` are
// common and are not valid csv.
func Read(r io.Reader) ([]Sentence, error) {
	var sentences []Sentence
	var current Sentence

	flush := func() {
		if len(current.Tokens) > 0 {
			sentences = append(sentences, current)
		}
		current = Sentence{}
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if strings.HasPrefix(line, "#") {
			if strings.HasPrefix(line, textComment) {
				current.Text = strings.TrimPrefix(line, textComment)
			}
			continue
		}

		fields := strings.Split(line, FieldSeparator)

		// multiword ranges (1-2) and empty nodes (1.1) are not tokens
		if strings.ContainsAny(fields[0], "-.") {
			continue
		}

		t, err := ParseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d of statement %d: %w", lineNum, len(sentences), err)
		}
		current.Tokens = append(current.Tokens, t)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failure reading conll: %w", err)
	}

	flush()
	return sentences, nil
}

// Write formats the sentences, each one followed by an empty line. Nothing
// is written if a text holds a line break.
func Write(w io.Writer, sentences ...Sentence) error {
	for _, s := range sentences {
		if err := CheckText(s.Text); err != nil {
			return err
		}
	}

	bw := bufio.NewWriter(w)
	for _, s := range sentences {
		if s.Text != "" {
			if _, err := fmt.Fprintf(bw, "%s%s\n", textComment, s.Text); err != nil {
				return err
			}
		}

		for _, t := range s.Tokens {
			if _, err := fmt.Fprintln(bw, Row(t)); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// CheckText fails if text can not be written as a text comment.
func CheckText(text string) error {
	if strings.ContainsAny(text, "\r\n") {
		return fmt.Errorf("%w: %q", ErrMultilineText, text)
	}
	return nil
}
