// Package cloze masks the answer inside a declarative sentence.
package cloze

import (
	"errors"
	"strings"
)

// Mask is the placeholder that replaces the answer.
const Mask = "[MASK]"

var (
	// ErrVerbatimMismatch means the answer text is not found verbatim in the
	// declarative or in the passage.
	ErrVerbatimMismatch = errors.New("answer not found verbatim")

	// ErrAlreadyMasked means the declarative already carries the mask.
	ErrAlreadyMasked = errors.New("sentence already masked")
)

// Format replaces the first occurrence of answer in declarative with Mask.
// The answer must appear verbatim in the declarative and in the passage
// context, otherwise the declarative is returned unchanged with
// ErrVerbatimMismatch.
func Format(declarative, answer, context string) (string, error) {
	if strings.Contains(declarative, Mask) {
		return declarative, ErrAlreadyMasked
	}

	if answer == "" || !strings.Contains(declarative, answer) || !strings.Contains(context, answer) {
		return declarative, ErrVerbatimMismatch
	}

	return strings.Replace(declarative, answer, Mask, 1), nil
}

// Unmask substitutes the answer back in place of the single mask.
func Unmask(masked, answer string) (string, error) {
	if strings.Count(masked, Mask) != 1 {
		return masked, errors.New("expected exactly one mask")
	}
	return strings.Replace(masked, Mask, answer, 1), nil
}
