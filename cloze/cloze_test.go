package cloze

import (
	"errors"
	"testing"
)

const context = "Paris is the capital and most populous city of France. Houston, Texas is in the US."

func TestFormat(t *testing.T) {
	got, err := Format("Paris is the capital of France.", "Paris", context)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "[MASK] is the capital of France." {
		t.Errorf("expected cloze, got %q", got)
	}
}

func TestFormatFirstOccurrenceOnly(t *testing.T) {
	got, err := Format("Paris is Paris.", "Paris", context)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "[MASK] is Paris." {
		t.Errorf("expected only the first occurrence masked, got %q", got)
	}
}

func TestFormatMismatch(t *testing.T) {
	tests := []struct {
		name        string
		declarative string
		answer      string
	}{
		// punctuation lost on the way
		{"declarative", "Houston Texas is the largest city.", "Houston, Texas"},
		{"context", "Lyon is a city of France.", "Lyon"},
		{"empty answer", "Paris is the capital of France.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.declarative, tt.answer, context)
			if !errors.Is(err, ErrVerbatimMismatch) {
				t.Fatalf("expected ErrVerbatimMismatch, got %v", err)
			}

			if got != tt.declarative {
				t.Errorf("expected declarative unchanged, got %q", got)
			}
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	masked, err := Format("Paris is the capital of France.", "Paris", context)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	again, err := Format(masked, "Paris", context)
	if err == nil {
		t.Fatalf("expected an error on a masked sentence")
	}

	if again != masked {
		t.Errorf("expected no-op, got %q", again)
	}

	// the answer still appears once more: must not be masked twice
	masked, _ = Format("Paris is Paris.", "Paris", context)
	if _, err := Format(masked, "Paris", context); !errors.Is(err, ErrAlreadyMasked) {
		t.Errorf("expected ErrAlreadyMasked, got %v", err)
	}
}

func TestUnmaskRoundTrip(t *testing.T) {
	declaratives := []struct {
		sentence string
		answer   string
	}{
		{"Paris is the capital of France.", "Paris"},
		{"Shakespeare wrote Hamlet.", "Shakespeare"},
		{"The war ended in 1945.", "1945"},
	}

	for _, d := range declaratives {
		masked, err := Format(d.sentence, d.answer, d.sentence)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := Unmask(masked, d.answer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got != d.sentence {
			t.Errorf("expected %q, got %q", d.sentence, got)
		}
	}

	if _, err := Unmask("no mask here", "x"); err == nil {
		t.Errorf("expected error without mask")
	}
}
