package main

import (
	"fmt"
	"os"
	"testing"

	flashcard "github.com/Moonzhang/go-flashcard"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"browser connect", flashcard.ErrBrowserConnect, ExitBrowser},
		{"pdf generation wrapped", fmt.Errorf("converting: %w", flashcard.ErrPDFGeneration), ExitBrowser},
		{"no input", ErrNoInput, ExitIO},
		{"read failure", fmt.Errorf("%w: deck.json", ErrReadInput), ExitIO},
		{"missing csv", flashcard.ErrCSVNotFound, ExitIO},
		{"os not exist", os.ErrNotExist, ExitIO},
		{"schema violation", fmt.Errorf("%w: cards required", flashcard.ErrSchemaViolation), ExitUsage},
		{"limit exceeded", flashcard.ErrTooManyCards, ExitUsage},
		{"unknown theme", flashcard.ErrUnknownTheme, ExitUsage},
		{"invalid layout", flashcard.ErrInvalidLayout, ExitUsage},
		{"bad format flag", ErrInvalidFormat, ExitUsage},
		{"validation failed", ErrValidationFailed, ExitUsage},
		{"unexpected", fmt.Errorf("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
