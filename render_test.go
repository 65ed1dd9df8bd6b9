package flashcard

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func testDocument() *Document {
	return &Document{
		Cards: []Card{
			{ID: "card-1", Front: "**ubiquitous**", Back: "adj. present everywhere", Tags: []string{"vocab"}},
			{ID: "card-2", Front: "ephemeral", Back: "adj. short-lived"},
			{ID: "card-3", Front: "laconic", Back: "adj. using few words"},
		},
		Metadata: Metadata{Title: "Words", Description: "GRE prep", Version: "1.0.0"},
		Style:    Style{Template: "default", Theme: "light"},
	}
}

func testRenderer(t *testing.T) (*deckRenderer, *ResolvedStyle) {
	t.Helper()

	renderer, err := newDeckRenderer(nil, "")
	if err != nil {
		t.Fatal(err)
	}
	resolved, err := NewStyleResolver(nil).Resolve(nil, "light")
	if err != nil {
		t.Fatal(err)
	}
	return renderer, resolved
}

// ---------------------------------------------------------------------------
// TestDeckRenderer_Render - full-page HTML output
// ---------------------------------------------------------------------------

func TestDeckRenderer_Render(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	doc := testDocument()

	t.Run("minimal template", func(t *testing.T) {
		t.Parallel()

		renderer, resolved := testRenderer(t)
		html, err := renderer.Render(ctx, doc, resolved, "minimal", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"<!DOCTYPE html>",
			"<title>Words</title>",
			`class="theme-light"`,
			"<strong>ubiquitous</strong>",
			"adj. short-lived",
			`id="card-3"`,
			"width: 300px",
		} {
			if !strings.Contains(html, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("deck header follows show_deck_name", func(t *testing.T) {
		t.Parallel()

		renderer, _ := testRenderer(t)
		style := &Style{ShowDeckName: boolPtr(true)}
		resolved, err := NewStyleResolver(nil).Resolve(style, "light")
		if err != nil {
			t.Fatal(err)
		}

		html, err := renderer.Render(ctx, doc, resolved, "default", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(html, "<h1>Words</h1>") {
			t.Error("deck name missing with show_deck_name enabled")
		}
		if !strings.Contains(html, "GRE prep") {
			t.Error("description missing with show_deck_name enabled")
		}
	})

	t.Run("unknown template falls back to default", func(t *testing.T) {
		t.Parallel()

		renderer, resolved := testRenderer(t)
		html, err := renderer.Render(ctx, doc, resolved, "ghost", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(html, "<!DOCTYPE html>") {
			t.Error("fallback render did not produce a document")
		}
	})

	t.Run("invalid layout", func(t *testing.T) {
		t.Parallel()

		renderer, resolved := testRenderer(t)
		if _, err := renderer.Render(ctx, doc, resolved, "print", "a3_4"); !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("errors.Is(err, ErrInvalidLayout) = false, got: %v", err)
		}
	})

	t.Run("single layout pages per side", func(t *testing.T) {
		t.Parallel()

		renderer, resolved := testRenderer(t)
		html, err := renderer.Render(ctx, doc, resolved, "print", LayoutSingle)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// one front page and one back page per card
		if got := strings.Count(html, `<div class="page">`); got != 2*len(doc.Cards) {
			t.Errorf("page count = %d, want %d", got, 2*len(doc.Cards))
		}
	})

	t.Run("a4_8 layout pads to full sheets", func(t *testing.T) {
		t.Parallel()

		renderer, resolved := testRenderer(t)
		html, err := renderer.Render(ctx, doc, resolved, "print", LayoutA48)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 3 cards pad to one sheet of 8: one fronts page plus one backs page
		if got := strings.Count(html, `<div class="page">`); got != 2 {
			t.Errorf("page count = %d, want 2", got)
		}
		if got := strings.Count(html, `<div class="cell">`); got != 2*cardsPerSheet {
			t.Errorf("cell count = %d, want %d", got, 2*cardsPerSheet)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		renderer, resolved := testRenderer(t)
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := renderer.Render(cancelled, doc, resolved, "minimal", ""); err == nil {
			t.Error("expected context error, got nil")
		}
	})
}

// ---------------------------------------------------------------------------
// TestPadCards / TestPaginate - duplex sheet assembly
// ---------------------------------------------------------------------------

func TestPadCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		count     int
		wantTotal int
		wantBlank int
	}{
		{"empty", 0, 0, 0},
		{"partial sheet", 3, 8, 5},
		{"exact sheet", 8, 8, 0},
		{"sheet and a half", 12, 16, 4},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cards := make([]renderedCard, tt.count)
			for i := range cards {
				cards[i] = renderedCard{Index: i + 1}
			}

			padded := padCards(cards, cardsPerSheet)
			if len(padded) != tt.wantTotal {
				t.Fatalf("len = %d, want %d", len(padded), tt.wantTotal)
			}
			blanks := 0
			for _, card := range padded {
				if card.Blank {
					blanks++
				}
			}
			if blanks != tt.wantBlank {
				t.Errorf("blank count = %d, want %d", blanks, tt.wantBlank)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	cards := make([]renderedCard, cardsPerSheet)
	for i := range cards {
		cards[i] = renderedCard{Index: i + 1}
	}

	pages := paginate(cards, cardsPerSheet)
	if len(pages) != 1 {
		t.Fatalf("page count = %d, want 1", len(pages))
	}

	// fronts keep deck order
	for i, card := range pages[0].Fronts {
		if card.Index != i+1 {
			t.Errorf("Fronts[%d].Index = %d, want %d", i, card.Index, i+1)
		}
	}
	// backs swap columns within each row for duplex alignment
	wantBacks := []int{2, 1, 4, 3, 6, 5, 8, 7}
	for i, card := range pages[0].Backs {
		if card.Index != wantBacks[i] {
			t.Errorf("Backs[%d].Index = %d, want %d", i, card.Index, wantBacks[i])
		}
	}
}
