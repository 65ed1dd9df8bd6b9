package flashcard

import (
	"context"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestBuildPDFOptions - borderless A4 output
// ---------------------------------------------------------------------------

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	opts := buildPDFOptions()

	if *opts.PaperWidth != paperWidthInches {
		t.Errorf("PaperWidth = %v, want %v", *opts.PaperWidth, paperWidthInches)
	}
	if *opts.PaperHeight != paperHeightInches {
		t.Errorf("PaperHeight = %v, want %v", *opts.PaperHeight, paperHeightInches)
	}
	for name, margin := range map[string]*float64{
		"top":    opts.MarginTop,
		"bottom": opts.MarginBottom,
		"left":   opts.MarginLeft,
		"right":  opts.MarginRight,
	} {
		if *margin != 0 {
			t.Errorf("margin %s = %v, want 0", name, *margin)
		}
	}
	if !opts.PrintBackground {
		t.Error("PrintBackground = false, want true")
	}
}

func TestFloatPtr(t *testing.T) {
	t.Parallel()

	p := floatPtr(8.27)
	if p == nil || *p != 8.27 {
		t.Errorf("floatPtr(8.27) = %v", p)
	}
}

// ---------------------------------------------------------------------------
// TestRodRenderer - lifecycle without a browser
// ---------------------------------------------------------------------------

func TestNewRodConverter(t *testing.T) {
	t.Parallel()

	converter := newRodConverter(defaultTimeout)

	if converter.renderer == nil {
		t.Fatal("expected non-nil renderer")
	}
	if converter.renderer.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", converter.renderer.timeout, defaultTimeout)
	}
}

func TestRodRenderer_CloseIdempotent(t *testing.T) {
	t.Parallel()

	renderer := newRodRenderer(defaultTimeout)

	// Multiple closes on an unconnected renderer must not panic or fail.
	for i := 0; i < 3; i++ {
		if err := renderer.Close(); err != nil {
			t.Errorf("Close() #%d error: %v", i+1, err)
		}
	}
}

func TestRodRenderer_CancelledContext(t *testing.T) {
	t.Parallel()

	renderer := newRodRenderer(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The context check runs before any browser launch.
	if _, err := renderer.RenderFromFile(ctx, "/tmp/never-read.html"); err == nil {
		t.Error("expected context error, got nil")
	}
}
