package flashcard

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestServicePool - lazy creation, acquire/release, shutdown
// ---------------------------------------------------------------------------

func TestNewServicePool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"normal size", 4, 4},
		{"zero clamps to one", 0, 1},
		{"negative clamps to one", -3, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool := NewServicePool(tt.n)
			defer pool.Close()

			if pool.Size() != tt.want {
				t.Errorf("Size() = %d, want %d", pool.Size(), tt.want)
			}
		})
	}
}

func TestServicePool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := NewServicePool(2, withPDFConverter(&fakePDFConverter{}))
	defer pool.Close()

	first, err := pool.Acquire()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == nil {
		t.Fatal("Acquire() = nil service")
	}

	second, err := pool.Acquire()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second == first {
		t.Error("second Acquire() returned the same instance while first is held")
	}

	// A released service is handed out again rather than creating a third.
	pool.Release(first)
	third, err := pool.Acquire()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third != first {
		t.Error("expected the released service to be reused")
	}
}

func TestServicePool_AcquireError(t *testing.T) {
	t.Parallel()

	// invalid config makes lazy creation fail without leaking capacity
	cfg := DefaultConfig()
	cfg.Themes = nil
	pool := NewServicePool(1, WithConfig(cfg))
	defer pool.Close()

	if _, err := pool.Acquire(); err == nil {
		t.Fatal("expected error from Acquire with invalid config")
	}
	// capacity is restored, so the error repeats instead of blocking
	if _, err := pool.Acquire(); err == nil {
		t.Fatal("expected repeated error from Acquire")
	}
}

func TestServicePool_Close(t *testing.T) {
	t.Parallel()

	pool := NewServicePool(1, withPDFConverter(&fakePDFConverter{}))

	svc, err := pool.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	pool.Release(svc)

	if err := pool.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}

	// Release after close is a no-op, not a panic or deadlock.
	pool.Release(svc)
}

func TestServicePool_AcquireAfterClose(t *testing.T) {
	t.Parallel()

	pool := NewServicePool(2, withPDFConverter(&fakePDFConverter{}))

	svc, err := pool.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	pool.Release(svc)

	if err := pool.Close(); err != nil {
		t.Fatal(err)
	}

	// Both the drained-channel path and the create path must refuse.
	for i := 0; i < 2; i++ {
		if _, err := pool.Acquire(); !errors.Is(err, ErrPoolClosed) {
			t.Errorf("Acquire() #%d: errors.Is(err, ErrPoolClosed) = false, got: %v", i+1, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestResolvePoolSize
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	t.Run("explicit workers win", func(t *testing.T) {
		t.Parallel()

		if got := ResolvePoolSize(3); got != 3 {
			t.Errorf("ResolvePoolSize(3) = %d, want 3", got)
		}
	})

	t.Run("auto stays within bounds", func(t *testing.T) {
		t.Parallel()

		got := ResolvePoolSize(0)
		if got < MinPoolSize || got > MaxPoolSize {
			t.Errorf("ResolvePoolSize(0) = %d, outside [%d, %d]", got, MinPoolSize, MaxPoolSize)
		}
	})
}
