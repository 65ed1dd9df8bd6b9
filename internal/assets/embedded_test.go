package assets

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEmbeddedLoader_LoadTemplate
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	t.Run("built-in templates exist", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"default", "minimal", "print"} {
			content, err := loader.LoadTemplate(name)
			if err != nil {
				t.Errorf("LoadTemplate(%q) error: %v", name, err)
				continue
			}
			if !strings.Contains(content, "<!DOCTYPE html>") {
				t.Errorf("template %q does not look like an HTML document", name)
			}
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("ghost")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("errors.Is(err, ErrTemplateNotFound) = false, got: %v", err)
		}
	})

	t.Run("invalid names rejected", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"", "../secrets", "a/b", `a\b`, "name.html"} {
			if _, err := loader.LoadTemplate(name); !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("LoadTemplate(%q): errors.Is(err, ErrInvalidAssetName) = false, got: %v", name, err)
			}
		}
	})
}

func TestEmbeddedLoader_TemplateNames(t *testing.T) {
	t.Parallel()

	names := NewEmbeddedLoader().TemplateNames()
	want := []string{"default", "minimal", "print"}
	if len(names) != len(want) {
		t.Fatalf("TemplateNames() = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("TemplateNames()[%d] = %q, want %q", i, names[i], name)
		}
	}
}
