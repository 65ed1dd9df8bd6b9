package flashcard

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestExtractCSV - column selection, tolerance policy, failure promotion
// ---------------------------------------------------------------------------

func TestExtractCSV(t *testing.T) {
	t.Parallel()

	tagsCol := 1

	tests := []struct {
		name        string
		csv         string
		opts        CSVOptions
		wantErr     error
		wantCards   int
		wantSkipped int
		check       func(t *testing.T, x *Extraction)
	}{
		{
			name:      "basic two-column extraction",
			csv:       "front,back\nhello,world\nfoo,bar\n",
			opts:      CSVOptions{FrontColumns: []int{0}, BackColumns: []int{1}, HasHeader: true},
			wantCards: 2,
			check: func(t *testing.T, x *Extraction) {
				if x.Cards[0].Front != "hello" || x.Cards[0].Back != "world" {
					t.Errorf("Cards[0] = %+v, want front=hello back=world", x.Cards[0])
				}
			},
		},
		{
			name:        "ragged short row skipped silently",
			csv:         "a,b,c\nx,y,z\nx,y\n",
			opts:        CSVOptions{FrontColumns: []int{0}, BackColumns: []int{2}, HasHeader: true},
			wantCards:   1,
			wantSkipped: 1,
			check: func(t *testing.T, x *Extraction) {
				if x.Cards[0].Front != "x" || x.Cards[0].Back != "z" {
					t.Errorf("Cards[0] = %+v, want front=x back=z", x.Cards[0])
				}
			},
		},
		{
			name:        "empty front after joining skipped",
			csv:         "front,back\n ,keep\nq,a\n",
			opts:        CSVOptions{FrontColumns: []int{0}, BackColumns: []int{1}, HasHeader: true},
			wantCards:   1,
			wantSkipped: 1,
		},
		{
			name:      "multi-column join with custom separator",
			csv:       "word,pos,def\nrun,v.,to move fast\n",
			opts:      CSVOptions{FrontColumns: []int{0, 1}, BackColumns: []int{2}, HasHeader: true, ColumnSeparator: " - "},
			wantCards: 1,
			check: func(t *testing.T, x *Extraction) {
				if x.Cards[0].Front != "run - v." {
					t.Errorf("Front = %q, want %q", x.Cards[0].Front, "run - v.")
				}
			},
		},
		{
			name:      "empty cells omitted from join",
			csv:       "a,b,c\nword,,def\n",
			opts:      CSVOptions{FrontColumns: []int{0, 1}, BackColumns: []int{2}, HasHeader: true},
			wantCards: 1,
			check: func(t *testing.T, x *Extraction) {
				if x.Cards[0].Front != "word" {
					t.Errorf("Front = %q, want %q (empty cell must not leave a dangling separator)", x.Cards[0].Front, "word")
				}
			},
		},
		{
			name:      "tags column split and trimmed",
			csv:       "word,tags,def\nrun,\"verb, motion ,\",to move fast\n",
			opts:      CSVOptions{FrontColumns: []int{0}, BackColumns: []int{2}, TagsColumn: &tagsCol, HasHeader: true},
			wantCards: 1,
			check: func(t *testing.T, x *Extraction) {
				want := []string{"verb", "motion"}
				if len(x.Cards[0].Tags) != len(want) {
					t.Fatalf("Tags = %v, want %v", x.Cards[0].Tags, want)
				}
				for i := range want {
					if x.Cards[0].Tags[i] != want[i] {
						t.Errorf("Tags[%d] = %q, want %q", i, x.Cards[0].Tags[i], want[i])
					}
				}
			},
		},
		{
			name:      "empty tags cell leaves tags unset",
			csv:       "word,tags,def\nrun,,fast\n",
			opts:      CSVOptions{FrontColumns: []int{0}, BackColumns: []int{2}, TagsColumn: &tagsCol, HasHeader: true},
			wantCards: 1,
			check: func(t *testing.T, x *Extraction) {
				if x.Cards[0].Tags != nil {
					t.Errorf("Tags = %v, want nil", x.Cards[0].Tags)
				}
			},
		},
		{
			name:      "no header keeps first row",
			csv:       "q1,a1\nq2,a2\n",
			opts:      CSVOptions{FrontColumns: []int{0}, BackColumns: []int{1}},
			wantCards: 2,
		},
		{
			name:    "header only",
			csv:     "front,back\n",
			opts:    CSVOptions{FrontColumns: []int{0}, BackColumns: []int{1}, HasHeader: true},
			wantErr: ErrEmptyResult,
		},
		{
			name:    "all rows skipped",
			csv:     "a,b,c\nx\ny\n",
			opts:    CSVOptions{FrontColumns: []int{0}, BackColumns: []int{2}, HasHeader: true},
			wantErr: ErrEmptyResult,
		},
		{
			name:    "empty front columns",
			csv:     "a,b\nx,y\n",
			opts:    CSVOptions{BackColumns: []int{1}},
			wantErr: ErrExtraction,
		},
		{
			name:    "empty back columns",
			csv:     "a,b\nx,y\n",
			opts:    CSVOptions{FrontColumns: []int{0}},
			wantErr: ErrExtraction,
		},
		{
			name:    "negative column index",
			csv:     "a,b\nx,y\n",
			opts:    CSVOptions{FrontColumns: []int{-1}, BackColumns: []int{1}},
			wantErr: ErrExtraction,
		},
		{
			name:    "malformed quoting is fatal",
			csv:     "a,b\n\"unclosed,y\nz,w\n",
			opts:    CSVOptions{FrontColumns: []int{0}, BackColumns: []int{1}, HasHeader: true},
			wantErr: ErrExtraction,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractCSV(strings.NewReader(tt.csv), tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("errors.Is = false for %v, got: %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got.Cards) != tt.wantCards {
				t.Errorf("cards = %d, want %d", len(got.Cards), tt.wantCards)
			}
			if got.SkippedRows != tt.wantSkipped {
				t.Errorf("SkippedRows = %d, want %d", got.SkippedRows, tt.wantSkipped)
			}
			if !strings.Contains(got.Description, "cards") {
				t.Errorf("Description = %q, want row count note", got.Description)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExtractCSVFile - file variant, title derivation
// ---------------------------------------------------------------------------

func TestExtractCSVFile(t *testing.T) {
	t.Parallel()

	opts := CSVOptions{FrontColumns: []int{0}, BackColumns: []int{1}, HasHeader: true}

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := ExtractCSVFile(filepath.Join(t.TempDir(), "nope.csv"), opts)
		if !errors.Is(err, ErrCSVNotFound) {
			t.Fatalf("errors.Is(err, ErrCSVNotFound) = false, got: %v", err)
		}
	})

	t.Run("title derived from filename", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "vocabulary.csv")
		if err := os.WriteFile(path, []byte("front,back\nq,a\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := ExtractCSVFile(path, opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Title != "vocabulary" {
			t.Errorf("Title = %q, want %q", got.Title, "vocabulary")
		}
	})

	t.Run("explicit title wins", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data.csv")
		if err := os.WriteFile(path, []byte("front,back\nq,a\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		withTitle := opts
		withTitle.Title = "My Deck"
		got, err := ExtractCSVFile(path, withTitle)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Title != "My Deck" {
			t.Errorf("Title = %q, want %q", got.Title, "My Deck")
		}
	})
}

// ---------------------------------------------------------------------------
// TestExtraction_Document - candidate document assembly
// ---------------------------------------------------------------------------

func TestExtraction_Document(t *testing.T) {
	t.Parallel()

	x, err := ExtractCSV(strings.NewReader("front,back\nq,a\n"), CSVOptions{
		FrontColumns: []int{0},
		BackColumns:  []int{1},
		HasHeader:    true,
		Title:        "Deck",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := x.Document("minimal", "dark")
	if doc.Metadata.Title != "Deck" {
		t.Errorf("Metadata.Title = %q, want %q", doc.Metadata.Title, "Deck")
	}
	if doc.Style.Theme != "dark" {
		t.Errorf("Style.Theme = %q, want %q", doc.Style.Theme, "dark")
	}

	// The assembled document must pass normalization unchanged.
	n := NewNormalizer(nil)
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if result := n.Validate(data); !result.Valid {
		t.Errorf("assembled document invalid: %s", result.Error)
	}
}
