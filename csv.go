package flashcard

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultColumnSeparator joins multi-column front/back content.
const DefaultColumnSeparator = " "

// CSVOptions configures column-to-field assignment for CSV extraction.
type CSVOptions struct {
	// FrontColumns and BackColumns are 0-based column indices whose trimmed,
	// non-empty values are joined with ColumnSeparator. Both must be
	// non-empty.
	FrontColumns []int
	BackColumns  []int

	// TagsColumn selects a column whose value is split on "," into tags.
	// Nil means no tags.
	TagsColumn *int

	// HasHeader skips the first row.
	HasHeader bool

	// ColumnSeparator defaults to a single space.
	ColumnSeparator string

	// Title overrides the deck title. The file variant derives a title from
	// the filename when empty.
	Title string
}

// Validate checks that the column assignment is usable.
func (o *CSVOptions) Validate() error {
	if len(o.FrontColumns) == 0 {
		return fmt.Errorf("%w: front columns must not be empty", ErrExtraction)
	}
	if len(o.BackColumns) == 0 {
		return fmt.Errorf("%w: back columns must not be empty", ErrExtraction)
	}
	for _, idx := range o.FrontColumns {
		if idx < 0 {
			return fmt.Errorf("%w: negative front column index %d", ErrExtraction, idx)
		}
	}
	for _, idx := range o.BackColumns {
		if idx < 0 {
			return fmt.Errorf("%w: negative back column index %d", ErrExtraction, idx)
		}
	}
	if o.TagsColumn != nil && *o.TagsColumn < 0 {
		return fmt.Errorf("%w: negative tags column index %d", ErrExtraction, *o.TagsColumn)
	}
	return nil
}

// separator returns the configured separator or the default.
func (o *CSVOptions) separator() string {
	if o.ColumnSeparator == "" {
		return DefaultColumnSeparator
	}
	return o.ColumnSeparator
}

// maxColumn returns the highest column index referenced by the options.
func (o *CSVOptions) maxColumn() int {
	max := 0
	for _, idx := range o.FrontColumns {
		if idx > max {
			max = idx
		}
	}
	for _, idx := range o.BackColumns {
		if idx > max {
			max = idx
		}
	}
	if o.TagsColumn != nil && *o.TagsColumn > max {
		max = *o.TagsColumn
	}
	return max
}

// Extraction is the result of turning delimited text into candidate cards.
// Rows the extractor could not use are counted, not reported as errors:
// tolerating ragged CSV input is deliberate policy.
type Extraction struct {
	Cards       []Card
	Title       string
	Description string
	SkippedRows int
}

// Document assembles the extraction into a candidate document ready for
// normalization or direct rendering. Missing card IDs are filled positionally
// so the result is renderable as is.
func (x *Extraction) Document(template, theme string) *Document {
	cards := make([]Card, len(x.Cards))
	copy(cards, x.Cards)
	for i := range cards {
		if cards[i].ID == "" {
			cards[i].ID = fmt.Sprintf("card-%d", i+1)
		}
		if cards[i].Tags == nil {
			cards[i].Tags = []string{}
		}
	}

	return &Document{
		Cards: cards,
		Metadata: Metadata{
			Title:       x.Title,
			Description: x.Description,
			Version:     DefaultVersion,
		},
		Style: Style{Template: template, Theme: theme},
	}
}

// ExtractCSV reads delimited text and selects the configured columns into
// candidate cards. Rows with too few columns for the referenced indices, and
// rows whose joined front is empty, are skipped silently and counted. A
// parse failure is fatal; a parseable CSV that yields zero cards is promoted
// to ErrEmptyResult because an empty deck is user error, not a valid result.
func ExtractCSV(r io.Reader, opts CSVOptions) (*Extraction, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows handled below, not by the parser

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	if opts.HasHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	maxIdx := opts.maxColumn()
	sep := opts.separator()

	result := &Extraction{Title: opts.Title}
	for _, row := range rows {
		if len(row) <= maxIdx {
			result.SkippedRows++
			continue
		}

		front := joinColumns(row, opts.FrontColumns, sep)
		if front == "" {
			result.SkippedRows++
			continue
		}
		back := joinColumns(row, opts.BackColumns, sep)

		card := Card{Front: front, Back: back}
		if opts.TagsColumn != nil {
			if tags := splitTags(row[*opts.TagsColumn]); len(tags) > 0 {
				card.Tags = tags
			}
		}
		result.Cards = append(result.Cards, card)
	}

	if len(result.Cards) == 0 {
		return nil, fmt.Errorf("%w: processed %d rows", ErrEmptyResult, len(rows))
	}

	if result.Title == "" {
		result.Title = DefaultTitle
	}
	result.Description = fmt.Sprintf("Imported %d cards from CSV", len(result.Cards))

	return result, nil
}

// ExtractCSVFile extracts cards from a CSV file on disk. A missing file is
// ErrCSVNotFound; when no title is configured, the filename (without
// extension) becomes the deck title.
func ExtractCSVFile(path string, opts CSVOptions) (*Extraction, error) {
	f, err := os.Open(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCSVNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer f.Close()

	if opts.Title == "" {
		base := filepath.Base(path)
		opts.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return ExtractCSV(f, opts)
}

// joinColumns joins the trimmed values at the given indices, omitting empty
// cells.
func joinColumns(row []string, columns []int, sep string) string {
	parts := make([]string, 0, len(columns))
	for _, idx := range columns {
		if value := strings.TrimSpace(row[idx]); value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, sep)
}

// splitTags splits a cell on "," and drops empty pieces.
func splitTags(cell string) []string {
	var tags []string
	for _, piece := range strings.Split(cell, ",") {
		if tag := strings.TrimSpace(piece); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
