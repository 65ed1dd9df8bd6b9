package flashcard

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Patterns for CSS value validation.
var (
	// Single dimension: number + unit, e.g. "300px", "50%", "2.5em".
	dimensionPattern = regexp.MustCompile(`^\d+(\.\d+)?(px|%|em|rem|vw|vh|mm|cm|in|pt)$`)

	// One or more space-separated lengths, e.g. "8px" or "8px 4px".
	cssLengthPattern = regexp.MustCompile(`^\d+(\.\d+)?(px|%|em|rem)(\s+\d+(\.\d+)?(px|%|em|rem))*$`)
)

// validTextAligns is the closed set of accepted text-align values.
var validTextAligns = map[string]bool{
	AlignLeft:    true,
	AlignCenter:  true,
	AlignRight:   true,
	AlignJustify: true,
	AlignStart:   true,
	AlignEnd:     true,
}

// Timestamp formats accepted for metadata.created_at, tried in order.
var createdAtFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalizer is the sole gate between arbitrary JSON input and a Document
// safe to render. It holds a reference to the process-wide configuration and
// is safe for concurrent use.
type Normalizer struct {
	cfg *Config
}

// NewNormalizer creates a Normalizer. A nil cfg means DefaultConfig.
func NewNormalizer(cfg *Config) *Normalizer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Normalizer{cfg: cfg}
}

// rawCard mirrors Card with pointer fields so absence is distinguishable
// from the zero value during validation.
type rawCard struct {
	ID    *string  `json:"id"`
	Front *string  `json:"front"`
	Back  *string  `json:"back"`
	Tags  []string `json:"tags"`
}

// rawDocument is the loose input shape. Unknown keys are dropped by the
// JSON decoder, matching the forgiving-of-extras policy.
type rawDocument struct {
	Cards    []rawCard `json:"cards"`
	Metadata *Metadata `json:"metadata"`
	Style    *Style    `json:"style"`
}

// Validate checks data against the flashcard document schema without
// raising. The result carries the first violation encountered. The input is
// never mutated.
func (n *Normalizer) Validate(data []byte) ValidationResult {
	if _, err := n.build(data); err != nil {
		return ValidationResult{Valid: false, Error: err.Error()}
	}
	return ValidationResult{Valid: true}
}

// Normalize runs the same construction as Validate but returns a structured
// error for call sites that want fail-fast behavior. On success the returned
// Document has every default filled and every card a non-empty ID, in input
// order. Normalizing an already-normalized document is a no-op.
func (n *Normalizer) Normalize(data []byte) (*Document, error) {
	return n.build(data)
}

// build decodes, validates, and normalizes in one pass.
func (n *Normalizer) build(data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	if len(raw.Cards) == 0 {
		return nil, fmt.Errorf("%w: cards must not be empty", ErrSchemaViolation)
	}
	limits := n.cfg.Limits
	if limits.MaxCards > 0 && len(raw.Cards) > limits.MaxCards {
		return nil, fmt.Errorf("%w: deck has %d cards (max %d)", ErrTooManyCards, len(raw.Cards), limits.MaxCards)
	}

	doc := &Document{Cards: make([]Card, 0, len(raw.Cards))}

	for i, rc := range raw.Cards {
		card, err := n.buildCard(i, rc)
		if err != nil {
			return nil, err
		}
		doc.Cards = append(doc.Cards, card)
	}

	meta, err := normalizeMetadata(raw.Metadata)
	if err != nil {
		return nil, err
	}
	doc.Metadata = meta

	style, err := n.normalizeStyle(raw.Style)
	if err != nil {
		return nil, err
	}
	doc.Style = style

	return doc, nil
}

// buildCard validates one card and fills its ID when absent. i is the
// 0-based input position; generated IDs are 1-based.
func (n *Normalizer) buildCard(i int, rc rawCard) (Card, error) {
	limits := n.cfg.Limits

	if rc.Front == nil {
		return Card{}, fmt.Errorf("%w: card %d: front is required", ErrSchemaViolation, i+1)
	}
	if strings.TrimSpace(*rc.Front) == "" {
		return Card{}, fmt.Errorf("%w: card %d: front must not be empty or whitespace-only", ErrSchemaViolation, i+1)
	}
	// Length limits count characters, not bytes, so multibyte content is
	// measured the way users see it.
	if n := utf8.RuneCountInString(*rc.Front); limits.MaxContentLength > 0 && n > limits.MaxContentLength {
		return Card{}, fmt.Errorf("%w: card %d: front has %d characters (max %d)", ErrContentTooLong, i+1, n, limits.MaxContentLength)
	}

	back := ""
	if rc.Back != nil {
		back = *rc.Back
	}
	if n := utf8.RuneCountInString(back); limits.MaxContentLength > 0 && n > limits.MaxContentLength {
		return Card{}, fmt.Errorf("%w: card %d: back has %d characters (max %d)", ErrContentTooLong, i+1, n, limits.MaxContentLength)
	}

	if limits.MaxTagsPerCard > 0 && len(rc.Tags) > limits.MaxTagsPerCard {
		return Card{}, fmt.Errorf("%w: card %d: has %d tags (max %d)", ErrTooManyTags, i+1, len(rc.Tags), limits.MaxTagsPerCard)
	}
	for _, tag := range rc.Tags {
		if n := utf8.RuneCountInString(tag); limits.MaxTagLength > 0 && n > limits.MaxTagLength {
			return Card{}, fmt.Errorf("%w: card %d: tag %q has %d characters (max %d)", ErrTagTooLong, i+1, tag, n, limits.MaxTagLength)
		}
	}

	id := ""
	if rc.ID != nil {
		id = *rc.ID
	}
	if id == "" {
		id = fmt.Sprintf("card-%d", i+1)
	}

	tags := rc.Tags
	if tags == nil {
		tags = []string{}
	}

	return Card{ID: id, Front: *rc.Front, Back: back, Tags: tags}, nil
}

// normalizeMetadata fills metadata defaults and canonicalizes the creation
// timestamp to RFC 3339.
func normalizeMetadata(meta *Metadata) (Metadata, error) {
	out := Metadata{Title: DefaultTitle, Description: "", Version: DefaultVersion}
	if meta == nil {
		return out, nil
	}

	if meta.Title != "" {
		out.Title = meta.Title
	}
	out.Description = meta.Description
	if meta.Version != "" {
		out.Version = meta.Version
	}

	if meta.CreatedAt != "" {
		ts, err := parseCreatedAt(meta.CreatedAt)
		if err != nil {
			return Metadata{}, fmt.Errorf("%w: metadata: %v", ErrSchemaViolation, err)
		}
		out.CreatedAt = ts.Format(time.RFC3339)
	}

	return out, nil
}

// parseCreatedAt parses a timestamp in any accepted format.
func parseCreatedAt(s string) (time.Time, error) {
	for _, layout := range createdAtFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("created_at %q is not a recognized timestamp", s)
}

// normalizeStyle validates the provided style values and fills the fixed
// defaults. Theme-dependent keys (card dimensions, borders, display toggles)
// are left unset here; they become concrete during style resolution, where
// the theme layer applies.
func (n *Normalizer) normalizeStyle(style *Style) (Style, error) {
	defaults := n.cfg.Defaults

	out := Style{
		Template:           defaults.Template,
		Theme:              defaults.Theme,
		Colors:             map[string]string{},
		Font:               defaults.Font,
		CardFrontFont:      defaults.CardFrontFont,
		CardBackFont:       defaults.CardBackFont,
		CardFrontTextAlign: defaults.CardFrontTextAlign,
		CardBackTextAlign:  defaults.CardBackTextAlign,
	}
	if style == nil {
		return out, nil
	}

	if err := n.checkStyle(style); err != nil {
		return Style{}, err
	}

	if style.Template != "" {
		out.Template = style.Template
	}
	if style.Theme != "" {
		out.Theme = style.Theme
	}
	for key, value := range style.Colors {
		out.Colors[key] = value
	}
	if style.Font != "" {
		out.Font = strings.TrimSpace(style.Font)
	}
	if style.CardFrontFont != "" {
		out.CardFrontFont = strings.TrimSpace(style.CardFrontFont)
	}
	if style.CardBackFont != "" {
		out.CardBackFont = strings.TrimSpace(style.CardBackFont)
	}
	if style.CardFrontTextAlign != "" {
		out.CardFrontTextAlign = style.CardFrontTextAlign
	}
	if style.CardBackTextAlign != "" {
		out.CardBackTextAlign = style.CardBackTextAlign
	}

	// Theme-dependent keys pass through as provided.
	out.CardWidth = strings.TrimSpace(style.CardWidth)
	out.CardHeight = strings.TrimSpace(style.CardHeight)
	out.CardBorder = strings.TrimSpace(style.CardBorder)
	out.CardBorderRadius = strings.TrimSpace(style.CardBorderRadius)
	out.CardPadding = strings.TrimSpace(style.CardPadding)
	out.CardBoxShadow = strings.TrimSpace(style.CardBoxShadow)
	out.ShowDeckName = style.ShowDeckName
	out.ShowCardIndex = style.ShowCardIndex
	out.ShowTags = style.ShowTags
	out.CompactTypography = style.CompactTypography
	out.FrontCharLimit = style.FrontCharLimit
	out.BackCharLimit = style.BackCharLimit

	return out, nil
}

// checkStyle rejects invalid values among the provided (non-zero) style
// keys. Absent keys are not checked; their defaults are known good.
func (n *Normalizer) checkStyle(style *Style) error {
	if style.Template != "" {
		if _, ok := n.cfg.Templates[style.Template]; !ok {
			return fmt.Errorf("%w: style: template %q is not configured (available: %s)",
				ErrSchemaViolation, style.Template, strings.Join(n.cfg.AvailableTemplates(), ", "))
		}
	}
	if style.Theme != "" {
		if _, ok := n.cfg.Themes[style.Theme]; !ok {
			return fmt.Errorf("%w: style: theme %q is not configured (available: %s)",
				ErrSchemaViolation, style.Theme, strings.Join(n.cfg.AvailableThemes(), ", "))
		}
	}

	for _, dim := range []struct{ key, value string }{
		{"card_width", style.CardWidth},
		{"card_height", style.CardHeight},
	} {
		if dim.value != "" && !dimensionPattern.MatchString(strings.TrimSpace(dim.value)) {
			return fmt.Errorf("%w: style: %s %q must be a number with a CSS unit (e.g. 300px, 50%%, 2em)",
				ErrSchemaViolation, dim.key, dim.value)
		}
	}

	for _, length := range []struct{ key, value string }{
		{"card_border_radius", style.CardBorderRadius},
		{"card_padding", style.CardPadding},
	} {
		if length.value != "" && !cssLengthPattern.MatchString(strings.TrimSpace(length.value)) {
			return fmt.Errorf("%w: style: %s %q is not a valid CSS length", ErrSchemaViolation, length.key, length.value)
		}
	}

	for _, align := range []struct{ key, value string }{
		{"card_front_text_align", style.CardFrontTextAlign},
		{"card_back_text_align", style.CardBackTextAlign},
	} {
		if align.value != "" && !validTextAligns[align.value] {
			return fmt.Errorf("%w: style: %s %q must be one of left, center, right, justify, start, end",
				ErrSchemaViolation, align.key, align.value)
		}
	}

	for _, font := range []struct{ key, value string }{
		{"font", style.Font},
		{"card_front_font", style.CardFrontFont},
		{"card_back_font", style.CardBackFont},
	} {
		if font.value != "" && strings.TrimSpace(font.value) == "" {
			return fmt.Errorf("%w: style: %s must not be blank", ErrSchemaViolation, font.key)
		}
	}

	return nil
}
