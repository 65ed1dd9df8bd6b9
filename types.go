package flashcard

// Text alignment constants.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
	AlignStart   = "start"
	AlignEnd     = "end"
)

// Metadata defaults.
const (
	DefaultTitle   = "FlashCard"
	DefaultVersion = "1.0.0"
)

// Card is one flashcard. After normalization every card has a non-empty ID
// and Tags is never nil.
type Card struct {
	ID    string   `json:"id" yaml:"id"`
	Front string   `json:"front" yaml:"front"`
	Back  string   `json:"back" yaml:"back"`
	Tags  []string `json:"tags" yaml:"tags"`
}

// Metadata describes a deck.
type Metadata struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version" yaml:"version"`
	CreatedAt   string `json:"created_at,omitempty" yaml:"created_at,omitempty"` // RFC 3339
}

// Style is the presentation configuration of a deck. The zero value of every
// field means "not set": string fields fall through to theme or global
// defaults during style resolution, pointer fields distinguish an explicit
// false/zero from absence. Unknown keys in input are ignored.
type Style struct {
	Template string            `json:"template,omitempty" yaml:"template,omitempty"`
	Theme    string            `json:"theme,omitempty" yaml:"theme,omitempty"`
	Colors   map[string]string `json:"colors,omitempty" yaml:"colors,omitempty"`

	// Fonts, CSS shorthand supported.
	Font          string `json:"font,omitempty" yaml:"font,omitempty"`
	CardFrontFont string `json:"card_front_font,omitempty" yaml:"card_front_font,omitempty"`
	CardBackFont  string `json:"card_back_font,omitempty" yaml:"card_back_font,omitempty"`

	// Card dimensions, number + CSS unit.
	CardWidth  string `json:"card_width,omitempty" yaml:"card_width,omitempty"`
	CardHeight string `json:"card_height,omitempty" yaml:"card_height,omitempty"`

	CardFrontTextAlign string `json:"card_front_text_align,omitempty" yaml:"card_front_text_align,omitempty"`
	CardBackTextAlign  string `json:"card_back_text_align,omitempty" yaml:"card_back_text_align,omitempty"`

	// Borders and decoration.
	CardBorder       string `json:"card_border,omitempty" yaml:"card_border,omitempty"`
	CardBorderRadius string `json:"card_border_radius,omitempty" yaml:"card_border_radius,omitempty"`
	CardPadding      string `json:"card_padding,omitempty" yaml:"card_padding,omitempty"`
	CardBoxShadow    string `json:"card_box_shadow,omitempty" yaml:"card_box_shadow,omitempty"`

	// Display toggles.
	ShowDeckName      *bool `json:"show_deck_name,omitempty" yaml:"show_deck_name,omitempty"`
	ShowCardIndex     *bool `json:"show_card_index,omitempty" yaml:"show_card_index,omitempty"`
	ShowTags          *bool `json:"show_tags,omitempty" yaml:"show_tags,omitempty"`
	CompactTypography *bool `json:"compact_typography,omitempty" yaml:"compact_typography,omitempty"`

	// Character limits, nil = unlimited.
	FrontCharLimit *int `json:"front_char_limit,omitempty" yaml:"front_char_limit,omitempty"`
	BackCharLimit  *int `json:"back_char_limit,omitempty" yaml:"back_char_limit,omitempty"`
}

// Document is the canonical, validated unit of work. It is constructed fresh
// per normalization call, immutable once normalized, and never persisted.
type Document struct {
	Cards    []Card   `json:"cards" yaml:"cards"`
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Style    Style    `json:"style" yaml:"style"`
}

// ValidationResult reports the outcome of a validation pass without raising.
// Error holds the first violation encountered, empty when Valid.
type ValidationResult struct {
	Valid bool   `json:"is_valid"`
	Error string `json:"error,omitempty"`
}

// boolPtr returns a pointer to b.
func boolPtr(b bool) *bool { return &b }
