package flashcard

import (
	"fmt"
	"strings"
)

// Theme families. Palette themes only affect the color set; layout themes
// additionally select a structural CSS class for the back of the card.
var (
	paletteThemes = map[string]bool{"light": true, "dark": true}
	layoutThemes  = map[string]bool{"basic": true, "advance": true, "detail": true}
)

// ResolvedStyle is the final, fully-populated set of presentation values
// handed to rendering. Every field holds a concrete value; no further
// defaulting happens downstream. Char limits of 0 mean unlimited.
type ResolvedStyle struct {
	Template   string
	Theme      string
	ThemeClass string

	Colors map[string]string

	Font          string
	CardFrontFont string
	CardBackFont  string

	CardWidth  string
	CardHeight string

	CardFrontTextAlign string
	CardBackTextAlign  string

	CardBorder       string
	CardBorderRadius string
	CardPadding      string
	CardBoxShadow    string

	ShowDeckName      bool
	ShowCardIndex     bool
	ShowTags          bool
	CompactTypography bool

	FrontCharLimit int
	BackCharLimit  int
}

// StyleResolver layers user style over theme defaults over global defaults.
// It holds a reference to the process-wide configuration and is safe for
// concurrent use.
type StyleResolver struct {
	cfg *Config
}

// NewStyleResolver creates a StyleResolver. A nil cfg means DefaultConfig.
func NewStyleResolver(cfg *Config) *StyleResolver {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &StyleResolver{cfg: cfg}
}

// Resolve produces the final presentation values for the given theme.
// Precedence, highest first: explicit user value, the theme's override
// block, the global defaults. The theme must be configured; an unknown
// theme is fatal and the caller must pick a valid one before retrying.
func (r *StyleResolver) Resolve(style *Style, theme string) (*ResolvedStyle, error) {
	themeStyle, ok := r.cfg.Themes[theme]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTheme, theme, strings.Join(r.cfg.AvailableThemes(), ", "))
	}

	if style == nil {
		style = &Style{}
	}

	layered := overlayStyle(&themeStyle, &r.cfg.Defaults)
	layered = overlayStyle(style, &layered)

	colors := make(map[string]string, len(layered.Colors))
	for key, value := range layered.Colors {
		colors[key] = normalizeColor(value)
	}

	resolved := &ResolvedStyle{
		Template:           layered.Template,
		Theme:              theme,
		ThemeClass:         themeClass(theme),
		Colors:             colors,
		Font:               layered.Font,
		CardFrontFont:      layered.CardFrontFont,
		CardBackFont:       layered.CardBackFont,
		CardWidth:          layered.CardWidth,
		CardHeight:         layered.CardHeight,
		CardFrontTextAlign: layered.CardFrontTextAlign,
		CardBackTextAlign:  layered.CardBackTextAlign,
		CardBorder:         layered.CardBorder,
		CardBorderRadius:   layered.CardBorderRadius,
		CardPadding:        layered.CardPadding,
		CardBoxShadow:      layered.CardBoxShadow,
	}

	if layered.ShowDeckName != nil {
		resolved.ShowDeckName = *layered.ShowDeckName
	}
	if layered.ShowCardIndex != nil {
		resolved.ShowCardIndex = *layered.ShowCardIndex
	}
	if layered.ShowTags != nil {
		resolved.ShowTags = *layered.ShowTags
	}
	if layered.CompactTypography != nil {
		resolved.CompactTypography = *layered.CompactTypography
	}
	if layered.FrontCharLimit != nil {
		resolved.FrontCharLimit = *layered.FrontCharLimit
	}
	if layered.BackCharLimit != nil {
		resolved.BackCharLimit = *layered.BackCharLimit
	}

	return resolved, nil
}

// themeClass derives the structural CSS class for a theme. Layout themes map
// to their own class; palette themes and anything else fall back to the
// light/dark pair.
func themeClass(theme string) string {
	if layoutThemes[theme] {
		return "theme-" + theme
	}
	if theme == "dark" {
		return "theme-dark"
	}
	return "theme-light"
}

// IsPaletteTheme reports whether theme only affects the color set.
func IsPaletteTheme(theme string) bool { return paletteThemes[theme] }

// IsLayoutTheme reports whether theme selects a structural variant.
func IsLayoutTheme(theme string) bool { return layoutThemes[theme] }

// normalizeColor prepends "#" to bare hex values. Already-prefixed values
// pass through, so normalization is idempotent.
func normalizeColor(value string) string {
	if value == "" || strings.HasPrefix(value, "#") {
		return value
	}
	return "#" + value
}

// overlayStyle returns bottom with every set field of top layered on. String
// fields count as set when non-empty, pointer fields when non-nil, and
// colors merge key by key.
func overlayStyle(top, bottom *Style) Style {
	out := *bottom

	colors := make(map[string]string, len(bottom.Colors)+len(top.Colors))
	for key, value := range bottom.Colors {
		colors[key] = value
	}
	for key, value := range top.Colors {
		colors[key] = value
	}
	out.Colors = colors

	if top.Template != "" {
		out.Template = top.Template
	}
	if top.Theme != "" {
		out.Theme = top.Theme
	}
	if top.Font != "" {
		out.Font = top.Font
	}
	if top.CardFrontFont != "" {
		out.CardFrontFont = top.CardFrontFont
	}
	if top.CardBackFont != "" {
		out.CardBackFont = top.CardBackFont
	}
	if top.CardWidth != "" {
		out.CardWidth = top.CardWidth
	}
	if top.CardHeight != "" {
		out.CardHeight = top.CardHeight
	}
	if top.CardFrontTextAlign != "" {
		out.CardFrontTextAlign = top.CardFrontTextAlign
	}
	if top.CardBackTextAlign != "" {
		out.CardBackTextAlign = top.CardBackTextAlign
	}
	if top.CardBorder != "" {
		out.CardBorder = top.CardBorder
	}
	if top.CardBorderRadius != "" {
		out.CardBorderRadius = top.CardBorderRadius
	}
	if top.CardPadding != "" {
		out.CardPadding = top.CardPadding
	}
	if top.CardBoxShadow != "" {
		out.CardBoxShadow = top.CardBoxShadow
	}
	if top.ShowDeckName != nil {
		out.ShowDeckName = top.ShowDeckName
	}
	if top.ShowCardIndex != nil {
		out.ShowCardIndex = top.ShowCardIndex
	}
	if top.ShowTags != nil {
		out.ShowTags = top.ShowTags
	}
	if top.CompactTypography != nil {
		out.CompactTypography = top.CompactTypography
	}
	if top.FrontCharLimit != nil {
		out.FrontCharLimit = top.FrontCharLimit
	}
	if top.BackCharLimit != nil {
		out.BackCharLimit = top.BackCharLimit
	}

	return out
}
