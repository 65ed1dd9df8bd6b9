package flashcard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	chromastyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/Moonzhang/go-flashcard/internal/assets"
)

// Page layouts for print rendering.
const (
	// LayoutSingle puts each card side on its own A4 page.
	LayoutSingle = "single"

	// LayoutA48 arranges 8 cards per A4 page, fronts and backs on
	// consecutive pages for duplex printing. The deck is padded with blank
	// cards up to a multiple of 8.
	LayoutA48 = "a4_8"
)

// cardsPerSheet is the grid capacity of one LayoutA48 page.
const cardsPerSheet = 8

// assetLoader is the subset of the assets package the renderer needs.
type assetLoader interface {
	LoadTemplate(name string) (string, error)
}

// Compile-time interface check.
var _ assetLoader = (*assets.AssetResolver)(nil)

// renderedCard is one card prepared for template execution. Front and Back
// hold sanitized HTML fragments, so they are safe to mark as template.HTML.
type renderedCard struct {
	ID    string
	Index int // 1-based position in the deck
	Front template.HTML
	Back  template.HTML
	Tags  []string
	Blank bool // padding card on a4_8 sheets
}

// printPage is one duplex sheet of a LayoutA48 document. Backs are mirrored
// within each grid row so fronts and backs line up after double-sided
// printing.
type printPage struct {
	Fronts []renderedCard
	Backs  []renderedCard
}

// styleView adapts ResolvedStyle for template execution. Presentation values
// are already validated against the CSS value grammar, so they are marked as
// template.CSS to skip context escaping inside style blocks.
type styleView struct {
	Font          template.CSS
	CardFrontFont template.CSS
	CardBackFont  template.CSS

	CardWidth  template.CSS
	CardHeight template.CSS

	CardFrontTextAlign template.CSS
	CardBackTextAlign  template.CSS

	CardBorder       template.CSS
	CardBorderRadius template.CSS
	CardPadding      template.CSS
	CardBoxShadow    template.CSS

	Colors map[string]template.CSS

	ShowDeckName      bool
	ShowCardIndex     bool
	ShowTags          bool
	CompactTypography bool

	FrontCharLimit int
	BackCharLimit  int
}

// deckContext is the root value handed to a deck template.
type deckContext struct {
	Title        string
	Description  string
	DeckName     string
	ThemeClass   string
	TotalCards   int
	Layout       string
	Style        *styleView
	Cards        []renderedCard
	Pages        []printPage // populated for LayoutA48 only
	HighlightCSS template.CSS
}

// highlightCSS returns the chroma stylesheet matching the class-based
// highlighting the card renderer emits. Generated once per process.
var highlightCSS = sync.OnceValue(func() template.CSS {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, chromastyles.Get("github")); err != nil {
		return ""
	}
	return template.CSS(buf.String())
})

// deckRenderer turns a normalized document plus a resolved style into a full
// HTML page. It is safe for concurrent use.
type deckRenderer struct {
	cfg    *Config
	assets assetLoader
	cards  *cardRenderer
}

// newDeckRenderer creates a deckRenderer. A nil cfg means DefaultConfig. An
// empty assetPath uses only the embedded templates; otherwise templates in
// assetPath take precedence.
func newDeckRenderer(cfg *Config, assetPath string) (*deckRenderer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	resolver, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return nil, err
	}
	return &deckRenderer{
		cfg:    cfg,
		assets: resolver,
		cards:  newCardRenderer(),
	}, nil
}

// Render produces the deck HTML for the given template and layout. An empty
// layout renders the interactive on-screen deck; LayoutSingle and LayoutA48
// produce print pagination and are meant for the print template.
func (d *deckRenderer) Render(ctx context.Context, doc *Document, resolved *ResolvedStyle, templateName, layout string) (string, error) {
	switch layout {
	case "", LayoutSingle, LayoutA48:
	default:
		return "", fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidLayout, layout, LayoutSingle, LayoutA48)
	}

	source, err := d.templateSource(templateName)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(templateName).Parse(source)
	if err != nil {
		return "", fmt.Errorf("%w: parsing %q: %v", ErrRenderTemplate, templateName, err)
	}

	cards, err := d.renderCards(ctx, doc.Cards)
	if err != nil {
		return "", err
	}
	if layout == LayoutA48 {
		cards = padCards(cards, cardsPerSheet)
	}

	tctx := &deckContext{
		Title:        doc.Metadata.Title,
		Description:  doc.Metadata.Description,
		DeckName:     doc.Metadata.Title,
		ThemeClass:   resolved.ThemeClass,
		TotalCards:   len(doc.Cards),
		Layout:       layout,
		Style:        newStyleView(resolved),
		Cards:        cards,
		HighlightCSS: highlightCSS(),
	}
	if layout == LayoutA48 {
		tctx.Pages = paginate(cards, cardsPerSheet)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, tctx); err != nil {
		return "", fmt.Errorf("%w: executing %q: %v", ErrRenderTemplate, templateName, err)
	}
	return buf.String(), nil
}

// templateSource resolves a template name to its HTML source. The chain is
// requested name, then the configured default template. When neither can be
// loaded the renderer fails fast instead of silently producing a different
// look.
func (d *deckRenderer) templateSource(name string) (string, error) {
	source, err := d.loadConfigured(name)
	if err == nil {
		return source, nil
	}
	if !errors.Is(err, ErrTemplateNotFound) || name == d.cfg.DefaultTemplate {
		return "", err
	}

	source, fallbackErr := d.loadConfigured(d.cfg.DefaultTemplate)
	if fallbackErr != nil {
		return "", fmt.Errorf("%w: %q (default %q also unavailable)", ErrTemplateNotFound, name, d.cfg.DefaultTemplate)
	}
	return source, nil
}

// loadConfigured maps a configured template name to its asset and loads it.
func (d *deckRenderer) loadConfigured(name string) (string, error) {
	info, ok := d.cfg.Templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %q (available: %s)", ErrTemplateNotFound, name, strings.Join(d.cfg.AvailableTemplates(), ", "))
	}

	asset := strings.TrimSuffix(info.File, ".html")
	source, err := d.assets.LoadTemplate(asset)
	if err != nil {
		if errors.Is(err, assets.ErrTemplateNotFound) {
			return "", fmt.Errorf("%w: %q (file %s)", ErrTemplateNotFound, name, info.File)
		}
		return "", err
	}
	return source, nil
}

// renderCards converts every card side from Markdown to sanitized HTML.
func (d *deckRenderer) renderCards(ctx context.Context, cards []Card) ([]renderedCard, error) {
	out := make([]renderedCard, 0, len(cards))
	for i, card := range cards {
		front, err := d.cards.Render(ctx, card.Front)
		if err != nil {
			return nil, fmt.Errorf("card %s front: %w", card.ID, err)
		}
		back, err := d.cards.Render(ctx, card.Back)
		if err != nil {
			return nil, fmt.Errorf("card %s back: %w", card.ID, err)
		}
		out = append(out, renderedCard{
			ID:    card.ID,
			Index: i + 1,
			Front: template.HTML(front), // #nosec G203 -- sanitized by bluemonday
			Back:  template.HTML(back),  // #nosec G203 -- sanitized by bluemonday
			Tags:  card.Tags,
		})
	}
	return out, nil
}

// padCards appends blank cards until len(cards) is a multiple of size.
func padCards(cards []renderedCard, size int) []renderedCard {
	remainder := len(cards) % size
	if len(cards) == 0 || remainder == 0 {
		return cards
	}
	for i := remainder; i < size; i++ {
		cards = append(cards, renderedCard{
			ID:    fmt.Sprintf("blank-%d", len(cards)+1),
			Index: len(cards) + 1,
			Blank: true,
		})
	}
	return cards
}

// paginate splits cards into duplex sheets of the given size. Backs are
// mirrored pairwise within each two-column row so duplex printing lines the
// sides up.
func paginate(cards []renderedCard, size int) []printPage {
	pages := make([]printPage, 0, (len(cards)+size-1)/size)
	for start := 0; start < len(cards); start += size {
		end := start + size
		if end > len(cards) {
			end = len(cards)
		}
		fronts := cards[start:end]

		backs := make([]renderedCard, len(fronts))
		copy(backs, fronts)
		for i := 0; i+1 < len(backs); i += 2 {
			backs[i], backs[i+1] = backs[i+1], backs[i]
		}

		pages = append(pages, printPage{Fronts: fronts, Backs: backs})
	}
	return pages
}

// newStyleView adapts a resolved style for template execution.
func newStyleView(resolved *ResolvedStyle) *styleView {
	colors := make(map[string]template.CSS, len(resolved.Colors))
	for key, value := range resolved.Colors {
		colors[key] = template.CSS(value) // #nosec G203 -- validated color values
	}
	return &styleView{
		Font:               template.CSS(resolved.Font),
		CardFrontFont:      template.CSS(resolved.CardFrontFont),
		CardBackFont:       template.CSS(resolved.CardBackFont),
		CardWidth:          template.CSS(resolved.CardWidth),
		CardHeight:         template.CSS(resolved.CardHeight),
		CardFrontTextAlign: template.CSS(resolved.CardFrontTextAlign),
		CardBackTextAlign:  template.CSS(resolved.CardBackTextAlign),
		CardBorder:         template.CSS(resolved.CardBorder),
		CardBorderRadius:   template.CSS(resolved.CardBorderRadius),
		CardPadding:        template.CSS(resolved.CardPadding),
		CardBoxShadow:      template.CSS(resolved.CardBoxShadow),
		Colors:             colors,
		ShowDeckName:       resolved.ShowDeckName,
		ShowCardIndex:      resolved.ShowCardIndex,
		ShowTags:           resolved.ShowTags,
		CompactTypography:  resolved.CompactTypography,
		FrontCharLimit:     resolved.FrontCharLimit,
		BackCharLimit:      resolved.BackCharLimit,
	}
}
