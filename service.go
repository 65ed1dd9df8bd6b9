package flashcard

import (
	"context"
	"fmt"
	"time"
)

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout   time.Duration
	assetPath string
	config    *Config
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("flashcard: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithConfig sets the configuration used for validation, themes, and
// templates. A nil cfg keeps DefaultConfig.
func WithConfig(cfg *Config) Option {
	return func(s *Service) {
		s.cfg.config = cfg
	}
}

// WithAssetPath sets a directory whose templates take precedence over the
// embedded ones.
func WithAssetPath(path string) Option {
	return func(s *Service) {
		s.cfg.assetPath = path
	}
}

// withPDFConverter injects a pdfConverter, used by tests to avoid a browser.
func withPDFConverter(c pdfConverter) Option {
	return func(s *Service) {
		s.pdf = c
	}
}

// Service orchestrates the deck pipeline: normalize, resolve style, render
// HTML, and optionally print to PDF. A Service owns one headless browser and
// is safe for sequential reuse; use ServicePool for parallelism.
type Service struct {
	cfg        serviceConfig
	config     *Config
	normalizer *Normalizer
	styles     *StyleResolver
	renderer   *deckRenderer
	pdf        pdfConverter
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithConfig).
func New(opts ...Option) (*Service, error) {
	s := &Service{
		cfg: serviceConfig{timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.config = s.cfg.config
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	s.normalizer = NewNormalizer(s.config)
	s.styles = NewStyleResolver(s.config)

	renderer, err := newDeckRenderer(s.config, s.cfg.assetPath)
	if err != nil {
		return nil, err
	}
	s.renderer = renderer

	// Create PDF converter if not injected (e.g., by tests)
	if s.pdf == nil {
		s.pdf = newRodConverter(s.cfg.timeout)
	}

	return s, nil
}

// Validate checks a JSON document against the schema and limits without
// normalizing it. The result reports the first violation found.
func (s *Service) Validate(data []byte) ValidationResult {
	return s.normalizer.Validate(data)
}

// Normalize validates a JSON document and returns its canonical form.
func (s *Service) Normalize(data []byte) (*Document, error) {
	return s.normalizer.Normalize(data)
}

// GenerateHTML runs the full pipeline and returns the interactive deck page.
func (s *Service) GenerateHTML(ctx context.Context, data []byte) (string, error) {
	doc, resolved, err := s.prepare(data)
	if err != nil {
		return "", err
	}

	html, err := s.renderer.Render(ctx, doc, resolved, resolved.Template, "")
	if err != nil {
		return "", fmt.Errorf("rendering deck: %w", err)
	}
	return html, nil
}

// GeneratePDF runs the full pipeline and prints the deck with the given
// layout. An empty layout defaults to LayoutSingle.
func (s *Service) GeneratePDF(ctx context.Context, data []byte, layout string) ([]byte, error) {
	if layout == "" {
		layout = LayoutSingle
	}

	doc, resolved, err := s.prepare(data)
	if err != nil {
		return nil, err
	}

	html, err := s.renderer.Render(ctx, doc, resolved, "print", layout)
	if err != nil {
		return nil, fmt.Errorf("rendering print pages: %w", err)
	}

	pdfBytes, err := s.pdf.ToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return pdfBytes, nil
}

// GenerateHTMLFromDocument renders an already-normalized document. Callers
// assembling documents programmatically (e.g., from CSV extraction) skip the
// JSON round trip.
func (s *Service) GenerateHTMLFromDocument(ctx context.Context, doc *Document) (string, error) {
	resolved, err := s.styles.Resolve(&doc.Style, s.theme(doc))
	if err != nil {
		return "", err
	}

	html, err := s.renderer.Render(ctx, doc, resolved, resolved.Template, "")
	if err != nil {
		return "", fmt.Errorf("rendering deck: %w", err)
	}
	return html, nil
}

// GeneratePDFFromDocument prints an already-normalized document with the
// given layout. An empty layout defaults to LayoutSingle.
func (s *Service) GeneratePDFFromDocument(ctx context.Context, doc *Document, layout string) ([]byte, error) {
	if layout == "" {
		layout = LayoutSingle
	}

	resolved, err := s.styles.Resolve(&doc.Style, s.theme(doc))
	if err != nil {
		return nil, err
	}

	html, err := s.renderer.Render(ctx, doc, resolved, "print", layout)
	if err != nil {
		return nil, fmt.Errorf("rendering print pages: %w", err)
	}

	pdfBytes, err := s.pdf.ToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return pdfBytes, nil
}

// Config returns the configuration the service was built with.
func (s *Service) Config() *Config {
	return s.config
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.pdf != nil {
		return s.pdf.Close()
	}
	return nil
}

// prepare normalizes raw JSON and resolves its style in one step.
func (s *Service) prepare(data []byte) (*Document, *ResolvedStyle, error) {
	doc, err := s.normalizer.Normalize(data)
	if err != nil {
		return nil, nil, err
	}

	resolved, err := s.styles.Resolve(&doc.Style, s.theme(doc))
	if err != nil {
		return nil, nil, err
	}
	return doc, resolved, nil
}

// theme picks the document's theme, falling back to the configured default.
func (s *Service) theme(doc *Document) string {
	if doc.Style.Theme != "" {
		return doc.Style.Theme
	}
	return s.config.Defaults.Theme
}
