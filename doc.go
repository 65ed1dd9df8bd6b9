// Package flashcard turns flashcard deck documents into styled HTML pages
// and printable PDFs using headless Chrome.
//
// # Quick Start
//
// Create a service, generate a deck, and close when done:
//
//	svc, err := flashcard.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	html, err := svc.GenerateHTML(ctx, deckJSON)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("deck.html", []byte(html), 0644)
//
// Use GeneratePDF with a layout (LayoutSingle or LayoutA48) for printable
// output. PDF generation is the only stage that needs a browser; everything
// else runs in-process.
//
// # Pipeline
//
// Deck generation follows these stages:
//
//  1. Schema validation and normalization (IDs, metadata defaults, limits)
//  2. Style resolution (user values over theme overrides over global defaults)
//  3. Card Markdown to sanitized HTML via Goldmark and bluemonday
//  4. Deck template execution (embedded or custom templates)
//  5. Optional PDF rendering via headless Chrome (go-rod)
//
// # Input Formats
//
// Decks arrive as JSON documents with cards, metadata, and style blocks.
// CSV spreadsheets can be converted with ExtractCSV, which maps configurable
// columns onto card fronts, backs, and tags:
//
//	extraction, err := flashcard.ExtractCSVFile("words.csv", flashcard.CSVOptions{
//	    FrontColumns: []int{0},
//	    BackColumns:  []int{1},
//	    HasHeader:    true,
//	})
//	html, err := svc.GenerateHTMLFromDocument(ctx, extraction.Document("default", "dark"))
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc, err := flashcard.New(
//	    flashcard.WithTimeout(2 * time.Minute),
//	    flashcard.WithConfig(cfg),
//	    flashcard.WithAssetPath("/path/to/custom/templates"),
//	)
//
// Configurations come from DefaultConfig or a YAML override file loaded via
// LoadConfig. They define the template catalog, the theme table, global
// style defaults, and document limits.
//
// # Parallel Processing
//
// For batch generation, use ServicePool to manage multiple browser instances:
//
//	pool := flashcard.NewServicePool(4)
//	defer pool.Close()
//
//	svc, err := pool.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(svc)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Use ROD_BROWSER_BIN to specify a custom Chrome binary; sandboxing is
// disabled automatically in CI environments.
package flashcard
