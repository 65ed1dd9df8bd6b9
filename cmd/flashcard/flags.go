package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// tagsColSentinel marks --tags-col as unset. Column 0 is valid, so the
// sentinel sits outside the valid range.
const tagsColSentinel = -1

// Output formats.
const (
	formatHTML = "html"
	formatPDF  = "pdf"
)

// commonFlags holds flags shared across modes.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// deckFlags holds presentation overrides applied after normalization.
type deckFlags struct {
	template string
	theme    string
	title    string
}

// csvFlags holds CSV extraction options. They only apply to .csv inputs.
type csvFlags struct {
	frontCols []int
	backCols  []int
	tagsCol   int
	separator string
	noHeader  bool
}

// listFlags holds catalog listing switches.
type listFlags struct {
	templates bool
	themes    bool
}

// cliFlags holds all flags for the flashcard command.
type cliFlags struct {
	common       commonFlags
	out          string
	format       string
	layout       string
	assetPath    string
	timeout      string
	workers      int
	validateOnly bool
	version      bool
	deck         deckFlags
	csv          csvFlags
	list         listFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDeckFlags adds presentation override flags to a FlagSet.
func addDeckFlags(fs *flag.FlagSet, f *deckFlags) {
	fs.StringVar(&f.template, "template", "", "deck template name (\"\" = from document or config)")
	fs.StringVar(&f.theme, "theme", "", "theme name (\"\" = from document or config)")
	fs.StringVar(&f.title, "title", "", "deck title override")
}

// addCSVFlags adds CSV extraction flags to a FlagSet.
func addCSVFlags(fs *flag.FlagSet, f *csvFlags) {
	fs.IntSliceVar(&f.frontCols, "front-cols", []int{0}, "CSV columns joined into the card front")
	fs.IntSliceVar(&f.backCols, "back-cols", []int{1}, "CSV columns joined into the card back")
	fs.IntVar(&f.tagsCol, "tags-col", tagsColSentinel, "CSV column holding comma-separated tags")
	fs.StringVar(&f.separator, "csv-separator", " ", "separator between joined CSV columns")
	fs.BoolVar(&f.noHeader, "no-header", false, "treat the first CSV row as data")
}

// parseFlags parses command-line arguments.
// Returns the parsed flags and remaining positional arguments (input files).
func parseFlags(args []string) (*cliFlags, []string, error) {
	flags := &cliFlags{}

	fs := flag.NewFlagSet("flashcard", flag.ContinueOnError)
	fs.SortFlags = false

	addCommonFlags(fs, &flags.common)
	addDeckFlags(fs, &flags.deck)
	addCSVFlags(fs, &flags.csv)

	fs.StringVarP(&flags.out, "out", "o", "", "output file or directory")
	fs.StringVarP(&flags.format, "format", "f", formatHTML, "output format: html or pdf")
	fs.StringVar(&flags.layout, "layout", "", "PDF page layout: single or a4_8")
	fs.StringVar(&flags.assetPath, "asset-path", "", "directory with custom deck templates")
	fs.StringVar(&flags.timeout, "timeout", "", "PDF generation timeout (e.g. 90s, 2m)")
	fs.IntVarP(&flags.workers, "workers", "w", 0, "parallel conversions (0 = auto)")
	fs.BoolVar(&flags.validateOnly, "validate", false, "validate input and exit")
	fs.BoolVar(&flags.list.templates, "list-templates", false, "list available templates and exit")
	fs.BoolVar(&flags.list.themes, "list-themes", false, "list available themes and exit")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: flashcard [flags] <deck.json|deck.csv> [more inputs...]\n\n")
		fmt.Fprintf(fs.Output(), "Reads a flashcard deck from JSON or CSV and renders it to HTML or PDF.\n")
		fmt.Fprintf(fs.Output(), "Use \"-\" as input to read JSON from stdin.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	switch flags.format {
	case formatHTML, formatPDF:
	default:
		return nil, nil, fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidFormat, flags.format, formatHTML, formatPDF)
	}

	return flags, fs.Args(), nil
}
