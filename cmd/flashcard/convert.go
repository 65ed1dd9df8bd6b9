package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	flashcard "github.com/Moonzhang/go-flashcard"
)

// stdinName is the pseudo input path for reading JSON from stdin.
const stdinName = "-"

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// convertAll processes every input, fanning out over the service pool.
// Results are reported in completion order; the first error wins.
func convertAll(ctx context.Context, inputs []string, flags *cliFlags, pool *flashcard.ServicePool, env *Environment) error {
	results := make(chan ConversionResult, len(inputs))

	var wg sync.WaitGroup
	for _, input := range inputs {
		wg.Add(1)
		go func(input string) {
			defer wg.Done()
			results <- convertOne(ctx, input, flags, pool, env)
		}(input)
	}
	wg.Wait()
	close(results)

	var firstErr error
	for result := range results {
		if result.Err != nil {
			fmt.Fprintf(env.Stderr, "FAIL %s: %v\n", result.InputPath, result.Err)
			if firstErr == nil {
				firstErr = result.Err
			}
			continue
		}
		if !flags.common.quiet {
			if flags.common.verbose {
				fmt.Fprintf(env.Stderr, "OK %s -> %s (%s)\n", result.InputPath, result.OutputPath, result.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stderr, "OK %s -> %s\n", result.InputPath, result.OutputPath)
			}
		}
	}
	return firstErr
}

// convertOne renders a single input file to its output path.
func convertOne(ctx context.Context, input string, flags *cliFlags, pool *flashcard.ServicePool, env *Environment) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: input}

	svc, err := pool.Acquire()
	if err != nil {
		result.Err = err
		return result
	}
	defer pool.Release(svc)

	doc, err := loadDocument(svc, input, flags, env)
	if err != nil {
		result.Err = err
		return result
	}

	outputPath := resolveOutputPath(input, flags.out, len(flags.out) > 0 && isDirectory(flags.out), flags.format)
	result.OutputPath = outputPath

	var content []byte
	switch flags.format {
	case formatPDF:
		content, err = svc.GeneratePDFFromDocument(ctx, doc, flags.layout)
	default:
		var html string
		html, err = svc.GenerateHTMLFromDocument(ctx, doc)
		content = []byte(html)
	}
	if err != nil {
		result.Err = err
		return result
	}

	if err := writeOutput(outputPath, content); err != nil {
		result.Err = err
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// loadDocument reads one input and normalizes it into a Document. CSV inputs
// go through extraction and then the same normalization as JSON decks, so
// configured limits and style validation apply to both paths.
func loadDocument(svc *flashcard.Service, input string, flags *cliFlags, env *Environment) (*flashcard.Document, error) {
	var doc *flashcard.Document

	if input != stdinName && strings.EqualFold(filepath.Ext(input), ".csv") {
		extraction, err := flashcard.ExtractCSVFile(input, csvOptions(flags))
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(extraction.Document(flags.deck.template, flags.deck.theme))
		if err != nil {
			return nil, err
		}
		doc, err = svc.Normalize(data)
		if err != nil {
			return nil, err
		}
	} else {
		data, err := readInput(input, env)
		if err != nil {
			return nil, err
		}
		doc, err = svc.Normalize(data)
		if err != nil {
			return nil, err
		}
	}

	applyOverrides(doc, &flags.deck)
	return doc, nil
}

// csvOptions builds extraction options from CLI flags.
func csvOptions(flags *cliFlags) flashcard.CSVOptions {
	opts := flashcard.CSVOptions{
		FrontColumns:    flags.csv.frontCols,
		BackColumns:     flags.csv.backCols,
		HasHeader:       !flags.csv.noHeader,
		ColumnSeparator: flags.csv.separator,
		Title:           flags.deck.title,
	}
	if flags.csv.tagsCol != tagsColSentinel {
		col := flags.csv.tagsCol
		opts.TagsColumn = &col
	}
	return opts
}

// applyOverrides layers CLI presentation flags onto a normalized document.
// CLI flags win over whatever the document carries.
func applyOverrides(doc *flashcard.Document, deck *deckFlags) {
	if deck.template != "" {
		doc.Style.Template = deck.template
	}
	if deck.theme != "" {
		doc.Style.Theme = deck.theme
	}
	if deck.title != "" {
		doc.Metadata.Title = deck.title
	}
}

// readInput reads a whole input file, or stdin for "-".
func readInput(input string, env *Environment) ([]byte, error) {
	if input == stdinName {
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(input) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, input, err)
	}
	return data, nil
}

// resolveOutputPath determines where one input's output lands.
// An explicit --out is used verbatim for a single file target, or as the
// destination directory when it points at one. Otherwise the output sits next
// to the input with the format's extension; stdin falls back to "deck".
func resolveOutputPath(input, out string, outIsDir bool, format string) string {
	ext := "." + format

	base := "deck"
	if input != stdinName {
		name := filepath.Base(input)
		base = strings.TrimSuffix(name, filepath.Ext(name))
	}

	if out == "" {
		if input == stdinName {
			return base + ext
		}
		return filepath.Join(filepath.Dir(input), base+ext)
	}
	if outIsDir {
		return filepath.Join(out, base+ext)
	}
	return out
}

// isDirectory reports whether path is an existing directory.
func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// writeOutput writes content to path, creating parent directories as needed.
func writeOutput(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
		}
	}
	if err := os.WriteFile(path, content, filePermissions); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%w: %s: permission denied", ErrWriteOutput, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}
