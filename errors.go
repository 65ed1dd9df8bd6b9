package flashcard

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	// Schema and normalization errors.
	ErrSchemaViolation = errors.New("document violates flashcard schema")

	// CSV extraction errors.
	ErrCSVNotFound = errors.New("CSV file not found")
	ErrExtraction  = errors.New("CSV extraction failed")
	ErrEmptyResult = errors.New("CSV produced no cards")

	// Style and template resolution errors.
	ErrUnknownTheme     = errors.New("unknown theme")
	ErrTemplateNotFound = errors.New("template not found")

	// Validation limit errors. Each wraps ErrLimitExceeded so callers can
	// match the whole family with a single errors.Is check.
	ErrLimitExceeded  = errors.New("document exceeds configured limits")
	ErrTooManyCards   = fmt.Errorf("%w: too many cards", ErrLimitExceeded)
	ErrContentTooLong = fmt.Errorf("%w: card content too long", ErrLimitExceeded)
	ErrTooManyTags    = fmt.Errorf("%w: too many tags on card", ErrLimitExceeded)
	ErrTagTooLong     = fmt.Errorf("%w: tag too long", ErrLimitExceeded)

	// Rendering errors.
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrRenderTemplate = errors.New("template rendering failed")

	// Pool errors.
	ErrPoolClosed = errors.New("service pool is closed")

	// PDF generation errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrInvalidLayout  = errors.New("invalid PDF layout")
)
