package main

import (
	"errors"
	"os"

	flashcard "github.com/Moonzhang/go-flashcard"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadInput          = errors.New("failed to read input file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidFormat      = errors.New("invalid output format")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrValidationFailed   = errors.New("validation failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Exit codes for the flashcard CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, flashcard.ErrBrowserConnect) ||
		errors.Is(err, flashcard.ErrPageCreate) ||
		errors.Is(err, flashcard.ErrPageLoad) ||
		errors.Is(err, flashcard.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, flashcard.ErrCSVNotFound) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, flashcard.ErrConfigNotFound) ||
		errors.Is(err, flashcard.ErrConfigParse) ||
		errors.Is(err, flashcard.ErrConfigInvalid) ||
		errors.Is(err, flashcard.ErrSchemaViolation) ||
		errors.Is(err, flashcard.ErrLimitExceeded) ||
		errors.Is(err, flashcard.ErrUnknownTheme) ||
		errors.Is(err, flashcard.ErrTemplateNotFound) ||
		errors.Is(err, flashcard.ErrInvalidLayout) ||
		errors.Is(err, flashcard.ErrExtraction) ||
		errors.Is(err, flashcard.ErrEmptyResult) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrValidationFailed) {
		return ExitUsage
	}

	return ExitGeneral
}
