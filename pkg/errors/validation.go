package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// chartExtensions lists the file extensions accepted for chart definitions.
var chartExtensions = map[string]bool{
	".toml": true,
	".json": true,
}

// ValidateChartPath validates a chart definition path given on the command
// line or in an API request.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Extension must be .toml or .json
func ValidateChartPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !chartExtensions[ext] {
		return New(ErrCodeInvalidPath, "unsupported chart file extension %q (must be .toml or .json)", ext)
	}

	return nil
}

// ValidateTitle validates a chart or series title. Titles are rendered as
// text spans, so control characters other than tab are rejected.
func ValidateTitle(title string) error {
	const maxTitleLength = 256
	if len(title) > maxTitleLength {
		return New(ErrCodeInvalidInput, "title too long (max %d characters)", maxTitleLength)
	}
	for _, r := range title {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "title contains control characters")
		}
	}
	return nil
}
