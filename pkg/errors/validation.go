package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateFigureID validates a figure identifier used in URLs and storage
// keys. It rejects anything that could traverse paths or break a key.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - Maximum length of 128 characters
//   - Only letters, digits, '-' and '_'
func ValidateFigureID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "figure id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "figure id too long (max 128 characters)")
	}
	if !figureIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "figure id contains invalid characters: %q", id)
	}
	return nil
}

var figureIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidatePath validates a local file path given on the command line or in
// a request.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
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
	return nil
}

// ValidateOneOf validates that value is one of allowed, reporting failures
// under code. The comparison is case-sensitive.
func ValidateOneOf(code Code, attr, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(code, "invalid %s %q (want one of %s)", attr, value, strings.Join(allowed, ", "))
}

// ValidateFraction validates that v lies in [0, 1).
func ValidateFraction(attr string, v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 1 {
		return New(ErrCodeInvalidInput, "%s must be in [0, 1), got %v", attr, v)
	}
	return nil
}

// ValidateNonNegative validates that v is a finite number >= 0.
func ValidateNonNegative(attr string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidInput, "%s must be a non-negative number, got %v", attr, v)
	}
	return nil
}
