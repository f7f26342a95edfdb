package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateImagePath checks a user-supplied image path before it is opened.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Path must not name a directory-like value (trailing separator)
func ValidateImagePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "image path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path %q names a directory", path)
	}

	return nil
}

// ValidateShapeName checks that name is one of the supported shape kinds.
func ValidateShapeName(name string) error {
	switch name {
	case "rectangle", "triangle":
		return nil
	case "":
		return New(ErrCodeInvalidShape, "shape cannot be empty")
	}
	return New(ErrCodeInvalidShape, "invalid shape: %q (must be one of: rectangle, triangle)", name)
}

// ValidatePositive checks that an integer option is at least 1.
func ValidatePositive(name string, v int) error {
	if v < 1 {
		return New(ErrCodeConfig, "%s must be at least 1, got %d", name, v)
	}
	return nil
}

// ValidateNonNegative checks that an integer option is at least 0.
func ValidateNonNegative(name string, v int) error {
	if v < 0 {
		return New(ErrCodeConfig, "%s must not be negative, got %d", name, v)
	}
	return nil
}

// ValidateRange checks that [lo, hi) is a non-empty interval.
func ValidateRange(name string, lo, hi float64) error {
	if !(lo < hi) {
		return New(ErrCodeConfig, "%s range [%g, %g) is empty", name, lo, hi)
	}
	return nil
}
