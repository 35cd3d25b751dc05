package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds layout and template names.
const maxNameLength = 128

// ValidateName validates a layout or template name for safety and correctness.
// Names end up in file names, cache keys and SVG element ids.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidName, "name %q contains whitespace or control characters", name)
		}
	}

	dangerousPatterns := []string{
		"..", // Parent directory
		"/",  // Path separator
		"\\", // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "name %q contains invalid characters: %q", name, pattern)
		}
	}

	return nil
}

// MaxScale is the largest legal template scale. Scalable dimensions are
// 2k, so a template never exceeds 2*MaxScale cells along an axis.
const MaxScale = 1024

// ValidateScale checks that k is a legal template scale: 0 <= k <= MaxScale.
func ValidateScale(k int) error {
	if k < 0 {
		return New(ErrCodeInvalidScale, "scale must be non-negative, got %d", k)
	}
	if k > MaxScale {
		return New(ErrCodeInvalidScale, "scale must be at most %d, got %d", MaxScale, k)
	}
	return nil
}

// ValidateArity checks that got plaquette indices were supplied where want
// were expected. what names the receiving shape, template or orchestrator.
func ValidateArity(what string, want, got int) error {
	if want != got {
		return New(ErrCodeArity, "%s expects %d plaquette indices, got %d", what, want, got)
	}
	return nil
}
