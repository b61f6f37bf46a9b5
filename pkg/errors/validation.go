package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateProgress checks that p is a usable progress value. The engine
// clamps silently; command-line and HTTP input is rejected instead so the
// user learns about the typo.
func ValidateProgress(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return New(ErrCodeInvalidProgress, "progress must be a finite number")
	}
	if p < 0 || p > 1 {
		return New(ErrCodeInvalidProgress, "progress %g outside [0,1]", p)
	}
	return nil
}

// ValidateVerticalPosition checks a pivot fraction of the row height.
func ValidateVerticalPosition(v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidInput, "vertical position %g outside [0,1]", v)
	}
	return nil
}

// traceNameRegex matches trace names usable as file names.
var traceNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateTraceName validates a gesture trace name for safety.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateTraceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTrace, "trace name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidTrace, "trace name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTrace, "trace name contains invalid control characters")
		}
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidTrace, "trace name cannot contain path components")
	}
	if !traceNameRegex.MatchString(name) {
		return New(ErrCodeInvalidTrace, "invalid trace name: %q", name)
	}
	return nil
}

// ValidatePath validates an output or asset path.
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

// ValidateRedisURL ensures a cache URL uses a redis scheme.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "redis URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidConfig, "redis URL must use redis or rediss scheme")
	}
	return nil
}
