package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidatePattern validates a record filename glob such as "*.yml".
// The pattern must be a plain basename glob that filepath.Match accepts.
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return New(ErrCodeInvalidPattern, "pattern cannot be empty")
	}
	if strings.ContainsAny(pattern, "/\\") {
		return New(ErrCodeInvalidPattern, "pattern cannot contain path separators: %q", pattern)
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return Wrap(ErrCodeInvalidPattern, err, "invalid pattern %q", pattern)
	}
	return nil
}

// ValidatePath validates a directory or file path supplied on the command line
// or in the config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
