package errors

import (
	"strings"
	"unicode"
)

// maxPresetNameLength bounds preset names; they become directory names.
const maxPresetNameLength = 128

// ValidatePresetName rejects names that are empty, overly long or contain
// control characters. Characters outside the sanitized set are allowed here;
// they are stripped when the preset directory name is derived.
func ValidatePresetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "preset name cannot be empty")
	}

	if len(name) > maxPresetNameLength {
		return New(ErrCodeInvalidInput, "preset name too long (max %d characters)", maxPresetNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "preset name contains invalid control characters")
		}
	}

	return nil
}

// ValidateImagePath validates a user-supplied wallpaper path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateImagePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
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

	return nil
}
