package errors

import (
	"path/filepath"
	"regexp"
	"unicode"
)

// figureNameRegex matches figure names: lowercase words joined by dashes.
var figureNameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateFigureName validates a figure name for use as a registry key and
// as the base name of its output file.
//
// Names are lowercase kebab-case, at most 64 characters, so that
// "<name>.png" is always a safe file name.
func ValidateFigureName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "figure name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidName, "figure name too long (max 64 characters)")
	}
	if !figureNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid figure name: %q (use lowercase kebab-case)", name)
	}
	return nil
}

// ValidateOutputDir validates an output directory path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not resolve to the filesystem root
func ValidateOutputDir(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
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

	clean := filepath.Clean(path)
	if clean == filepath.VolumeName(clean)+string(filepath.Separator) {
		return New(ErrCodeInvalidPath, "refusing to write figures to the filesystem root")
	}

	return nil
}
