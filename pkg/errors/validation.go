package errors

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// ValidateInputFile checks that path names an existing regular file.
// what names the input in messages ("match file", "lengths file").
func ValidateInputFile(path, what string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "%s path cannot be empty", what)
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return New(ErrCodeFileNotFound, "%s %s does not exist", what, path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "%s %s", what, path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidInput, "%s %s is a directory", what, path)
	}
	return nil
}

// ValidateOutputPath checks an output path before rendering starts, so a bad
// path fails fast instead of after the geometry work.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - The parent directory must exist
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "output directory %s", dir)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "output directory %s is not a directory", dir)
	}
	return nil
}

// ValidateFormat checks that format is one of supported, ignoring case.
func ValidateFormat(format string, supported []string) error {
	if slices.Contains(supported, strings.ToLower(format)) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(supported, ", "))
}
