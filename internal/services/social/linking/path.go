package linking

import (
	"os"
	"path/filepath"
	"strings"
)

// Extension is the file extension of native saved characters. Only these
// files are eligible for linking.
const Extension = ".chum5"

// ResolvePath picks the file a contact reference points at. filePath wins
// when it exists; otherwise relativePath is joined onto baseDir (absolute
// relative paths are used as-is). It reports false when neither exists.
func ResolvePath(baseDir, filePath, relativePath string) (string, bool) {
	if filePath = strings.TrimSpace(filePath); filePath != "" && isFile(filePath) {
		return absolute(filePath), true
	}
	relativePath = strings.TrimSpace(relativePath)
	if relativePath == "" {
		return "", false
	}
	candidate := relativePath
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(baseDir, candidate)
	}
	candidate = absolute(candidate)
	if !isFile(candidate) {
		return "", false
	}
	return candidate, true
}

// Eligible reports whether path names a native saved character.
func Eligible(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
