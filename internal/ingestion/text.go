// Package ingestion reads locally stored documents as text.
package ingestion

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const utf8BOM = "\uFEFF"

// ReadError represents a failure to read a stored document as text.
type ReadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("read error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("read error for %s: %s", e.Path, e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// ReadDocument reads the whole file at path and returns its text.
//
// Content must be UTF-8. A leading byte order mark is dropped and line endings
// are normalized to LF. Files with an .html or .htm extension are reduced to
// their visible text first.
func ReadDocument(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &ReadError{Path: path, Message: "file not found", Cause: err}
		}
		return "", &ReadError{Path: path, Message: "failed to read file", Cause: err}
	}

	if !utf8.Valid(content) {
		return "", &ReadError{Path: path, Message: "invalid UTF-8"}
	}

	text := NormalizeLineEndings(strings.TrimPrefix(string(content), utf8BOM))

	if IsHTML(path) {
		text, err = HTMLToText(text)
		if err != nil {
			return "", &ReadError{Path: path, Message: "failed to parse HTML", Cause: err}
		}
	}

	return text, nil
}

// NormalizeLineEndings converts CRLF and lone CR to LF.
func NormalizeLineEndings(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// IsHTML reports whether path names an HTML document.
func IsHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// FileReader reads documents from the local filesystem.
type FileReader struct{}

// ReadDocument reads the file at path.
func (FileReader) ReadDocument(path string) (string, error) {
	return ReadDocument(path)
}
