// File: internal/config/text.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// PlaceholderText seeds a missing text source so a fresh install has
// something to type.
const PlaceholderText = "The quick brown fox jumps over the lazy dog.\n" +
	"Pack my box with five dozen liquor jugs."

// TextResult carries the loaded text plus any recovery performed.
type TextResult struct {
	Text string
	// Created reports that the source file did not exist and was seeded
	// with PlaceholderText.
	Created bool
	// Warning describes the recovery in user terms. Empty unless Created.
	Warning string
}

// LoadText reads the text source at path. Callers handle the empty-path
// case themselves (it means prompt mode). A missing file is seeded with
// PlaceholderText and reported through Warning; any other read failure is
// an error. Loaded text is normalized before return.
func LoadText(path string) (TextResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return TextResult{}, fmt.Errorf("reading text source %s: %w", path, err)
		}
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return TextResult{}, fmt.Errorf("creating text source directory %s: %w", dir, mkErr)
			}
		}
		if wErr := os.WriteFile(path, []byte(PlaceholderText), 0o644); wErr != nil {
			return TextResult{}, fmt.Errorf("seeding text source %s: %w", path, wErr)
		}
		return TextResult{
			Text:    NormalizeText(PlaceholderText),
			Created: true,
			Warning: fmt.Sprintf("no text source at %s, seeded it with placeholder text", path),
		}, nil
	}
	return TextResult{Text: NormalizeText(string(data))}, nil
}

// NormalizeText converts Windows line endings to plain newlines and strips
// one trailing newline, which editors append and the typist should not
// reproduce.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSuffix(s, "\n")
}
