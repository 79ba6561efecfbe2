// Package output handles file naming and writing for pageconv outputs.
// Filenames derive from the page URL (e.g. example_com_docs_intro.md) or,
// for local input, from the input file's base name.
package output

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to a directory, or to Stdout when no
// directory is configured.
type Writer struct {
	OutputDir string
	Stdout    io.Writer
}

// New creates a Writer targeting the given output directory, creating it if
// needed. An empty outputDir sends output to stdout.
func New(outputDir string, stdout io.Writer) (*Writer, error) {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	return &Writer{OutputDir: outputDir, Stdout: stdout}, nil
}

// Write stores data under name+ext and returns the path written, or "-"
// for stdout. Binary formats cannot go to a terminal stream, so when
// toFile is set and no directory is configured, the current directory is
// used.
func (w *Writer) Write(name string, data []byte, ext string, toFile bool) (string, error) {
	dir := w.OutputDir
	if dir == "" && !toFile {
		if _, err := w.Stdout.Write(data); err != nil {
			return "", fmt.Errorf("writing to stdout: %w", err)
		}
		return "-", nil
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}

	path := filepath.Join(dir, name+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// NameFor derives an output name from a source: a URL becomes
// host_path_segments, a file path its base name without extension, and
// stdin "stdin".
func NameFor(source string) string {
	if source == "" || source == "-" {
		return "stdin"
	}
	if parsed, err := url.Parse(source); err == nil && parsed.Host != "" {
		return filenameFromURL(parsed)
	}
	base := filepath.Base(source)
	return sanitize(strings.TrimSuffix(base, filepath.Ext(base)))
}

// filenameFromURL converts a URL into a flat filename.
// Example: https://example.com/docs/intro → example_com_docs_intro
func filenameFromURL(parsed *url.URL) string {
	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
