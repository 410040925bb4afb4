package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// artifactWriteParams describes a set of rendered artifacts to write.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string // write order
	input     string   // input file, used to derive names; may be empty
	fallback  string   // base name when there is no input
	output    string   // -o value: a file for one format, a base path for several
}

// writeArtifacts writes each artifact to disk and returns the paths in
// format order.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(p.output, p.input, p.fallback, format, p.formats)
		if err := writeFile(path, data); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath picks the file name for one format. A single format writes to
// output verbatim; several formats share output as a base path.
func outputPath(output, input, fallback, format string, formats []string) string {
	if output != "" && len(formats) == 1 {
		return output
	}
	return basePath(output, input, fallback, formats) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input, or uses fallback
// without an input. A known format extension on output is stripped.
func basePath(output, input, fallback string, formats []string) string {
	if output == "" {
		if input == "" {
			return fallback
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if slices.Contains(formats, ext) {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty or "-", it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
