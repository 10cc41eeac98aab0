package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/syssam/tablegen/compiler/decl"
)

// Writer renders declaration files into a target directory.
type Writer struct {
	outDir string
}

// NewWriter creates a writer of outDir.
func NewWriter(outDir string) *Writer {
	return &Writer{outDir: outDir}
}

// Write renders f, formats it with goimports and writes it below the output
// directory. Files whose content did not change are not rewritten. It returns
// the manifest entry of the file.
func (w *Writer) Write(f *decl.File) (ManifestEntry, error) {
	// 1. Render
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return ManifestEntry{}, fmt.Errorf("render %s: %w", f.Name, err)
	}

	// 2. Format using goimports (removes unused imports and adds missing ones)
	fullPath := filepath.Join(w.outDir, filepath.FromSlash(f.Name))
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		// Write unformatted file for debugging (errors intentionally ignored as we're already in error state)
		debugPath := fullPath + ".error"
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return ManifestEntry{}, fmt.Errorf("format %s: %w (unformatted written to %s)", f.Name, err, debugPath)
	}
	entry := ManifestEntry{Name: f.Name, Digest: Digest(formatted), Size: len(formatted)}

	// 3. Skip unchanged files
	if existing, err := os.ReadFile(fullPath); err == nil && bytes.Equal(existing, formatted) {
		return entry, nil
	}

	// 4. Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return ManifestEntry{}, fmt.Errorf("create directory for %s: %w", f.Name, err)
	}

	// 5. Write file
	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return ManifestEntry{}, fmt.Errorf("write %s: %w", f.Name, err)
	}
	return entry, nil
}
