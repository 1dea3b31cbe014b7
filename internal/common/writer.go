package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Writer accumulates generated source line by line.
type Writer struct {
	sb     strings.Builder
	indent string // one level, e.g. "\t" or "  "
	depth  int
}

func NewWriter(indent string) *Writer {
	return &Writer{indent: indent}
}

// Line writes one indented line. An empty format writes an empty line.
func (w *Writer) Line(format string, args ...any) {
	if format == "" {
		w.sb.WriteByte('\n')
		return
	}
	w.sb.WriteString(strings.Repeat(w.indent, w.depth))
	if len(args) > 0 {
		fmt.Fprintf(&w.sb, format, args...)
	} else {
		w.sb.WriteString(format)
	}
	w.sb.WriteByte('\n')
}

func (w *Writer) Indent() {
	w.depth++
}

func (w *Writer) Dedent() {
	if w.depth > 0 {
		w.depth--
	}
}

func (w *Writer) String() string {
	return w.sb.String()
}

// Files maps slash-separated output paths to file contents.
type Files map[string]string

// Paths returns the output paths in sorted order.
func (f Files) Paths() []string {
	paths := make([]string, 0, len(f))
	for p := range f {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Merge copies other into f. A path present in both is an error.
func (f Files) Merge(other Files) error {
	for p, content := range other {
		if _, ok := f[p]; ok {
			return fmt.Errorf("output path %s is generated twice", p)
		}
		f[p] = content
	}
	return nil
}

// WriteFiles writes files under dir. Unless override is set, every
// destination is checked before the first write, so a conflict leaves the
// filesystem untouched. It returns the written paths.
func WriteFiles(dir string, files Files, override bool) ([]string, error) {
	paths := files.Paths()

	if !override {
		var existing []string
		for _, p := range paths {
			dst := filepath.Join(dir, filepath.FromSlash(p))
			_, err := os.Stat(dst)
			if err == nil {
				existing = append(existing, dst)
				continue
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("checking %s: %w", dst, err)
			}
		}
		if len(existing) > 0 {
			return nil, &ConflictError{Paths: existing}
		}
	}

	written := make([]string, 0, len(paths))
	for _, p := range paths {
		dst := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return written, fmt.Errorf("creating directory for %s: %w", dst, err)
		}
		if err := os.WriteFile(dst, []byte(files[p]), 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", dst, err)
		}
		written = append(written, dst)
	}
	return written, nil
}
