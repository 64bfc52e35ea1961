// Package table reads and writes datasets as CSV or Parquet.
package table

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/statementizer/internal/model"
)

// Format is a table serialisation format
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type for downloads
func (f Format) ContentType() string {
	switch f {
	case FormatParquet:
		return "application/vnd.apache.parquet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// ParseFormat resolves a format name (case-insensitive)
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "parquet", "pq":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: %q", model.ErrUnknownFormat, name)
	}
}

// DetectFormat infers the format from a file extension
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: no extension on %q", model.ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// ResolveFormat uses name when set, otherwise the extension of path
func ResolveFormat(name, path string) (Format, error) {
	if name != "" {
		return ParseFormat(name)
	}
	return DetectFormat(path)
}

// Read reads a table of the given format from r
func Read(r io.ReaderAt, size int64, format Format) (*model.Table, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(io.NewSectionReader(r, 0, size))
	case FormatParquet:
		return ReadParquet(r, size)
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownFormat, format)
	}
}

// Write writes t to w in the given format
func Write(w io.Writer, format Format, t *model.Table) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatParquet:
		return WriteParquet(w, t)
	default:
		return fmt.Errorf("%w: %q", model.ErrUnknownFormat, format)
	}
}

// ReadFile reads a table from disk
func ReadFile(path string, format Format) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	return Read(f, info.Size(), format)
}

// WriteFile writes a table to disk, creating parent directories
func WriteFile(path string, format Format, t *model.Table) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	return Write(f, format, t)
}
