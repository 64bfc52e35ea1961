package table

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/statementizer/internal/model"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"data.csv", FormatCSV, false},
		{"DATA.CSV", FormatCSV, false},
		{"dir/data.parquet", FormatParquet, false},
		{"data.pq", FormatParquet, false},
		{"data.xlsx", "", true},
		{"data", "", true},
	}

	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		if tt.wantErr {
			if !errors.Is(err, model.ErrUnknownFormat) {
				t.Errorf("DetectFormat(%q): expected ErrUnknownFormat, got %v", tt.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("DetectFormat(%q) failed: %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestResolveFormat_NameWins(t *testing.T) {
	got, err := ResolveFormat("parquet", "out.csv")
	if err != nil {
		t.Fatalf("ResolveFormat failed: %v", err)
	}
	if got != FormatParquet {
		t.Errorf("expected parquet, got %q", got)
	}
}

func TestReadWriteFile(t *testing.T) {
	tbl := model.NewTable("ID", "Text")
	tbl.Append(model.SourceRow{"ID": "1", "Text": "Hello. World."})

	for _, format := range []Format{FormatCSV, FormatParquet} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "table"+format.Extension())
			if err := WriteFile(path, format, tbl); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}

			back, err := ReadFile(path, format)
			if err != nil {
				t.Fatalf("ReadFile failed: %v", err)
			}
			if diff := cmp.Diff(tbl.Rows, back.Rows); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"), FormatCSV); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadWrite_InMemory(t *testing.T) {
	tbl := model.NewTable("ID", "Text")
	tbl.Append(model.SourceRow{"ID": "7", "Text": "In memory."})

	for _, format := range []Format{FormatCSV, FormatParquet} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, format, tbl); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			data := buf.Bytes()
			back, err := Read(bytes.NewReader(data), int64(len(data)), format)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if diff := cmp.Diff(tbl.Columns, back.Columns); diff != "" {
				t.Errorf("columns mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tbl.Rows, back.Rows); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if err := Write(&bytes.Buffer{}, Format("xlsx"), tbl); !errors.Is(err, model.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
