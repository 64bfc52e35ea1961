package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/ppiankov/statementizer/internal/model"
)

// Parquet groups order their fields by name; the header order is kept in file metadata.
const columnOrderKey = "statementizer.columns"

const readBatchSize = 256

// ReadParquet reads a flat Parquet file. Nested leaf columns are named by their dotted path.
func ReadParquet(r io.ReaderAt, size int64) (*model.Table, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	paths := f.Schema().Columns()
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = strings.Join(path, ".")
	}

	t := model.NewTable(headerOrder(f, names)...)
	buf := make([]parquet.Row, readBatchSize)

	for _, rg := range f.RowGroups() {
		if err := readRowGroup(rg, names, buf, t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func readRowGroup(rg parquet.RowGroup, names []string, buf []parquet.Row, t *model.Table) error {
	rows := rg.Rows()
	defer func() { _ = rows.Close() }()

	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			rec := make(model.SourceRow, len(names))
			for _, name := range names {
				rec[name] = nil
			}
			for _, v := range row {
				col := v.Column()
				if col < 0 || col >= len(names) {
					continue
				}
				// Flat schemas only: the first value of a repeated column wins
				if rec[names[col]] == nil {
					rec[names[col]] = fromParquet(v)
				}
			}
			t.Append(rec)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read parquet rows: %w", err)
		}
	}
}

func headerOrder(f *parquet.File, names []string) []string {
	raw, ok := f.Lookup(columnOrderKey)
	if !ok {
		return names
	}

	var ordered []string
	if err := json.Unmarshal([]byte(raw), &ordered); err != nil || len(ordered) != len(names) {
		return names
	}

	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}
	for _, n := range ordered {
		if !known[n] {
			return names
		}
		delete(known, n)
	}
	return ordered
}

func fromParquet(v parquet.Value) model.Value {
	if v.IsNull() {
		return nil
	}

	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return fmt.Sprint(v)
	}
}

type columnKind int

const (
	kindString columnKind = iota
	kindInt
	kindBool
)

// inferKind picks INT64 or BOOLEAN when every non-nil value allows it
func inferKind(t *model.Table, col string) columnKind {
	kind, seen := kindString, false
	for _, row := range t.Rows {
		var k columnKind
		switch row[col].(type) {
		case nil:
			continue
		case int, int32, int64:
			k = kindInt
		case bool:
			k = kindBool
		default:
			return kindString
		}
		if seen && k != kind {
			return kindString
		}
		kind, seen = k, true
	}
	return kind
}

func (k columnKind) node() parquet.Node {
	switch k {
	case kindInt:
		return parquet.Int(64)
	case kindBool:
		return parquet.Leaf(parquet.BooleanType)
	default:
		return parquet.String()
	}
}

func (k columnKind) value(v model.Value) parquet.Value {
	switch k {
	case kindInt:
		switch x := v.(type) {
		case int:
			return parquet.Int64Value(int64(x))
		case int32:
			return parquet.Int64Value(int64(x))
		case int64:
			return parquet.Int64Value(x)
		}
	case kindBool:
		if b, ok := v.(bool); ok {
			return parquet.BooleanValue(b)
		}
	}
	return parquet.ByteArrayValue([]byte(model.Stringify(v)))
}

// WriteParquet writes t with one optional column per header entry
func WriteParquet(w io.Writer, t *model.Table) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("write parquet: table has no columns")
	}

	kinds := make(map[string]columnKind, len(t.Columns))
	group := make(parquet.Group, len(t.Columns))
	for _, col := range t.Columns {
		kinds[col] = inferKind(t, col)
		group[col] = parquet.Optional(kinds[col].node())
	}
	schema := parquet.NewSchema("statements", group)

	index := make(map[string]int, len(t.Columns))
	for i, path := range schema.Columns() {
		index[path[0]] = i
	}

	order, err := json.Marshal(t.Columns)
	if err != nil {
		return fmt.Errorf("encode column order: %w", err)
	}

	pw := parquet.NewWriter(w, schema, parquet.KeyValueMetadata(columnOrderKey, string(order)))

	rows := make([]parquet.Row, 0, len(t.Rows))
	for _, rec := range t.Rows {
		row := make(parquet.Row, len(t.Columns))
		for _, col := range t.Columns {
			i := index[col]
			v := rec[col]
			if v == nil {
				row[i] = parquet.NullValue().Level(0, 0, i)
				continue
			}
			row[i] = kinds[col].value(v).Level(0, 1, i)
		}
		rows = append(rows, row)
	}

	if _, err := pw.WriteRows(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
