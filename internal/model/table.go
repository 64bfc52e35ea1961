package model

import (
	"fmt"
	"strconv"
)

// Value is a single cell: nil, string, int64, float64 or bool
type Value = any

// SourceRow maps column names to cell values for one input record
type SourceRow map[string]Value

// Table is an in-memory dataset with an ordered header
type Table struct {
	Columns []string    `json:"columns"`
	Rows    []SourceRow `json:"rows"`
}

// NewTable creates an empty table with the given header
func NewTable(columns ...string) *Table {
	return &Table{
		Columns: columns,
		Rows:    make([]SourceRow, 0),
	}
}

// HasColumn reports whether name is part of the header
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Append adds a row
func (t *Table) Append(row SourceRow) {
	t.Rows = append(t.Rows, row)
}

// Stringify converts a cell value to text. Nil becomes the empty string.
func Stringify(v Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case interface{ String() string }:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
