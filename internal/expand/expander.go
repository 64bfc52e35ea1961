// Package expand fans source rows out into one output row per statement.
package expand

import (
	"fmt"

	"github.com/ppiankov/statementizer/internal/model"
)

// Segmenter turns one cell value into statements
type Segmenter interface {
	SegmentValue(v model.Value) []string
}

// Columns names the source columns the expander reads
type Columns struct {
	ID      string
	Text    string
	Speaker string // Optional
}

// Validate checks that every configured column exists in the header
func (c Columns) Validate(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	required := [][2]string{{"id", c.ID}, {"text", c.Text}}
	if c.Speaker != "" {
		required = append(required, [2]string{"speaker", c.Speaker})
	}

	for _, r := range required {
		role, name := r[0], r[1]
		if name == "" {
			return fmt.Errorf("%w: %s column is not set", model.ErrColumnNotFound, role)
		}
		if !present[name] {
			return fmt.Errorf("%w: %s column %q", model.ErrColumnNotFound, role, name)
		}
	}
	return nil
}

// ProgressFunc is called after each source row
type ProgressFunc func(done, total int)

// Expander turns a source table into statement rows
type Expander struct {
	segmenter Segmenter
	columns   Columns
	progress  ProgressFunc
}

// Option configures an Expander
type Option func(*Expander)

// WithProgress reports progress by source row index
func WithProgress(fn ProgressFunc) Option {
	return func(e *Expander) {
		e.progress = fn
	}
}

// New creates an Expander
func New(seg Segmenter, columns Columns, opts ...Option) *Expander {
	e := &Expander{
		segmenter: seg,
		columns:   columns,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Columns returns the configured columns
func (e *Expander) Columns() Columns {
	return e.columns
}

// Expand validates the header and expands every row in order.
// Rows whose text yields no statements contribute no output.
func (e *Expander) Expand(t *model.Table) ([]model.OutputRow, error) {
	if err := e.columns.Validate(t.Columns); err != nil {
		return nil, err
	}

	withSpeaker := e.columns.Speaker != ""
	out := make([]model.OutputRow, 0, len(t.Rows))

	for i, row := range t.Rows {
		context := row[e.columns.Text]
		for n, statement := range e.segmenter.SegmentValue(context) {
			o := model.OutputRow{
				Identifier:     row[e.columns.ID],
				SequenceNumber: n + 1,
				Context:        context,
				Statement:      statement,
			}
			if withSpeaker {
				o.Speaker = row[e.columns.Speaker]
				o.HasSpeaker = true
			}
			out = append(out, o)
		}

		if e.progress != nil {
			e.progress(i+1, len(t.Rows))
		}
	}

	return out, nil
}

// ExpandTable expands t and returns the statement table
func (e *Expander) ExpandTable(t *model.Table) (*model.Table, error) {
	rows, err := e.Expand(t)
	if err != nil {
		return nil, err
	}
	return ToTable(rows, e.columns.Speaker != ""), nil
}

// ToTable builds a statement table. The Speaker column exists only when withSpeaker is set.
func ToTable(rows []model.OutputRow, withSpeaker bool) *model.Table {
	t := model.NewTable(model.OutputColumns(withSpeaker)...)
	for _, r := range rows {
		rec := r.Record()
		if !withSpeaker {
			delete(rec, model.ColumnSpeaker)
		}
		t.Append(rec)
	}
	return t
}
