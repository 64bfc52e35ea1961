package model

// Output column names of a statement table
const (
	ColumnID         = "ID"
	ColumnSequence   = "Sentence ID"
	ColumnContext    = "Context"
	ColumnStatement  = "Statement"
	ColumnSpeaker    = "Speaker"
	ColumnTactics    = "detected_tactics"
	TacticsSeparator = ";"
)

// OutputRow is one statement derived from a source row
type OutputRow struct {
	Identifier     Value  `json:"id"`
	SequenceNumber int    `json:"sentence_id"`       // 1-based within the source row
	Context        Value  `json:"context"`           // Untouched source text
	Statement      string `json:"statement"`         // Trimmed, never empty
	Speaker        Value  `json:"speaker,omitempty"` // Only meaningful when HasSpeaker
	HasSpeaker     bool   `json:"-"`
}

// OutputColumns returns the header of a statement table
func OutputColumns(withSpeaker bool) []string {
	cols := []string{ColumnID, ColumnSequence, ColumnContext, ColumnStatement}
	if withSpeaker {
		cols = append(cols, ColumnSpeaker)
	}
	return cols
}

// Record converts the row into a table record
func (r OutputRow) Record() SourceRow {
	rec := SourceRow{
		ColumnID:        r.Identifier,
		ColumnSequence:  int64(r.SequenceNumber),
		ColumnContext:   r.Context,
		ColumnStatement: r.Statement,
	}
	if r.HasSpeaker {
		rec[ColumnSpeaker] = r.Speaker
	}
	return rec
}
