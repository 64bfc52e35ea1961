package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/time/rate"

	"github.com/ppiankov/statementizer/internal/expand"
	"github.com/ppiankov/statementizer/internal/model"
)

const previewCellWidth = 48

// Renderer prints previews and summaries for humans
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// RenderPreview prints the first n rows as a table
func (r *Renderer) RenderPreview(t *model.Table, n int) error {
	if n <= 0 {
		return nil
	}
	if n > t.Len() {
		n = t.Len()
	}

	fmt.Fprintf(r.w, "Preview (%d of %d rows)\n\n", n, t.Len())

	tw := table.NewWriter()
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	header := make(table.Row, len(t.Columns))
	configs := make([]table.ColumnConfig, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
		configs[i] = table.ColumnConfig{
			Number:           i + 1,
			WidthMax:         previewCellWidth,
			WidthMaxEnforcer: truncateCell,
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range t.Rows[:n] {
		cells := make(table.Row, len(t.Columns))
		for i, col := range t.Columns {
			// Newlines would split one cell over several table lines
			cells[i] = strings.Join(strings.Fields(model.Stringify(row[col])), " ")
		}
		tw.AppendRow(cells)
	}

	if _, err := fmt.Fprintf(r.w, "%s\n\n", tw.Render()); err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	return nil
}

// truncateCell cuts values wider than maxLen and marks the cut with an ellipsis
func truncateCell(col string, maxLen int) string {
	if text.RuneWidthWithoutEscSequences(col) <= maxLen {
		return col
	}
	return text.Trim(col, maxLen-1) + "…"
}

// RenderSummary prints the run statistics
func (r *Renderer) RenderSummary(res *RunResult) {
	fmt.Fprintf(r.w, "\n")
	fmt.Fprintf(r.w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(r.w, "  Statement Table\n")
	fmt.Fprintf(r.w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(r.w, "\n")
	fmt.Fprintf(r.w, "  Input:        %s\n", res.InputPath)
	fmt.Fprintf(r.w, "  Output:       %s\n", res.OutputPath)
	fmt.Fprintf(r.w, "  Source rows:  %d\n", res.Stats.SourceRows)
	fmt.Fprintf(r.w, "  Statements:   %d\n", res.Stats.Statements)
	fmt.Fprintf(r.w, "  Empty rows:   %d\n", res.Stats.EmptyRows)
	if res.Stats.CacheHits+res.Stats.CacheMisses > 0 {
		fmt.Fprintf(r.w, "  Cache:        %d hits / %d misses\n", res.Stats.CacheHits, res.Stats.CacheMisses)
	}
	fmt.Fprintf(r.w, "  Duration:     %v\n", res.Stats.Duration.Round(time.Millisecond))
	fmt.Fprintf(r.w, "\n")
}

// ProgressPrinter returns a progress callback that prints at most once per interval.
// The first and the final row are always reported.
func ProgressPrinter(w io.Writer, label string, interval time.Duration) expand.ProgressFunc {
	sometimes := &rate.Sometimes{First: 1, Interval: interval}
	return func(done, total int) {
		if done == total {
			fmt.Fprintf(w, "  %s: %d/%d rows\n", label, done, total)
			return
		}
		sometimes.Do(func() {
			fmt.Fprintf(w, "  %s: %d/%d rows\n", label, done, total)
		})
	}
}
