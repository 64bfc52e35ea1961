package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/statementizer/internal/model"
	"github.com/ppiankov/statementizer/internal/table"
)

// addSegmentFlags registers the flags shared by split and batch
func addSegmentFlags(cmd *cobra.Command) {
	d := model.DefaultConfig()
	fs := cmd.Flags()

	// Input flags
	fs.String("input-format", d.Input.Format, "input format: csv, parquet (default: from extension)")
	fs.String("id", d.Input.IDColumn, "identifier column")
	fs.String("text", d.Input.TextColumn, "text column to split")
	fs.String("speaker", d.Input.SpeakerColumn, "optional speaker column copied to every statement")

	// Segmentation flags
	fs.String("strategy", d.Segmentation.Strategy, "segmentation strategy: tag-aware, sentence, linguistic, whole")
	fs.Bool("tags", d.Segmentation.ExtractTags, "collect #tags into a trailing statement (always on for tag-aware)")
	fs.Bool("strip-html", d.Segmentation.StripHTML, "strip HTML markup before splitting")
	fs.Bool("no-cache", false, "disable the segmentation cache")

	// Output flags
	fs.String("format", d.Output.Format, "output format: csv, parquet (default: from output extension)")
	fs.Bool("classify", d.Classify.Enabled, "add persuasion tactic columns to the statements")
	fs.String("dict", d.Classify.DictionaryFile, "tactic dictionary file, YAML or JSON (default: built-in)")
}

// outputFormat is the configured output format, CSV when unset
func outputFormat(cfg *model.Config) (table.Format, error) {
	if cfg.Output.Format == "" {
		return table.FormatCSV, nil
	}
	return table.ParseFormat(cfg.Output.Format)
}
