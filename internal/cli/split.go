package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/statementizer/internal/pipeline"
	"github.com/ppiankov/statementizer/internal/worker"
)

var splitOut string

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split <input>",
	Short: "Split one table into one statement per row",
	Long: `Split reads a CSV or Parquet table and writes a statement table:
- One output row per statement found in the text column
- ID, per-record Sentence ID (from 1), original text as Context
- Optional Speaker column and persuasion tactic columns

Rows whose text is empty produce no statements.

Example:
  statementizer split posts.csv
  statementizer split posts.csv --strategy sentence --out statements.parquet
  statementizer split interviews.parquet --id Interview --text Answer --speaker Speaker --strategy linguistic`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	addSegmentFlags(splitCmd)
	splitCmd.Flags().StringVarP(&splitOut, "out", "o", "", "output path (default: <input>.statements.<ext> next to the input)")
	splitCmd.Flags().Int("preview", 10, "statement rows to preview after the run (0 disables)")
}

func runSplit(cmd *cobra.Command, args []string) error {
	in := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := splitOut
	if out == "" {
		format, err := outputFormat(cfg)
		if err != nil {
			return err
		}
		out = worker.OutputPaths([]string{in}, filepath.Dir(in), format)[0]
	}

	stderr := cmd.ErrOrStderr()
	if cfg.Output.Verbose {
		fmt.Fprintf(stderr, "Splitting: %s\n", in)
		fmt.Fprintf(stderr, "Strategy: %s\n", cfg.Segmentation.Strategy)
		fmt.Fprintf(stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(stderr)
	}

	var opts []pipeline.Option
	if cfg.Output.Verbose {
		opts = append(opts, pipeline.WithProgress(pipeline.ProgressPrinter(stderr, "Expanding", time.Second)))
	}

	p, err := pipeline.NewPipeline(cfg, opts...)
	if err != nil {
		return err
	}

	res, err := p.Run(cmd.Context(), in, out)
	if err != nil {
		return err
	}

	pipeline.NewRenderer(stderr).RenderSummary(res)

	if cfg.Output.Preview > 0 {
		if err := pipeline.NewRenderer(cmd.OutOrStdout()).RenderPreview(res.Table, cfg.Output.Preview); err != nil {
			return fmt.Errorf("render preview: %w", err)
		}
	}

	return nil
}
