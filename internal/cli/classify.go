package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/statementizer/internal/classify"
	"github.com/ppiankov/statementizer/internal/model"
	"github.com/ppiankov/statementizer/internal/table"
)

var (
	classifyColumn string
	classifyOut    string
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <input>",
	Short: "Tag rows of a table with persuasion tactics",
	Long: `Classify matches a text column against keyword dictionaries and adds
a detected_tactics column plus one true/false column per tactic.

Matching is a case-insensitive substring search. The built-in dictionaries
cover urgency_marketing and exclusive_marketing; --dict replaces them with a
YAML or JSON map of tactic name to keyword list.

Example:
  statementizer classify posts.statements.csv
  statementizer classify posts.csv --column Text --dict tactics.yaml --out tagged.parquet`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyColumn, "column", model.ColumnStatement, "text column to classify")
	classifyCmd.Flags().String("dict", "", "tactic dictionary file, YAML or JSON (default: built-in)")
	classifyCmd.Flags().StringVarP(&classifyOut, "out", "o", "", "output path (default: <input>.classified.csv next to the input)")
	classifyCmd.Flags().String("input-format", "", "input format: csv, parquet (default: from extension)")
	classifyCmd.Flags().String("format", "", "output format: csv, parquet (default: from output extension)")
}

func runClassify(cmd *cobra.Command, args []string) error {
	in := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dicts, err := classify.LoadDictionariesFile(cfg.Classify.DictionaryFile)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidConfig, err)
	}
	classifier := classify.New(dicts)

	out := classifyOut
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		out = filepath.Join(filepath.Dir(in), base+".classified.csv")
	}

	inFormat, err := table.ResolveFormat(cfg.Input.Format, in)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	outFormat, err := table.ResolveFormat(cfg.Output.Format, out)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}

	t, err := table.ReadFile(in, inFormat)
	if err != nil {
		return fmt.Errorf("read %s: %w", in, err)
	}

	if err := classifier.Apply(t, classifyColumn); err != nil {
		return err
	}

	if err := table.WriteFile(out, outFormat, t); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "✓ Classified %d rows: %s\n", t.Len(), out)
	for _, tactic := range classifier.Tactics() {
		n := 0
		for _, row := range t.Rows {
			if hit, _ := row[tactic].(bool); hit {
				n++
			}
		}
		fmt.Fprintf(stderr, "  %-24s %d\n", tactic, n)
	}

	return nil
}
