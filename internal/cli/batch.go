package cli

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/statementizer/internal/model"
	"github.com/ppiankov/statementizer/internal/pipeline"
	"github.com/ppiankov/statementizer/internal/worker"
)

var (
	outputDir    string
	batchTimeout time.Duration
	fileList     string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Split many tables in parallel",
	Long: `Batch splits several input tables concurrently:
- Inputs come from arguments and/or a list file (one path per line)
- Each file is expanded independently by a bounded worker pool
- A failing file is reported and never stops the others
- Outputs are written as <name>.statements.<ext> into the output directory

Example:
  statementizer batch posts-2023.csv posts-2024.csv
  statementizer batch --from inputs.txt --concurrency 8 --output-dir ./statements
  statementizer batch *.parquet --format parquet --timeout 5m`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addSegmentFlags(batchCmd)

	// Concurrency flags
	batchCmd.Flags().Int("concurrency", model.DefaultConfig().Concurrency.Workers, "number of concurrent workers (0: one per CPU)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./statements", "output directory")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&fileList, "from", "", "file listing input paths, one per line")
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputs := append([]string{}, args...)
	if fileList != "" {
		listed, err := worker.ReadFileList(fileList)
		if err != nil {
			return err
		}
		inputs = append(inputs, listed...)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input files: pass paths as arguments or use --from")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format, err := outputFormat(cfg)
	if err != nil {
		return err
	}

	workers := cfg.Concurrency.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Statementizer Batch Processing\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Inputs:       %d files\n", len(inputs))
	fmt.Fprintf(stderr, "  Strategy:     %s\n", cfg.Segmentation.Strategy)
	fmt.Fprintf(stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(stderr, "\n")

	// One pipeline is shared by all workers; its model and cache are safe for concurrent use
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, workers, format)
	results := processor.ProcessFiles(ctx, inputs, outputDir)

	successCount := 0
	failureCount := 0
	statements := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(stderr, "✗ %s: %v\n", result.Input, result.Error)
			continue
		}

		successCount++
		statements += result.Run.Stats.Statements
		fmt.Fprintf(stderr, "✓ %s → %s (%d rows, %d statements)\n",
			result.Input, result.Output, result.Run.Stats.SourceRows, result.Run.Stats.Statements)
	}

	// Summary
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Batch Complete\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Total:       %d files\n", len(results))
	fmt.Fprintf(stderr, "  Success:     %d\n", successCount)
	fmt.Fprintf(stderr, "  Failures:    %d\n", failureCount)
	fmt.Fprintf(stderr, "  Statements:  %d\n", statements)
	fmt.Fprintf(stderr, "  Output:      %s\n", outputDir)
	fmt.Fprintf(stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d files failed", failureCount, len(results))
	}
	return nil
}
