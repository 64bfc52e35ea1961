package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ppiankov/statementizer/internal/pipeline"
	"github.com/ppiankov/statementizer/internal/table"
)

// Runner processes one input file into one output file
type Runner interface {
	Run(ctx context.Context, inPath, outPath string) (*pipeline.RunResult, error)
}

// FileJob expands one input file
type FileJob struct {
	Input  string
	Output string
	Runner Runner
}

// Execute runs the job unless the batch was cancelled
func (j *FileJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &FileResult{Input: j.Input, Output: j.Output, Error: err}
	}

	res, err := j.Runner.Run(ctx, j.Input, j.Output)
	if err != nil {
		return &FileResult{Input: j.Input, Output: j.Output, Error: err}
	}
	return &FileResult{Input: j.Input, Output: j.Output, Run: res}
}

// FileResult is the outcome of one FileJob
type FileResult struct {
	Input  string
	Output string
	Run    *pipeline.RunResult
	Error  error
}

// GetError returns the error from the file result
func (r *FileResult) GetError() error {
	return r.Error
}

// BatchProcessor expands many files concurrently. Each file is processed sequentially.
type BatchProcessor struct {
	runner      Runner
	concurrency int
	format      table.Format
}

// NewBatchProcessor creates a batch processor writing outputs in the given format
func NewBatchProcessor(runner Runner, concurrency int, format table.Format) *BatchProcessor {
	if format == "" {
		format = table.FormatCSV
	}
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
		format:      format,
	}
}

// ProcessFiles expands every input into outDir. Results follow input order;
// a failed file never stops its siblings.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, inputs []string, outDir string) []*FileResult {
	if len(inputs) == 0 {
		return []*FileResult{}
	}

	outputs := OutputPaths(inputs, outDir, b.format)

	pool := NewPool(b.concurrency)
	pool.Start(ctx)

	for i, in := range inputs {
		pool.Submit(&FileJob{
			Input:  in,
			Output: outputs[i],
			Runner: b.runner,
		})
	}

	results := pool.Wait()

	fileResults := make([]*FileResult, len(results))
	for i, r := range results {
		if r == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			fileResults[i] = &FileResult{Input: inputs[i], Output: outputs[i], Error: err}
			continue
		}
		fileResults[i] = r.(*FileResult)
	}

	return fileResults
}

// OutputPaths derives <outDir>/<name>.statements<ext> for each input, numbering duplicates
func OutputPaths(inputs []string, outDir string, format table.Format) []string {
	seen := make(map[string]int, len(inputs))
	paths := make([]string, len(inputs))

	for i, in := range inputs {
		base := filepath.Base(in)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		name := base + ".statements"

		seen[name]++
		if n := seen[name]; n > 1 {
			name += "-" + strconv.Itoa(n)
		}
		paths[i] = filepath.Join(outDir, name+format.Extension())
	}

	return paths
}

// ReadFileList reads input paths from a file (one per line, # comments allowed)
func ReadFileList(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file list: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file list: %w", err)
	}

	return paths, nil
}
