package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/statementizer/internal/cache"
	"github.com/ppiankov/statementizer/internal/classify"
	"github.com/ppiankov/statementizer/internal/expand"
	"github.com/ppiankov/statementizer/internal/model"
	"github.com/ppiankov/statementizer/internal/segment"
	"github.com/ppiankov/statementizer/internal/table"
)

// Pipeline reads a table, expands it into statements, optionally classifies them, and writes the result
type Pipeline struct {
	segmenter  *segment.Segmenter
	expander   *expand.Expander
	classifier *classify.Classifier // nil if disabled
	cache      *cache.MemoryCache   // nil if disabled
	config     *model.Config
}

type options struct {
	model    segment.SentenceModel
	cache    *cache.MemoryCache
	dicts    classify.Dictionaries
	progress expand.ProgressFunc
}

// Option configures a Pipeline
type Option func(*options)

// WithSentenceModel shares an already loaded sentence model
func WithSentenceModel(m segment.SentenceModel) Option {
	return func(o *options) {
		o.model = m
	}
}

// WithCache shares a segment cache between pipelines
func WithCache(c *cache.MemoryCache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithDictionaries overrides the dictionaries named in the config
func WithDictionaries(d classify.Dictionaries) Option {
	return func(o *options) {
		o.dicts = d
	}
}

// WithProgress reports progress by source row
func WithProgress(fn expand.ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// NewPipeline validates cfg and builds the segmenter, expander and classifier.
// Configuration errors are returned before any input is touched.
func NewPipeline(cfg *model.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	strategy, err := model.ParseStrategy(cfg.Segmentation.Strategy)
	if err != nil {
		return nil, err
	}

	segOpts := []segment.Option{
		segment.WithTags(cfg.Segmentation.ExtractTags),
		segment.WithHTML(cfg.Segmentation.StripHTML),
	}

	if strategy == model.StrategyLinguistic {
		m := o.model
		if m == nil {
			if m, err = segment.NewPunktModel(); err != nil {
				return nil, err
			}
		}
		segOpts = append(segOpts, segment.WithModel(m))
	}

	memo := o.cache
	if memo == nil && cfg.Cache.Enabled {
		memo = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}
	if memo != nil {
		segOpts = append(segOpts, segment.WithCache(memo))
	}

	seg, err := segment.New(strategy, segOpts...)
	if err != nil {
		return nil, err
	}

	var expOpts []expand.Option
	if o.progress != nil {
		expOpts = append(expOpts, expand.WithProgress(o.progress))
	}

	columns := expand.Columns{
		ID:      cfg.Input.IDColumn,
		Text:    cfg.Input.TextColumn,
		Speaker: cfg.Input.SpeakerColumn,
	}

	var classifier *classify.Classifier
	if cfg.Classify.Enabled {
		dicts := o.dicts
		if dicts == nil {
			if dicts, err = classify.LoadDictionariesFile(cfg.Classify.DictionaryFile); err != nil {
				return nil, fmt.Errorf("%w: %v", model.ErrInvalidConfig, err)
			}
		}
		classifier = classify.New(dicts)
	}

	return &Pipeline{
		segmenter:  seg,
		expander:   expand.New(seg, columns, expOpts...),
		classifier: classifier,
		cache:      memo,
		config:     cfg,
	}, nil
}

// Stats summarises one run
type Stats struct {
	SourceRows  int           `json:"source_rows"`
	Statements  int           `json:"statements"`
	EmptyRows   int           `json:"empty_rows"` // Rows that produced no statements
	CacheHits   uint64        `json:"cache_hits"`
	CacheMisses uint64        `json:"cache_misses"`
	Duration    time.Duration `json:"duration"`
}

// RunResult is the outcome of processing one input file
type RunResult struct {
	InputPath  string
	OutputPath string
	Table      *model.Table
	Stats      Stats
	Error      error
}

// Segmenter returns the configured segmenter
func (p *Pipeline) Segmenter() *segment.Segmenter {
	return p.segmenter
}

// Process expands t into a statement table
func (p *Pipeline) Process(t *model.Table) (*model.Table, Stats, error) {
	start := time.Now()

	var hits0, misses0 uint64
	if p.cache != nil {
		hits0, misses0 = p.cache.Stats()
	}

	rows, err := p.expander.Expand(t)
	if err != nil {
		return nil, Stats{}, err
	}

	nonEmpty := 0
	for _, r := range rows {
		if r.SequenceNumber == 1 {
			nonEmpty++
		}
	}

	out := expand.ToTable(rows, p.expander.Columns().Speaker != "")
	if p.classifier != nil {
		if err := p.classifier.Apply(out, model.ColumnStatement); err != nil {
			return nil, Stats{}, fmt.Errorf("classify statements: %w", err)
		}
	}

	stats := Stats{
		SourceRows: t.Len(),
		Statements: len(rows),
		EmptyRows:  t.Len() - nonEmpty,
		Duration:   time.Since(start),
	}
	if p.cache != nil {
		hits, misses := p.cache.Stats()
		stats.CacheHits = hits - hits0
		stats.CacheMisses = misses - misses0
	}

	return out, stats, nil
}

// Run reads inPath, processes it and writes outPath. Nothing is written on error.
func (p *Pipeline) Run(ctx context.Context, inPath, outPath string) (*RunResult, error) {
	inFormat, err := table.ResolveFormat(p.config.Input.Format, inPath)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	outFormat, err := table.ResolveFormat(p.config.Output.Format, outPath)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := table.ReadFile(inPath, inFormat)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", inPath, err)
	}

	out, stats, err := p.Process(src)
	if err != nil {
		return nil, fmt.Errorf("process %s: %w", inPath, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := table.WriteFile(outPath, outFormat, out); err != nil {
		return nil, fmt.Errorf("write %s: %w", outPath, err)
	}

	return &RunResult{
		InputPath:  inPath,
		OutputPath: outPath,
		Table:      out,
		Stats:      stats,
	}, nil
}
