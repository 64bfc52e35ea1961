package model

import (
	"fmt"
	"time"
)

// Config is the complete statementizer configuration
type Config struct {
	Input        InputConfig        `yaml:"input" mapstructure:"input"`
	Segmentation SegmentationConfig `yaml:"segmentation" mapstructure:"segmentation"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	Classify     ClassifyConfig     `yaml:"classify" mapstructure:"classify"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
}

// InputConfig names the columns the expander reads
type InputConfig struct {
	Format        string `yaml:"format" mapstructure:"format"` // csv, parquet, or empty to detect from extension
	IDColumn      string `yaml:"id_column" mapstructure:"id_column"`
	TextColumn    string `yaml:"text_column" mapstructure:"text_column"`
	SpeakerColumn string `yaml:"speaker_column" mapstructure:"speaker_column"` // Optional
}

// SegmentationConfig selects the strategy and its switches
type SegmentationConfig struct {
	Strategy    string `yaml:"strategy" mapstructure:"strategy"`
	ExtractTags bool   `yaml:"extract_tags" mapstructure:"extract_tags"` // Forced on by tag-aware
	StripHTML   bool   `yaml:"strip_html" mapstructure:"strip_html"`
}

// OutputConfig controls the exported table and console output
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format"`   // csv, parquet, or empty to detect from the output path
	Preview int    `yaml:"preview" mapstructure:"preview"` // Rows shown after a run, 0 disables
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// CacheConfig controls in-process memoisation of segmentation results
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// ConcurrencyConfig controls the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// ClassifyConfig enables dictionary classification of statements
type ClassifyConfig struct {
	Enabled        bool   `yaml:"enabled" mapstructure:"enabled"`
	DictionaryFile string `yaml:"dictionary_file" mapstructure:"dictionary_file"` // Empty uses built-in dictionaries
}

// ServerConfig controls the HTTP endpoint
type ServerConfig struct {
	Addr           string `yaml:"addr" mapstructure:"addr"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			IDColumn:   "ID",
			TextColumn: "Text",
		},
		Segmentation: SegmentationConfig{
			Strategy: string(StrategyTagAware),
		},
		Output: OutputConfig{
			Preview: 10,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             30 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 32 << 20,
		},
	}
}

// Validate checks settings that must be known before any row is read
func (c *Config) Validate() error {
	if c.Input.IDColumn == "" {
		return fmt.Errorf("%w: id column is required", ErrInvalidConfig)
	}
	if c.Input.TextColumn == "" {
		return fmt.Errorf("%w: text column is required", ErrInvalidConfig)
	}
	if _, err := ParseStrategy(c.Segmentation.Strategy); err != nil {
		return err
	}
	if c.Concurrency.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	return nil
}
