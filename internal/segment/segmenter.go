// Package segment turns one free-text value into an ordered list of statements.
package segment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/statementizer/internal/cache"
	"github.com/ppiankov/statementizer/internal/model"
)

// Splitter breaks cleaned text into candidate parts
type Splitter interface {
	Split(text string) []string
}

// Segmenter applies one strategy to text values
type Segmenter struct {
	strategy  model.Strategy
	splitter  Splitter
	tags      bool
	stripHTML bool
	model     SentenceModel
	cache     cache.Cache
}

// Option configures a Segmenter
type Option func(*Segmenter)

// WithTags turns #tag extraction on or off. The tag-aware strategy always extracts.
func WithTags(enabled bool) Option {
	return func(s *Segmenter) {
		s.tags = enabled
	}
}

// WithHTML reduces HTML markup to visible text before splitting
func WithHTML(enabled bool) Option {
	return func(s *Segmenter) {
		s.stripHTML = enabled
	}
}

// WithModel supplies the sentence model used by the linguistic strategy
func WithModel(m SentenceModel) Option {
	return func(s *Segmenter) {
		s.model = m
	}
}

// WithCache memoises results per text
func WithCache(c cache.Cache) Option {
	return func(s *Segmenter) {
		s.cache = c
	}
}

// New creates a Segmenter for the given strategy
func New(strategy model.Strategy, opts ...Option) (*Segmenter, error) {
	s := &Segmenter{strategy: strategy}
	for _, opt := range opts {
		opt(s)
	}

	switch strategy {
	case model.StrategyTagAware:
		s.tags = true
		s.splitter = BoundarySplitter{}
	case model.StrategySentence:
		s.splitter = BoundarySplitter{}
	case model.StrategyLinguistic:
		if s.model == nil {
			return nil, fmt.Errorf("%w: linguistic strategy requires a sentence model", model.ErrInvalidConfig)
		}
		s.splitter = &ModelSplitter{model: s.model}
	case model.StrategyWhole:
		s.splitter = WholeSplitter{}
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownStrategy, strategy)
	}

	return s, nil
}

// Strategy returns the configured strategy
func (s *Segmenter) Strategy() model.Strategy {
	return s.strategy
}

// ExtractsTags reports whether tags are collected into a trailing statement
func (s *Segmenter) ExtractsTags() bool {
	return s.tags
}

// Segment splits text into statements. Empty input yields no statements.
func (s *Segmenter) Segment(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if s.cache == nil {
		return s.segment(text)
	}

	key := cache.Key(string(s.strategy), strconv.FormatBool(s.tags), strconv.FormatBool(s.stripHTML), text)
	if statements, ok := s.cache.Get(key); ok {
		return statements
	}

	statements := s.segment(text)
	_ = s.cache.Set(key, statements, 0)
	return statements
}

// SegmentValue coerces a cell value to text and segments it
func (s *Segmenter) SegmentValue(v model.Value) []string {
	return s.Segment(model.Stringify(v))
}

func (s *Segmenter) segment(text string) []string {
	if s.stripHTML {
		text = strings.TrimSpace(VisibleText(text))
	}

	var tags []string
	if s.tags {
		tags, text = ExtractTags(text)
	}

	parts := s.splitter.Split(text)
	statements := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			statements = append(statements, p)
		}
	}

	if len(tags) > 0 {
		statements = append(statements, strings.Join(tags, " "))
	}

	return statements
}
