package segment

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// SentenceModel is a trained sentence boundary detector
type SentenceModel interface {
	Sentences(text string) []string
}

// PunktModel wraps the pre-trained English Punkt tokenizer.
// Loading the training data is the expensive part; build one and share it.
type PunktModel struct {
	mu        sync.Mutex
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktModel loads the English Punkt model
func NewPunktModel() (*PunktModel, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load punkt model: %w", err)
	}
	return &PunktModel{tokenizer: tokenizer}, nil
}

// Sentences implements SentenceModel
func (m *PunktModel) Sentences(text string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	tokens := m.tokenizer.Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Text)
	}
	return out
}

// ModelSplitter delegates to a SentenceModel and drops parts without letters or digits
type ModelSplitter struct {
	model SentenceModel
}

// NewModelSplitter creates a splitter around m
func NewModelSplitter(m SentenceModel) *ModelSplitter {
	return &ModelSplitter{model: m}
}

// Split implements Splitter
func (s *ModelSplitter) Split(text string) []string {
	candidates := s.model.Sentences(text)
	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if hasAlnum(c) {
			parts = append(parts, c)
		}
	}
	return parts
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
