package model

import (
	"fmt"
	"sort"
	"strings"
)

// Strategy selects how a text value becomes statements
type Strategy string

const (
	StrategyTagAware   Strategy = "tag-aware"  // Sentence split with #tags collected into a trailing statement
	StrategySentence   Strategy = "sentence"   // Punctuation + uppercase boundary heuristic
	StrategyLinguistic Strategy = "linguistic" // Pre-trained sentence boundary model
	StrategyWhole      Strategy = "whole"      // No splitting
)

var strategyAliases = map[string]Strategy{
	"tag-aware":  StrategyTagAware,
	"tags":       StrategyTagAware,
	"sentence":   StrategySentence,
	"regex":      StrategySentence,
	"linguistic": StrategyLinguistic,
	"nlp":        StrategyLinguistic,
	"punkt":      StrategyLinguistic,
	"whole":      StrategyWhole,
	"post":       StrategyWhole,
}

// Strategies returns the canonical strategy names
func Strategies() []Strategy {
	return []Strategy{StrategyTagAware, StrategySentence, StrategyLinguistic, StrategyWhole}
}

// StrategyAliases returns accepted alias names for each canonical strategy
func StrategyAliases() map[Strategy][]string {
	out := make(map[Strategy][]string)
	for alias, s := range strategyAliases {
		if alias == string(s) {
			continue
		}
		out[s] = append(out[s], alias)
	}
	for s := range out {
		sort.Strings(out[s])
	}
	return out
}

// ParseStrategy resolves a strategy name or alias (case-insensitive)
func ParseStrategy(name string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if s, ok := strategyAliases[key]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

func (s Strategy) String() string {
	return string(s)
}
