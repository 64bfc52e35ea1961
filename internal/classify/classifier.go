package classify

import (
	"fmt"
	"strings"

	"github.com/ppiankov/statementizer/internal/model"
)

// Classifier matches lower-cased text against keyword dictionaries
type Classifier struct {
	tactics  []string
	keywords map[string][]string
}

// New creates a classifier. Keywords are matched case-insensitively as substrings.
func New(d Dictionaries) *Classifier {
	c := &Classifier{
		tactics:  d.Tactics(),
		keywords: make(map[string][]string, len(d)),
	}
	for tactic, kws := range d {
		lowered := make([]string, 0, len(kws))
		for _, kw := range kws {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				lowered = append(lowered, kw)
			}
		}
		c.keywords[tactic] = lowered
	}
	return c
}

// Tactics returns the tactic names in column order
func (c *Classifier) Tactics() []string {
	return c.tactics
}

// Classify returns the tactics whose keywords occur in text, in sorted order
func (c *Classifier) Classify(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, tactic := range c.tactics {
		for _, kw := range c.keywords[tactic] {
			if strings.Contains(lower, kw) {
				found = append(found, tactic)
				break
			}
		}
	}
	return found
}

// Apply classifies column in every row, adding detected_tactics and one boolean column per tactic.
// Existing columns with the same names are overwritten in place.
func (c *Classifier) Apply(t *model.Table, column string) error {
	if !t.HasColumn(column) {
		return fmt.Errorf("%w: classify column %q", model.ErrColumnNotFound, column)
	}

	for _, name := range append([]string{model.ColumnTactics}, c.tactics...) {
		if !t.HasColumn(name) {
			t.Columns = append(t.Columns, name)
		}
	}

	for _, row := range t.Rows {
		found := c.Classify(model.Stringify(row[column]))
		row[model.ColumnTactics] = strings.Join(found, model.TacticsSeparator)

		hit := make(map[string]bool, len(found))
		for _, f := range found {
			hit[f] = true
		}
		for _, tactic := range c.tactics {
			row[tactic] = hit[tactic]
		}
	}

	return nil
}
