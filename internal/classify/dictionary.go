// Package classify tags text with marketing tactics using keyword dictionaries.
package classify

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dictionaries maps a tactic name to its keywords
type Dictionaries map[string][]string

// DefaultDictionaries returns the built-in tactic dictionaries
func DefaultDictionaries() Dictionaries {
	return Dictionaries{
		"urgency_marketing": {
			"limited", "limited time", "limited run", "limited edition", "order now",
			"last chance", "hurry", "while supplies last", "before they're gone",
			"selling out", "selling fast", "act now", "don't wait", "today only",
			"expires soon", "final hours", "almost gone",
		},
		"exclusive_marketing": {
			"exclusive", "exclusively", "exclusive offer", "exclusive deal",
			"members only", "vip", "special access", "invitation only",
			"premium", "privileged", "limited access", "select customers",
			"insider", "private sale", "early access",
		},
	}
}

// Tactics returns the tactic names in sorted order
func (d Dictionaries) Tactics() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadDictionaries parses a YAML or JSON object of tactic → keyword list
func LoadDictionaries(r io.Reader) (Dictionaries, error) {
	var d Dictionaries
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("parse dictionaries: empty document")
		}
		return nil, fmt.Errorf("parse dictionaries: %w", err)
	}

	if len(d) == 0 {
		return nil, fmt.Errorf("parse dictionaries: no tactics defined")
	}
	for name, keywords := range d {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("parse dictionaries: empty tactic name")
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("parse dictionaries: tactic %q has no keywords", name)
		}
	}

	return d, nil
}

// LoadDictionariesFile reads dictionaries from path, or returns the defaults when path is empty
func LoadDictionariesFile(path string) (Dictionaries, error) {
	if path == "" {
		return DefaultDictionaries(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionaries: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadDictionaries(f)
}
