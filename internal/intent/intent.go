// Package intent classifies combos by the search intent they serve.
//
// Patterns normally come from configuration per vertical and market; a
// built-in minimal set keeps classification total when none are
// configured, and results carry a flag so callers can tell fallback
// mode from tuned patterns.
package intent

import (
	"context"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/combo"
)

// Intent classes.
const (
	ClassInformational = "informational"
	ClassTransactional = "transactional"
	ClassNavigational  = "navigational"
)

// Pattern maps trigger words to an intent class. First match wins, in
// pattern order.
type Pattern struct {
	Class string   `yaml:"class" json:"class"`
	Words []string `yaml:"words" json:"words"`
}

// Query scopes a pattern lookup.
type Query struct {
	Vertical     string
	Market       string
	Organization string
	AppID        string
}

// Provider loads intent patterns for a scope. An empty result with nil
// error means nothing is configured and the fallback set applies.
type Provider interface {
	Load(ctx context.Context, q Query) ([]Pattern, error)
}

// StaticProvider serves patterns from memory, keyed by vertical.
type StaticProvider struct {
	ByVertical map[string][]Pattern
}

// Load implements Provider.
func (p *StaticProvider) Load(_ context.Context, q Query) ([]Pattern, error) {
	return p.ByVertical[q.Vertical], nil
}

// Fallback returns the built-in minimal pattern set.
func Fallback() []Pattern {
	return []Pattern{
		{Class: ClassTransactional, Words: []string{
			"buy", "order", "book", "shop", "pay", "subscribe", "rent", "sell",
		}},
		{Class: ClassNavigational, Words: []string{
			"login", "account", "official", "portal", "site",
		}},
		{Class: ClassInformational, Words: []string{
			"learn", "how", "guide", "tips", "tutorial", "course", "lessons",
			"practice", "study", "track", "plan",
		}},
	}
}

// Classifier answers intent queries with a fixed pattern list.
type Classifier struct {
	patterns []Pattern
	fallback bool
}

// NewClassifier builds a classifier for one evaluation. Empty patterns
// switch to the built-in fallback set and mark the result degraded.
func NewClassifier(patterns []Pattern) *Classifier {
	if len(patterns) == 0 {
		return &Classifier{patterns: Fallback(), fallback: true}
	}
	return &Classifier{patterns: patterns}
}

// Resolve loads patterns for the scope and builds a classifier. Load
// failures degrade to the fallback set, never error out.
func Resolve(ctx context.Context, p Provider, q Query) *Classifier {
	if p == nil {
		return NewClassifier(nil)
	}
	patterns, err := p.Load(ctx, q)
	if err != nil {
		return NewClassifier(nil)
	}
	return NewClassifier(patterns)
}

// FallbackMode reports whether the built-in pattern set is in use.
func (c *Classifier) FallbackMode() bool {
	return c.fallback
}

// Classify returns the intent class for a token sequence, empty when
// no pattern matches.
func (c *Classifier) Classify(tokens []string) string {
	for _, p := range c.patterns {
		for _, w := range p.Words {
			for _, tok := range tokens {
				if tok == w {
					return p.Class
				}
			}
		}
	}
	return ""
}

// Summary aggregates intent classification over a combo set.
type Summary struct {
	Counts       map[string]int `json:"counts"`
	Classified   int            `json:"classified"`
	Total        int            `json:"total"`
	FallbackMode bool           `json:"fallback_mode"`
}

// Annotate classifies every combo and writes the additive intent
// annotation. Type and relevance stay untouched.
func (c *Classifier) Annotate(set *combo.Set) Summary {
	sum := Summary{
		Counts:       map[string]int{},
		Total:        len(set.All),
		FallbackMode: c.fallback,
	}
	for _, cb := range set.All {
		class := c.Classify(cb.Tokens)
		if class == "" {
			continue
		}
		cb.Intent = class
		sum.Counts[class]++
		sum.Classified++
	}
	return sum
}
