// Package rules defines the per-field scoring rules and their registries.
package rules

import (
	"fmt"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/combo"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/relevance"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/token"
)

// Context provides everything a rule may consult. Shared across the
// rules of one element evaluation; rules read, never write. Rules must
// be a resolved rule set, never nil.
type Context struct {
	Listing *listing.Listing
	Element listing.Element
	Text    string
	Tokens  token.Result

	// Title and Subtitle are always populated so cross-field rules can
	// compare, regardless of which element is being scored.
	Title    token.Result
	Subtitle token.Result

	Combos *combo.Set
	Oracle *relevance.Oracle
	Rules  *ruleset.MergedRuleSet
}

// CharLimit returns the platform character limit for the element under
// evaluation.
func (ctx *Context) CharLimit() int {
	return listing.CharLimit(ctx.Listing.Platform, ctx.Element)
}

// Result is one rule's verdict. Score is always inside [0,100]; Weight
// and Ancestry record the effective weight and the configuration scope
// that decided the rule's parameters.
type Result struct {
	RuleID   string        `json:"rule_id"`
	Passed   bool          `json:"passed"`
	Score    float64       `json:"score"`
	Weight   float64       `json:"weight"`
	Message  string        `json:"message"`
	Evidence []string      `json:"evidence,omitempty"`
	Ancestry ruleset.Scope `json:"ancestry"`
}

// Rule scores one aspect of one listing element.
type Rule interface {
	// ID returns the rule's stable identifier, used for weight
	// overrides and recommendation dedup.
	ID() string

	// Description returns a human-readable summary.
	Description() string

	// Weight returns the rule's base weight within its element.
	Weight() float64

	// Evaluate scores the element. Implementations are pure functions
	// of the context.
	Evaluate(ctx *Context) Result
}

// safeEvaluate runs one rule, converting a panic into a zero-score
// failed result so one broken rule never aborts the element.
func safeEvaluate(rule Rule, ctx *Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{
				RuleID:   rule.ID(),
				Passed:   false,
				Score:    0,
				Message:  "rule failed to evaluate",
				Evidence: []string{fmt.Sprint(r)},
				Ancestry: ruleset.ScopeBase,
			}
		}
	}()
	res = rule.Evaluate(ctx)
	res.RuleID = rule.ID()
	res.Score = clamp(res.Score)
	if res.Ancestry == "" {
		res.Ancestry = ruleset.ScopeBase
	}
	return res
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// mostSpecific returns the scope with higher specificity.
func mostSpecific(a, b ruleset.Scope) ruleset.Scope {
	if b.Specificity() > a.Specificity() {
		return b
	}
	return a
}
