package ruleset

import (
	"context"
	"fmt"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
)

// Query identifies one layer to load from a configuration store.
type Query struct {
	Scope        Scope
	Vertical     string
	Market       string
	Organization string
	AppID        string
}

// Store supplies partial overrides per configuration layer.
//
// A nil layer with nil error means the scope defines nothing. Errors are
// treated as an unavailable layer: resolution degrades to the next less
// specific scope and records a fallback diagnostic, it never fails.
type Store interface {
	Layer(ctx context.Context, q Query) (*Overrides, error)
}

// Resolver builds MergedRuleSets for listings.
type Resolver struct {
	store Store
}

// NewResolver creates a resolver backed by the given store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve merges the four configuration layers for a listing.
//
// Layer order is fixed: base defaults, then the detected vertical, then
// the locale's market, then the client (organization). Later layers win
// field by field; map-valued overrides shallow-merge so absent keys keep
// falling through. The result is complete and immutable even when every
// external layer fails to load.
func (r *Resolver) Resolve(ctx context.Context, l *listing.Listing) *MergedRuleSet {
	m := newMergedRuleSet()
	m.VerticalID = DetectVertical(l.Category, l.Title, l.Subtitle)
	m.MarketID = DetectMarket(l.Locale)
	m.OrganizationID = l.Organization

	layers := []struct {
		scope Scope
		id    string
		query Query
		note  func(id string)
	}{
		{
			scope: ScopeVertical,
			id:    m.VerticalID,
			query: Query{Scope: ScopeVertical, Vertical: m.VerticalID},
			note:  func(id string) { m.Chain.Vertical = id },
		},
		{
			scope: ScopeMarket,
			id:    m.MarketID,
			query: Query{Scope: ScopeMarket, Market: m.MarketID},
			note:  func(id string) { m.Chain.Market = id },
		},
		{
			scope: ScopeClient,
			id:    l.Organization,
			query: Query{Scope: ScopeClient, Organization: l.Organization, AppID: l.AppID},
			note:  func(id string) { m.Chain.Client = id },
		},
	}

	for _, layer := range layers {
		if layer.id == "" || layer.id == "base" {
			continue
		}
		resolved, err := r.store.Layer(ctx, layer.query)
		if err != nil {
			m.Warnings = append(m.Warnings,
				fmt.Sprintf("%s layer %q unavailable, falling back to less specific configuration: %v",
					layer.scope, layer.id, err))
			continue
		}
		if resolved.Empty() {
			continue
		}
		if err := validateLayer(resolved, layer.scope); err != nil {
			m.Warnings = append(m.Warnings,
				fmt.Sprintf("%s layer %q rejected: %v", layer.scope, layer.id, err))
			continue
		}
		if layer.scope == ScopeClient && resolved.Organization != "" && resolved.Organization != l.Organization {
			// A client layer keyed to a different tenant must never merge.
			m.Warnings = append(m.Warnings,
				fmt.Sprintf("client layer belongs to organization %q, requested %q; dropped to prevent override leak",
					resolved.Organization, l.Organization))
			continue
		}
		m.merge(resolved, layer.scope)
		layer.note(layer.id)
	}

	return m
}
