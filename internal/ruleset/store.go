package ruleset

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed configs/verticals/*.yaml configs/markets/*.yaml
var configFS embed.FS

// DefaultStore serves vertical and market layers from the embedded
// configuration set and client layers from an optional directory of
// per-organization YAML files.
type DefaultStore struct {
	// ClientDir holds <organization>.yaml files. Empty disables the
	// client layer entirely.
	ClientDir string
}

// Layer implements Store.
func (s *DefaultStore) Layer(_ context.Context, q Query) (*Overrides, error) {
	switch q.Scope {
	case ScopeVertical:
		return loadEmbedded("configs/verticals/" + q.Vertical + ".yaml")
	case ScopeMarket:
		return loadEmbedded("configs/markets/" + q.Market + ".yaml")
	case ScopeClient:
		if s.ClientDir == "" || q.Organization == "" {
			return nil, nil
		}
		return loadFile(filepath.Join(s.ClientDir, q.Organization+".yaml"))
	default:
		return nil, fmt.Errorf("unknown scope %q", q.Scope)
	}
}

func loadEmbedded(path string) (*Overrides, error) {
	data, err := configFS.ReadFile(path)
	if err != nil {
		// Verticals and markets without a tuned layer are normal.
		return nil, nil
	}
	return parseOverrides(data, path)
}

func loadFile(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return parseOverrides(data, path)
}

func parseOverrides(data []byte, path string) (*Overrides, error) {
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &o, nil
}

// StaticStore serves layers from memory. Used by tests and by callers
// that resolve configuration out of band.
type StaticStore struct {
	Vertical map[string]*Overrides
	Market   map[string]*Overrides
	Client   map[string]*Overrides
	// Err, when set, fails every lookup for scopes listed in FailScopes.
	Err        error
	FailScopes map[Scope]bool
}

// Layer implements Store.
func (s *StaticStore) Layer(_ context.Context, q Query) (*Overrides, error) {
	if s.Err != nil && s.FailScopes[q.Scope] {
		return nil, s.Err
	}
	switch q.Scope {
	case ScopeVertical:
		return s.Vertical[q.Vertical], nil
	case ScopeMarket:
		return s.Market[q.Market], nil
	case ScopeClient:
		return s.Client[q.Organization], nil
	}
	return nil, nil
}
