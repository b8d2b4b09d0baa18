package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/kpi"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
)

// execute runs the root command with args and returns combined output.
// Command state is global, so every run resets it afterwards.
func execute(t *testing.T, args ...string) string {
	t.Helper()

	buf := new(bytes.Buffer)
	RootCmd.SetOut(buf)
	RootCmd.SetErr(buf)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
		globalUI = nil
		format = "terminal"
		dbPath = ""
		cfgVertical = ""
		cfgMarket = ""
		cfgClient = ""
	})

	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return buf.String()
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	if !strings.Contains(out, "asolint") {
		t.Errorf("version output missing binary name: %q", out)
	}
}

func TestKPIsCommandJSON(t *testing.T) {
	out := execute(t, "kpis", "--format", "json")

	var payload struct {
		Version     int              `json:"version"`
		Families    []kpi.Family     `json:"families"`
		Definitions []kpi.Definition `json:"definitions"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if payload.Version != kpi.CurrentVersion {
		t.Errorf("version = %d, want %d", payload.Version, kpi.CurrentVersion)
	}
	if len(payload.Families) != 6 {
		t.Errorf("families = %d, want 6", len(payload.Families))
	}
	if len(payload.Definitions) == 0 {
		t.Fatal("no definitions")
	}
	if payload.Definitions[0].ID != "title_char_usage" {
		t.Errorf("first definition = %q, want title_char_usage", payload.Definitions[0].ID)
	}
}

func TestConfigCommandJSON(t *testing.T) {
	out := execute(t, "config", "--vertical", "education", "--market", "us", "--format", "json")

	var cfg resolvedConfig
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if cfg.Vertical != "education" {
		t.Errorf("vertical = %q, want education", cfg.Vertical)
	}
	if cfg.Market != "us" {
		t.Errorf("market = %q, want us", cfg.Market)
	}
	if len(cfg.TokenRelevance) == 0 {
		t.Error("expected vertical token relevance overrides")
	}
	sawVertical := false
	for _, scope := range cfg.Ancestry {
		if scope == ruleset.ScopeVertical {
			sawVertical = true
			break
		}
	}
	if !sawVertical {
		t.Error("expected at least one value decided by the vertical layer")
	}
}

func TestHistoryCommandEmptyStore(t *testing.T) {
	db := filepath.Join(t.TempDir(), "snapshots.db")
	out := execute(t, "history", "--db", db, "com.example.none")

	if !strings.Contains(out, "no snapshots for com.example.none") {
		t.Errorf("unexpected output: %q", out)
	}
}
