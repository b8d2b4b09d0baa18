package listing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCharLimit(t *testing.T) {
	tests := []struct {
		platform Platform
		element  Element
		want     int
	}{
		{PlatformAppStore, ElementTitle, 30},
		{PlatformAppStore, ElementSubtitle, 30},
		{PlatformAppStore, ElementDescription, 4000},
		{PlatformPlayStore, ElementTitle, 30},
		{PlatformPlayStore, ElementSubtitle, 80},
		{PlatformPlayStore, ElementDescription, 4000},
	}

	for _, tt := range tests {
		if got := CharLimit(tt.platform, tt.element); got != tt.want {
			t.Errorf("CharLimit(%s, %s) = %d, want %d", tt.platform, tt.element, got, tt.want)
		}
	}
}

func TestNormalizeDefaults(t *testing.T) {
	l := &Listing{AppID: " app-1 ", Title: "Pimsleur"}
	l.Normalize()

	if l.AppID != "app-1" {
		t.Errorf("AppID = %q, want trimmed", l.AppID)
	}
	if l.Platform != PlatformAppStore {
		t.Errorf("Platform = %q, want default app_store", l.Platform)
	}
	if l.Locale != "en-US" {
		t.Errorf("Locale = %q, want default en-US", l.Locale)
	}
	if l.Name != "Pimsleur" {
		t.Errorf("Name = %q, want title fallback", l.Name)
	}
}

func TestValidate(t *testing.T) {
	l := &Listing{Title: "No ID"}
	l.Normalize()
	if err := l.Validate(); err == nil {
		t.Error("Validate() = nil, want error for missing app_id")
	}

	l = &Listing{AppID: "a", Platform: "windows_phone"}
	if err := l.Validate(); err == nil {
		t.Error("Validate() = nil, want error for unknown platform")
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeTemp(t, "listing.json", `{
		"app_id": "com.pimsleur.app",
		"name": "Pimsleur",
		"title": "Pimsleur | Language Learning",
		"subtitle": "Learn Spanish French German",
		"description": "Learn a new language.",
		"category": "Education",
		"locale": "en-US"
	}`)

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if l.Title != "Pimsleur | Language Learning" {
		t.Errorf("Title = %q", l.Title)
	}
	if l.Platform != PlatformAppStore {
		t.Errorf("Platform = %q, want default", l.Platform)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "listing.yaml", `
app_id: com.example.fit
title: FitTrack Workout Planner
subtitle: Gym Log & Exercise Tracker
platform: play_store
`)

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if l.Platform != PlatformPlayStore {
		t.Errorf("Platform = %q, want play_store", l.Platform)
	}
	if l.Subtitle != "Gym Log & Exercise Tracker" {
		t.Errorf("Subtitle = %q", l.Subtitle)
	}
}

func TestLoadMarkdown(t *testing.T) {
	path := writeTemp(t, "listing.md", `---
app_id: com.pimsleur.app
title: Pimsleur | Language Learning
subtitle: Spanish French German Tutor
category: Education
---
# Learn languages the proven way

Start speaking **Spanish** today with audio lessons.

- 51 languages
- Offline mode
`)

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if l.Title != "Pimsleur | Language Learning" {
		t.Errorf("Title = %q", l.Title)
	}

	desc := l.Description
	for _, marker := range []string{"#", "**", "- 51"} {
		if strings.Contains(desc, marker) {
			t.Errorf("Description still contains markdown marker %q: %q", marker, desc)
		}
	}
	for _, want := range []string{"Learn languages", "Spanish", "51 languages", "Offline mode"} {
		if !strings.Contains(desc, want) {
			t.Errorf("Description missing %q: %q", want, desc)
		}
	}
}

func TestLoadMarkdownWithoutFrontmatter(t *testing.T) {
	path := writeTemp(t, "bare.md", "just a body, no frontmatter\n")
	if _, err := Load(path); err == nil {
		t.Error("Load() = nil error, want frontmatter error")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "listing.txt", "title")
	if _, err := Load(path); err == nil {
		t.Error("Load() = nil error, want unsupported format error")
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
