package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tag_name": "v9.9.9", "html_url": "https://example.com/releases/v9.9.9"}`))
	}))
	defer srv.Close()

	old := releasesURL
	releasesURL = srv.URL
	defer func() { releasesURL = old }()

	info, err := Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if info.LatestVersion != "v9.9.9" {
		t.Errorf("LatestVersion = %q, want v9.9.9", info.LatestVersion)
	}
	if info.CurrentVersion == "" {
		t.Error("CurrentVersion should not be empty")
	}
	// The default build version is "dev", which outranks any release.
	if info.UpdateAvailable {
		t.Error("dev build should not report an available update")
	}
}

func TestCheckRejectsBadResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, ""},
		{"missing tag", http.StatusOK, `{"html_url": "x"}`},
		{"malformed json", http.StatusOK, `{"tag_name": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			old := releasesURL
			releasesURL = srv.URL
			defer func() { releasesURL = old }()

			if _, err := Check(context.Background()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.0.1", "1.0.0", 1},
		{"1.1.0", "1.0.9", 1},
		{"2.0.0", "1.9.9", 1},
		{"v1.0.0", "1.0.0", 0},
		{"1.0.0", "v1.0.0", 0},
		{"dev", "1.0.0", 1},
		{"1.0.0", "dev", -1},
		{"0.0.1", "0.1.1", -1},
		{"1.0.0-beta", "1.0.0", 0}, // Pre-release suffix stripped
	}

	for _, tt := range tests {
		got := compareVersions(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("compareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
