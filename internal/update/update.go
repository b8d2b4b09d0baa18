// Package update checks GitHub releases for a newer build, with a
// local cache so the check costs one request per day at most.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/version"
)

const (
	defaultReleasesURL = "https://api.github.com/repos/SixpoundertheOriginal/yodel-aso-insight-development-sub000/releases/latest"
	cacheTTL           = 24 * time.Hour
	requestTimeout     = 5 * time.Second
)

// releasesURL is a var so tests can point the check at a local server.
var releasesURL = defaultReleasesURL

// Info describes the latest known release relative to this build.
type Info struct {
	CurrentVersion  string    `json:"current_version"`
	LatestVersion   string    `json:"latest_version"`
	UpdateAvailable bool      `json:"update_available"`
	ReleaseURL      string    `json:"release_url,omitempty"`
	CheckedAt       time.Time `json:"checked_at"`
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check queries the releases API directly, bypassing the cache.
func Check(ctx context.Context) (*Info, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releasesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release check returned %s", resp.Status)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decoding release response: %w", err)
	}
	if release.TagName == "" {
		return nil, fmt.Errorf("release response missing tag name")
	}

	current := version.Short()
	info := &Info{
		CurrentVersion:  current,
		LatestVersion:   release.TagName,
		UpdateAvailable: compareVersions(release.TagName, current) > 0,
		ReleaseURL:      release.HTMLURL,
		CheckedAt:       time.Now().UTC(),
	}
	return info, nil
}

// CheckWithCache returns the cached result when it is fresh, otherwise
// performs a live check and refreshes the cache. Cache write failures
// are swallowed, the check still succeeds.
func CheckWithCache(ctx context.Context) (*Info, error) {
	if cached, ok := readCache(); ok {
		return cached, nil
	}

	info, err := Check(ctx)
	if err != nil {
		return nil, err
	}
	writeCache(info)
	return info, nil
}

func cachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".asolint", "update-check.json"), nil
}

func readCache() (*Info, bool) {
	path, err := cachePath()
	if err != nil {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, false
	}
	if time.Since(info.CheckedAt) > cacheTTL {
		return nil, false
	}
	// A rebuild invalidates the cached comparison.
	if info.CurrentVersion != version.Short() {
		return nil, false
	}
	return &info, true
}

func writeCache(info *Info) {
	path, err := cachePath()
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	data, err := json.Marshal(info)
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}

// compareVersions orders two semver-ish strings: negative when a < b,
// zero when equal, positive when a > b. A "dev" build counts as newer
// than any release so development builds never nag. Leading "v" and
// pre-release suffixes are ignored.
func compareVersions(a, b string) int {
	a = normalizeVersion(a)
	b = normalizeVersion(b)

	if a == "dev" && b == "dev" {
		return 0
	}
	if a == "dev" {
		return 1
	}
	if b == "dev" {
		return -1
	}

	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		av, bv := 0, 0
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

func normalizeVersion(v string) string {
	v = strings.TrimPrefix(v, "v")
	if idx := strings.IndexAny(v, "-+"); idx >= 0 {
		v = v[:idx]
	}
	return v
}
