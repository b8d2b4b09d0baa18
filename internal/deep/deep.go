// Package deep runs the optional LLM description review. Output is
// advisory: it extends the conversion recommendation list and never
// touches scores.
package deep

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/recommend"
)

// Analyzer reviews a listing's description copy.
type Analyzer interface {
	Analyze(ctx context.Context, l *listing.Listing) ([]recommend.Recommendation, error)
	Name() string
}

// New picks the available backend: the API client when
// ANTHROPIC_API_KEY is set, the local agent CLI otherwise. Nil means
// no backend is configured.
func New() Analyzer {
	if a := newAPIAnalyzer(); a != nil {
		return a
	}
	if a := newAgentAnalyzer(); a != nil {
		return a
	}
	return nil
}

func buildPrompt(l *listing.Listing) string {
	return fmt.Sprintf(`Review this app store listing's description as a conversion copywriter.

App: %s
Title: %s
Subtitle: %s

Description:
%s

Provide a JSON response with this structure:
{
  "recommendations": [
    {
      "id": "short-kebab-slug",
      "severity": "optional|moderate",
      "message": "specific, actionable advice"
    }
  ]
}

Focus on:
1. Opening hook strength and specificity
2. Social proof placement
3. Call-to-action clarity
4. Benefit versus feature balance

Return at most 4 recommendations and ONLY the JSON, no other text.`,
		l.Name, l.Title, l.Subtitle, truncate(l.Description, 6000))
}

// parseAdvice decodes the JSON contract and normalizes the output:
// conversion category always, severity clamped to optional or
// moderate, ids prefixed so they never collide with rule-driven ones.
func parseAdvice(raw string) ([]recommend.Recommendation, error) {
	var payload struct {
		Recommendations []struct {
			ID       string `json:"id"`
			Severity string `json:"severity"`
			Message  string `json:"message"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	var out []recommend.Recommendation
	for i, r := range payload.Recommendations {
		if strings.TrimSpace(r.Message) == "" {
			continue
		}
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = fmt.Sprintf("insight-%d", i+1)
		}
		severity := recommend.Optional
		if r.Severity == "moderate" {
			severity = recommend.Moderate
		}
		out = append(out, recommend.Recommendation{
			ID:       "deep-" + id,
			Category: recommend.Conversion,
			Severity: severity,
			Impact:   severity.Impact(),
			Message:  r.Message,
		})
	}
	return out, nil
}

// extractJSON unwraps a JSON body that may arrive fenced in markdown.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		return s
	}
	if idx := strings.Index(s, "```json"); idx != -1 {
		start := idx + 7
		if end := strings.Index(s[start:], "```"); end != -1 {
			return strings.TrimSpace(s[start : start+end])
		}
	}
	if idx := strings.Index(s, "```"); idx != -1 {
		start := idx + 3
		if end := strings.Index(s[start:], "```"); end != -1 {
			return strings.TrimSpace(s[start : start+end])
		}
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "\n[truncated]"
}
