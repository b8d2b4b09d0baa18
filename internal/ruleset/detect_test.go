package ruleset

import "testing"

func TestDetectVertical(t *testing.T) {
	tests := []struct {
		name     string
		category string
		texts    []string
		want     string
	}{
		{
			name:     "education from category and title",
			category: "Education",
			texts:    []string{"Pimsleur: Learn Languages", "Speak Spanish, French & more"},
			want:     "education",
		},
		{
			name:     "fitness from text alone",
			category: "",
			texts:    []string{"Home Workout Planner", "Gym exercise tracker with calories"},
			want:     "fitness",
		},
		{
			name:     "finance",
			category: "Finance",
			texts:    []string{"Budget & expense tracking"},
			want:     "finance",
		},
		{
			name:     "no signal falls back to base",
			category: "",
			texts:    []string{"Zefyr"},
			want:     "base",
		},
		{
			name:     "empty input falls back to base",
			category: "",
			texts:    nil,
			want:     "base",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectVertical(tt.category, tt.texts...); got != tt.want {
				t.Errorf("DetectVertical() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectMarket(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en-US", "us"},
		{"de-DE", "de"},
		{"ja_JP", "jp"},
		{"en", "en"},
		{"PT-BR", "br"},
		{"", "base"},
		{"   ", "base"},
	}

	for _, tt := range tests {
		if got := DetectMarket(tt.locale); got != tt.want {
			t.Errorf("DetectMarket(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}
