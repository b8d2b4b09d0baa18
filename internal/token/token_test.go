package token

import (
	"reflect"
	"testing"
)

func TestTokenizeSeparators(t *testing.T) {
	r := Tokenize("Pimsleur | Language Learning")

	wantAll := []string{"pimsleur", "language", "learning"}
	if !reflect.DeepEqual(r.All, wantAll) {
		t.Errorf("All = %v, want %v", r.All, wantAll)
	}
	if !reflect.DeepEqual(r.Keywords, wantAll) {
		t.Errorf("Keywords = %v, want %v", r.Keywords, wantAll)
	}
	if r.NoiseRatio != 0 {
		t.Errorf("NoiseRatio = %v, want 0", r.NoiseRatio)
	}
}

func TestTokenizeNoisyTitle(t *testing.T) {
	r := Tokenize("The Best New Top Language App")

	if r.NoiseRatio <= 0.5 {
		t.Errorf("NoiseRatio = %v, want > 0.5", r.NoiseRatio)
	}
	if !reflect.DeepEqual(r.Keywords, []string{"language"}) {
		t.Errorf("Keywords = %v, want [language]", r.Keywords)
	}
}

func TestTokenizeApostrophes(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"don't", []string{"dont"}},
		{"Kids’ Games", []string{"kids", "games"}},
		{"l'app", []string{"lapp"}},
	}

	for _, tt := range tests {
		r := Tokenize(tt.in)
		if !reflect.DeepEqual(r.All, tt.want) {
			t.Errorf("Tokenize(%q).All = %v, want %v", tt.in, r.All, tt.want)
		}
	}
}

func TestTokenizeDashesAndPunctuation(t *testing.T) {
	r := Tokenize("FitTrack — Workout, Gym & Run!")

	want := []string{"fittrack", "workout", "gym", "run"}
	if !reflect.DeepEqual(r.All, want) {
		t.Errorf("All = %v, want %v", r.All, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n", "| — &"} {
		r := Tokenize(in)
		if !r.Empty() {
			t.Errorf("Tokenize(%q) not empty: %v", in, r.All)
		}
		if r.NoiseRatio != 0 {
			t.Errorf("Tokenize(%q).NoiseRatio = %v, want 0", in, r.NoiseRatio)
		}
	}
}

func TestTokenizeShortTokensIgnored(t *testing.T) {
	r := Tokenize("Go To VPN Fast Proxy")

	// "go" and "to" are too short or stopwords, the rest are keywords.
	wantKeywords := []string{"vpn", "fast", "proxy"}
	if !reflect.DeepEqual(r.Keywords, wantKeywords) {
		t.Errorf("Keywords = %v, want %v", r.Keywords, wantKeywords)
	}
	if len(r.Ignored) != 2 {
		t.Errorf("Ignored = %v, want 2 entries", r.Ignored)
	}
}

func TestTokenizeUnicodeNormalization(t *testing.T) {
	// Full-width letters should fold to ASCII before splitting.
	r := Tokenize("ＬＥＡＲＮ Spanish")
	want := []string{"learn", "spanish"}
	if !reflect.DeepEqual(r.All, want) {
		t.Errorf("All = %v, want %v", r.All, want)
	}
}

func TestIsStopword(t *testing.T) {
	for _, w := range []string{"the", "best", "top", "app", "iphone", "android"} {
		if !IsStopword(w) {
			t.Errorf("IsStopword(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"language", "pimsleur", "workout"} {
		if IsStopword(w) {
			t.Errorf("IsStopword(%q) = true, want false", w)
		}
	}
}
