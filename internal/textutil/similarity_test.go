package textutil

import (
	"math"
	"testing"
)

func TestCosineSimilarityNil(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
		want float64
	}{
		{"both nil", nil, nil, 0},
		{"a nil", nil, NewFingerprint("hello world"), 0},
		{"b nil", NewFingerprint("hello world"), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityIdentical(t *testing.T) {
	text := "the viewpoints book a practical guide"
	a := NewFingerprint(text)
	b := NewFingerprint(text)

	got := CosineSimilarity(a, b)
	if got != 1.0 {
		t.Errorf("CosineSimilarity(identical) = %v, want 1.0", got)
	}
}

func TestCosineSimilarityDisjoint(t *testing.T) {
	a := NewFingerprint("directing actors")
	b := NewFingerprint("stage lighting design")

	got := CosineSimilarity(a, b)
	if got != 0 {
		t.Errorf("CosineSimilarity(disjoint) = %v, want 0", got)
	}
}

func TestCosineSimilarityPartialOverlap(t *testing.T) {
	a := NewFingerprint("the empty space theatre")
	b := NewFingerprint("the empty stage")

	got := CosineSimilarity(a, b)
	if got <= 0 || got >= 1 {
		t.Errorf("CosineSimilarity(partial) = %v, want between 0 and 1", got)
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	a := NewFingerprint("teatro de la memoria")
	b := NewFingerprint("memoria del teatro")

	ab := CosineSimilarity(a, b)
	ba := CosineSimilarity(b, a)

	if ab != ba {
		t.Errorf("CosineSimilarity not symmetric: (%v, %v)", ab, ba)
	}
}

func TestNewFingerprintEmpty(t *testing.T) {
	if fp := NewFingerprint(""); fp != nil {
		t.Error("expected nil for empty text")
	}
	if fp := NewFingerprint("a b c"); fp != nil {
		t.Error("expected nil for text with only single-character tokens")
	}
}

func TestNewFingerprintNormCalculation(t *testing.T) {
	// "reino reino sombras" -> reino:2, sombras:1
	// norm = sqrt(2^2 + 1^2) = sqrt(5)
	fp := NewFingerprint("reino reino sombras")
	if fp == nil {
		t.Fatal("expected fingerprint")
	}

	expectedNorm := math.Sqrt(5)
	if math.Abs(fp.norm-expectedNorm) > 0.0001 {
		t.Errorf("norm = %v, want %v", fp.norm, expectedNorm)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple words",
			input: "El Reino",
			want:  []string{"el", "reino"},
		},
		{
			name:  "filters single characters",
			input: "a la deriva",
			want:  []string{"la", "deriva"},
		},
		{
			name:  "handles punctuation",
			input: "Hamlet: Prince of Denmark!",
			want:  []string{"hamlet", "prince", "of", "denmark"},
		},
		{
			name:  "keeps accented letters",
			input: "dirección escénica",
			want:  []string{"dirección", "escénica"},
		},
		{
			name:  "empty string",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize() = %v (len %d), want %v (len %d)",
					got, len(got), tt.want, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFingerprintTokenCount(t *testing.T) {
	if got := (*Fingerprint)(nil).TokenCount(); got != 0 {
		t.Errorf("TokenCount(nil) = %d, want 0", got)
	}
	if got := NewFingerprint("reino reino sombras").TokenCount(); got != 2 {
		t.Errorf("TokenCount() = %d, want 2", got)
	}
}

func TestLevenshteinRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "reino", "reino", 1},
		{"both empty", "", "", 1},
		{"one empty", "reino", "", 0},
		{"single edit", "reino", "reina", 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LevenshteinRatio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("LevenshteinRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLevenshteinRatioSymmetric(t *testing.T) {
	ab := LevenshteinRatio("kingdom", "reino")
	ba := LevenshteinRatio("reino", "kingdom")
	if ab != ba {
		t.Errorf("LevenshteinRatio not symmetric: (%v, %v)", ab, ba)
	}
}
