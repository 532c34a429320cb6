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
		{"a nil", nil, NewFingerprint("AX T1 SE"), 0},
		{"b nil", NewFingerprint("AX T1 SE"), nil, 0},
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
	a := NewFingerprint("WATER 3D T1 GADO")
	b := NewFingerprint("water 3d t1 gado")

	got := CosineSimilarity(a, b)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("CosineSimilarity(identical) = %v, want 1.0", got)
	}
}

func TestCosineSimilarityDisjoint(t *testing.T) {
	a := NewFingerprint("AX T2 FLAIR")
	b := NewFingerprint("SAG DWI ADC")

	if got := CosineSimilarity(a, b); got != 0 {
		t.Errorf("CosineSimilarity(disjoint) = %v, want 0", got)
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	a := NewFingerprint("AX T1 SE GADO")
	b := NewFingerprint("AX T1 FSE")

	if ab, ba := CosineSimilarity(a, b), CosineSimilarity(b, a); ab != ba {
		t.Errorf("CosineSimilarity not symmetric: (%v, %v)", ab, ba)
	}
}

func TestNewFingerprintSingleCharacters(t *testing.T) {
	if fp := NewFingerprint("a b / c"); fp != nil {
		t.Error("expected nil for text with only single-character tokens")
	}
}

func TestNewFingerprintNormCalculation(t *testing.T) {
	// t1:2, ax:1 -> sqrt(5)
	fp := NewFingerprint("T1 T1 AX")
	if fp == nil {
		t.Fatal("expected fingerprint")
	}
	if math.Abs(fp.norm-math.Sqrt(5)) > 0.0001 {
		t.Errorf("norm = %v, want %v", fp.norm, math.Sqrt(5))
	}
	if fp.TokenCount() != 2 {
		t.Errorf("TokenCount() = %d, want 2", fp.TokenCount())
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"protocol name", "AX T1 SE", []string{"ax", "t1", "se"}},
		{"punctuation", "3D-T1/GADO", []string{"3d", "t1", "gado"}},
		{"single characters dropped", "b 1000 x", []string{"1000"}},
		{"accents folded", "Séquence Pondérée", []string{"sequence", "ponderee"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestClosest(t *testing.T) {
	candidates := []string{"AX T1 SE", "AX T2 FLAIR", "SAG T1 SE", "DWI ADC"}

	got := Closest("AX T1 FSE", candidates, 2, 0.1)
	if len(got) != 2 {
		t.Fatalf("Closest() returned %d matches, want 2: %+v", len(got), got)
	}
	if got[0].Text != "AX T1 SE" {
		t.Errorf("best match = %q, want %q", got[0].Text, "AX T1 SE")
	}
	if got[0].Score < got[1].Score {
		t.Errorf("matches not sorted: %+v", got)
	}
}

func TestClosestNoOverlap(t *testing.T) {
	if got := Closest("PERFUSION", []string{"AX T1 SE"}, 3, 0); len(got) != 0 {
		t.Errorf("Closest() = %+v, want none", got)
	}
	if got := Closest("AX T1", []string{"AX T1"}, 0, 0); got != nil {
		t.Errorf("Closest() with zero limit = %+v, want nil", got)
	}
}

func TestFoldAccents(t *testing.T) {
	tests := map[string]string{
		"Pondération": "ponderation",
		"T1 GADO":     "t1 gado",
		"Élodie":      "elodie",
		"":            "",
	}
	for input, want := range tests {
		if got := FoldAccents(input); got != want {
			t.Errorf("FoldAccents(%q) = %q, want %q", input, got, want)
		}
	}
}
