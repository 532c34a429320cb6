package main

import (
	"encoding/json"
	"errors"
	"testing"

	"mriseq/internal/sequence"
	"mriseq/internal/testsupport"
)

func TestLookupShowsFirstRecord(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithReference(testsupport.SampleRows()...))

	out, _, err := runCLI(t, env, "", "lookup", "03 AX T1 SE_series2")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, "== AX T1 SE ==")
	requireContains(t, out, "Weighting:")
	requireContains(t, out, "T1")
}

func TestLookupJSON(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithReference(testsupport.SampleRows()...))

	out, _, err := runCLI(t, env, "", "lookup", "--json", "ADC MAP")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	var rec sequence.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if rec.Name != "ADC MAP" || rec.Weighting != "DWI" || rec.DiffusionB != "ADC" {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestLookupNotFoundSuggestsKeys(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithReference(testsupport.SampleRows()...))

	out, _, err := runCLI(t, env, "", "lookup", "AX T1")
	if !errors.Is(err, sequence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	requireContains(t, out, "Closest keys")
	requireContains(t, out, "AX T1 SE")
}

func TestNameCommand(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithReference(testsupport.SampleRows()...))

	tests := []struct {
		label string
		want  string
	}{
		{"ADC MAP", "ADC\n"},
		{"DIFFUSION", "DWI\n"},
		{"AX T1 GADO", "T1 Inj\n"},
		{"WATER 3D T1 GADO", "T1 Inj Sat\n"},
	}
	for _, tt := range tests {
		out, _, err := runCLI(t, env, "", "name", tt.label)
		if err != nil {
			t.Fatalf("name %q: %v", tt.label, err)
		}
		if out != tt.want {
			t.Errorf("name %q = %q, want %q", tt.label, out, tt.want)
		}
	}

	if _, _, err := runCLI(t, env, "", "name", "UNKNOWN"); !errors.Is(err, sequence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
