package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"mriseq/internal/sequence"
	"mriseq/internal/testsupport"
)

func TestClassifyArgsRendersTable(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithReference(testsupport.SampleRows()...))

	out, _, err := runCLI(t, env, "", "classify", "12 AX T1 SE_bis", "ADC MAP", "UNKNOWN")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	requireContains(t, out, "AX T1 SE")
	requireContains(t, out, "ADC")
	requireContains(t, out, "not found")
}

func TestClassifyStdinJSON(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithReference(testsupport.SampleRows()...))

	stdin := "AX T1 SE\n\nWATER 3D T1 GADO\r\nperfusion dyn\n"
	out, _, err := runCLI(t, env, stdin, "classify", "--json")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}

	var results []sequence.Classification
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	tests := []struct {
		label string
		want  sequence.Classification
	}{
		{"AX T1 SE", sequence.Classification{Label: "AX T1 SE", Key: "AX T1 SE", Found: true, Valid: true, StandardName: "T1"}},
		{"WATER 3D T1 GADO", sequence.Classification{Label: "WATER 3D T1 GADO", Key: "WATER 3D T1 GADO", Found: true, Valid: true, StandardName: "T1 Inj Sat"}},
		{"perfusion dyn", sequence.Classification{Label: "perfusion dyn", Key: "perfusion dyn", Perfusion: true}},
	}
	for i, tt := range tests {
		if results[i] != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.label, results[i], tt.want)
		}
	}
}

func TestClassifyWithoutLabelsFails(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithReference(testsupport.SampleRows()...))

	if _, _, err := runCLI(t, env, "\n  \n", "classify"); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestClassifyMissingReference(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "", "classify", "AX T1 SE")
	if !errors.Is(err, sequence.ErrSource) {
		t.Fatalf("expected ErrSource, got %v", err)
	}
}

func TestClassifyReferenceDirFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := t.TempDir()
	testsupport.WriteReference(t, dir, testsupport.SampleRows()...)

	out, _, err := runCLI(t, env, "", "--reference-dir", dir, "classify", "--json", "DIFFUSION")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	requireContains(t, out, `"diffusion": true`)
}

func TestInvalidLogLevelRejected(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithReference(testsupport.SampleRows()...))

	if _, _, err := runCLI(t, env, "", "--log-level", "chatty", "classify", "AX T1 SE"); err == nil {
		t.Fatal("expected invalid log level to fail")
	}
}

func TestDebugLogsGoToStderr(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithReference(testsupport.SampleRows()...))

	out, errOut, err := runCLI(t, env, "", "--log-level", "debug", "classify", "--json", "WATER SAT")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	requireContains(t, errOut, "reference table loaded")
	requireContains(t, errOut, "correlation_id")
	if strings.Contains(out, "reference table loaded") {
		t.Fatalf("log output leaked to stdout: %s", out)
	}
}

func TestReadLabels(t *testing.T) {
	labels, err := readLabels(strings.NewReader(" AX T1\r\n\n\t\nSAG T2\n"))
	if err != nil {
		t.Fatalf("readLabels: %v", err)
	}
	want := []string{" AX T1", "SAG T2"}
	if len(labels) != len(want) {
		t.Fatalf("got %q, want %q", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("got %q, want %q", labels, want)
		}
	}
}
