package main

import (
	"os"
	"path/filepath"
	"testing"

	"mriseq/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithReference(testsupport.SampleRows()...))

	out, _, err := runCLI(t, env, "", "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "[OK]")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, nil, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, nil, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected init to refuse overwriting an existing file")
	}
	if _, _, err := runCLI(t, nil, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateReportsMissingReference(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "config", "validate")
	if err == nil {
		t.Fatal("expected readiness failure without a reference table")
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Reference table:")
	requireContains(t, out, "[ERROR]")
}
