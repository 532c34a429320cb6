package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mriseq/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantDir := filepath.Join(tempHome, ".config", "mriseq")
	if cfg.Reference.Dir != wantDir {
		t.Fatalf("unexpected reference dir: got %q want %q", cfg.Reference.Dir, wantDir)
	}
	if cfg.ReferencePath() != filepath.Join(wantDir, "liste_sequence_eurad.csv") {
		t.Fatalf("unexpected reference path: %q", cfg.ReferencePath())
	}
	if cfg.Snapshot.Path != filepath.Join(tempHome, ".local", "share", "mriseq", "reference.db") {
		t.Fatalf("unexpected snapshot path: %q", cfg.Snapshot.Path)
	}
	if cfg.DelimiterRune() != ',' {
		t.Fatalf("unexpected delimiter: %q", cfg.DelimiterRune())
	}
	if cfg.Reference.Source != config.SourceCSV {
		t.Fatalf("unexpected source: %q", cfg.Reference.Source)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadReferenceDirFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	refDir := t.TempDir()
	t.Setenv("MRISEQ_REFERENCE_DIR", refDir)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Reference.Dir != refDir {
		t.Fatalf("expected reference dir from env, got %q", cfg.Reference.Dir)
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "mriseq.toml")

	var cfg config.Config
	cfg.Reference.Dir = filepath.Join(dir, "ref")
	cfg.Reference.FileName = "sequences.csv"
	cfg.Reference.Delimiter = "tab"
	cfg.Reference.Charset = "Latin1"
	cfg.Reference.Source = "SNAPSHOT"
	cfg.Snapshot.Path = filepath.Join(dir, "snap", "ref.db")
	cfg.Logging.Format = "JSON"
	cfg.Logging.Level = "debug"

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %s to be used, got %q exists=%v", path, resolved, exists)
	}
	if loaded.ReferencePath() != filepath.Join(dir, "ref", "sequences.csv") {
		t.Fatalf("unexpected reference path: %q", loaded.ReferencePath())
	}
	if loaded.DelimiterRune() != '\t' {
		t.Fatalf("expected tab delimiter, got %q", loaded.DelimiterRune())
	}
	if loaded.Reference.Charset != "latin1" {
		t.Fatalf("expected normalized charset, got %q", loaded.Reference.Charset)
	}
	if loaded.Reference.Source != config.SourceSnapshot {
		t.Fatalf("expected snapshot source, got %q", loaded.Reference.Source)
	}
	if loaded.Logging.Format != "json" {
		t.Fatalf("expected normalized log format, got %q", loaded.Logging.Format)
	}

	if err := loaded.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if info, err := os.Stat(filepath.Join(dir, "snap")); err != nil || !info.IsDir() {
		t.Fatalf("expected snapshot directory to exist: %v", err)
	}
}

func TestLoadMissingExplicitConfig(t *testing.T) {
	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[reference]\ndirectory = \"/tmp\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected parse error for unknown field")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"multi character delimiter", func(c *config.Config) { c.Reference.Delimiter = ";;" }, "reference.delimiter"},
		{"quote delimiter", func(c *config.Config) { c.Reference.Delimiter = `"` }, "reference.delimiter"},
		{"unknown charset", func(c *config.Config) { c.Reference.Charset = "ebcdic" }, "reference.charset"},
		{"unknown source", func(c *config.Config) { c.Reference.Source = "xlsx" }, "reference.source"},
		{"unknown log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"unknown log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"empty reference dir", func(c *config.Config) { c.Reference.Dir = "" }, "reference.dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}

func TestCreateSampleLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Reference.FileName != "liste_sequence_eurad.csv" {
		t.Fatalf("unexpected sample file name: %q", cfg.Reference.FileName)
	}
}
