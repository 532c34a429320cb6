package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mriseq/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The reference directory is created empty; pair it with WithReference to
// populate it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Reference.Dir = filepath.Join(base, "reference")
	cfgVal.Snapshot.Path = filepath.Join(base, "data", "reference.db")
	cfgVal.Logging.Level = "error"
	if err := os.MkdirAll(cfgVal.Reference.Dir, 0o755); err != nil {
		t.Fatalf("mkdir reference dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithReference writes rows as the reference CSV of the test config.
func WithReference(rows ...ReferenceRow) ConfigOption {
	return func(b *configBuilder) {
		WriteReference(b.t, b.cfg.Reference.Dir, rows...)
	}
}

// WithSnapshotSource switches the config to read the SQLite snapshot.
func WithSnapshotSource() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Reference.Source = config.SourceSnapshot
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Reference.Dir)
}

// WriteConfigFile serializes cfg as TOML inside its base directory and
// returns the file path.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
