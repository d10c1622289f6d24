package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"dcimport/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The source directory is not created unless WithSourceDir or WithSourceFiles
// is supplied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Transfer.MountPoint = filepath.Join(base, "mount")
	cfgVal.Transfer.SourceSubdir = filepath.Join("DCIM", "100CANON")
	cfgVal.Transfer.DestinationBase = filepath.Join(base, "photos")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

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

// WithSourceDir creates the source directory under the mount point.
func WithSourceDir() ConfigOption {
	return func(b *configBuilder) {
		if err := os.MkdirAll(b.cfg.SourceDir(), 0o755); err != nil {
			b.t.Fatalf("mkdir source dir: %v", err)
		}
	}
}

// WithSourceFiles creates the source directory and one small file per name.
func WithSourceFiles(names ...string) ConfigOption {
	return func(b *configBuilder) {
		WithSourceDir()(b)
		for _, name := range names {
			WriteFile(b.t, filepath.Join(b.cfg.SourceDir(), name), int64(len(name)))
		}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Transfer.DestinationBase)
}
