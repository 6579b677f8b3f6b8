package testsupport

import (
	"path/filepath"
	"testing"

	"pemm/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t        testing.TB
	baseDir  string
	cfg      *config.Config
	handlist string
	incipits string
}

// NewConfig produces a config seeded with unique temp paths per test. The
// handlist and incipit fixtures are written to disk; options may replace
// them before they are written.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Handlist = filepath.Join(base, "data", "macomber.txt")
	cfgVal.Paths.Incipits = filepath.Join(base, "data", "incipits.csv")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Database.Path = filepath.Join(base, "state", "pemm.db")

	builder := &configBuilder{
		t:        t,
		baseDir:  base,
		cfg:      &cfgVal,
		handlist: SampleHandlist,
		incipits: SampleIncipits,
	}

	for _, opt := range opts {
		opt(builder)
	}

	WriteFile(t, cfgVal.Paths.Handlist, builder.handlist)
	WriteFile(t, cfgVal.Paths.Incipits, builder.incipits)
	return builder.cfg
}

// WithHandlist replaces the handlist fixture content.
func WithHandlist(content string) ConfigOption {
	return func(b *configBuilder) {
		b.handlist = content
	}
}

// WithIncipits replaces the incipit CSV fixture content.
func WithIncipits(content string) ConfigOption {
	return func(b *configBuilder) {
		b.incipits = content
	}
}

// WithDatabase enables run snapshots.
func WithDatabase() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Database.Enabled = true
	}
}

// WithDisplayName adds a collection display-name override.
func WithDisplayName(abbr, name string) ConfigOption {
	return func(b *configBuilder) {
		if b.cfg.Collections.DisplayNames == nil {
			b.cfg.Collections.DisplayNames = map[string]string{}
		}
		b.cfg.Collections.DisplayNames[abbr] = name
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
