// Package convert runs one handlist conversion: load the lookup inputs,
// scan the handlist, write the CSV tables and optionally snapshot the run.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pemm/internal/catalog"
	"pemm/internal/collection"
	"pemm/internal/config"
	"pemm/internal/export"
	"pemm/internal/handlist"
	"pemm/internal/incipit"
	"pemm/internal/logging"
	"pemm/internal/schema"
	"pemm/internal/store"
)

// Options selects the inputs and outputs of a run.
type Options struct {
	Handlist  string
	Incipits  string
	Schema    string
	OutputDir string

	// DatabasePath enables run snapshots when non-empty.
	DatabasePath string

	Registry *collection.Registry
	// Now defaults to time.Now and stamps the output file names.
	Now func() time.Time
}

// OptionsFromConfig maps configuration values onto run options.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		Handlist:  cfg.Paths.Handlist,
		Incipits:  cfg.Paths.Incipits,
		Schema:    cfg.Paths.Schema,
		OutputDir: cfg.Paths.OutputDir,
		Registry:  cfg.Registry(),
	}
	if cfg.Database.Enabled {
		opts.DatabasePath = cfg.Database.Path
	}
	return opts
}

// Summary reports the outcome of a run.
type Summary struct {
	RunID    string         `json:"run_id"`
	Counts   catalog.Counts `json:"counts"`
	Paths    export.Paths   `json:"paths"`
	Unparsed []string       `json:"unparsed"`
	Database string         `json:"database,omitempty"`
	Duration time.Duration  `json:"duration_ns"`
}

// Run performs a conversion. Input, schema and write failures abort the run
// before any output replaces existing files; unparsed references are
// reported in the summary. A snapshot failure returns the summary together
// with the error since the CSV files are already in place.
func Run(ctx context.Context, opts Options, logger *slog.Logger) (*Summary, error) {
	if opts.Handlist == "" {
		return nil, fmt.Errorf("handlist path is required")
	}
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if opts.Registry == nil {
		opts.Registry = collection.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	runID := uuid.NewString()
	logger = logging.NewComponentLogger(logger, "convert").With(logging.String(logging.FieldRunID, runID))
	started := opts.Now()

	incipits := incipit.New()
	if opts.Incipits != "" {
		loaded, err := incipit.Load(opts.Incipits)
		if err != nil {
			return nil, err
		}
		incipits = loaded
	}
	logger.Debug("incipits loaded", logging.Int("count", incipits.Len()), logging.String("path", opts.Incipits))

	sheets, err := schema.Load(opts.Schema)
	if err != nil {
		return nil, err
	}
	for _, sheet := range []string{catalog.SheetManuscript, catalog.SheetCanonicalStory, catalog.SheetStoryInstance} {
		if _, err := sheets.Fields(sheet); err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
	}

	cat, err := handlist.New(opts.Registry, incipits, logger).ParseFile(opts.Handlist)
	if err != nil {
		return nil, err
	}

	paths, err := export.NewWriter(opts.OutputDir, sheets, started).WriteAll(cat, opts.Registry.DisplayName)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:    runID,
		Counts:   cat.Counts(),
		Paths:    paths,
		Unparsed: append([]string(nil), cat.Unparsed...),
	}

	if opts.DatabasePath != "" {
		if err := snapshot(ctx, opts, runID, started, cat); err != nil {
			summary.Duration = opts.Now().Sub(started)
			return summary, err
		}
		summary.Database = opts.DatabasePath
	}

	summary.Duration = opts.Now().Sub(started)
	logger.Info("conversion complete",
		logging.Int("stories", summary.Counts.Stories),
		logging.Int("manuscripts", summary.Counts.Manuscripts),
		logging.Int("instances", summary.Counts.Instances),
		logging.Int("unparsed", summary.Counts.Unparsed),
		logging.String("output_dir", opts.OutputDir),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func snapshot(ctx context.Context, opts Options, runID string, started time.Time, cat *catalog.Catalog) error {
	db, err := store.Open(ctx, opts.DatabasePath)
	if err != nil {
		return fmt.Errorf("open run database: %w", err)
	}
	defer func() { _ = db.Close() }()

	run := store.Run{
		ID:         runID,
		StartedAt:  started,
		FinishedAt: opts.Now(),
		Handlist:   opts.Handlist,
		Incipits:   opts.Incipits,
		OutputDir:  opts.OutputDir,
	}
	if err := db.SaveRun(ctx, run, cat, opts.Registry.DisplayName); err != nil {
		return fmt.Errorf("snapshot run: %w", err)
	}
	return nil
}
