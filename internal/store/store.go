package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"pemm/internal/catalog"
)

// Store persists run snapshots.
type Store struct {
	db   *sql.DB
	path string
}

// Run describes one conversion.
type Run struct {
	ID         string         `json:"id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Handlist   string         `json:"handlist"`
	Incipits   string         `json:"incipits,omitempty"`
	OutputDir  string         `json:"output_dir"`
	Counts     catalog.Counts `json:"counts"`
}

// Open creates or opens the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun stores run together with every record of cat in one transaction.
// displayName resolves the manuscript collection names.
func (s *Store) SaveRun(ctx context.Context, run Run, cat *catalog.Catalog, displayName func(string) string) error {
	if run.ID == "" {
		return fmt.Errorf("save run: missing id")
	}
	run.Counts = cat.Counts()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, started_at, finished_at, handlist_path, incipits_path, output_dir,
            story_count, manuscript_count, instance_count, unparsed_count
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		run.Handlist,
		nullableString(run.Incipits),
		run.OutputDir,
		run.Counts.Stories,
		run.Counts.Manuscripts,
		run.Counts.Instances,
		run.Counts.Unparsed,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, story := range cat.Stories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO canonical_stories (run_id, position, macomber_id, title, print_version, english_translation)
             VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, i, story.MacomberID,
			nullableString(story.Title), nullableString(story.PrintVersion), nullableString(story.EnglishTranslation),
		); err != nil {
			return fmt.Errorf("insert story %s: %w", story.MacomberID, err)
		}
	}

	for _, m := range cat.Manuscripts.Sorted(displayName) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO manuscripts (run_id, collection, manuscript_id, display_name) VALUES (?, ?, ?, ?)`,
			run.ID, m.Collection, m.ID, m.DisplayName,
		); err != nil {
			return fmt.Errorf("insert manuscript %s %s: %w", m.Collection, m.ID, err)
		}
	}

	for i, inst := range cat.Instances {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO story_instances (
                run_id, position, manuscript, miracle_number, incipit, macomber_incipit,
                confidence_score, canonical_story_id, folio_start, folio_end
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, inst.Manuscript,
			nullableString(inst.MiracleNumber),
			nullableString(inst.Incipit),
			boolToInt(inst.MacomberIncipit),
			nullableString(inst.ConfidenceScore),
			inst.CanonicalStoryID,
			nullableString(inst.FolioStart),
			nullableString(inst.FolioEnd),
		); err != nil {
			return fmt.Errorf("insert story instance %d: %w", i, err)
		}
	}

	for i, ref := range cat.Unparsed {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO unparsed_references (run_id, position, reference) VALUES (?, ?, ?)`,
			run.ID, i, ref,
		); err != nil {
			return fmt.Errorf("insert unparsed reference %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first. A limit of zero or less
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, finished_at, handlist_path, incipits_path, output_dir,
        story_count, manuscript_count, instance_count, unparsed_count
        FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run               Run
			started, finished string
			incipits          sql.NullString
		)
		if err := rows.Scan(
			&run.ID, &started, &finished, &run.Handlist, &incipits, &run.OutputDir,
			&run.Counts.Stories, &run.Counts.Manuscripts, &run.Counts.Instances, &run.Counts.Unparsed,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTime(started)
		run.FinishedAt = parseTime(finished)
		run.Incipits = incipits.String
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Unparsed returns the unparsed references recorded for runID in scan order.
func (s *Store) Unparsed(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT reference FROM unparsed_references WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, fmt.Errorf("query unparsed references: %w", err)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("scan unparsed reference: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// StoryInstances returns the story instances recorded for runID in scan order.
func (s *Store) StoryInstances(ctx context.Context, runID string) ([]catalog.StoryInstance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT manuscript, miracle_number, incipit, macomber_incipit, confidence_score,
            canonical_story_id, folio_start, folio_end
         FROM story_instances WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query story instances: %w", err)
	}
	defer rows.Close()

	var out []catalog.StoryInstance
	for rows.Next() {
		var (
			inst                                     catalog.StoryInstance
			miracle, incipit, confidence, start, end sql.NullString
			known                                    int
		)
		if err := rows.Scan(&inst.Manuscript, &miracle, &incipit, &known, &confidence,
			&inst.CanonicalStoryID, &start, &end); err != nil {
			return nil, fmt.Errorf("scan story instance: %w", err)
		}
		inst.MiracleNumber = miracle.String
		inst.Incipit = incipit.String
		inst.MacomberIncipit = known != 0
		inst.ConfidenceScore = confidence.String
		inst.FolioStart = start.String
		inst.FolioEnd = end.String
		out = append(out, inst)
	}
	return out, rows.Err()
}
