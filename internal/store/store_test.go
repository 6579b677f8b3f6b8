package store_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"pemm/internal/catalog"
	"pemm/internal/store"
)

func openStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "pemm.db")
	s, err := store.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func sampleCatalog() *catalog.Catalog {
	cat := catalog.New()
	cat.Stories = []catalog.CanonicalStory{{MacomberID: "1", Title: "First"}, {MacomberID: "2-A"}}
	cat.Manuscripts.Add("PEth", "41")
	cat.Manuscripts.Add("EMML", "4205")
	cat.Instances = []catalog.StoryInstance{
		{Manuscript: "PEM (PUL) 41", MiracleNumber: "8", CanonicalStoryID: "1", FolioStart: "21a", FolioEnd: "30b"},
		{Manuscript: "EMML (HMML) 4205", Incipit: "ወሀሎ", MacomberIncipit: true, ConfidenceScore: "High", CanonicalStoryID: "1", FolioStart: "25b"},
	}
	cat.Unparsed = []string{"EMDL (illegible) / (illegible)", "EMML ff. / 4205 (25v + ff.)"}
	return cat
}

func TestSaveRunRoundTrip(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()
	cat := sampleCatalog()

	started := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	run := store.Run{
		ID:         "run-1",
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Handlist:   "data/macomber.txt",
		OutputDir:  "output",
	}
	if err := s.SaveRun(ctx, run, cat, nil); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != "run-1" || !got.StartedAt.Equal(started) || got.Incipits != "" {
		t.Fatalf("unexpected run %+v", got)
	}
	if got.Counts != cat.Counts() {
		t.Fatalf("counts = %+v, want %+v", got.Counts, cat.Counts())
	}

	instances, err := s.StoryInstances(ctx, "run-1")
	if err != nil {
		t.Fatalf("StoryInstances: %v", err)
	}
	if !reflect.DeepEqual(instances, cat.Instances) {
		t.Fatalf("instances mismatch:\n got %+v\nwant %+v", instances, cat.Instances)
	}

	unparsed, err := s.Unparsed(ctx, "run-1")
	if err != nil {
		t.Fatalf("Unparsed: %v", err)
	}
	if !reflect.DeepEqual(unparsed, cat.Unparsed) {
		t.Fatalf("unparsed = %v, want %v", unparsed, cat.Unparsed)
	}
}

func TestListRunsNewestFirstWithLimit(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		run := store.Run{
			ID:        id,
			StartedAt: base.Add(time.Duration(i)*time.Hour + 500*time.Millisecond*time.Duration(i)),
			Handlist:  "handlist.txt",
			OutputDir: "output",
		}
		if err := s.SaveRun(ctx, run, catalog.New(), nil); err != nil {
			t.Fatalf("SaveRun %s: %v", id, err)
		}
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Fatalf("unexpected runs %+v", runs)
	}
}

func TestSaveRunDuplicateIDRollsBack(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()
	run := store.Run{ID: "dup", Handlist: "h.txt", OutputDir: "out"}

	if err := s.SaveRun(ctx, run, sampleCatalog(), nil); err != nil {
		t.Fatalf("first SaveRun: %v", err)
	}
	if err := s.SaveRun(ctx, run, sampleCatalog(), nil); err == nil {
		t.Fatal("expected duplicate run id to fail")
	}
	unparsed, err := s.Unparsed(ctx, "dup")
	if err != nil {
		t.Fatalf("Unparsed: %v", err)
	}
	if len(unparsed) != 2 {
		t.Fatalf("expected original 2 references, got %d", len(unparsed))
	}
}

func TestSaveRunRequiresID(t *testing.T) {
	s, _ := openStore(t)
	if err := s.SaveRun(context.Background(), store.Run{}, catalog.New(), nil); err == nil {
		t.Fatal("expected error for missing run id")
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	s, path := openStore(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	_, err = store.Open(context.Background(), path)
	if !errors.Is(err, store.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	s, path := openStore(t)
	ctx := context.Background()
	if err := s.SaveRun(ctx, store.Run{ID: "keep", Handlist: "h.txt", OutputDir: "out"}, catalog.New(), nil); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	_ = s.Close()

	reopened, err := store.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	runs, err := reopened.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "keep" {
		t.Fatalf("unexpected runs %+v", runs)
	}
}
