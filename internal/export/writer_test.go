package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"pemm/internal/catalog"
	"pemm/internal/collection"
	"pemm/internal/schema"
)

var runDate = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleCatalog() *catalog.Catalog {
	cat := catalog.New()
	cat.Stories = []catalog.CanonicalStory{{MacomberID: "1", Title: "ተአምረ፡ ማርያም", PrintVersion: "Budge, 12"}}
	cat.Manuscripts.Add("VLVE", "298")
	cat.Manuscripts.Add("CRA", "53")
	cat.Manuscripts.Add("VLVE", "272")
	cat.Instances = []catalog.StoryInstance{{
		Manuscript:       "CR-Paris (BNF) 53",
		MiracleNumber:    "17",
		Incipit:          "ወሀሎ፡ ፩ብእሲ",
		MacomberIncipit:  true,
		ConfidenceScore:  "High",
		CanonicalStoryID: "1",
	}}
	return cat
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("%s does not start with a UTF-8 BOM", path)
	}
	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return records
}

func TestWriteAllProducesDatedTables(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	w := NewWriter(dir, nil, runDate)

	paths, err := w.WriteAll(sampleCatalog(), collection.Default().DisplayName)
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if want := filepath.Join(dir, "2026-03-14-manuscripts.csv"); paths.Manuscripts != want {
		t.Fatalf("manuscripts path = %q, want %q", paths.Manuscripts, want)
	}

	manuscripts := readCSV(t, paths.Manuscripts)
	wantManuscripts := [][]string{
		{"ID", "Collection"},
		{"53", "CR-Paris (BNF)"},
		{"272", "VL-Vatican (BAV)"},
		{"298", "VL-Vatican (BAV)"},
	}
	if !reflect.DeepEqual(manuscripts, wantManuscripts) {
		t.Fatalf("manuscripts = %v, want %v", manuscripts, wantManuscripts)
	}

	stories := readCSV(t, paths.CanonicalStories)
	wantStories := [][]string{
		{"Macomber ID", "Macomber Title", "Print Version", "English Translation"},
		{"1", "ተአምረ፡ ማርያም", "Budge, 12", ""},
	}
	if !reflect.DeepEqual(stories, wantStories) {
		t.Fatalf("stories = %v, want %v", stories, wantStories)
	}

	instances := readCSV(t, paths.StoryInstances)
	wantInstances := [][]string{
		{"Manuscript", "Miracle Number", "Incipit", "Macomber Incipit", "Confidence Score", "Canonical Story ID", "Folio Start", "Folio End"},
		{"CR-Paris (BNF) 53", "17", "ወሀሎ፡ ፩ብእሲ", "True", "High", "1", "", ""},
	}
	if !reflect.DeepEqual(instances, wantInstances) {
		t.Fatalf("instances = %v, want %v", instances, wantInstances)
	}
}

func TestWriteAllEmptyCatalogWritesHeaders(t *testing.T) {
	dir := t.TempDir()
	paths, err := NewWriter(dir, nil, runDate).WriteAll(catalog.New(), nil)
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	for _, path := range paths.All() {
		if records := readCSV(t, path); len(records) != 1 {
			t.Fatalf("%s: expected header only, got %v", path, records)
		}
	}
}

func TestWriteAllUsesSchemaOrder(t *testing.T) {
	s, err := schema.Parse([]byte(`{"sheets":[
		{"name":"Manuscript","fields":[{"name":"Collection"},{"name":"ID"}]},
		{"name":"Canonical Story","fields":[{"name":"Macomber Title"},{"name":"Macomber ID"}]},
		{"name":"Story Instance","fields":[{"name":"Canonical Story ID"},{"name":"Manuscript"}]}
	]}`))
	if err != nil {
		t.Fatalf("schema.Parse: %v", err)
	}
	paths, err := NewWriter(t.TempDir(), s, runDate).WriteAll(sampleCatalog(), nil)
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	manuscripts := readCSV(t, paths.Manuscripts)
	if !reflect.DeepEqual(manuscripts[1], []string{"CRA", "53"}) {
		t.Fatalf("unexpected first manuscript row %v", manuscripts[1])
	}
	instances := readCSV(t, paths.StoryInstances)
	if !reflect.DeepEqual(instances[1], []string{"1", "CR-Paris (BNF) 53"}) {
		t.Fatalf("unexpected instance row %v", instances[1])
	}
}

func TestWriteAllMissingSheetLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	s, err := schema.Parse([]byte(`{"sheets":[{"name":"Manuscript","fields":[{"name":"ID"}]}]}`))
	if err != nil {
		t.Fatalf("schema.Parse: %v", err)
	}

	_, err = NewWriter(dir, s, runDate).WriteAll(sampleCatalog(), nil)
	if !errors.Is(err, schema.ErrUnknownSheet) {
		t.Fatalf("expected ErrUnknownSheet, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if entry.Name() != lockName {
			t.Fatalf("unexpected leftover file %s", entry.Name())
		}
	}
}

func TestWriteAllRespectsLock(t *testing.T) {
	dir := t.TempDir()
	held := flock.New(filepath.Join(dir, lockName))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock: ok=%v err=%v", ok, err)
	}
	defer func() { _ = held.Unlock() }()

	_, err = NewWriter(dir, nil, runDate).WriteAll(sampleCatalog(), nil)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "2026-03-14-manuscripts.csv")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output while locked, stat err %v", statErr)
	}
}

func TestPathsForUsesDate(t *testing.T) {
	paths := NewWriter("out", nil, runDate).PathsFor()
	for _, path := range paths.All() {
		if !strings.HasPrefix(filepath.Base(path), "2026-03-14-") {
			t.Fatalf("path %s missing date prefix", path)
		}
	}
}
