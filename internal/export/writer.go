// Package export writes a catalog as the three spreadsheet CSV files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"pemm/internal/catalog"
	"pemm/internal/fileutil"
	"pemm/internal/schema"
)

// ErrLocked is returned when another run holds the output directory lock.
var ErrLocked = errors.New("output directory is locked by another run")

const (
	lockName  = ".pemm.lock"
	dateStamp = "2006-01-02"
)

// Paths lists the files written by one export.
type Paths struct {
	Manuscripts      string `json:"manuscripts"`
	CanonicalStories string `json:"canonical_stories"`
	StoryInstances   string `json:"story_instances"`
}

// All returns the paths in write order.
func (p Paths) All() []string {
	return []string{p.Manuscripts, p.CanonicalStories, p.StoryInstances}
}

// Writer emits dated CSV files into one directory.
type Writer struct {
	dir    string
	date   string
	schema *schema.Schema
}

// NewWriter returns a writer for dir that stamps files with now's date.
// A nil schema selects the built-in one.
func NewWriter(dir string, s *schema.Schema, now time.Time) *Writer {
	if s == nil {
		s = schema.Default()
	}
	return &Writer{dir: dir, date: now.Format(dateStamp), schema: s}
}

// PathsFor returns the file names the writer uses.
func (w *Writer) PathsFor() Paths {
	name := func(table string) string {
		return filepath.Join(w.dir, w.date+"-"+table+".csv")
	}
	return Paths{
		Manuscripts:      name("manuscripts"),
		CanonicalStories: name("canonical_stories"),
		StoryInstances:   name("story_instances"),
	}
}

type table struct {
	sheet string
	path  string
	rows  []map[string]string
}

// WriteAll writes the manuscript, canonical story and story instance tables.
// Nothing replaces existing files unless all three tables are written.
// displayName resolves the Collection column of the manuscript table.
func (w *Writer) WriteAll(cat *catalog.Catalog, displayName func(string) string) (Paths, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(w.dir, lockName))
	ok, err := lock.TryLock()
	if err != nil {
		return Paths{}, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return Paths{}, ErrLocked
	}
	defer func() { _ = lock.Unlock() }()

	paths := w.PathsFor()
	tables := []table{
		{sheet: catalog.SheetManuscript, path: paths.Manuscripts, rows: manuscriptRows(cat, displayName)},
		{sheet: catalog.SheetCanonicalStory, path: paths.CanonicalStories, rows: storyRows(cat)},
		{sheet: catalog.SheetStoryInstance, path: paths.StoryInstances, rows: instanceRows(cat)},
	}

	pending := make([]*fileutil.PendingFile, 0, len(tables))
	defer func() {
		for _, p := range pending {
			p.Abort()
		}
	}()
	for _, t := range tables {
		fields, err := w.schema.Fields(t.sheet)
		if err != nil {
			return Paths{}, err
		}
		file, err := fileutil.CreatePending(t.path)
		if err != nil {
			return Paths{}, err
		}
		pending = append(pending, file)
		if err := writeCSV(file, fields, t.rows); err != nil {
			return Paths{}, fmt.Errorf("write %s: %w", t.path, err)
		}
	}
	for _, p := range pending {
		if err := p.Commit(); err != nil {
			return Paths{}, err
		}
	}
	return paths, nil
}

func writeCSV(file *fileutil.PendingFile, fields []string, rows []map[string]string) error {
	encoded := transform.NewWriter(file, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(encoded)
	if err := cw.Write(fields); err != nil {
		return err
	}
	record := make([]string, len(fields))
	for _, row := range rows {
		for i, field := range fields {
			record[i] = row[field]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return encoded.Close()
}

func manuscriptRows(cat *catalog.Catalog, displayName func(string) string) []map[string]string {
	sorted := cat.Manuscripts.Sorted(displayName)
	rows := make([]map[string]string, 0, len(sorted))
	for _, m := range sorted {
		rows = append(rows, m.Row())
	}
	return rows
}

func storyRows(cat *catalog.Catalog) []map[string]string {
	rows := make([]map[string]string, 0, len(cat.Stories))
	for _, s := range cat.Stories {
		rows = append(rows, s.Row())
	}
	return rows
}

func instanceRows(cat *catalog.Catalog) []map[string]string {
	rows := make([]map[string]string, 0, len(cat.Instances))
	for _, i := range cat.Instances {
		rows = append(rows, i.Row())
	}
	return rows
}
