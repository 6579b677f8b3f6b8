package incipit

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"pemm/internal/textutil"
)

const columns = 5

// Table is a three-level lookup: story id -> collection -> manuscript id -> incipit.
type Table struct {
	entries map[string]map[string]map[string]string
	count   int
}

// New returns an empty table.
func New() *Table {
	return &Table{entries: make(map[string]map[string]map[string]string)}
}

// Load reads the incipit CSV at path.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open incipits: %w", err)
	}
	defer file.Close()

	table, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Read parses incipit rows from r. A leading byte order mark is ignored.
// Later rows overwrite earlier rows with the same key.
func Read(r io.Reader) (*Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = columns

	table := New()
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read incipits: %w", err)
		}
		table.Set(row[0], row[2], row[3], row[1])
	}
	return table, nil
}

// Set stores the incipit for a story instance key.
func (t *Table) Set(storyID, collection, manuscriptID, text string) {
	byCollection, ok := t.entries[storyID]
	if !ok {
		byCollection = make(map[string]map[string]string)
		t.entries[storyID] = byCollection
	}
	byManuscript, ok := byCollection[collection]
	if !ok {
		byManuscript = make(map[string]string)
		byCollection[collection] = byManuscript
	}
	if _, exists := byManuscript[manuscriptID]; !exists {
		t.count++
	}
	byManuscript[manuscriptID] = textutil.Clean(text)
}

// Get returns the incipit for the key, or "" when any level is absent.
func (t *Table) Get(storyID, collection, manuscriptID string) string {
	if t == nil {
		return ""
	}
	return t.entries[storyID][collection][manuscriptID]
}

// Len returns the number of distinct keys stored.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}
