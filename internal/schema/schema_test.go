package schema

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultSchema(t *testing.T) {
	s := Default()
	if s.Sheets[0].Name != "Story Instance" {
		t.Fatalf("unexpected first sheet %q", s.Sheets[0].Name)
	}

	tests := []struct {
		sheet string
		want  []string
	}{
		{"Canonical Story", []string{"Macomber ID", "Macomber Title", "Print Version", "English Translation"}},
		{"Manuscript", []string{"ID", "Collection"}},
		{"Story Instance", []string{"Manuscript", "Miracle Number", "Incipit", "Macomber Incipit", "Confidence Score", "Canonical Story ID", "Folio Start", "Folio End"}},
	}
	for _, tt := range tests {
		t.Run(tt.sheet, func(t *testing.T) {
			got, err := s.Fields(tt.sheet)
			if err != nil {
				t.Fatalf("Fields: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Fields(%q) = %v, want %v", tt.sheet, got, tt.want)
			}
		})
	}
}

func TestFieldsUnknownSheet(t *testing.T) {
	_, err := Default().Fields("Repository")
	if !errors.Is(err, ErrUnknownSheet) {
		t.Fatalf("expected ErrUnknownSheet, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	content := `{"sheets":[{"name":"Manuscript","fields":[{"name":"Collection","type":"string"},{"name":"ID"}]}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, err := s.Fields("Manuscript")
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Collection", "ID"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	for name, content := range map[string]string{
		"malformed": `{"sheets": [`,
		"empty":     `{"sheets": []}`,
	} {
		path := filepath.Join(dir, name+".json")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Sheets) != 3 {
		t.Fatalf("expected 3 sheets, got %d", len(s.Sheets))
	}
}
