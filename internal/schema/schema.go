// Package schema reads the spreadsheet schema that fixes the column order of
// each output sheet.
package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

//go:embed schema.json
var defaultSchema []byte

// ErrUnknownSheet is returned when a sheet name is absent from the schema.
var ErrUnknownSheet = errors.New("sheet not found in schema")

// Field is one spreadsheet column.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Sheet is one spreadsheet tab.
type Sheet struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Schema is the ordered list of sheets.
type Schema struct {
	Sheets []Sheet `json:"sheets"`
}

// Default returns the built-in schema.
func Default() *Schema {
	s, err := Parse(defaultSchema)
	if err != nil {
		panic(fmt.Sprintf("embedded schema: %v", err))
	}
	return s
}

// Load reads a schema file. An empty path selects the built-in schema.
func Load(path string) (*Schema, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes schema JSON.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if len(s.Sheets) == 0 {
		return nil, errors.New("parse schema: no sheets defined")
	}
	return &s, nil
}

// Fields returns the ordered field names of the named sheet.
func (s *Schema) Fields(sheet string) ([]string, error) {
	for _, candidate := range s.Sheets {
		if candidate.Name != sheet {
			continue
		}
		names := make([]string, 0, len(candidate.Fields))
		for _, f := range candidate.Fields {
			names = append(names, f.Name)
		}
		return names, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSheet, sheet)
}
