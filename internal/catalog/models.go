package catalog

import (
	"cmp"
	"slices"
)

// Spreadsheet sheet names.
const (
	SheetCanonicalStory = "Canonical Story"
	SheetManuscript     = "Manuscript"
	SheetStoryInstance  = "Story Instance"
)

// CanonicalStory is one story entry of the Macomber handlist.
type CanonicalStory struct {
	MacomberID         string `json:"macomber_id"`
	Title              string `json:"title,omitempty"`
	PrintVersion       string `json:"print_version,omitempty"`
	EnglishTranslation string `json:"english_translation,omitempty"`
}

// Row returns the story keyed by spreadsheet field name.
func (s CanonicalStory) Row() map[string]string {
	return map[string]string{
		"Macomber ID":         s.MacomberID,
		"Macomber Title":      s.Title,
		"Print Version":       s.PrintVersion,
		"English Translation": s.EnglishTranslation,
	}
}

// StoryInstance is one occurrence of a canonical story in a manuscript.
type StoryInstance struct {
	Manuscript       string `json:"manuscript"`
	MiracleNumber    string `json:"miracle_number,omitempty"`
	Incipit          string `json:"incipit,omitempty"`
	MacomberIncipit  bool   `json:"macomber_incipit"`
	ConfidenceScore  string `json:"confidence_score,omitempty"`
	CanonicalStoryID string `json:"canonical_story_id"`
	FolioStart       string `json:"folio_start,omitempty"`
	FolioEnd         string `json:"folio_end,omitempty"`
}

// Row returns the instance keyed by spreadsheet field name.
func (i StoryInstance) Row() map[string]string {
	return map[string]string{
		"Manuscript":         i.Manuscript,
		"Miracle Number":     i.MiracleNumber,
		"Incipit":            i.Incipit,
		"Macomber Incipit":   formatBool(i.MacomberIncipit),
		"Confidence Score":   i.ConfidenceScore,
		"Canonical Story ID": i.CanonicalStoryID,
		"Folio Start":        i.FolioStart,
		"Folio End":          i.FolioEnd,
	}
}

// Manuscript is one row of the manuscript sheet.
type Manuscript struct {
	Collection  string `json:"collection"`
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Row returns the manuscript keyed by spreadsheet field name.
func (m Manuscript) Row() map[string]string {
	return map[string]string{
		"ID":         m.ID,
		"Collection": m.DisplayName,
	}
}

func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// ManuscriptSet collects distinct manuscript ids per collection abbreviation.
type ManuscriptSet struct {
	ids map[string]map[string]struct{}
	n   int
}

// NewManuscriptSet returns an empty set.
func NewManuscriptSet() *ManuscriptSet {
	return &ManuscriptSet{ids: make(map[string]map[string]struct{})}
}

// Add records id under collection. Duplicates are ignored.
func (s *ManuscriptSet) Add(collection, id string) {
	byID, ok := s.ids[collection]
	if !ok {
		byID = make(map[string]struct{})
		s.ids[collection] = byID
	}
	if _, exists := byID[id]; exists {
		return
	}
	byID[id] = struct{}{}
	s.n++
}

// Contains reports whether id was recorded under collection.
func (s *ManuscriptSet) Contains(collection, id string) bool {
	_, ok := s.ids[collection][id]
	return ok
}

// Len returns the number of distinct (collection, id) pairs.
func (s *ManuscriptSet) Len() int {
	return s.n
}

// Sorted returns every manuscript ordered by collection abbreviation and then
// id. displayName resolves the Collection column.
func (s *ManuscriptSet) Sorted(displayName func(string) string) []Manuscript {
	out := make([]Manuscript, 0, s.n)
	for collection, byID := range s.ids {
		name := collection
		if displayName != nil {
			name = displayName(collection)
		}
		for id := range byID {
			out = append(out, Manuscript{Collection: collection, ID: id, DisplayName: name})
		}
	}
	slices.SortFunc(out, func(a, b Manuscript) int {
		if c := cmp.Compare(a.Collection, b.Collection); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
