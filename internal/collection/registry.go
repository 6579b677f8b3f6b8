package collection

import (
	"maps"
	"slices"
	"strings"
)

var defaultDisplayNames = map[string]string{
	"EMDL": "EMDL (HMML)",
	"EMIP": "EMIP (HMML)",
	"AECE": "AECE (HMML)",
	"CBS":  "C-Berlin (BS)",
	"CCBE": "C-Dublin (CBL)",
	"CF":   "C-Florence (BNCF)",
	"CL":   "C-Leningrad (RAN)",
	"CRA":  "CR-Paris (BNF)",
	"DULE": "Duke (Duke)",
	"EMML": "EMML (HMML)",
	"G":    "C-Veroli (BGV)",
	"GBAE": "G-Milan (BAM)",
	"GVE":  "G-Vatican (BAV)",
	"HBS":  "H-Berlin (BS)",
	"LUE":  "L-Uppsala (UU)",
	"SALE": "S-Rome (ANL)",
	"SBLE": "S-London (BL)",
	"SGE":  "S-Paris (BNF)",
	"SWE":  "M-SWE (SWE)",
	"VLVE": "VL-Vatican (BAV)",
	"WBLE": "W-London (BM)",
	"PEth": "PEM (PUL)",
	"ZBNE": "Z-Paris (BNF)",
	"BM":   "W-London (BM)",
}

// Collections whose single-folio references imply folio end = folio start.
var defaultSinglePage = []string{"PEth", "EMDL", "EMIP"}

// Collections that have their own `Name: refs` line in the handlist.
var defaultFields = []string{"PEth", "EMIP", "EMML", "EMDL"}

// DefaultDisplayNames returns a copy of the built-in abbreviation table.
func DefaultDisplayNames() map[string]string {
	return maps.Clone(defaultDisplayNames)
}

// DefaultSinglePage returns the built-in single-page inference collections.
func DefaultSinglePage() []string {
	return slices.Clone(defaultSinglePage)
}

// DefaultFields returns the built-in per-collection handlist field names.
func DefaultFields() []string {
	return slices.Clone(defaultFields)
}

// Registry answers collection questions for one conversion run.
type Registry struct {
	names      map[string]string
	singlePage map[string]struct{}
	fields     []string
}

// Default builds a registry from the built-in tables.
func Default() *Registry {
	return New(nil, nil, nil)
}

// New builds a registry. Display names in overrides are merged over the
// built-in table; nil singlePage or fields select the built-in lists.
func New(overrides map[string]string, singlePage, fields []string) *Registry {
	names := DefaultDisplayNames()
	for abbr, name := range overrides {
		abbr = strings.TrimSpace(abbr)
		name = strings.TrimSpace(name)
		if abbr == "" || name == "" {
			continue
		}
		names[abbr] = name
	}
	if singlePage == nil {
		singlePage = defaultSinglePage
	}
	if fields == nil {
		fields = defaultFields
	}

	r := &Registry{
		names:      names,
		singlePage: make(map[string]struct{}, len(singlePage)),
		fields:     slices.Clone(fields),
	}
	for _, abbr := range singlePage {
		r.singlePage[abbr] = struct{}{}
	}
	return r
}

// Known reports whether abbr has a display name.
func (r *Registry) Known(abbr string) bool {
	_, ok := r.names[abbr]
	return ok
}

// DisplayName returns the spreadsheet name for abbr, or abbr itself when the
// collection is unknown.
func (r *Registry) DisplayName(abbr string) string {
	if name, ok := r.names[abbr]; ok {
		return name
	}
	return abbr
}

// InfersSinglePage reports whether a reference without an end folio ends on
// its start folio.
func (r *Registry) InfersSinglePage(abbr string) bool {
	_, ok := r.singlePage[abbr]
	return ok
}

// IsField reports whether name is a per-collection handlist field.
func (r *Registry) IsField(name string) bool {
	return slices.Contains(r.fields, name)
}

// Fields returns the per-collection handlist field names.
func (r *Registry) Fields() []string {
	return slices.Clone(r.fields)
}

// Abbreviations returns every known abbreviation in sorted order.
func (r *Registry) Abbreviations() []string {
	return slices.Sorted(maps.Keys(r.names))
}
