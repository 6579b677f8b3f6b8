package reference

import (
	"errors"
	"testing"
)

func TestSplitCombined(t *testing.T) {
	tests := []struct {
		name           string
		ref            string
		previous       string
		wantCollection string
		wantRef        string
		wantErr        error
	}{
		{"space", "CRA 53-17", "", "CRA", "53-17", nil},
		{"space with folio", "VLVE 298 (151a)", "CRA", "VLVE", "298 (151a)", nil},
		{"dash means order", "G-17", "", "G", "1-17", nil},
		{"inherits previous", "272(113a)", "VLVE", "VLVE", "272(113a)", nil},
		{"no previous", "272(113a)", "", "", "", ErrNoCollection},
		{"letters only", "CRA", "VLVE", "", "", ErrNoCollection},
		{"empty", "  ", "VLVE", "", "", ErrNoCollection},
		{"trims", "  SBLE 12 (3r) ", "", "SBLE", "12 (3r)", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abbr, ref, err := SplitCombined(tt.ref, tt.previous)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if abbr != tt.wantCollection || ref != tt.wantRef {
				t.Fatalf("SplitCombined(%q, %q) = %q, %q; want %q, %q", tt.ref, tt.previous, abbr, ref, tt.wantCollection, tt.wantRef)
			}
		})
	}
}
