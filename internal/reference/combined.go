package reference

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrNoCollection reports a combined-field reference whose collection cannot
// be determined.
var ErrNoCollection = errors.New("no collection in manuscript reference")

// SplitCombined separates the collection abbreviation from one reference of
// the combined MSS field.
//
//	"CRA 53-17"  -> "CRA", "53-17"
//	"G-17"       -> "G", "1-17" (single-manuscript collection; 17 is the order)
//	"272(113a)"  -> previous, "272(113a)"
func SplitCombined(ref, previous string) (string, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", ErrNoCollection
	}

	first, _ := utf8.DecodeRuneInString(ref)
	if !unicode.IsLetter(first) {
		if previous == "" {
			return "", "", ErrNoCollection
		}
		return previous, ref, nil
	}

	if abbr, rest, found := strings.Cut(ref, " "); found {
		return abbr, rest, nil
	}
	if abbr, rest, found := strings.Cut(ref, "-"); found {
		return abbr, "1-" + rest, nil
	}
	return "", "", ErrNoCollection
}
