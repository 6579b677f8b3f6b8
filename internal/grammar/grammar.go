package grammar

import (
	"regexp"
	"strconv"
	"strings"
)

const folioPattern = `(?P<start>\d+[rvab]) ?[-–]? ?(?P<end>(\d+)?[rvab])?( bis)?`

var (
	storyIDRe    = regexp.MustCompile(`^MAC(\d{4})(-[A-F][1-2]?)?`)
	folioRe      = regexp.MustCompile(`^` + folioPattern)
	manuscriptRe = regexp.MustCompile(`^(?P<id>[^.\s\-()]+)(?P<order>(\.|-)[\d?]+)?( ?\(` + folioPattern + `\))?`)
)

var (
	folioStartIdx = folioRe.SubexpIndex("start")
	folioEndIdx   = folioRe.SubexpIndex("end")
	msIDIdx       = manuscriptRe.SubexpIndex("id")
	msOrderIdx    = manuscriptRe.SubexpIndex("order")
	msStartIdx    = manuscriptRe.SubexpIndex("start")
	msEndIdx      = manuscriptRe.SubexpIndex("end")
)

// Folio is a raw folio location as written in the handlist.
type Folio struct {
	Start string
	End   string
}

// ManuscriptMatch is a manuscript reference with its optional order suffix
// and folio location.
type ManuscriptMatch struct {
	ID    string
	Order string
	Folio Folio
}

// ParseStoryID recognizes a story identifier at the start of line and returns
// it without zero padding: "MAC0041-C2" yields "41-C2".
func ParseStoryID(line string) (string, bool) {
	m := storyIDRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	return strconv.Itoa(n) + m[2], true
}

// MatchFolio recognizes a folio location at the start of token.
func MatchFolio(token string) (Folio, bool) {
	m := folioRe.FindStringSubmatch(token)
	if m == nil {
		return Folio{}, false
	}
	return Folio{Start: m[folioStartIdx], End: m[folioEndIdx]}, true
}

// MatchManuscript recognizes a manuscript reference at the start of token.
// The folio group is optional, so a bare id such as "4205" matches with an
// empty folio.
func MatchManuscript(token string) (ManuscriptMatch, bool) {
	m := manuscriptRe.FindStringSubmatch(token)
	if m == nil {
		return ManuscriptMatch{}, false
	}
	return ManuscriptMatch{
		ID:    m[msIDIdx],
		Order: m[msOrderIdx],
		Folio: Folio{Start: m[msStartIdx], End: m[msEndIdx]},
	}, true
}

var folioLetters = strings.NewReplacer("r", "a", "v", "b")

// NormalizeFolios converts a folio location to the a/b notation used in the
// spreadsheet. When inferEnd is set a missing end repeats the start. A bare
// "v" end (as in 65rv) means the verso of the start folio.
func NormalizeFolios(f Folio, inferEnd bool) (start, end string) {
	start, end = f.Start, f.End
	if inferEnd && end == "" {
		end = start
	}
	if end == "v" {
		end = strings.ReplaceAll(start, "r", "v")
	}
	return folioLetters.Replace(start), folioLetters.Replace(end)
}

// MiracleNumber strips the separator and uncertainty marks from an order
// suffix: ".8" yields "8", "-30" yields "30", ".?" yields "".
func MiracleNumber(order string) string {
	return strings.Trim(order, ".?-")
}
