package reference

import (
	"fmt"
	"regexp"
	"strings"

	"pemm/internal/catalog"
	"pemm/internal/collection"
	"pemm/internal/grammar"
	"pemm/internal/textutil"
)

// IncipitSource resolves known incipits. Missing keys resolve to "".
type IncipitSource interface {
	Get(storyID, collection, manuscriptID string) string
}

// Result holds everything recognized in one manuscript field.
type Result struct {
	Instances []catalog.StoryInstance
	// Manuscripts lists the manuscript ids to register under the collection.
	Manuscripts []string
	// Unparsed holds one diagnostic line per reference that matched no form.
	Unparsed []string
}

var locationSeparator = regexp.MustCompile(` ?[+,] ?`)

// Parser parses manuscript fields. It holds no per-run state.
type Parser struct {
	registry *collection.Registry
	incipits IncipitSource
}

// NewParser builds a parser. A nil registry selects the built-in collection
// table; a nil incipit source attaches no incipits.
func NewParser(registry *collection.Registry, incipits IncipitSource) *Parser {
	if registry == nil {
		registry = collection.Default()
	}
	return &Parser{registry: registry, incipits: incipits}
}

// ParseField parses the references of one collection for one canonical story.
// An empty field or the literal None yields an empty result.
func (p *Parser) ParseField(abbr, raw string, story catalog.CanonicalStory) Result {
	var res Result

	field := strings.Trim(strings.TrimSpace(raw), `."`)
	if field == "" || strings.EqualFold(field, "None") {
		return res
	}

	for _, ref := range strings.Split(strings.Trim(field, " .;"), ";") {
		ref = strings.TrimSpace(ref)
		if before, _, found := strings.Cut(ref, ":"); found {
			// Titles appended after the id are not part of the reference.
			ref = before
		}

		if strings.ContainsAny(ref, "+,") {
			p.parseMultiple(&res, abbr, ref, field, story)
			continue
		}

		match, ok := grammar.MatchManuscript(ref)
		if !ok {
			res.Unparsed = append(res.Unparsed, unparsed(abbr, ref, field))
			continue
		}
		res.Manuscripts = append(res.Manuscripts, match.ID)
		start, end := grammar.NormalizeFolios(match.Folio, p.registry.InfersSinglePage(abbr))
		res.Instances = append(res.Instances, p.instance(abbr, match.ID, grammar.MiracleNumber(match.Order), start, end, story))
	}
	return res
}

// parseMultiple handles "id (loc + loc, loc)". The id is shared by every
// location, so no end folio is inferred for single-page locations.
func (p *Parser) parseMultiple(res *Result, abbr, ref, field string, story catalog.CanonicalStory) {
	id, locations, found := strings.Cut(ref, "(")
	id = strings.TrimSpace(id)
	if !found || id == "" {
		res.Unparsed = append(res.Unparsed, unparsed(abbr, ref, field))
		return
	}

	for _, location := range locationSeparator.Split(strings.Trim(locations, ")"), -1) {
		folio, ok := grammar.MatchFolio(location)
		if !ok {
			res.Unparsed = append(res.Unparsed, unparsed(abbr, location, ref))
			continue
		}
		res.Manuscripts = append(res.Manuscripts, id)
		start, end := grammar.NormalizeFolios(folio, false)
		res.Instances = append(res.Instances, p.instance(abbr, id, "", start, end, story))
	}
}

func (p *Parser) instance(abbr, id, miracle, start, end string, story catalog.CanonicalStory) catalog.StoryInstance {
	var incipit string
	if p.incipits != nil {
		incipit = p.incipits.Get(story.MacomberID, abbr, id)
	}
	known := incipit != ""
	return catalog.StoryInstance{
		Manuscript:       p.registry.DisplayName(abbr) + " " + id,
		MiracleNumber:    miracle,
		Incipit:          incipit,
		MacomberIncipit:  known,
		ConfidenceScore:  textutil.Ternary(known, "High", ""),
		CanonicalStoryID: story.MacomberID,
		FolioStart:       start,
		FolioEnd:         end,
	}
}

func unparsed(abbr, token, within string) string {
	return fmt.Sprintf("%s %s / %s", abbr, token, within)
}
