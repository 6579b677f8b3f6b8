package handlist

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"pemm/internal/catalog"
	"pemm/internal/collection"
	"pemm/internal/grammar"
	"pemm/internal/logging"
	"pemm/internal/reference"
	"pemm/internal/textutil"
)

const maxLineBytes = 1 << 20

// Handlist field names.
const (
	FieldTitle              = "Title"
	FieldText               = "Text"
	FieldEnglishTranslation = "English translation"
	FieldCombined           = "MSS"
)

type state int

const (
	stateNoRecord state = iota
	stateInRecord
)

// Parser turns handlist text into a catalog. A Parser owns its catalog and
// is not safe for concurrent use; each Parse call starts from an empty
// catalog.
type Parser struct {
	refs     *reference.Parser
	registry *collection.Registry
	logger   *slog.Logger
	catalog  *catalog.Catalog

	state  state
	record *catalog.CanonicalStory
}

// New builds a handlist parser. A nil registry selects the built-in
// collection table and a nil logger discards log output.
func New(registry *collection.Registry, incipits reference.IncipitSource, logger *slog.Logger) *Parser {
	if registry == nil {
		registry = collection.Default()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Parser{
		refs:     reference.NewParser(registry, incipits),
		registry: registry,
		logger:   logging.NewComponentLogger(logger, "handlist"),
		catalog:  catalog.New(),
	}
}

// ParseFile opens path and parses it.
func (p *Parser) ParseFile(path string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open handlist: %w", err)
	}
	defer func() { _ = f.Close() }()

	cat, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Parse scans r line by line. Unparseable references are collected in the
// returned catalog; only read errors abort the scan. Each call returns a
// fresh catalog.
func (p *Parser) Parse(r io.Reader) (*catalog.Catalog, error) {
	p.catalog = catalog.New()
	p.state = stateNoRecord
	p.record = nil

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		line := scanner.Text()
		if lineNo == 0 {
			line = textutil.StripBOM(line)
		}
		lineNo++
		p.handleLine(line, lineNo)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read handlist line %d: %w", lineNo+1, err)
	}
	p.finalize()

	counts := p.catalog.Counts()
	p.logger.Debug("handlist scanned",
		logging.Int("lines", lineNo),
		logging.Int("stories", counts.Stories),
		logging.Int("instances", counts.Instances),
		logging.Int("unparsed", counts.Unparsed),
	)
	return p.catalog, nil
}

func (p *Parser) handleLine(line string, lineNo int) {
	if id, ok := grammar.ParseStoryID(line); ok {
		p.finalize()
		p.record = &catalog.CanonicalStory{MacomberID: id}
		p.state = stateInRecord
		return
	}

	field, value, found := strings.Cut(line, ":")
	if !found {
		return
	}
	field = strings.TrimSpace(field)
	if p.state == stateNoRecord {
		p.logger.Debug("field outside record ignored",
			logging.String("field", field),
			logging.Int("line", lineNo),
		)
		return
	}

	switch {
	case field == FieldTitle:
		p.record.Title = textutil.Clean(value)
	case field == FieldText:
		p.record.PrintVersion = textutil.Clean(value)
	case field == FieldEnglishTranslation:
		p.record.EnglishTranslation = textutil.Clean(value)
	case field == FieldCombined:
		p.parseCombined(value)
	case p.registry.IsField(field):
		p.merge(field, p.refs.ParseField(field, textutil.Clean(value), *p.record))
	}
}

// parseCombined handles "MSS: CRA 53-17; VLVE 298 (151a); 272(113a)".
func (p *Parser) parseCombined(value string) {
	value = strings.Trim(textutil.Clean(value), ".")
	if value == "" || strings.EqualFold(value, "none") {
		return
	}

	previous := ""
	for _, ref := range strings.Split(value, ";") {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		abbr, manuscript, err := reference.SplitCombined(ref, previous)
		if err != nil {
			logging.WarnWithContext(p.logger, "bad collection", "bad_collection",
				logging.String("reference", ref),
				logging.String("story", p.record.MacomberID),
				logging.String(logging.FieldErrorHint, "prefix the reference with a collection abbreviation"),
				logging.String(logging.FieldImpact, "reference skipped"),
			)
			continue
		}
		previous = abbr
		if !p.registry.Known(abbr) {
			logging.WarnWithContext(p.logger, "bad collection", "bad_collection",
				logging.String(logging.FieldCollection, abbr),
				logging.String("reference", ref),
				logging.String("story", p.record.MacomberID),
				logging.String(logging.FieldErrorHint, "add the abbreviation to collections.display_names"),
				logging.String(logging.FieldImpact, "reference skipped"),
			)
			continue
		}
		p.merge(abbr, p.refs.ParseField(abbr, manuscript, *p.record))
	}
}

func (p *Parser) merge(abbr string, res reference.Result) {
	for _, id := range res.Manuscripts {
		p.catalog.Manuscripts.Add(abbr, id)
	}
	p.catalog.Instances = append(p.catalog.Instances, res.Instances...)
	p.catalog.Unparsed = append(p.catalog.Unparsed, res.Unparsed...)
}

func (p *Parser) finalize() {
	if p.record != nil {
		p.catalog.Stories = append(p.catalog.Stories, *p.record)
	}
	p.record = nil
}
