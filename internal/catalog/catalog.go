package catalog

// Catalog accumulates the records and diagnostics of one conversion run.
// It is not safe for concurrent use.
type Catalog struct {
	Stories     []CanonicalStory
	Manuscripts *ManuscriptSet
	Instances   []StoryInstance
	// Unparsed holds references that matched no grammar, in scan order.
	Unparsed []string
}

// New returns an empty catalog.
func New() *Catalog {
	c := &Catalog{}
	c.Reset()
	return c
}

// Reset discards all accumulated records.
func (c *Catalog) Reset() {
	c.Stories = nil
	c.Manuscripts = NewManuscriptSet()
	c.Instances = nil
	c.Unparsed = nil
}

// Counts summarizes the catalog size.
type Counts struct {
	Stories     int `json:"stories"`
	Manuscripts int `json:"manuscripts"`
	Instances   int `json:"instances"`
	Unparsed    int `json:"unparsed"`
}

// Counts returns the number of records per table.
func (c *Catalog) Counts() Counts {
	return Counts{
		Stories:     len(c.Stories),
		Manuscripts: c.Manuscripts.Len(),
		Instances:   len(c.Instances),
		Unparsed:    len(c.Unparsed),
	}
}
