package hit

// Hit is a single document returned by the search collaborator.
type Hit struct {
	id         string
	score      float64
	fields     map[string]any
	highlights map[string][]string
	source     map[string]any
}

// New creates a search hit. Any of the maps may be nil.
func New(
	id string, score float64,
	fields map[string]any, highlights map[string][]string, source map[string]any,
) Hit {
	return Hit{id: id, score: score, fields: fields, highlights: highlights, source: source}
}

// ID returns the stable hit identifier.
func (h *Hit) ID() string { return h.id }

// Score returns the search relevance score.
func (h *Hit) Score() float64 { return h.score }

// Fields returns pre-selected field values keyed by field name.
func (h *Hit) Fields() map[string]any { return h.fields }

// Highlights returns highlighted fragments keyed by field name.
func (h *Hit) Highlights() map[string][]string { return h.highlights }

// Source returns the nested source document (nil if not fetched).
func (h *Hit) Source() map[string]any { return h.source }

// Query describes one call to the search collaborator.
type Query struct {
	Index           string
	Query           string
	Size            int
	Fields          []string // stored fields to return
	HighlightFields []string
	IncludeSource   bool
}
