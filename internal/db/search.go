package db

// DocumentQuery is the input for a full-text FT.SEARCH.
type DocumentQuery struct {
	IndexName    string
	Query        string
	Limit        int
	ReturnFields []string // empty returns every field
	Highlight    *HighlightOptions
}

// HighlightOptions turns on HIGHLIGHT and SUMMARIZE for a subset of fields.
// Matching fragments are joined with Separator in the returned field values.
type HighlightOptions struct {
	Fields      []string
	Fragments   int
	FragmentLen int
	Separator   string
	OpenTag     string
	CloseTag    string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
