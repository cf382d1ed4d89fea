package clustering

import (
	"context"

	"github.com/kailas-cloud/clusterdex/internal/algorithm"
	"github.com/kailas-cloud/clusterdex/internal/domain/hit"
	"github.com/kailas-cloud/clusterdex/internal/language"
)

// Searcher runs the upstream search.
type Searcher interface {
	Search(ctx context.Context, q *hit.Query) ([]hit.Hit, error)
}

// Registry resolves algorithm ids to factories.
type Registry interface {
	Lookup(id string) (algorithm.Factory, bool)
	List() []algorithm.Factory
}

// LanguageCatalog resolves language codes to resources.
type LanguageCatalog interface {
	Supported() []string
	Supports(code string) bool
	ResourcesFor(code string) (*language.Resources, bool)
}

// LanguageDetector guesses the language of a document without a mapped language.
type LanguageDetector interface {
	Detect(text string) string
}
