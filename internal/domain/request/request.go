package request

import (
	"fmt"

	"github.com/kailas-cloud/clusterdex/internal/domain"
	"github.com/kailas-cloud/clusterdex/internal/domain/fieldspec"
)

// Request limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultSize    = 100
	MaxSize        = 10000
)

// Request is a validated clustering request.
type Request struct {
	index           string
	query           string
	size            int
	queryHint       string
	algorithm       string
	attributes      map[string]any
	mappings        []fieldspec.Mapping
	createUngrouped bool
	includeHits     bool
	maxHits         int
	defaultLanguage string
}

// Params are the raw request inputs.
type Params struct {
	Index           string
	Query           string
	Size            int
	QueryHint       string
	Algorithm       string
	Attributes      map[string]any
	FieldMapping    map[fieldspec.Logical][]string
	CreateUngrouped bool
	IncludeHits     bool
	MaxHits         int // 0 = unbounded
	DefaultLanguage string
}

// New validates and normalizes params. An empty algorithm or default
// language is resolved later against the service defaults.
func New(p Params) (Request, error) {
	if p.Index == "" {
		return Request{}, fmt.Errorf("%w: index is required", domain.ErrInvalidRequest)
	}
	if len(p.Query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if p.Size < 0 {
		return Request{}, fmt.Errorf("%w: size must not be negative", domain.ErrInvalidRequest)
	}
	if p.Size == 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	if p.MaxHits < 0 {
		return Request{}, fmt.Errorf("%w: max_hits must not be negative", domain.ErrInvalidRequest)
	}

	mappings, err := fieldspec.FromRequest(p.FieldMapping)
	if err != nil {
		return Request{}, err
	}

	query := p.Query
	if query == "" {
		query = "*"
	}

	return Request{
		index:           p.Index,
		query:           query,
		size:            p.Size,
		queryHint:       p.QueryHint,
		algorithm:       p.Algorithm,
		attributes:      p.Attributes,
		mappings:        mappings,
		createUngrouped: p.CreateUngrouped,
		includeHits:     p.IncludeHits,
		maxHits:         p.MaxHits,
		defaultLanguage: p.DefaultLanguage,
	}, nil
}

// Index returns the search index name.
func (r *Request) Index() string { return r.index }

// Query returns the search query ("*" matches everything).
func (r *Request) Query() string { return r.query }

// Size returns how many hits the search returns.
func (r *Request) Size() int { return r.size }

// QueryHint returns the hint injected into the algorithm's queryHint attribute.
func (r *Request) QueryHint() string { return r.queryHint }

// Algorithm returns the requested algorithm id ("" = service default).
func (r *Request) Algorithm() string { return r.algorithm }

// Attributes returns runtime attribute overrides.
func (r *Request) Attributes() map[string]any { return r.attributes }

// Mappings returns the ordered field mappings.
func (r *Request) Mappings() []fieldspec.Mapping { return r.mappings }

// CreateUngrouped reports whether the ungrouped bucket is requested.
func (r *Request) CreateUngrouped() bool { return r.createUngrouped }

// IncludeHits reports whether hits are echoed in the response.
func (r *Request) IncludeHits() bool { return r.includeHits }

// MaxHits returns the clustering hit cap (0 = unbounded).
func (r *Request) MaxHits() int { return r.maxHits }

// DefaultLanguage returns the requested default language ("" = service default).
func (r *Request) DefaultLanguage() string { return r.defaultLanguage }
