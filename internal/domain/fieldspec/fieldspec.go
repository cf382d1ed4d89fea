package fieldspec

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/clusterdex/internal/domain"
)

// Source is where a mapped value is read from on a search hit.
type Source string

// Field source constants.
const (
	// Field reads a pre-selected stored field value.
	Field     Source = "fields"
	Highlight Source = "highlight"
	// DocSource descends into the hit's nested source document.
	DocSource Source = "_source"
)

// Prefix returns the spec prefix for the source, including the trailing dot.
func (s Source) Prefix() string { return string(s) + "." }

// prefixes is checked in order; prefixes are mutually exclusive.
var prefixes = []Source{Highlight, Field, DocSource}

// Logical is a canonical document slot consumed by clustering algorithms.
type Logical string

// Logical field constants.
const (
	URL      Logical = "url"
	Title    Logical = "title"
	Content  Logical = "content"
	Language Logical = "language"
)

// LogicalOrder is the order in which FromRequest applies logical fields.
var LogicalOrder = []Logical{URL, Title, Content, Language}

// ParseLogical resolves a logical field name (case-insensitive).
func ParseLogical(name string) (Logical, error) {
	l := Logical(strings.ToLower(strings.TrimSpace(name)))
	switch l {
	case URL, Title, Content, Language:
		return l, nil
	default:
		return "", fmt.Errorf("%w: unknown logical field %q", domain.ErrInvalidRequest, name)
	}
}

// Parse splits a spec like "_source.title.nested" into its source and field name.
func Parse(spec string) (Source, string, error) {
	for _, src := range prefixes {
		if name, ok := strings.CutPrefix(spec, src.Prefix()); ok {
			if name == "" {
				break
			}
			return src, name, nil
		}
	}
	return "", "", fmt.Errorf("%w for the field source: %q", domain.ErrInvalidFieldSpec, spec)
}

// Mapping binds a hit's raw field to a logical field. Immutable.
type Mapping struct {
	spec    string
	source  Source
	field   string
	logical Logical
}

// NewMapping parses spec and binds it to logical.
func NewMapping(spec string, logical Logical) (Mapping, error) {
	src, name, err := Parse(spec)
	if err != nil {
		return Mapping{}, err
	}
	return Mapping{spec: spec, source: src, field: name, logical: logical}, nil
}

// Spec returns the original spec string.
func (m Mapping) Spec() string { return m.spec }

// Source returns where the value is read from.
func (m Mapping) Source() Source { return m.source }

// Field returns the field name with the source prefix stripped.
func (m Mapping) Field() string { return m.field }

// Logical returns the target logical field.
func (m Mapping) Logical() Logical { return m.logical }

// FromRequest builds the ordered mapping list from a logical field -> specs table.
// Logical fields are applied in LogicalOrder; specs keep their order inside each field.
func FromRequest(table map[Logical][]string) ([]Mapping, error) {
	var out []Mapping
	for _, logical := range LogicalOrder {
		for _, spec := range table[logical] {
			m, err := NewMapping(spec, logical)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
	}
	for logical := range table {
		if _, err := ParseLogical(string(logical)); err != nil {
			return nil, err
		}
	}
	if len(out) == 0 {
		return nil, domain.ErrEmptyFieldMapping
	}
	return out, nil
}

// Select returns the distinct field names mapped from src, in mapping order.
func Select(mappings []Mapping, src Source) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range mappings {
		if m.source != src {
			continue
		}
		if _, ok := seen[m.field]; ok {
			continue
		}
		seen[m.field] = struct{}{}
		out = append(out, m.field)
	}
	return out
}
