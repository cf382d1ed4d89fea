// Package language holds the read-only catalog of languages clustering can run on.
package language

import (
	"fmt"
	"strings"
	"unicode"
)

// Resources are the language-specific inputs handed to an algorithm.
// Safe for concurrent use; never mutated after the catalog is built.
type Resources struct {
	name      string
	stopwords map[string]struct{}
}

// Name returns the language code, e.g. "English".
func (r *Resources) Name() string { return r.name }

// IsStopword reports whether the lowercased term is a stopword.
func (r *Resources) IsStopword(term string) bool {
	_, ok := r.stopwords[term]
	return ok
}

// Tokenize lowercases text and splits it on anything that is not a letter or digit.
func (r *Resources) Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c)
	})
}

// Terms returns tokens that are at least minLen runes long and not stopwords.
func (r *Resources) Terms(text string, minLen int) []string {
	tokens := r.Tokenize(text)
	out := tokens[:0]
	for _, t := range tokens {
		if len([]rune(t)) < minLen || r.IsStopword(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Catalog is the set of supported languages. Populated once at startup.
type Catalog struct {
	order     []string
	resources map[string]*Resources
}

// NewCatalog builds a catalog restricted to enabled. An empty list enables every built-in language.
func NewCatalog(enabled []string) (*Catalog, error) {
	if len(enabled) == 0 {
		enabled = BuiltinNames()
	}
	c := &Catalog{resources: make(map[string]*Resources, len(enabled))}
	for _, name := range enabled {
		words, ok := builtinStopwords[name]
		if !ok {
			return nil, fmt.Errorf("unknown language %q (built-in: %v)", name, BuiltinNames())
		}
		if _, dup := c.resources[name]; dup {
			continue
		}
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		c.resources[name] = &Resources{name: name, stopwords: set}
		c.order = append(c.order, name)
	}
	return c, nil
}

// Supported returns supported language codes in catalog order.
func (c *Catalog) Supported() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Supports reports whether code is in the catalog.
func (c *Catalog) Supports(code string) bool {
	_, ok := c.resources[code]
	return ok
}

// ResourcesFor returns the resources for code.
func (c *Catalog) ResourcesFor(code string) (*Resources, bool) {
	r, ok := c.resources[code]
	return r, ok
}
