// Package attr declares typed, bounded algorithm attributes that can be
// overridden per request from a loosely typed key/value map.
package attr

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind is the value type of an attribute.
type Kind string

// Attribute kinds.
const (
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
	KindString Kind = "string"
)

// Descriptor describes an attribute for listings.
type Descriptor struct {
	Name        string   `json:"name"`
	Kind        Kind     `json:"type"`
	Description string   `json:"description,omitempty"`
	Default     any      `json:"default"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
}

// Attr is a single overridable attribute.
type Attr interface {
	Name() string
	Set(v any) error
	Descriptor() Descriptor
}

// Int is a bounded integer attribute.
type Int struct {
	name, desc string
	def, value int
	min, max   int
}

// NewInt declares an integer attribute constrained to [lo, hi].
func NewInt(name string, def, lo, hi int, desc string) *Int {
	return &Int{name: name, desc: desc, def: def, value: def, min: lo, max: hi}
}

// Name returns the attribute key.
func (a *Int) Name() string { return a.name }

// Value returns the current value.
func (a *Int) Value() int { return a.value }

// Set converts and validates v.
func (a *Int) Set(v any) error {
	n, err := toInt(v)
	if err != nil {
		return err
	}
	if n < a.min {
		return fmt.Errorf("value %d must be >= %d", n, a.min)
	}
	if n > a.max {
		return fmt.Errorf("value %d must be <= %d", n, a.max)
	}
	a.value = n
	return nil
}

// Descriptor describes the attribute.
func (a *Int) Descriptor() Descriptor {
	lo, hi := float64(a.min), float64(a.max)
	return Descriptor{Name: a.name, Kind: KindInt, Description: a.desc, Default: a.def, Min: &lo, Max: &hi}
}

// Float is a bounded floating point attribute.
type Float struct {
	name, desc string
	def, value float64
	min, max   float64
}

// NewFloat declares a float attribute constrained to [lo, hi].
func NewFloat(name string, def, lo, hi float64, desc string) *Float {
	return &Float{name: name, desc: desc, def: def, value: def, min: lo, max: hi}
}

// Name returns the attribute key.
func (a *Float) Name() string { return a.name }

// Value returns the current value.
func (a *Float) Value() float64 { return a.value }

// Set converts and validates v.
func (a *Float) Set(v any) error {
	f, err := toFloat(v)
	if err != nil {
		return err
	}
	if math.IsNaN(f) {
		return fmt.Errorf("value must be a number, got NaN")
	}
	if f < a.min {
		return fmt.Errorf("value %v must be >= %v", f, a.min)
	}
	if f > a.max {
		return fmt.Errorf("value %v must be <= %v", f, a.max)
	}
	a.value = f
	return nil
}

// Descriptor describes the attribute.
func (a *Float) Descriptor() Descriptor {
	lo, hi := a.min, a.max
	return Descriptor{Name: a.name, Kind: KindFloat, Description: a.desc, Default: a.def, Min: &lo, Max: &hi}
}

// Bool is a boolean attribute.
type Bool struct {
	name, desc string
	def, value bool
}

// NewBool declares a boolean attribute.
func NewBool(name string, def bool, desc string) *Bool {
	return &Bool{name: name, desc: desc, def: def, value: def}
}

// Name returns the attribute key.
func (a *Bool) Name() string { return a.name }

// Value returns the current value.
func (a *Bool) Value() bool { return a.value }

// Set converts v.
func (a *Bool) Set(v any) error {
	switch b := v.(type) {
	case bool:
		a.value = b
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return fmt.Errorf("value %q is not a boolean", b)
		}
		a.value = parsed
	default:
		return fmt.Errorf("value %v (%T) is not a boolean", v, v)
	}
	return nil
}

// Descriptor describes the attribute.
func (a *Bool) Descriptor() Descriptor {
	return Descriptor{Name: a.name, Kind: KindBool, Description: a.desc, Default: a.def}
}

// String is a free-form string attribute.
type String struct {
	name, desc string
	def, value string
}

// NewString declares a string attribute.
func NewString(name, def, desc string) *String {
	return &String{name: name, desc: desc, def: def, value: def}
}

// Name returns the attribute key.
func (a *String) Name() string { return a.name }

// Value returns the current value.
func (a *String) Value() string { return a.value }

// Set converts v.
func (a *String) Set(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("value %v (%T) is not a string", v, v)
	}
	a.value = s
	return nil
}

// Descriptor describes the attribute.
func (a *String) Descriptor() Descriptor {
	return Descriptor{Name: a.name, Kind: KindString, Description: a.desc, Default: a.def}
}

// Set is the declared attribute table of one algorithm instance.
type Set struct {
	order  []Attr
	byName map[string]Attr
}

// NewSet declares attrs in listing order.
func NewSet(attrs ...Attr) *Set {
	s := &Set{byName: make(map[string]Attr, len(attrs))}
	for _, a := range attrs {
		s.order = append(s.order, a)
		s.byName[a.Name()] = a
	}
	return s
}

// Lookup returns the attribute named name.
func (s *Set) Lookup(name string) (Attr, bool) {
	a, ok := s.byName[name]
	return a, ok
}

// Apply overrides attributes from values. Keys are applied in sorted order so
// the first reported error is deterministic.
func (s *Set) Apply(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		a, ok := s.byName[k]
		if !ok {
			return fmt.Errorf("unknown attribute %q", k)
		}
		if err := a.Set(values[k]); err != nil {
			return fmt.Errorf("attribute %s: %w", k, err)
		}
	}
	return nil
}

// Descriptors lists every attribute in declaration order.
func (s *Set) Descriptors() []Descriptor {
	out := make([]Descriptor, len(s.order))
	for i, a := range s.order {
		out[i] = a.Descriptor()
	}
	return out
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("value %q is not a number", n.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not a number", n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not a number", v, v)
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("value %q is not an integer", n.String())
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("value %q is not an integer", n)
		}
		return i, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %v is not an integer", f)
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("value %v is out of integer range", f)
	}
	return int(f), nil
}
