package style

import (
	"maps"
	"slices"
)

// Meta is immutable structured metadata attached to a style, such as the
// action or widget id a clickable cell belongs to.
type Meta struct {
	values map[string]any
}

// NewMeta copies values into a new Meta. Empty input returns nil.
func NewMeta(values map[string]any) *Meta {
	if len(values) == 0 {
		return nil
	}
	return &Meta{values: maps.Clone(values)}
}

// Get returns the value for key.
func (m *Meta) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in sorted order.
func (m *Meta) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(m.values))
}

// Map returns a copy of the underlying values.
func (m *Meta) Map() map[string]any {
	if m == nil {
		return nil
	}
	return maps.Clone(m.values)
}
