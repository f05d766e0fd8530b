// Package registry implements the process-wide suggestion registry. It
// accumulates, per entity tag and attribute name, the distinct values ever
// recorded, so that tooling can offer previously used values when new
// metadata is entered.
//
// A Registry starts uninitialized and must be brought up exactly once,
// either by Load from a Store or by InitEmpty. Every subsequent lifecycle
// violation (double load, save before init) is a StateError, not a
// validation failure.
package registry

import (
	"sort"

	"github.com/calliope-nlp/corpusmeta/core/errors"
)

// Field is a single (attribute name, value) pair eligible for recording.
// Entities declare their eligible fields explicitly as ordered data; the
// registry never inspects entity types itself.
type Field struct {
	Name  string
	Value string
}

// Mapping is the registry's persisted shape: entity tag -> attribute name ->
// distinct values in first-seen order.
type Mapping map[string]map[string][]string

// Store reads and writes a complete registry mapping. The registry file is
// small, so stores work on the whole mapping at once; there is no
// incremental format.
type Store interface {
	Read() (Mapping, error)
	Write(Mapping) error
}

type state int

const (
	stateUninitialized state = iota
	stateReady
)

// Registry accumulates previously-seen attribute values per entity tag.
type Registry struct {
	state state
	used  Mapping
}

// New returns an uninitialized registry. Call Load or InitEmpty before use.
func New() *Registry {
	return &Registry{}
}

// Ready reports whether the registry has been initialized.
func (r *Registry) Ready() bool {
	return r.state == stateReady
}

// Load deserializes the mapping from the store. It fails with a StateError
// if the registry is already initialized.
func (r *Registry) Load(s Store) error {
	if r.state != stateUninitialized {
		return errors.NewState("load", "registry already initialized")
	}
	m, err := s.Read()
	if err != nil {
		return err
	}
	if m == nil {
		m = Mapping{}
	}
	r.used = m
	r.state = stateReady
	return nil
}

// InitEmpty initializes the registry to an empty mapping. It fails with a
// StateError if the registry is already initialized.
func (r *Registry) InitEmpty() error {
	if r.state != stateUninitialized {
		return errors.NewState("init", "registry already initialized")
	}
	r.used = Mapping{}
	r.state = stateReady
	return nil
}

// Save serializes the mapping to the store verbatim. It fails with a
// StateError if the registry has not been initialized.
func (r *Registry) Save(s Store) error {
	if r.state != stateReady {
		return errors.NewState("save", "registry not initialized")
	}
	return s.Write(r.used)
}

// Record appends each field's value to the entity's distinct-value set,
// preserving first-seen order. Re-recording a value is a no-op. Fields with
// empty values are skipped: an absent optional attribute is not a useful
// suggestion.
func (r *Registry) Record(entityTag string, fields []Field) error {
	if r.state != stateReady {
		return errors.NewState("record", "registry not initialized")
	}
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		attrs, ok := r.used[entityTag]
		if !ok {
			attrs = map[string][]string{}
			r.used[entityTag] = attrs
		}
		if contains(attrs[f.Name], f.Value) {
			continue
		}
		attrs[f.Name] = append(attrs[f.Name], f.Value)
	}
	return nil
}

// Suggestions returns the previously recorded distinct values for the given
// entity tag and attribute, in first-seen order, or nil if none were
// recorded. The returned slice is a copy.
func (r *Registry) Suggestions(entityTag, attribute string) []string {
	attrs, ok := r.used[entityTag]
	if !ok {
		return nil
	}
	values, ok := attrs[attribute]
	if !ok {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// Attributes returns the attribute names recorded for an entity tag, sorted.
func (r *Registry) Attributes(entityTag string) []string {
	attrs, ok := r.used[entityTag]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a deep copy of the current mapping.
func (r *Registry) Snapshot() Mapping {
	out := make(Mapping, len(r.used))
	for tag, attrs := range r.used {
		outAttrs := make(map[string][]string, len(attrs))
		for name, values := range attrs {
			vs := make([]string, len(values))
			copy(vs, values)
			outAttrs[name] = vs
		}
		out[tag] = outAttrs
	}
	return out
}

func contains(values []string, v string) bool {
	for _, have := range values {
		if have == v {
			return true
		}
	}
	return false
}
