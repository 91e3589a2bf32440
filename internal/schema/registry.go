package schema

import (
	"math/rand"
	"strings"

	"github.com/querysim/querysim/internal/errors"
)

// Class categorizes a column for value synthesis and validation.
type Class string

const (
	ClassIdentifier  Class = "identifier"
	ClassForeignKey  Class = "foreign_key"
	ClassMeasurable  Class = "measurable"
	ClassCategorical Class = "categorical"
	ClassTemporal    Class = "temporal"
	ClassTextual     Class = "textual"
)

// Generator produces a synthetic value for a column. Generators must only
// draw randomness from the supplied source so callers can seed them.
type Generator func(r *rand.Rand) any

// Column describes a single column of a mock table. Columns without a
// Generator synthesize to an empty placeholder (identifiers and foreign
// keys are handled by class instead).
type Column struct {
	Name     string
	Class    Class
	Generate Generator
}

// Table is an ordered set of columns. Column order is significant: mock
// records preserve it.
type Table struct {
	Name    string
	Columns []Column
}

// Column returns the named column descriptor.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}

	return Column{}, false
}

// Registry is the static table catalog. It is built once at process start
// and read-only afterwards, so it may be shared across requests without
// synchronization.
type Registry struct {
	tables map[string]Table
	order  []string
}

// NewRegistry builds a registry from the given tables, preserving order.
func NewRegistry(tables ...Table) *Registry {
	r := &Registry{tables: make(map[string]Table, len(tables))}
	for _, t := range tables {
		if _, dup := r.tables[t.Name]; dup {
			continue
		}

		r.tables[t.Name] = t
		r.order = append(r.order, t.Name)
	}

	return r
}

// Table returns the named table.
func (r *Registry) Table(name string) (Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Has reports whether the registry contains the named table.
func (r *Registry) Has(name string) bool {
	_, ok := r.tables[name]
	return ok
}

// TableNames returns table names in registration order.
func (r *Registry) TableNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}

// Measurables returns the distinct measurable column names across all
// tables, in declaration order. The validator uses these as the known
// metric keywords.
func (r *Registry) Measurables() []string {
	var out []string

	seen := make(map[string]bool)

	for _, name := range r.order {
		for _, c := range r.tables[name].Columns {
			if c.Class == ClassMeasurable && !seen[c.Name] {
				seen[c.Name] = true
				out = append(out, c.Name)
			}
		}
	}

	return out
}

// Reference is a table (and optionally column) that some other component
// expects the registry to contain.
type Reference struct {
	Table  string
	Column string // empty means table-level reference
}

// Verify checks every reference against the catalog. A failure means the
// translation rules and the registry were built inconsistently; the caller
// should refuse to start rather than surface this per request.
func (r *Registry) Verify(refs []Reference) error {
	var missing []string

	for _, ref := range refs {
		t, ok := r.tables[ref.Table]
		if !ok {
			missing = append(missing, ref.Table)
			continue
		}

		if ref.Column == "" || ref.Column == "*" {
			continue
		}

		if _, ok := t.Column(ref.Column); !ok {
			missing = append(missing, ref.Table+"."+ref.Column)
		}
	}

	if len(missing) > 0 {
		return errors.Newf(errors.ErrTypeRegistry,
			"schema references unresolved in registry: %s", strings.Join(missing, ", "))
	}

	return nil
}
