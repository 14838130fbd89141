package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrTableNotFound is matched by every NotFoundError.
var ErrTableNotFound = errors.New("table not found")

// NotFoundError reports that no loaded table satisfies a view's requirement.
type NotFoundError struct {
	Kind    *Kind
	Column  string
	Missing []string
}

func (e *NotFoundError) Error() string {
	switch {
	case e.Kind != nil && len(e.Missing) > 0:
		return fmt.Sprintf("table %q is missing column(s) %s", e.Kind.DisplayName(), strings.Join(e.Missing, ", "))
	case e.Kind != nil:
		return fmt.Sprintf("table %q is not loaded", e.Kind.DisplayName())
	default:
		return fmt.Sprintf("no loaded table has column %q", e.Column)
	}
}

func (e *NotFoundError) Is(target error) bool { return target == ErrTableNotFound }

// Entry is one registry slot: a table tagged with its logical name and kind.
type Entry struct {
	Name  string
	Kind  Kind
	Table *Table
}

// Registry holds the loaded tables of one session in insertion order.
// It is never modified after construction; reloading builds a new Registry.
type Registry struct {
	entries []Entry
}

// NewRegistry validates that names and kinds are unique and freezes the entries.
func NewRegistry(entries ...Entry) (*Registry, error) {
	names := map[string]struct{}{}
	kinds := map[Kind]struct{}{}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Table == nil {
			return nil, eris.Errorf("registry: entry %q has no table", e.Name)
		}
		if _, dup := names[e.Name]; dup {
			return nil, eris.Errorf("registry: duplicate table name %q", e.Name)
		}
		if _, dup := kinds[e.Kind]; dup {
			return nil, eris.Errorf("registry: duplicate dataset kind %s", e.Kind)
		}
		names[e.Name] = struct{}{}
		kinds[e.Kind] = struct{}{}
		out = append(out, e)
	}
	return &Registry{entries: out}, nil
}

// Len returns the number of tables.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns the entries in insertion order. Tables are shared; use Table or
// Resolve to obtain a copy that may be modified.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Resolve returns a copy of the first table, in insertion order, that has column.
// When several tables share the column the earliest one wins.
func (r *Registry) Resolve(column string) (*Table, error) {
	for _, e := range r.entries {
		if e.Table.HasColumn(column) {
			return e.Table.Clone(), nil
		}
	}
	return nil, &NotFoundError{Column: column}
}

// Table returns a copy of the table tagged with kind.
func (r *Registry) Table(kind Kind) (*Table, error) {
	for _, e := range r.entries {
		if e.Kind == kind {
			return e.Table.Clone(), nil
		}
	}
	k := kind
	return nil, &NotFoundError{Kind: &k}
}

// Require returns a copy of the kind's table after checking it has every listed column.
func (r *Registry) Require(kind Kind, columns ...string) (*Table, error) {
	t, err := r.Table(kind)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, c := range columns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		k := kind
		return nil, &NotFoundError{Kind: &k, Column: missing[0], Missing: missing}
	}
	return t, nil
}
