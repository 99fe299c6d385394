package iob

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrEmptyType indicates a catalog entry with an empty type name.
	ErrEmptyType = errors.New("iob: empty entity type")

	// ErrDuplicateType indicates the same type listed twice in a catalog.
	ErrDuplicateType = errors.New("iob: duplicate entity type")
)

// Catalog is the ordered, immutable set of known entity types.
type Catalog struct {
	types []string
}

// NewCatalog builds a catalog preserving the given order.
func NewCatalog(types ...string) (Catalog, error) {
	seen := make(map[string]struct{}, len(types))
	out := make([]string, 0, len(types))
	for _, t := range types {
		t = norm.NFC.String(t)
		if t == "" {
			return Catalog{}, ErrEmptyType
		}
		if _, dup := seen[t]; dup {
			return Catalog{}, fmt.Errorf("%w: %q", ErrDuplicateType, t)
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return Catalog{types: out}, nil
}

// MustCatalog is like NewCatalog but panics on error. Intended for
// package-level defaults and tests.
func MustCatalog(types ...string) Catalog {
	c, err := NewCatalog(types...)
	if err != nil {
		panic(err)
	}
	return c
}

// Types returns a copy of the catalog's types in order.
func (c Catalog) Types() []string {
	return append([]string(nil), c.types...)
}

// Len returns the number of types.
func (c Catalog) Len() int { return len(c.types) }

// Contains reports whether typ is a known type.
func (c Catalog) Contains(typ string) bool {
	return lo.Contains(c.types, norm.NFC.String(typ))
}
