// Package iob parses IOB2 labels and holds the catalog of known entity types.
package iob

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// Outside is the label for tokens outside any entity.
	Outside = "O"

	// Unknown is the sentinel label some taggers emit for unknown tokens.
	// It is remapped to Outside during normalization.
	Unknown = "UNK"
)

// ErrInvalidLabel indicates a value that is not O, B-<Type> or I-<Type>.
var ErrInvalidLabel = errors.New("iob: invalid label")

// Prefix is the positional part of an IOB2 label.
type Prefix byte

const (
	PrefixO Prefix = 'O'
	PrefixB Prefix = 'B'
	PrefixI Prefix = 'I'
)

// Tag is a parsed IOB2 label.
type Tag struct {
	Prefix Prefix
	Type   string // empty for PrefixO
}

// IsOutside reports whether the tag is O.
func (t Tag) IsOutside() bool { return t.Prefix == PrefixO }

// String renders the tag back to its label form.
func (t Tag) String() string {
	if t.Prefix == PrefixO {
		return Outside
	}
	return string(t.Prefix) + "-" + t.Type
}

// Parse parses a label. The input is NFC-normalized first so that
// decomposed umlauts in type names compare equal to composed ones.
func Parse(label string) (Tag, error) {
	s := norm.NFC.String(label)
	if s == Outside {
		return Tag{Prefix: PrefixO}, nil
	}

	prefix, typ, ok := strings.Cut(s, "-")
	if !ok || typ == "" || len(prefix) != 1 {
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}

	switch Prefix(prefix[0]) {
	case PrefixB, PrefixI:
		return Tag{Prefix: Prefix(prefix[0]), Type: typ}, nil
	default:
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
}

// Canonical parses label and returns its normalized string form.
func Canonical(label string) (string, error) {
	t, err := Parse(label)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// IsLabelish reports whether s parses as a label or is the Unknown sentinel.
func IsLabelish(s string) bool {
	if s == Unknown {
		return true
	}
	_, err := Parse(s)
	return err == nil
}

// ParseSequence parses every label in seq. The error names the first bad position.
func ParseSequence(seq []string) ([]Tag, error) {
	tags := make([]Tag, len(seq))
	for i, s := range seq {
		t, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		tags[i] = t
	}
	return tags, nil
}
