// Package tagtree models raw token-record input as a typed tree.
//
// Input files nest token records at inconsistent depths. Decode classifies
// every JSON value exactly once into one of three kinds:
//
//   - Node: an ordered sequence of subtrees (a document, sentence, ...)
//   - Record: a [text, label, extra] token record
//   - Label: a bare label string
//
// Normalize then reduces records to labels without changing the shape,
// and Labels flattens any tree to its label sequence in token order.
package tagtree

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jamesainslie/go-seqeval/iob"
)

// Kind discriminates the variants of Tree.
type Kind int

const (
	KindNode Kind = iota
	KindLabel
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindLabel:
		return "label"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Tree is a raw token tree.
type Tree struct {
	Kind     Kind
	Label    string          // KindLabel, KindRecord
	Text     string          // KindRecord
	Extra    *structpb.Value // KindRecord, may be nil
	Children []*Tree         // KindNode
}

// NewNode returns an interior node.
func NewNode(children ...*Tree) *Tree {
	return &Tree{Kind: KindNode, Children: children}
}

// NewLabel returns a bare label leaf.
func NewLabel(label string) *Tree {
	return &Tree{Kind: KindLabel, Label: label}
}

// NewRecord returns a token record leaf.
func NewRecord(text, label string, extra *structpb.Value) *Tree {
	return &Tree{Kind: KindRecord, Text: text, Label: label, Extra: extra}
}

// FromLabels builds a two-level tree (sentences of labels).
func FromLabels(sentences [][]string) *Tree {
	root := &Tree{Kind: KindNode, Children: make([]*Tree, 0, len(sentences))}
	for _, s := range sentences {
		node := &Tree{Kind: KindNode, Children: make([]*Tree, 0, len(s))}
		for _, l := range s {
			node.Children = append(node.Children, NewLabel(l))
		}
		root.Children = append(root.Children, node)
	}
	return root
}

// Normalize returns a copy of t in which every record is reduced to its
// label and the Unknown sentinel is rewritten to Outside. The nesting shape
// is preserved. Normalizing an already normalized tree changes nothing.
func Normalize(t *Tree) *Tree {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case KindRecord, KindLabel:
		return NewLabel(remapUnknown(t.Label))
	default:
		out := &Tree{Kind: KindNode, Children: make([]*Tree, len(t.Children))}
		for i, c := range t.Children {
			out.Children[i] = Normalize(c)
		}
		return out
	}
}

func remapUnknown(label string) string {
	if label == iob.Unknown {
		return iob.Outside
	}
	return label
}

// Labels returns the leaf labels of t in depth-first token order.
func Labels(t *Tree) []string {
	out := make([]string, 0, Len(t))
	walk(t, func(leaf *Tree) {
		out = append(out, leaf.Label)
	})
	return out
}

// Len returns the number of leaves (tokens) in t.
func Len(t *Tree) int {
	n := 0
	walk(t, func(*Tree) { n++ })
	return n
}

func walk(t *Tree, fn func(leaf *Tree)) {
	if t == nil {
		return
	}
	if t.Kind != KindNode {
		fn(t)
		return
	}
	for _, c := range t.Children {
		walk(c, fn)
	}
}
