package metrics

import "github.com/jamesainslie/go-seqeval/iob"

// Span is one entity occurrence inside a window. End is exclusive.
type Span struct {
	Type  string
	Start int
	End   int
}

// Spans extracts entity spans from one window of tags.
//
// A span opens at B-<T> and extends over following I-<T> tags. O, a tag of
// another type, or any B- tag closes it. An I-<T> that does not continue a
// span of type T opens a new span at that position.
func Spans(tags []iob.Tag) []Span {
	var spans []Span
	open := false

	for i, t := range tags {
		switch t.Prefix {
		case iob.PrefixB:
			spans = append(spans, Span{Type: t.Type, Start: i, End: i + 1})
			open = true
		case iob.PrefixI:
			if open && spans[len(spans)-1].Type == t.Type {
				spans[len(spans)-1].End = i + 1
				continue
			}
			spans = append(spans, Span{Type: t.Type, Start: i, End: i + 1})
			open = true
		default:
			open = false
		}
	}
	return spans
}
