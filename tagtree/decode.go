package tagtree

import (
	"errors"
	"fmt"
	"os"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jamesainslie/go-seqeval/iob"
)

var (
	// ErrStructure indicates a value that is neither a token record, a
	// label string, nor a sequence of those.
	ErrStructure = errors.New("tagtree: malformed token structure")

	// ErrDecode indicates the input is not valid JSON.
	ErrDecode = errors.New("tagtree: invalid JSON")
)

// DecodeFile reads and decodes a JSON token file.
func DecodeFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	t, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Decode parses a JSON document of arbitrarily nested token records.
func Decode(data []byte) (*Tree, error) {
	var v structpb.Value
	if err := protojson.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return FromValue(&v)
}

// FromValue classifies an already parsed value.
func FromValue(v *structpb.Value) (*Tree, error) {
	return fromValue(v, "$")
}

func fromValue(v *structpb.Value, path string) (*Tree, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return NewLabel(k.StringValue), nil

	case *structpb.Value_ListValue:
		items := k.ListValue.GetValues()
		if isRecord(items) {
			return recordFrom(items, path)
		}
		node := &Tree{Kind: KindNode, Children: make([]*Tree, 0, len(items))}
		for i, item := range items {
			child, err := fromValue(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
		return node, nil

	default:
		return nil, fmt.Errorf("%w: %s: unexpected %s", ErrStructure, path, kindName(v))
	}
}

// isRecord reports whether a three element list is a token record rather
// than a sentence of three labels. A list whose elements are all label
// strings is treated as a label sequence so pre-normalized input decodes
// unchanged.
func isRecord(items []*structpb.Value) bool {
	if len(items) != 3 {
		return false
	}
	if _, ok := items[0].GetKind().(*structpb.Value_StringValue); !ok {
		return false
	}
	for _, item := range items {
		s, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok || !iob.IsLabelish(s.StringValue) {
			return true
		}
	}
	return false
}

func recordFrom(items []*structpb.Value, path string) (*Tree, error) {
	label, ok := items[1].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil, fmt.Errorf("%w: %s: record label is %s, want string", ErrStructure, path, kindName(items[1]))
	}
	return NewRecord(items[0].GetStringValue(), label.StringValue, items[2]), nil
}

func kindName(v *structpb.Value) string {
	switch v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return "null"
	case *structpb.Value_NumberValue:
		return "number"
	case *structpb.Value_BoolValue:
		return "bool"
	case *structpb.Value_StructValue:
		return "object"
	case *structpb.Value_StringValue:
		return "string"
	case *structpb.Value_ListValue:
		return "list"
	default:
		return "empty value"
	}
}
