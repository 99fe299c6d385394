package config

import (
	"fmt"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Entity maps a display name to the label written into IOB2 tags.
type Entity struct {
	Name       string
	Label      string
	Attributes map[string]string
}

// EntityDict is an ordered mapping of entity names. In YAML it is written
// as a mapping `name: [label, {attributes}]`, and key order is preserved.
type EntityDict []Entity

// Names returns the entity names in order.
func (d EntityDict) Names() []string {
	names := make([]string, len(d))
	for i, e := range d {
		names[i] = e.Name
	}
	return names
}

// Tags returns the distinct labels in order of first appearance.
func (d EntityDict) Tags() []string {
	return lo.Uniq(lo.Map(d, func(e Entity, _ int) string { return e.Label }))
}

// Labels returns a name -> label lookup.
func (d EntityDict) Labels() map[string]string {
	m := make(map[string]string, len(d))
	for _, e := range d {
		m[e.Name] = e.Label
	}
	return m
}

// UnmarshalYAML decodes the mapping form while keeping key order. A bare
// scalar value is accepted as the label with no attributes.
func (d *EntityDict) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: entity_dict must be a mapping", n.Line)
	}

	out := make(EntityDict, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		e := Entity{Name: key.Value}

		switch val.Kind {
		case yaml.ScalarNode:
			e.Label = val.Value
		case yaml.SequenceNode:
			if len(val.Content) == 0 || val.Content[0].Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: entity %q: first element must be the label", val.Line, e.Name)
			}
			e.Label = val.Content[0].Value
			if len(val.Content) > 1 {
				if err := val.Content[1].Decode(&e.Attributes); err != nil {
					return fmt.Errorf("line %d: entity %q attributes: %w", val.Line, e.Name, err)
				}
			}
		default:
			return fmt.Errorf("line %d: entity %q: want [label, {attributes}]", val.Line, e.Name)
		}

		if e.Label == "" {
			e.Label = e.Name
		}
		out = append(out, e)
	}

	*d = out
	return nil
}

// DefaultEntities returns the CANSpiN spatial entity dictionary.
func DefaultEntities() EntityDict {
	names := []string{
		"Ort-Container",
		"Ort-Container-BK",
		"Ort-Objekt",
		"Ort-Objekt-BK",
		"Ort-Abstrakt",
		"Ort-Abstrakt-BK",
		"Ort-ALT",
		"Bewegung-Subjekt",
		"Bewegung-Objekt",
		"Bewegung-Licht",
		"Bewegung-Schall",
		"Bewegung-Geruch",
		"Bewegung-ALT",
		"Dimensionierung-Menge",
		"Dimensionierung-Abstand",
		"Dimensionierung-Groesse",
		"Dimensionierung-ALT",
		"Richtung",
		"Richtung-ALT",
		"Positionierung",
		"Positionierung-ALT",
	}
	d := make(EntityDict, len(names))
	for i, n := range names {
		d[i] = Entity{Name: n, Label: n, Attributes: map[string]string{}}
	}
	return d
}
