package registry

import (
	"fmt"

	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// FieldsFor returns the fields collected when crossing from -> to.
// A missing edge yields an empty slice: an allowed move may ask for nothing.
func (r *Registry) FieldsFor(from, to domain.LaneID) []domain.TransitionField {
	fields := r.fields[domain.TransitionRule{From: from, To: to}]
	out := make([]domain.TransitionField, len(fields))
	copy(out, fields)
	return out
}

// FieldValues keeps only the values declared for the from -> to edge.
// Undeclared names are dropped; empty values are kept since fields are optional.
func (r *Registry) FieldValues(from, to domain.LaneID, values map[string]string) map[string]string {
	out := make(map[string]string)
	for _, f := range r.fields[domain.TransitionRule{From: from, To: to}] {
		if v, ok := values[f.Name]; ok {
			out[f.Name] = v
		}
	}
	return out
}

// DecodeValues converts loosely typed form input (JSON numbers, booleans)
// into the string values stored in a TransitionRecord.
func DecodeValues(raw map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	if len(raw) == 0 {
		return out, nil
	}
	for name, v := range raw {
		if v == nil {
			out[name] = ""
			continue
		}
		var s string
		if err := mapstructure.WeakDecode(v, &s); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
}
