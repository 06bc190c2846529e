package attr

import (
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/dshills/tschart/internal/config/schema"
)

// ToJSON encodes the store as a JSON object in schema order. Handles are
// encoded through their String method when they have one and skipped when
// they cannot be encoded.
func (s *Store) ToJSON() ([]byte, error) {
	out := []byte("{}")
	for _, r := range s.schema.Rules() {
		v, ok := s.values[r.Key]
		if !ok || v == nil {
			continue
		}

		if r.Type == schema.TypeHandle {
			if str, ok := v.(fmt.Stringer); ok {
				v = str.String()
			}
			if next, err := sjson.SetBytes(out, r.Key, v); err == nil {
				out = next
			}
			continue
		}

		next, err := sjson.SetBytes(out, r.Key, v)
		if err != nil {
			return nil, fmt.Errorf("encode %s.%s: %w", s.name, r.Key, err)
		}
		out = next
	}
	return out, nil
}
