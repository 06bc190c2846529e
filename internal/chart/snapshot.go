package chart

import (
	"github.com/tidwall/sjson"
)

// Snapshot returns a copy of every attribute, keyed by store name.
func (c *Chart) Snapshot() map[string]map[string]any {
	out := make(map[string]map[string]any)
	for _, s := range c.stores() {
		out[s.Name()] = s.Snapshot()
	}
	return out
}

// ToJSON encodes every store and the data as one document:
// {"canvas": {...}, "axes": {...}, ..., "data": [...]}.
// Handles are written as their description.
func (c *Chart) ToJSON() ([]byte, error) {
	doc := []byte("{}")
	for _, s := range c.stores() {
		b, err := s.ToJSON()
		if err != nil {
			return nil, err
		}
		if doc, err = sjson.SetRawBytes(doc, s.Name(), b); err != nil {
			return nil, err
		}
	}
	b, err := c.DataJSON()
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(doc, "data", b)
}
