package data

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrJSON is returned for input that is not the canonical series document.
var ErrJSON = errors.New("invalid series json")

// ParseJSON reads the canonical series document.
func ParseJSON(b []byte) ([]Series, error) {
	if !gjson.ValidBytes(b) {
		return nil, fmt.Errorf("%w: malformed document", ErrJSON)
	}
	root := gjson.ParseBytes(b)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: top level must be an array of series", ErrJSON)
	}

	var (
		out []Series
		err error
	)
	root.ForEach(func(_, item gjson.Result) bool {
		var s Series
		s, err = parseSeries(len(out), item)
		if err != nil {
			return false
		}
		out = append(out, s)
		return true
	})
	if err != nil {
		return nil, err
	}
	return normalizeAll(out)
}

func parseSeries(i int, item gjson.Result) (Series, error) {
	if !item.IsObject() {
		return Series{}, fmt.Errorf("%w: series %d is not an object", ErrJSON, i)
	}
	name := item.Get("name")
	if name.Type != gjson.String {
		return Series{}, fmt.Errorf("%w: series %d needs a string name", ErrJSON, i)
	}
	points := item.Get("points")
	if points.Exists() && !points.IsArray() {
		return Series{}, fmt.Errorf("%w: series %q points must be an array", ErrJSON, name.String())
	}

	s := Series{Name: name.String()}
	var err error
	points.ForEach(func(_, p gjson.Result) bool {
		var pt Point
		pt, err = parsePoint(p)
		if err != nil {
			err = fmt.Errorf("%w: series %q point %d: %v", ErrJSON, s.Name, len(s.Points), err)
			return false
		}
		s.Points = append(s.Points, pt)
		return true
	})
	return s, err
}

func parsePoint(p gjson.Result) (Point, error) {
	if !p.IsObject() {
		return Point{}, errors.New("not an object")
	}
	var pt Point
	for _, f := range []struct {
		key      string
		dst      *float64
		required bool
	}{
		{"x", &pt.X, true},
		{"y", &pt.Y, true},
		{"z", &pt.Z, false},
	} {
		v := p.Get(f.key)
		switch {
		case v.Type == gjson.Number:
			*f.dst = v.Float()
		case !v.Exists() && !f.required:
		default:
			return Point{}, fmt.Errorf("%s must be a number", f.key)
		}
	}
	return pt, nil
}

// MarshalJSON writes series in the canonical document form.
func MarshalJSON(series []Series) ([]byte, error) {
	doc := []byte("[]")
	for _, s := range series {
		obj, err := sjson.SetBytes([]byte("{}"), "name", s.Name)
		if err != nil {
			return nil, err
		}
		if obj, err = sjson.SetRawBytes(obj, "points", []byte("[]")); err != nil {
			return nil, err
		}
		for _, p := range s.Points {
			if obj, err = sjson.SetBytes(obj, "points.-1", map[string]float64{"x": p.X, "y": p.Y, "z": p.Z}); err != nil {
				return nil, err
			}
		}
		if doc, err = sjson.SetRawBytes(doc, "-1", obj); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
