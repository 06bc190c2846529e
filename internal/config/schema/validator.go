package schema

import (
	"fmt"
	"math"
	"slices"
)

// Validate checks value against the rule and returns its canonical form.
func (r *Rule) Validate(value any) (any, *ValidationError) {
	var (
		out any
		err *ValidationError
	)

	switch r.Type {
	case TypeNumber:
		out, err = r.number(r.Key, value)
	case TypeString:
		out, err = r.str(r.Key, value)
	case TypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, NewTypeError(r.Key, "boolean", value)
		}
		out = b
	case TypeNumbers:
		out, err = r.numbers(value)
	case TypeStrings:
		out, err = r.strs(value)
	case TypeDomain:
		out, err = r.domain(value)
	case TypeHandle:
		if value == nil {
			return nil, NewTypeError(r.Key, "handle", value)
		}
		out = value
	default:
		return nil, &ValidationError{Path: r.Key, Message: fmt.Sprintf("unsupported rule type %d", r.Type)}
	}
	if err != nil {
		return nil, err
	}

	if r.check != nil {
		if cerr := r.check(out); cerr != nil {
			return nil, &ValidationError{Path: r.Key, Message: cerr.Error(), Value: value}
		}
	}
	return out, nil
}

func (r *Rule) number(path string, value any) (float64, *ValidationError) {
	f, ok := ToFloat(value)
	if !ok {
		return 0, NewTypeError(path, "number", value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, NewRangeError(path, value, nil, nil)
	}
	if (r.min != nil && f < *r.min) || (r.max != nil && f > *r.max) {
		return 0, NewRangeError(path, value, r.min, r.max)
	}
	return f, nil
}

func (r *Rule) str(path string, value any) (string, *ValidationError) {
	s, ok := value.(string)
	if !ok {
		return "", NewTypeError(path, "string", value)
	}
	if len(r.enum) > 0 && !slices.Contains(r.enum, s) {
		return "", NewEnumError(path, s, r.enum)
	}
	return s, nil
}

func (r *Rule) numbers(value any) (any, *ValidationError) {
	items, ok := toSlice(value)
	if !ok {
		return nil, NewTypeError(r.Key, "number array", value)
	}
	if r.length > 0 && len(items) != r.length {
		return nil, NewLengthError(r.Key, value, r.length, len(items))
	}

	out := make([]float64, len(items))
	for i, item := range items {
		f, err := r.number(fmt.Sprintf("%s[%d]", r.Key, i), item)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func (r *Rule) strs(value any) (any, *ValidationError) {
	if s, ok := value.(string); ok {
		switch {
		case r.keyword != "" && s == r.keyword:
			return s, nil
		case r.acceptScalar:
			value = []string{s}
		default:
			return nil, NewTypeError(r.Key, "string array", value)
		}
	}

	items, ok := toSlice(value)
	if !ok {
		return nil, NewTypeError(r.Key, "string array", value)
	}
	if r.length > 0 && len(items) != r.length {
		return nil, NewLengthError(r.Key, value, r.length, len(items))
	}

	out := make([]string, len(items))
	for i, item := range items {
		s, err := r.str(fmt.Sprintf("%s[%d]", r.Key, i), item)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func (r *Rule) domain(value any) (any, *ValidationError) {
	items, ok := toSlice(value)
	if !ok {
		return nil, NewTypeError(r.Key, "domain", value)
	}
	if len(items) != 2 {
		return nil, NewLengthError(r.Key, value, 2, len(items))
	}

	out := make([]any, 2)
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", r.Key, i)
		if s, ok := item.(string); ok {
			if s != DomainMin && s != DomainMax {
				return nil, NewEnumError(path, s, []string{DomainMin, DomainMax})
			}
			out[i] = s
			continue
		}
		f, err := r.number(path, item)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// ToFloat converts any Go numeric type to float64. Strings are not numbers.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []float64:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, true
	case []int:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, true
	case []string:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, true
	case [2]float64:
		return []any{s[0], s[1]}, true
	default:
		return nil, false
	}
}
