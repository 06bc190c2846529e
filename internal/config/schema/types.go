package schema

import (
	"fmt"
	"strings"
)

// Type identifies the value kind a rule accepts.
type Type int

const (
	// TypeNumber is a finite float64.
	TypeNumber Type = iota
	// TypeString is a string, optionally restricted to an enum.
	TypeString
	// TypeBool is a boolean.
	TypeBool
	// TypeNumbers is an array of finite numbers.
	TypeNumbers
	// TypeStrings is an array of strings.
	TypeStrings
	// TypeDomain is a two-element array of finite numbers or sentinels.
	TypeDomain
	// TypeHandle is an opaque value such as a scale or axis generator.
	TypeHandle
)

// String returns the type name used in error messages.
func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeBool:
		return "boolean"
	case TypeNumbers:
		return "number array"
	case TypeStrings:
		return "string array"
	case TypeDomain:
		return "domain"
	case TypeHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// Domain sentinels resolved against the data extent.
const (
	DomainMin = "min"
	DomainMax = "max"
)

// Rule declares how one attribute key is validated.
type Rule struct {
	Key     string
	Type    Type
	Default any
	Doc     string

	enum         []string
	length       int
	min, max     *float64
	acceptScalar bool
	keyword      string
	check        func(any) error
}

// Number declares a finite number key.
func Number(key string, def float64) *Rule {
	return &Rule{Key: key, Type: TypeNumber, Default: def}
}

// String declares a free-form string key.
func String(key, def string) *Rule {
	return &Rule{Key: key, Type: TypeString, Default: def}
}

// Enum declares a string key restricted to allowed.
func Enum(key, def string, allowed ...string) *Rule {
	return &Rule{Key: key, Type: TypeString, Default: def, enum: allowed}
}

// Bool declares a boolean key.
func Bool(key string, def bool) *Rule {
	return &Rule{Key: key, Type: TypeBool, Default: def}
}

// Numbers declares a number array key.
func Numbers(key string, def ...float64) *Rule {
	return &Rule{Key: key, Type: TypeNumbers, Default: append([]float64{}, def...)}
}

// Strings declares a string array key.
func Strings(key string, def ...string) *Rule {
	return &Rule{Key: key, Type: TypeStrings, Default: append([]string{}, def...)}
}

// Domain declares a two-element domain key whose elements are finite numbers
// or the DomainMin and DomainMax sentinels.
func Domain(key string, lo, hi any) *Rule {
	return &Rule{Key: key, Type: TypeDomain, Default: []any{lo, hi}, length: 2}
}

// Handle declares an opaque key. Use Check to constrain the accepted values.
func Handle(key string) *Rule {
	return &Rule{Key: key, Type: TypeHandle}
}

// Min sets the inclusive lower bound for numbers and number elements.
func (r *Rule) Min(v float64) *Rule {
	r.min = &v
	return r
}

// Max sets the inclusive upper bound for numbers and number elements.
func (r *Rule) Max(v float64) *Rule {
	r.max = &v
	return r
}

// Len requires arrays to have exactly n elements.
func (r *Rule) Len(n int) *Rule {
	r.length = n
	return r
}

// OneOf restricts strings, or every string array element, to allowed.
func (r *Rule) OneOf(allowed ...string) *Rule {
	r.enum = allowed
	return r
}

// AcceptScalar lets a string array key accept a single string, stored as a
// one-element array.
func (r *Rule) AcceptScalar() *Rule {
	r.acceptScalar = true
	return r
}

// OrKeyword lets a string array key also accept the bare keyword, stored as
// a string. The palette key uses it for "auto".
func (r *Rule) OrKeyword(keyword string) *Rule {
	r.keyword = keyword
	return r
}

// Check adds a predicate run after the type checks.
func (r *Rule) Check(fn func(any) error) *Rule {
	r.check = fn
	return r
}

// Describe sets the rule documentation.
func (r *Rule) Describe(doc string) *Rule {
	r.Doc = doc
	return r
}

// Derived reports whether the key is computed by the chart rather than set
// by users. Derived keys start with an underscore.
func (r *Rule) Derived() bool {
	return strings.HasPrefix(r.Key, "_")
}

// Allowed returns the enum values, if any.
func (r *Rule) Allowed() []string {
	return r.enum
}

// Summary returns a one-line description of the accepted values.
func (r *Rule) Summary() string {
	var b strings.Builder
	b.WriteString(r.Type.String())
	if r.length > 0 {
		fmt.Fprintf(&b, "[%d]", r.length)
	}
	if len(r.enum) > 0 {
		fmt.Fprintf(&b, " of {%s}", strings.Join(r.enum, ","))
	}
	if r.keyword != "" {
		fmt.Fprintf(&b, " or %q", r.keyword)
	}
	if r.min != nil {
		fmt.Fprintf(&b, " >= %v", *r.min)
	}
	if r.max != nil {
		fmt.Fprintf(&b, " <= %v", *r.max)
	}
	return b.String()
}
