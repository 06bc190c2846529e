// Package schema declares per-key validation rules for attribute stores.
//
// A Schema is an ordered set of Rules built with the fluent constructors:
//
//	s := schema.New("canvas",
//	    schema.Number("width", 960).Min(0),
//	    schema.Numbers("margin", 20, 80, 50, 80).Len(4).Min(0),
//	    schema.Enum("orient", "bottom", "top", "bottom"),
//	    schema.Domain("xDomain", schema.DomainMin, schema.DomainMax),
//	)
//
// Validate returns the value in canonical form: numbers become float64,
// number arrays []float64, string arrays []string and domains []any holding
// float64 or a sentinel string. Validating a canonical value returns an equal
// value, so validation is idempotent.
package schema
