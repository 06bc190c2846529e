package attr

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/tschart/internal/config/schema"
)

// Result reports the outcome of one write batch.
type Result struct {
	// Store is the name of the written store.
	Store string

	// Changed lists the keys whose value changed, in schema order.
	Changed []string

	// Rejected holds the validation failures. Rejected keys kept their value.
	Rejected *schema.ValidationErrors

	// Unknown lists undeclared keys that were dropped.
	Unknown []string

	// PublishErr joins errors returned by subscribers of the change events.
	PublishErr error
}

// OK reports whether every key in the batch was accepted.
func (r Result) OK() bool {
	return !r.Rejected.HasErrors() && len(r.Unknown) == 0
}

// Has reports whether key changed.
func (r Result) Has(key string) bool {
	return slices.Contains(r.Changed, key)
}

// Err returns an *Error describing rejected and unknown keys, or nil.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Store: r.Store, Rejected: r.Rejected, Unknown: r.Unknown}
}

// Merge folds another result into r. Store names are kept from r.
func (r *Result) Merge(other Result) {
	r.Changed = append(r.Changed, other.Changed...)
	r.Unknown = append(r.Unknown, other.Unknown...)
	if other.Rejected.HasErrors() {
		if r.Rejected == nil {
			r.Rejected = &schema.ValidationErrors{}
		}
		r.Rejected.Merge(other.Rejected)
	}
	if other.PublishErr != nil && r.PublishErr == nil {
		r.PublishErr = other.PublishErr
	}
}

// Error is returned for batches containing rejected or unknown keys.
type Error struct {
	Store    string
	Rejected *schema.ValidationErrors
	Unknown  []string
}

func (e *Error) Error() string {
	var parts []string
	if e.Rejected.HasErrors() {
		parts = append(parts, e.Rejected.Error())
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, fmt.Sprintf("unknown attributes %v", e.Unknown))
	}
	return fmt.Sprintf("%s: %s", e.Store, strings.Join(parts, "; "))
}

// Unwrap exposes the validation errors to errors.As.
func (e *Error) Unwrap() error {
	return e.Rejected.AsError()
}
