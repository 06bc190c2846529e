package schema

// Schema is the ordered rule set of one attribute store.
type Schema struct {
	name  string
	rules []*Rule
	index map[string]*Rule
}

// New creates a schema. A later rule for the same key replaces an earlier one.
func New(name string, rules ...*Rule) *Schema {
	s := &Schema{name: name, index: make(map[string]*Rule, len(rules))}
	for _, r := range rules {
		s.Add(r)
	}
	return s
}

// Add declares another rule.
func (s *Schema) Add(r *Rule) {
	if _, ok := s.index[r.Key]; ok {
		for i, existing := range s.rules {
			if existing.Key == r.Key {
				s.rules[i] = r
			}
		}
	} else {
		s.rules = append(s.rules, r)
	}
	s.index[r.Key] = r
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// Rule returns the rule for key.
func (s *Schema) Rule(key string) (*Rule, bool) {
	r, ok := s.index[key]
	return r, ok
}

// Has reports whether key is declared.
func (s *Schema) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Rules returns the rules in declaration order.
func (s *Schema) Rules() []*Rule {
	return append([]*Rule(nil), s.rules...)
}

// Keys returns the declared keys in declaration order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.rules))
	for i, r := range s.rules {
		keys[i] = r.Key
	}
	return keys
}

// Validate checks value against the rule for key and returns it in canonical
// form. Undeclared keys yield an unknown property error.
func (s *Schema) Validate(key string, value any) (any, error) {
	r, ok := s.index[key]
	if !ok {
		return nil, NewUnknownPropertyError(key)
	}
	v, verr := r.Validate(value)
	if verr != nil {
		return nil, verr
	}
	return v, nil
}
