package topic

// Matcher finds the subscription patterns that match a concrete topic.
// Patterns are stored in a trie keyed by segment so a lookup costs one walk
// per wildcard branch rather than one comparison per pattern.
//
// A Matcher is not safe for concurrent use.
type Matcher struct {
	root *trieNode
	size int
}

type trieNode struct {
	children map[string]*trieNode
	patterns []Topic
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[string]*trieNode)}
}

// NewMatcher creates an empty matcher.
func NewMatcher() *Matcher {
	return &Matcher{root: newTrieNode()}
}

// Add inserts a pattern. Adding the same pattern twice has no effect.
func (m *Matcher) Add(pattern Topic) {
	if pattern == "" {
		return
	}

	node := m.root
	for _, seg := range pattern.Segments() {
		child := node.children[seg]
		if child == nil {
			child = newTrieNode()
			node.children[seg] = child
		}
		node = child
	}

	for _, p := range node.patterns {
		if p == pattern {
			return
		}
	}
	node.patterns = append(node.patterns, pattern)
	m.size++
}

// Remove deletes a pattern and prunes branches left empty.
func (m *Matcher) Remove(pattern Topic) {
	if pattern == "" {
		return
	}
	if m.remove(m.root, pattern, pattern.Segments()) {
		m.size--
	}
}

func (m *Matcher) remove(node *trieNode, pattern Topic, segs []string) bool {
	if len(segs) == 0 {
		for i, p := range node.patterns {
			if p == pattern {
				node.patterns = append(node.patterns[:i], node.patterns[i+1:]...)
				return true
			}
		}
		return false
	}

	child := node.children[segs[0]]
	if child == nil {
		return false
	}
	removed := m.remove(child, pattern, segs[1:])
	if removed && len(child.children) == 0 && len(child.patterns) == 0 {
		delete(node.children, segs[0])
	}
	return removed
}

// Has reports whether the exact pattern has been added.
func (m *Matcher) Has(pattern Topic) bool {
	node := m.root
	for _, seg := range pattern.Segments() {
		node = node.children[seg]
		if node == nil {
			return false
		}
	}
	for _, p := range node.patterns {
		if p == pattern {
			return true
		}
	}
	return false
}

// Match returns every stored pattern matching the concrete topic, each once.
func (m *Matcher) Match(eventTopic Topic) []Topic {
	if eventTopic == "" {
		return nil
	}

	seen := make(map[Topic]struct{})
	var matches []Topic
	m.match(m.root, eventTopic.Segments(), 0, seen, &matches)
	return matches
}

func (m *Matcher) match(node *trieNode, segs []string, depth int, seen map[Topic]struct{}, out *[]Topic) {
	if depth == len(segs) {
		for _, p := range node.patterns {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				*out = append(*out, p)
			}
		}
		if child := node.children[WildcardMulti]; child != nil {
			m.match(child, segs, depth, seen, out)
		}
		return
	}

	if child := node.children[segs[depth]]; child != nil {
		m.match(child, segs, depth+1, seen, out)
	}
	if child := node.children[WildcardSingle]; child != nil {
		m.match(child, segs, depth+1, seen, out)
	}
	if child := node.children[WildcardMulti]; child != nil {
		for i := depth; i <= len(segs); i++ {
			m.match(child, segs, i, seen, out)
		}
	}
}

// Len returns the number of stored patterns.
func (m *Matcher) Len() int {
	return m.size
}
