package query

// OrderedSet is a string set that remembers insertion order. Re-adding an
// existing value is a no-op, so the first occurrence wins.
type OrderedSet struct {
	items []string
	seen  map[string]struct{}
}

// NewOrderedSet creates an empty ordered set.
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{
		seen: make(map[string]struct{}),
	}
}

// Add inserts value unless it is already present.
func (s *OrderedSet) Add(value string) {
	if _, ok := s.seen[value]; ok {
		return
	}
	s.seen[value] = struct{}{}
	s.items = append(s.items, value)
}

// Contains reports whether value is in the set.
func (s *OrderedSet) Contains(value string) bool {
	_, ok := s.seen[value]
	return ok
}

// Values returns the members in insertion order.
func (s *OrderedSet) Values() []string {
	return s.items
}

// Len returns the number of members.
func (s *OrderedSet) Len() int {
	return len(s.items)
}
