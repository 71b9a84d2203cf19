package utils

// IDSet tracks integer ids already seen.
type IDSet struct {
	seen map[int]struct{}
}

// NewIDSet creates an empty IDSet with room for n ids.
func NewIDSet(n int) *IDSet {
	return &IDSet{seen: make(map[int]struct{}, n)}
}

// Add returns true if id was newly added, false if already present.
func (s *IDSet) Add(id int) bool {
	if _, exists := s.seen[id]; exists {
		return false
	}
	s.seen[id] = struct{}{}
	return true
}

// Contains reports whether id has been added.
func (s *IDSet) Contains(id int) bool {
	_, exists := s.seen[id]
	return exists
}

// Size returns the number of unique ids tracked.
func (s *IDSet) Size() int {
	return len(s.seen)
}
