package codes

import "strings"

// mapCodeSet implements CodeSet using a map for O(1) lookups. Codes are
// normalised to upper case on the way in.
type mapCodeSet struct {
	codes map[string]struct{}
}

// NewMapCodeSet creates a new map-based code set.
func NewMapCodeSet(capacity int) CodeSet {
	return &mapCodeSet{
		codes: make(map[string]struct{}, capacity),
	}
}

// NewCodeSetFrom builds a set from a slice of codes.
func NewCodeSetFrom(codes []string) CodeSet {
	set := &mapCodeSet{codes: make(map[string]struct{}, len(codes))}
	for _, c := range codes {
		set.Add(c)
	}
	return set
}

// Contains checks if a code exists in the set.
func (s *mapCodeSet) Contains(code string) bool {
	_, exists := s.codes[strings.ToUpper(strings.TrimSpace(code))]
	return exists
}

// Size returns the number of codes in the set.
func (s *mapCodeSet) Size() int {
	return len(s.codes)
}

// ToSlice returns the codes in unspecified order.
func (s *mapCodeSet) ToSlice() []string {
	out := make([]string, 0, len(s.codes))
	for c := range s.codes {
		out = append(out, c)
	}
	return out
}

// Add adds a code to the set.
func (s *mapCodeSet) Add(code string) {
	s.codes[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
}
