// Package selection tracks which rows of the flattened tree are selected.
// Entries are positional and must be remapped, not cleared, whenever rows
// are inserted or removed elsewhere in the list, so a selected node keeps
// its selected status as its position shifts.
package selection

import "sort"

// Set is a set of flattened-list positions.
type Set struct {
	members map[int]struct{}
}

// New returns an empty set.
func New() *Set {
	return &Set{members: make(map[int]struct{})}
}

// Toggle flips membership of pos and reports the new state.
func (s *Set) Toggle(pos int) bool {
	if _, ok := s.members[pos]; ok {
		delete(s.members, pos)
		return false
	}
	s.members[pos] = struct{}{}
	return true
}

// Contains reports whether pos is selected.
func (s *Set) Contains(pos int) bool {
	_, ok := s.members[pos]
	return ok
}

// Len returns the number of selected positions.
func (s *Set) Len() int { return len(s.members) }

// Clear empties the set.
func (s *Set) Clear() {
	s.members = make(map[int]struct{})
}

// Positions returns the selected positions in ascending order.
func (s *Set) Positions() []int {
	out := make([]int, 0, len(s.members))
	for p := range s.members {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// ToggleAll flips membership for every position in [0, n).
func (s *Set) ToggleAll(n int) {
	for i := 0; i < n; i++ {
		s.Toggle(i)
	}
}

// ShiftInsert remaps the set after n rows were inserted at position at:
// every selected position >= at moves up by n.
func (s *Set) ShiftInsert(at, n int) {
	if n == 0 || len(s.members) == 0 {
		return
	}
	next := make(map[int]struct{}, len(s.members))
	for p := range s.members {
		if p >= at {
			p += n
		}
		next[p] = struct{}{}
	}
	s.members = next
}

// ShiftRemove remaps the set after the n rows at [at, at+n) were removed:
// selections inside the removed range are dropped, positions past it move
// down by n.
func (s *Set) ShiftRemove(at, n int) {
	if n == 0 || len(s.members) == 0 {
		return
	}
	next := make(map[int]struct{}, len(s.members))
	for p := range s.members {
		switch {
		case p < at:
			next[p] = struct{}{}
		case p < at+n:
			// removed along with its row
		default:
			next[p-n] = struct{}{}
		}
	}
	s.members = next
}
