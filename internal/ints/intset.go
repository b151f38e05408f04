// Package ints provides a small integer set used for lookahead sets and
// table construction. It is only exercised at grammar build/load time, so
// simplicity wins over compactness.
package ints

import (
	"sort"
)

// Set is an unordered set of ints.
type Set map[int]struct{}

func NewSet(items ...int) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Add inserts item and reports whether the set changed.
func (s Set) Add(item int) bool {
	_, found := s[item]
	if found {
		return false
	}
	s[item] = struct{}{}
	return true
}

// AddSet inserts all items of t and reports whether the set changed.
func (s Set) AddSet(t Set) bool {
	changed := false
	for item := range t {
		changed = s.Add(item) || changed
	}
	return changed
}

func (s Set) Contains(item int) bool {
	_, found := s[item]
	return found
}

func (s Set) Len() int {
	return len(s)
}

// ToSlice returns the items in ascending order.
func (s Set) ToSlice() []int {
	items := make([]int, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Ints(items)
	return items
}
