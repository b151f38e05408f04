package ints

import (
	"testing"
)

func TestSet(t *testing.T) {
	s := NewSet(3, 1)
	if !s.Contains(1) || !s.Contains(3) || s.Contains(2) {
		t.Fatalf("unexpected contents: %v", s.ToSlice())
	}

	if !s.Add(2) {
		t.Fatal("expecting Add to report a change")
	}
	if s.Add(2) {
		t.Fatal("expecting Add to report no change")
	}

	other := NewSet(2, 5)
	if !s.AddSet(other) {
		t.Fatal("expecting AddSet to report a change")
	}
	if s.AddSet(other) {
		t.Fatal("expecting AddSet to report no change")
	}

	if s.Len() != 4 {
		t.Fatalf("expecting 4 items, got %d", s.Len())
	}

	items := s.ToSlice()
	expected := []int{1, 2, 3, 5}
	for i, item := range expected {
		if items[i] != item {
			t.Fatalf("expecting %v, got %v", expected, items)
		}
	}
}
