// util/generic_test.go
// Copyright(c) 2023-2026 flightsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"slices"
	"testing"
)

func TestSortedMapKeys(t *testing.T) {
	m := map[string]int{"charlie": 3, "alpha": 1, "bravo": 2}
	if got := SortedMapKeys(m); !slices.Equal(got, []string{"alpha", "bravo", "charlie"}) {
		t.Errorf("SortedMapKeys: got %v", got)
	}

	if got := SortedMapKeys(map[int]string{}); len(got) != 0 {
		t.Errorf("SortedMapKeys of empty map: got %v", got)
	}
}

func TestSelect(t *testing.T) {
	if got := Select(true, 1, 2); got != 1 {
		t.Errorf("Select(true): got %v", got)
	}
	if got := Select(false, "a", "b"); got != "b" {
		t.Errorf("Select(false): got %v", got)
	}
}

func TestRingBuffer(t *testing.T) {
	rb := NewRingBuffer[int](10)

	if rb.Size() != 0 {
		t.Errorf("empty should have zero size")
	}

	rb.Add(0, 1, 2, 3, 4)
	if rb.Size() != 5 {
		t.Errorf("expected size 5, got %d", rb.Size())
	}
	for i := 0; i < 5; i++ {
		if rb.Get(i) != i {
			t.Errorf("expected %d, got %d", i, rb.Get(i))
		}
	}

	for i := 5; i < 18; i++ {
		rb.Add(i)
	}
	if rb.Size() != 10 {
		t.Errorf("expected size 10, got %d", rb.Size())
	}
	for i := 0; i < 10; i++ {
		if rb.Get(i) != 8+i {
			t.Errorf("expected %d, got %d", 8+i, rb.Get(i))
		}
	}
}
