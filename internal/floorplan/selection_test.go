package floorplan

import (
	"reflect"
	"testing"
)

func TestToggleTwiceRestores(t *testing.T) {
	start := Selection{4, 9}
	got := start.Toggle(2).Toggle(2)
	if !reflect.DeepEqual(got, start) {
		t.Fatalf("got %v, want %v", got, start)
	}
	got = start.Toggle(4).Toggle(4)
	if !reflect.DeepEqual(got, Selection{9, 4}) {
		t.Fatalf("re-adding appends at the end, got %v", got)
	}
}

func TestToggleSequence(t *testing.T) {
	var s Selection
	s = s.Toggle(1) // A
	s = s.Toggle(2) // B
	s = s.Toggle(1) // A again
	if !reflect.DeepEqual(s, Selection{2}) {
		t.Fatalf("got %v, want [2]", s)
	}
}

func TestToggleDoesNotAlias(t *testing.T) {
	orig := make(Selection, 2, 8)
	orig[0], orig[1] = 1, 2
	a := orig.Toggle(3)
	b := orig.Toggle(4)
	if a[2] != 3 || b[2] != 4 {
		t.Fatalf("toggles share storage: %v %v", a, b)
	}
	if !reflect.DeepEqual(orig, Selection{1, 2}) {
		t.Fatalf("receiver mutated: %v", orig)
	}
}
