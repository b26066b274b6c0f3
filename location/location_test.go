package location_test

import (
	"testing"

	"github.com/QuTech-Delft/libqasm-sub003/location"
)

func TestExpand(t *testing.T) {
	s := location.AtPoint("foo.cq", true, location.Point{Line: 2, Column: 3})
	s.Expand(1, 1)
	s.Expand(5, 9)
	if s.Range.First != (location.Point{Line: 1, Column: 1}) {
		t.Fatalf("First = %v, want {1 1}", s.Range.First)
	}
	if s.Range.Last != (location.Point{Line: 5, Column: 9}) {
		t.Fatalf("Last = %v, want {5 9}", s.Range.Last)
	}
}

func TestExpandNeverShrinks(t *testing.T) {
	s := location.New("foo.cq", true, location.Point{Line: 2, Column: 1}, location.Point{Line: 2, Column: 10})
	s.Expand(2, 5)
	if s.Range.First.Column != 1 || s.Range.Last.Column != 10 {
		t.Fatalf("span shrank: %+v", s)
	}
}

func TestStringNoFile(t *testing.T) {
	s := location.New("", false, location.Point{Line: 1, Column: 1}, location.Point{Line: 1, Column: 4})
	want := "<unknown file name>:1:1..4"
	if got := s.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestCarrier(t *testing.T) {
	var n location.Node
	if _, ok := n.Location(); ok {
		t.Fatal("zero-value Node reports a location")
	}
	n.SetLocation(location.AtPoint("x", true, location.Point{Line: 1, Column: 1}))
	span, ok := n.Location()
	if !ok || span.FileName != "x" {
		t.Fatalf("SetLocation did not stick: %+v, %v", span, ok)
	}
}
