package gruptree

import (
	"reflect"
	"testing"
)

func TestEdgeSet_InsertionOrder(t *testing.T) {
	s := NewEdgeSet()
	s.Record("OP", "FIELD", OriginGruptree)
	s.Record("WI", "FIELD", OriginGruptree)
	s.Record("OP1", "OP", OriginWelspecs)

	want := []Edge{
		{Child: "OP", Parent: "FIELD", Origin: OriginGruptree},
		{Child: "WI", Parent: "FIELD", Origin: OriginGruptree},
		{Child: "OP1", Parent: "OP", Origin: OriginWelspecs},
	}
	if got := s.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot() = %v, want %v", got, want)
	}
}

// TestEdgeSet_OverwriteKeepsPosition: re-recording a pair changes its
// tag but not its place in the ordering
func TestEdgeSet_OverwriteKeepsPosition(t *testing.T) {
	s := NewEdgeSet()
	s.Record("OP1", "OP", OriginGruptree)
	s.Record("WI", "FIELD", OriginGruptree)
	s.Record("OP1", "OP", OriginWelspecs)

	got := s.Snapshot()
	if len(got) != 2 {
		t.Fatalf("Snapshot() has %d edges, want 2", len(got))
	}
	if got[0].Child != "OP1" || got[0].Origin != OriginWelspecs {
		t.Errorf("Snapshot()[0] = %v, want OP1 with WELSPECS tag first", got[0])
	}
}

// TestEdgeSet_ReassignedChildKeepsStaleEdge: keying is on the full
// (child, parent) pair, so moving a child under a new parent leaves the
// old pair in place
func TestEdgeSet_ReassignedChildKeepsStaleEdge(t *testing.T) {
	s := NewEdgeSet()
	s.Record("OP1", "OP", OriginWelspecs)
	s.Record("OP1", "WI", OriginWelspecs)

	got := s.Snapshot()
	if len(got) != 2 {
		t.Fatalf("Snapshot() has %d edges, want both parent assignments", len(got))
	}
	if got[0].Parent != "OP" || got[1].Parent != "WI" {
		t.Errorf("Snapshot() = %v", got)
	}
}

func TestEdgeSet_Len(t *testing.T) {
	s := NewEdgeSet()
	if s.Len() != 0 {
		t.Errorf("empty Len() = %d", s.Len())
	}
	s.Record("OP", "FIELD", OriginGruptree)
	s.Record("OP", "FIELD", OriginGruptree)
	if s.Len() != 1 {
		t.Errorf("Len() = %d after duplicate Record, want 1", s.Len())
	}
}
