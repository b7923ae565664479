package gruptree

// Origin tags which keyword kind declared an edge.
type Origin string

const (
	OriginGruptree Origin = "GRUPTREE"
	OriginWelspecs Origin = "WELSPECS"
)

// Edge is one "child produces into parent" relation in the hierarchy.
type Edge struct {
	Child  string
	Parent string
	Origin Origin
}

type edgeKey struct {
	child, parent string
}

// EdgeSet is the accumulated hierarchy: a mapping from (child, parent)
// pair to origin tag, in first-insertion order. Entries are only ever
// added or overwritten, never removed, so a later keyword that moves a
// child under a new parent leaves the old (child, oldparent) entry in
// place unless that exact pair recurs. That is the literal accumulation
// behavior of the deck format as consumed here; see DESIGN.md for the
// open question around keying on the full pair versus the child alone.
type EdgeSet struct {
	order []edgeKey
	tags  map[edgeKey]Origin
}

// NewEdgeSet returns an empty accumulator.
func NewEdgeSet() *EdgeSet {
	return &EdgeSet{tags: make(map[edgeKey]Origin)}
}

// Record inserts or overwrites the edge for the exact (child, parent)
// pair. Overwriting does not change the pair's position in insertion
// order.
func (s *EdgeSet) Record(child, parent string, origin Origin) {
	key := edgeKey{child: child, parent: parent}
	if _, ok := s.tags[key]; !ok {
		s.order = append(s.order, key)
	}
	s.tags[key] = origin
}

// Len returns the number of active edges.
func (s *EdgeSet) Len() int {
	return len(s.order)
}

// Snapshot returns the full current edge set in stable insertion order.
func (s *EdgeSet) Snapshot() []Edge {
	edges := make([]Edge, 0, len(s.order))
	for _, key := range s.order {
		edges = append(edges, Edge{Child: key.child, Parent: key.parent, Origin: s.tags[key]})
	}
	return edges
}
