package gruptree

import "github.com/dd0wney/gruptree/pkg/deck"

// NetAttrs holds the network pressure-loss parameters of one group.
// Nil fields were defaulted or absent in the winning GRUPNET record.
type NetAttrs struct {
	TerminalPressure   *float64
	VFPTable           *int
	ALQ                *float64
	SubSeaManifold     *string
	LiftGasFlowThrough *string
	ALQSurfaceEqv      *string
}

// Empty reports whether no field is set.
func (a NetAttrs) Empty() bool {
	return a.TerminalPressure == nil && a.VFPTable == nil && a.ALQ == nil &&
		a.SubSeaManifold == nil && a.LiftGasFlowThrough == nil && a.ALQSurfaceEqv == nil
}

// NetTable is the per-group network attribute table. GRUPNET records
// are appended to a log spanning the whole scan; every block rebuilds
// the table from that log keeping the last record per group name, so a
// newer record for a group fully replaces the older one (fields the new
// record omits are gone), while groups untouched by the newest block
// keep their earlier records.
type NetTable struct {
	records []deck.NetRecord
	byName  map[string]NetAttrs
}

// NewNetTable returns an empty attribute table.
func NewNetTable() *NetTable {
	return &NetTable{byName: make(map[string]NetAttrs)}
}

// Rebuild appends one GRUPNET block's records to the log and rebuilds
// the table from the full log.
func (t *NetTable) Rebuild(recs []deck.NetRecord) {
	t.records = append(t.records, recs...)
	t.byName = make(map[string]NetAttrs, len(t.records))
	for _, rec := range t.records {
		t.byName[rec.Name] = NetAttrs{
			TerminalPressure:   rec.TerminalPressure,
			VFPTable:           rec.VFPTable,
			ALQ:                rec.ALQ,
			SubSeaManifold:     rec.SubSeaManifold,
			LiftGasFlowThrough: rec.LiftGasFlowThrough,
			ALQSurfaceEqv:      rec.ALQSurfaceEqv,
		}
	}
}

// Lookup returns the attributes for a group, if any record named it.
func (t *NetTable) Lookup(name string) (NetAttrs, bool) {
	attrs, ok := t.byName[name]
	return attrs, ok
}
