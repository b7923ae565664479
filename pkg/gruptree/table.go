package gruptree

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// dateLayout is the calendar date format used in output.
const dateLayout = "2006-01-02"

// Attribute column names, in output order. NAME itself is never a
// column: attributes are joined onto the CHILD column.
const (
	colDate               = "DATE"
	colChild              = "CHILD"
	colParent             = "PARENT"
	colType               = "TYPE"
	colTerminalPressure   = "TERMINAL_PRESSURE"
	colVFPTable           = "VFP_TABLE"
	colALQ                = "ALQ"
	colSubSeaManifold     = "SUB_SEA_MANIFOLD"
	colLiftGasFlowThrough = "LIFT_GAS_FLOW_THROUGH"
	colALQSurfaceEqv      = "ALQ_SURFACE_EQV"
)

var attrColumns = []string{
	colTerminalPressure,
	colVFPTable,
	colALQ,
	colSubSeaManifold,
	colLiftGasFlowThrough,
	colALQSurfaceEqv,
}

// Row is one emitted snapshot row: an active edge at a simulated date,
// joined with the child's network attributes as of emission time.
type Row struct {
	Date   time.Time
	Child  string
	Parent string
	Type   Origin
	Attrs  NetAttrs
}

// Table is the primary output: snapshot rows in emission order.
type Table struct {
	Rows []Row
}

// Empty reports whether no snapshot was ever emitted.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// Dates returns the distinct snapshot dates in emission order.
func (t *Table) Dates() []time.Time {
	var dates []time.Time
	for _, row := range t.Rows {
		if len(dates) == 0 || !dates[len(dates)-1].Equal(row.Date) {
			dates = append(dates, row.Date)
		}
	}
	return dates
}

// FirstDate returns the earliest snapshot date, if any rows exist.
func (t *Table) FirstDate() (time.Time, bool) {
	if len(t.Rows) == 0 {
		return time.Time{}, false
	}
	return t.Rows[0].Date, true
}

// LastDate returns the latest snapshot date, if any rows exist.
func (t *Table) LastDate() (time.Time, bool) {
	if len(t.Rows) == 0 {
		return time.Time{}, false
	}
	return t.Rows[len(t.Rows)-1].Date, true
}

// At returns the rows of one date's snapshot.
func (t *Table) At(date time.Time) []Row {
	var rows []Row
	for _, row := range t.Rows {
		if row.Date.Equal(date) {
			rows = append(rows, row)
		}
	}
	return rows
}

// EdgesAt returns one date's snapshot as an edge list.
func (t *Table) EdgesAt(date time.Time) []Edge {
	var edges []Edge
	for _, row := range t.At(date) {
		edges = append(edges, Edge{Child: row.Child, Parent: row.Parent, Origin: row.Type})
	}
	return edges
}

// ForestAt materializes one date's snapshot as a forest.
func (t *Table) ForestAt(date time.Time) []*Node {
	return Forest(t.EdgesAt(date))
}

// Columns returns the header of the table: the four fixed columns plus
// every attribute column that is set in at least one row, in canonical
// order.
func (t *Table) Columns() []string {
	cols := []string{colDate, colChild, colParent, colType}
	for _, name := range attrColumns {
		if t.columnUsed(name) {
			cols = append(cols, name)
		}
	}
	return cols
}

func (t *Table) columnUsed(name string) bool {
	for _, row := range t.Rows {
		if row.cell(name) != "" {
			return true
		}
	}
	return false
}

// cell formats one column of a row; unset attribute fields are empty.
func (r Row) cell(col string) string {
	switch col {
	case colDate:
		return r.Date.Format(dateLayout)
	case colChild:
		return r.Child
	case colParent:
		return r.Parent
	case colType:
		return string(r.Type)
	case colTerminalPressure:
		return formatFloat(r.Attrs.TerminalPressure)
	case colVFPTable:
		if r.Attrs.VFPTable == nil {
			return ""
		}
		return strconv.Itoa(*r.Attrs.VFPTable)
	case colALQ:
		return formatFloat(r.Attrs.ALQ)
	case colSubSeaManifold:
		return formatString(r.Attrs.SubSeaManifold)
	case colLiftGasFlowThrough:
		return formatString(r.Attrs.LiftGasFlowThrough)
	case colALQSurfaceEqv:
		return formatString(r.Attrs.ALQSurfaceEqv)
	}
	return ""
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func formatString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// WriteCSV serializes the table with a header row. Dates are formatted
// YYYY-MM-DD; absent attribute fields are empty cells.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cols := t.Columns()
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	record := make([]string, len(cols))
	for _, row := range t.Rows {
		for i, col := range cols {
			record[i] = row.cell(col)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
