// Package deck models a parsed reservoir-simulation deck as an ordered
// sequence of keyword records. Only the keywords needed to reconstruct
// the well/group hierarchy over time are given typed records; all other
// keywords are carried by name only and ignored downstream.
package deck

import (
	"fmt"
	"strings"
	"time"
)

// Keyword names recognized by the extractor.
const (
	KwDates    = "DATES"
	KwStart    = "START"
	KwTstep    = "TSTEP"
	KwGruptree = "GRUPTREE"
	KwWelspecs = "WELSPECS"
	KwGrupnet  = "GRUPNET"
)

// DefaultParent is substituted when a GRUPTREE record leaves the parent
// field defaulted.
const DefaultParent = "FIELD"

// Deck is an ordered sequence of keywords, scanned front to back.
type Deck struct {
	Keywords []Keyword
}

// Keyword is one named block of a deck. Exactly one of the record
// slices is populated, matching Name; for unrecognized keywords all
// slices are empty.
type Keyword struct {
	Name  string
	Dates []DateRecord // DATES, START
	Steps []StepRecord // TSTEP
	Edges []EdgeRecord // GRUPTREE
	Wells []WellRecord // WELSPECS
	Net   []NetRecord  // GRUPNET
}

// DateRecord is one absolute calendar date from a DATES or START block.
type DateRecord struct {
	Day   int
	Month time.Month
	Year  int
}

// Date returns the record as a UTC midnight timestamp.
func (r DateRecord) Date() time.Time {
	return time.Date(r.Year, r.Month, r.Day, 0, 0, 0, 0, time.UTC)
}

// StepRecord is one TSTEP record: a list of step lengths in days.
type StepRecord struct {
	Days []float64
}

// Sum returns the total duration of the record in days.
func (r StepRecord) Sum() float64 {
	var total float64
	for _, d := range r.Days {
		total += d
	}
	return total
}

// EdgeRecord is one GRUPTREE record: a child group produces into a
// parent group.
type EdgeRecord struct {
	Child  string
	Parent string
}

// WellRecord is one WELSPECS record, reduced to the well name and the
// group it produces into. The remaining WELSPECS fields carry no
// topology information and are dropped at the parse boundary.
type WellRecord struct {
	Well  string
	Group string
}

// NetRecord is one GRUPNET record. All fields except Name are optional;
// nil means the field was defaulted or absent in the deck.
type NetRecord struct {
	Name               string
	TerminalPressure   *float64
	VFPTable           *int
	ALQ                *float64
	SubSeaManifold     *string
	LiftGasFlowThrough *string
	ALQSurfaceEqv      *string
}

// Dates builds a DATES keyword.
func Dates(recs ...DateRecord) Keyword {
	return Keyword{Name: KwDates, Dates: recs}
}

// Start builds a START keyword with a single date record.
func Start(day int, month time.Month, year int) Keyword {
	return Keyword{Name: KwStart, Dates: []DateRecord{{Day: day, Month: month, Year: year}}}
}

// Tstep builds a TSTEP keyword holding one record of step lengths.
func Tstep(days ...float64) Keyword {
	return Keyword{Name: KwTstep, Steps: []StepRecord{{Days: days}}}
}

// Gruptree builds a GRUPTREE keyword from child/parent pairs.
func Gruptree(recs ...EdgeRecord) Keyword {
	return Keyword{Name: KwGruptree, Edges: recs}
}

// Welspecs builds a WELSPECS keyword from well/group pairs.
func Welspecs(recs ...WellRecord) Keyword {
	return Keyword{Name: KwWelspecs, Wells: recs}
}

// Grupnet builds a GRUPNET keyword.
func Grupnet(recs ...NetRecord) Keyword {
	return Keyword{Name: KwGrupnet, Net: recs}
}

// monthNames maps Eclipse month mnemonics to calendar months. JLY is an
// accepted alias for July in Eclipse decks.
var monthNames = map[string]time.Month{
	"JAN": time.January,
	"FEB": time.February,
	"MAR": time.March,
	"APR": time.April,
	"MAY": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"JLY": time.July,
	"AUG": time.August,
	"SEP": time.September,
	"OCT": time.October,
	"NOV": time.November,
	"DEC": time.December,
}

// ParseMonth resolves an Eclipse month mnemonic (JAN..DEC, JLY) to a
// time.Month.
func ParseMonth(name string) (time.Month, error) {
	m, ok := monthNames[strings.ToUpper(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadMonth, name)
	}
	return m, nil
}
