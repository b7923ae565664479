// Package gruptree reconstructs the time-dependent well/group hierarchy
// of a simulation deck. GRUPTREE and WELSPECS keywords accumulate edges
// into the current hierarchy and GRUPNET keywords carry per-group
// network attributes; whenever simulated time moves forward past a
// change, the entire current hierarchy is emitted as one date-stamped
// snapshot.
package gruptree

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/gruptree/pkg/deck"
	"github.com/dd0wney/gruptree/pkg/logging"
	"github.com/dd0wney/gruptree/pkg/metrics"
)

// Options configures one extraction run.
type Options struct {
	// StartDate seeds the clock before the scan. Only relevant for
	// decks whose first time event is a TSTEP: an explicit START or
	// DATES keyword overrides it.
	StartDate *time.Time

	// SkipWelspecs drops well-to-group edges, keeping only the group
	// tree proper.
	SkipWelspecs bool

	Logger  logging.Logger
	Metrics *metrics.Registry
}

// extractor holds the state of one scan. All state is owned by a single
// Extract call; nothing is shared across runs.
type extractor struct {
	clock *Clock
	edges *EdgeSet
	net   *NetTable
	table *Table

	treeChanged  bool // GRUPTREE or WELSPECS seen since last emission
	attrsChanged bool // GRUPNET seen since last emission

	log     logging.Logger
	metrics *metrics.Registry
}

// Extract scans the deck's keyword sequence once, front to back, and
// returns the snapshot table. A fatal condition (a TSTEP summing to
// zero or negative days) aborts the scan: the error is returned and all
// accumulated rows are discarded.
func Extract(d *deck.Deck, opts Options) (*Table, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	log = log.With(logging.String("run_id", uuid.NewString()))

	e := &extractor{
		clock:   NewClock(log),
		edges:   NewEdgeSet(),
		net:     NewNetTable(),
		table:   &Table{},
		log:     log,
		metrics: opts.Metrics,
	}
	if opts.StartDate != nil {
		e.clock.Set(*opts.StartDate)
	}

	began := time.Now()
	for _, kw := range d.Keywords {
		if err := e.scan(kw, opts.SkipWelspecs); err != nil {
			e.metrics.ObserveRun("error", time.Since(began))
			log.Error("scan aborted", logging.Keyword(kw.Name), logging.Err(err))
			return nil, err
		}
	}

	// Tree or attribute changes after the last date keyword are still
	// part of the final state; dump them under the last known date.
	e.emitPending()

	e.metrics.ObserveRun("ok", time.Since(began))
	log.Info("extraction finished",
		logging.Int("rows", len(e.table.Rows)),
		logging.Int("edges", e.edges.Len()))
	return e.table, nil
}

// scan processes one keyword.
func (e *extractor) scan(kw deck.Keyword, skipWelspecs bool) error {
	e.metrics.ObserveKeyword(kw.Name)

	switch kw.Name {
	case deck.KwDates, deck.KwStart:
		// A date keyword means every hierarchy change since the last
		// date has been seen; emit before the date moves.
		e.emitPending()
		for _, rec := range kw.Dates {
			e.clock.Set(rec.Date())
		}

	case deck.KwTstep:
		e.emitPending()
		for _, rec := range kw.Steps {
			if err := e.clock.Advance(rec.Sum()); err != nil {
				return err
			}
		}

	case deck.KwGruptree:
		e.treeChanged = true
		for _, rec := range kw.Edges {
			e.edges.Record(rec.Child, rec.Parent, OriginGruptree)
		}

	case deck.KwWelspecs:
		if skipWelspecs {
			return nil
		}
		e.treeChanged = true
		for _, rec := range kw.Wells {
			e.edges.Record(rec.Well, rec.Group, OriginWelspecs)
		}

	case deck.KwGrupnet:
		e.attrsChanged = true
		e.net.Rebuild(kw.Net)
	}
	return nil
}

// emitPending dumps the entire current hierarchy as one snapshot if
// anything changed since the last emission, stamped with the date
// currently on the clock. Nothing is emitted while the hierarchy is
// empty, so a deck without topology keywords yields an empty table.
func (e *extractor) emitPending() {
	if e.edges.Len() == 0 || (!e.treeChanged && !e.attrsChanged) {
		return
	}
	date, ok := e.clock.Current()
	if !ok {
		e.log.Warn("no date established before first snapshot, using fallback; consider passing a start date",
			logging.Date("fallback", FallbackDate))
		e.clock.Set(FallbackDate)
		date = FallbackDate
	}

	snapshot := e.edges.Snapshot()
	for _, edge := range snapshot {
		row := Row{Date: date, Child: edge.Child, Parent: edge.Parent, Type: edge.Origin}
		if attrs, found := e.net.Lookup(edge.Child); found {
			row.Attrs = attrs
		}
		e.table.Rows = append(e.table.Rows, row)
	}
	e.treeChanged = false
	e.attrsChanged = false
	e.metrics.ObserveSnapshot(len(snapshot), e.edges.Len())
	e.log.Debug("snapshot emitted",
		logging.Date("date", date),
		logging.Int("edges", len(snapshot)))
}
