package gruptree

import (
	"bytes"
	"sort"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/gruptree/pkg/deck"
)

// Deck operations are generated over a fixed layered name pool so the
// resulting hierarchies are always acyclic: platforms feed the field,
// groups feed platforms, wells feed platforms or groups.
var (
	platforms = []string{"PLAT-A", "PLAT-B"}
	subGroups = []string{"OP", "WI", "INJ"}
	wellNames = []string{"W1", "W2", "W3", "W4", "W5", "W6"}
	netNames  = []string{"FIELD", "PLAT-A", "PLAT-B", "OP", "WI", "INJ"}
)

const (
	opDates = iota
	opTstep
	opGruptree
	opWelspecs
	opGrupnet
)

type deckOp struct {
	kind  int
	days  int // date advance for opDates/opTstep
	index int // name-pool selector for topology ops
}

func (o deckOp) topology() bool {
	return o.kind == opGruptree || o.kind == opWelspecs || o.kind == opGrupnet
}

func genDeckOp() gopter.Gen {
	return gen.OneGenOf(
		gen.IntRange(1, 90).Map(func(d int) deckOp { return deckOp{kind: opDates, days: d} }),
		gen.IntRange(1, 60).Map(func(d int) deckOp { return deckOp{kind: opTstep, days: d} }),
		gen.IntRange(0, len(platforms)+len(platforms)*len(subGroups)-1).Map(func(n int) deckOp {
			return deckOp{kind: opGruptree, index: n}
		}),
		gen.IntRange(0, len(wellNames)*(len(platforms)+len(subGroups))-1).Map(func(n int) deckOp {
			return deckOp{kind: opWelspecs, index: n}
		}),
		gen.IntRange(0, 6*len(netNames)-1).Map(func(n int) deckOp {
			return deckOp{kind: opGrupnet, index: n}
		}),
	)
}

// buildDeck turns an op list into a deck. Date ops move a running
// calendar strictly forward, so generated decks never rewind time.
func buildDeck(ops []deckOp) *deck.Deck {
	d := &deck.Deck{Keywords: []deck.Keyword{deck.Start(1, time.January, 2000)}}
	current := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, op := range ops {
		switch op.kind {
		case opDates:
			current = current.AddDate(0, 0, op.days)
			d.Keywords = append(d.Keywords, deck.Dates(deck.DateRecord{
				Day: current.Day(), Month: current.Month(), Year: current.Year(),
			}))
		case opTstep:
			current = current.AddDate(0, 0, op.days)
			d.Keywords = append(d.Keywords, deck.Tstep(float64(op.days)))
		case opGruptree:
			child, parent := gruptreePair(op.index)
			d.Keywords = append(d.Keywords, deck.Gruptree(deck.EdgeRecord{Child: child, Parent: parent}))
		case opWelspecs:
			groups := append(append([]string{}, platforms...), subGroups...)
			well := wellNames[op.index%len(wellNames)]
			group := groups[op.index/len(wellNames)]
			d.Keywords = append(d.Keywords, deck.Welspecs(deck.WellRecord{Well: well, Group: group}))
		case opGrupnet:
			name := netNames[op.index%len(netNames)]
			alq := float64(op.index)
			d.Keywords = append(d.Keywords, deck.Grupnet(deck.NetRecord{Name: name, ALQ: &alq}))
		}
	}
	return d
}

func gruptreePair(n int) (string, string) {
	if n < len(platforms) {
		return platforms[n], "FIELD"
	}
	n -= len(platforms)
	return subGroups[n%len(subGroups)], platforms[n/len(subGroups)]
}

// pairSet collects the distinct (child, parent) pairs, sorted. The set
// view is what makes edge rows and flattened forests comparable: a
// multi-parent child appears once per parent copy when a forest is
// flattened.
func pairSet(edges []Edge) []string {
	seen := make(map[string]bool)
	var pairs []string
	for _, e := range edges {
		pair := e.Child + "->" + e.Parent
		if seen[pair] {
			continue
		}
		seen[pair] = true
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)
	return pairs
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestExtractionInvariants uses property-based testing to verify the
// invariants that must hold for any deck
func TestExtractionInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Property 1: without topology keywords the table is empty
	properties.Property("deck without topology keywords yields no rows", prop.ForAll(
		func(ops []deckOp) bool {
			var timeOnly []deckOp
			for _, op := range ops {
				if !op.topology() {
					timeOnly = append(timeOnly, op)
				}
			}
			table, err := Extract(buildDeck(timeOnly), Options{})
			return err == nil && table.Empty()
		},
		gen.SliceOf(genDeckOp()),
	))

	// Property 2: simulated time never moves backward in the output
	properties.Property("emitted dates are non-decreasing", prop.ForAll(
		func(ops []deckOp) bool {
			table, err := Extract(buildDeck(ops), Options{})
			if err != nil {
				return false
			}
			for i := 1; i < len(table.Rows); i++ {
				if table.Rows[i].Date.Before(table.Rows[i-1].Date) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genDeckOp()),
	))

	// Property 3: re-running the extractor is byte-identical
	properties.Property("extraction is idempotent", prop.ForAll(
		func(ops []deckOp) bool {
			d := buildDeck(ops)
			first, err := Extract(d, Options{})
			if err != nil {
				return false
			}
			second, err := Extract(d, Options{})
			if err != nil {
				return false
			}
			var a, b bytes.Buffer
			if first.WriteCSV(&a) != nil || second.WriteCSV(&b) != nil {
				return false
			}
			return bytes.Equal(a.Bytes(), b.Bytes())
		},
		gen.SliceOf(genDeckOp()),
	))

	// Property 4: edge rows and forest agree per date
	properties.Property("forest round-trips to the same edge pairs", prop.ForAll(
		func(ops []deckOp) bool {
			table, err := Extract(buildDeck(ops), Options{})
			if err != nil {
				return false
			}
			for _, date := range table.Dates() {
				want := pairSet(table.EdgesAt(date))
				got := pairSet(FlattenForest(table.ForestAt(date)))
				if !equalStrings(want, got) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genDeckOp()),
	))

	// Property 5: roots and non-roots partition the names of a date
	properties.Property("no name is both a root and a child", prop.ForAll(
		func(ops []deckOp) bool {
			table, err := Extract(buildDeck(ops), Options{})
			if err != nil {
				return false
			}
			for _, date := range table.Dates() {
				edges := table.EdgesAt(date)
				children := make(map[string]bool)
				all := make(map[string]bool)
				for _, e := range edges {
					children[e.Child] = true
					all[e.Child] = true
					all[e.Parent] = true
				}
				forest := table.ForestAt(date)
				for _, root := range forest {
					if children[root.Name] {
						return false
					}
				}
				reachable := Names(forest)
				if len(reachable) != len(all) {
					return false
				}
				for _, name := range reachable {
					if !all[name] {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(genDeckOp()),
	))

	properties.TestingRun(t)
}
