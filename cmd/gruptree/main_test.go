package main

import (
	"testing"
	"time"

	"github.com/dd0wney/gruptree/pkg/gruptree"
)

func snapshotTable() *gruptree.Table {
	day := func(d int) time.Time {
		return time.Date(2020, time.January, d, 0, 0, 0, 0, time.UTC)
	}
	return &gruptree.Table{Rows: []gruptree.Row{
		{Date: day(1), Child: "OP", Parent: "FIELD", Type: gruptree.OriginGruptree},
		{Date: day(1), Child: "W1", Parent: "OP", Type: gruptree.OriginWelspecs},
		{Date: day(15), Child: "OP", Parent: "FIELD", Type: gruptree.OriginGruptree},
	}}
}

func TestSelectDates(t *testing.T) {
	table := snapshotTable()
	first := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)

	dates, err := selectDates(table, "")
	if err != nil || len(dates) != 2 {
		t.Fatalf("selectDates(\"\") = %v, %v", dates, err)
	}

	dates, err = selectDates(table, "first")
	if err != nil || len(dates) != 1 || !dates[0].Equal(first) {
		t.Errorf("selectDates(first) = %v, %v", dates, err)
	}

	dates, err = selectDates(table, "last")
	if err != nil || len(dates) != 1 || !dates[0].Equal(last) {
		t.Errorf("selectDates(last) = %v, %v", dates, err)
	}

	dates, err = selectDates(table, "2020-01-15")
	if err != nil || len(dates) != 1 || !dates[0].Equal(last) {
		t.Errorf("selectDates(2020-01-15) = %v, %v", dates, err)
	}

	if _, err := selectDates(table, "someday"); err == nil {
		t.Error("selectDates accepted a malformed date")
	}
}

func TestSelectDates_EmptyTable(t *testing.T) {
	empty := &gruptree.Table{}
	for _, spec := range []string{"", "first", "last"} {
		dates, err := selectDates(empty, spec)
		if err != nil || len(dates) != 0 {
			t.Errorf("selectDates(%q) on empty table = %v, %v", spec, dates, err)
		}
	}
}
