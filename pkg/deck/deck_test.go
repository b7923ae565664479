package deck

import (
	"errors"
	"testing"
	"time"
)

// TestParseMonth covers the Eclipse month mnemonics including the JLY
// alias for July
func TestParseMonth(t *testing.T) {
	cases := map[string]time.Month{
		"JAN": time.January,
		"jan": time.January,
		"JUL": time.July,
		"JLY": time.July,
		"DEC": time.December,
	}
	for name, want := range cases {
		got, err := ParseMonth(name)
		if err != nil {
			t.Fatalf("ParseMonth(%q) failed: %v", name, err)
		}
		if got != want {
			t.Errorf("ParseMonth(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseMonth_Unknown(t *testing.T) {
	_, err := ParseMonth("SMARCH")
	if !errors.Is(err, ErrBadMonth) {
		t.Errorf("ParseMonth(SMARCH) error = %v, want ErrBadMonth", err)
	}
}

func TestDateRecord_Date(t *testing.T) {
	rec := DateRecord{Day: 14, Month: time.February, Year: 2021}
	want := time.Date(2021, time.February, 14, 0, 0, 0, 0, time.UTC)
	if got := rec.Date(); !got.Equal(want) {
		t.Errorf("Date() = %v, want %v", got, want)
	}
}

func TestStepRecord_Sum(t *testing.T) {
	rec := StepRecord{Days: []float64{10, 2.5, 2.5}}
	if got := rec.Sum(); got != 15 {
		t.Errorf("Sum() = %g, want 15", got)
	}
	var empty StepRecord
	if got := empty.Sum(); got != 0 {
		t.Errorf("empty Sum() = %g, want 0", got)
	}
}

// TestConstructors checks that the keyword builders tag records with
// the right keyword names
func TestConstructors(t *testing.T) {
	kw := Start(1, time.January, 2020)
	if kw.Name != KwStart || len(kw.Dates) != 1 {
		t.Fatalf("Start() built %+v", kw)
	}
	kw = Tstep(1, 2, 3)
	if kw.Name != KwTstep || len(kw.Steps) != 1 || kw.Steps[0].Sum() != 6 {
		t.Fatalf("Tstep() built %+v", kw)
	}
	kw = Gruptree(EdgeRecord{Child: "OP", Parent: "FIELD"})
	if kw.Name != KwGruptree || len(kw.Edges) != 1 {
		t.Fatalf("Gruptree() built %+v", kw)
	}
	kw = Welspecs(WellRecord{Well: "OP1", Group: "OP"})
	if kw.Name != KwWelspecs || len(kw.Wells) != 1 {
		t.Fatalf("Welspecs() built %+v", kw)
	}
	kw = Grupnet(NetRecord{Name: "FIELD"})
	if kw.Name != KwGrupnet || len(kw.Net) != 1 {
		t.Fatalf("Grupnet() built %+v", kw)
	}
}
