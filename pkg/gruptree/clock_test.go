package gruptree

import (
	"errors"
	"testing"
	"time"

	"github.com/dd0wney/gruptree/pkg/logging"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClock_UnsetUntilEstablished(t *testing.T) {
	c := NewClock(nil)
	if _, ok := c.Current(); ok {
		t.Fatal("fresh clock reports an established date")
	}
	c.Set(date(2020, time.January, 1))
	got, ok := c.Current()
	if !ok || !got.Equal(date(2020, time.January, 1)) {
		t.Errorf("Current() = %v, %v after Set", got, ok)
	}
}

func TestClock_Advance(t *testing.T) {
	c := NewClock(nil)
	c.Set(date(2020, time.January, 1))
	if err := c.Advance(31); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	got, _ := c.Current()
	if !got.Equal(date(2020, time.February, 1)) {
		t.Errorf("Current() = %v, want 2020-02-01", got)
	}
}

// TestClock_AdvanceBeforeDateUsesFallback: a TSTEP before any START or
// DATES advances from 1900-01-01
func TestClock_AdvanceBeforeDateUsesFallback(t *testing.T) {
	c := NewClock(logging.Nop())
	if err := c.Advance(10); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	got, ok := c.Current()
	if !ok {
		t.Fatal("date not established after fallback advance")
	}
	if !got.Equal(date(1900, time.January, 11)) {
		t.Errorf("Current() = %v, want 1900-01-11", got)
	}
}

func TestClock_NonPositiveDurationIsFatal(t *testing.T) {
	for _, days := range []float64{0, -5} {
		c := NewClock(nil)
		c.Set(date(2020, time.January, 1))
		err := c.Advance(days)
		if !errors.Is(err, ErrNonPositiveStep) {
			t.Errorf("Advance(%g) error = %v, want ErrNonPositiveStep", days, err)
		}
		var scanErr *ScanError
		if !errors.As(err, &scanErr) {
			t.Fatalf("Advance(%g) error type = %T", days, err)
		}
		if scanErr.Days != days {
			t.Errorf("ScanError.Days = %g, want %g", scanErr.Days, days)
		}
		got, _ := c.Current()
		if !got.Equal(date(2020, time.January, 1)) {
			t.Errorf("clock moved on fatal Advance: %v", got)
		}
	}
}

func TestClock_FractionalDays(t *testing.T) {
	c := NewClock(nil)
	c.Set(date(2020, time.January, 1))
	if err := c.Advance(1.5); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	got, _ := c.Current()
	want := time.Date(2020, time.January, 2, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Current() = %v, want %v", got, want)
	}
}
