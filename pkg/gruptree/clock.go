package gruptree

import (
	"time"

	"github.com/dd0wney/gruptree/pkg/logging"
)

// FallbackDate is the date assumed when simulated time must advance
// before any START or DATES keyword has established one.
var FallbackDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Clock tracks the current simulated date during a scan. The date is
// unset until the first START/DATES keyword or a caller-supplied start
// date establishes it.
type Clock struct {
	current time.Time
	set     bool
	log     logging.Logger
}

// NewClock returns a clock with no date established.
func NewClock(log logging.Logger) *Clock {
	if log == nil {
		log = logging.Nop()
	}
	return &Clock{log: log}
}

// Current returns the current simulated date and whether one has been
// established.
func (c *Clock) Current() (time.Time, bool) {
	return c.current, c.set
}

// Set moves the clock to an absolute calendar date.
func (c *Clock) Set(date time.Time) {
	c.current = date
	c.set = true
}

// Advance moves the clock forward by a summed TSTEP duration in days.
// A non-positive duration is fatal: simulated time never stands still
// or runs backward. If no date has been established yet the clock warns
// and advances from FallbackDate instead of failing.
func (c *Clock) Advance(days float64) error {
	if days <= 0 {
		return &ScanError{Keyword: "TSTEP", Days: days, Cause: ErrNonPositiveStep}
	}
	if !c.set {
		c.log.Warn("no start date established before TSTEP, advancing from fallback",
			logging.Date("fallback", FallbackDate))
		c.Set(FallbackDate)
	}
	c.current = c.current.Add(time.Duration(days * float64(24*time.Hour)))
	c.log.Info("advancing simulated time",
		logging.Float64("days", days),
		logging.Date("date", c.current))
	return nil
}
