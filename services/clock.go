package services

import (
	"fmt"
	"time"
)

// DefaultTimeZone anchors every calendar comparison (streaks, rollovers,
// history buckets) regardless of host locale.
const DefaultTimeZone = "America/New_York"

// Clock resolves "today" in one canonical timezone so streak comparisons are
// consistent everywhere. Pure reads, no side effects.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock loads the named timezone (DefaultTimeZone if empty). An
// unavailable timezone is a hard error; the caller must not guess.
func NewClock(tzName string) (*Clock, error) {
	if tzName == "" {
		tzName = DefaultTimeZone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("cannot load timezone %q: %w", tzName, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewFixedClock returns a Clock pinned to a single instant in loc.
func NewFixedClock(loc *time.Location, at time.Time) *Clock {
	return &Clock{loc: loc, now: func() time.Time { return at }}
}

func (c *Clock) Location() *time.Location { return c.loc }

func (c *Clock) Now() time.Time { return c.now().In(c.loc) }

// Today returns midnight of the current day in the canonical timezone.
func (c *Clock) Today() time.Time {
	return c.DateOf(c.now())
}

// Yesterday returns Today minus one calendar day.
func (c *Clock) Yesterday() time.Time {
	return c.Today().AddDate(0, 0, -1)
}

// DateOf normalizes a timestamp to day granularity in the canonical timezone.
func (c *Clock) DateOf(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// SameDay reports whether two timestamps fall on the same canonical calendar day.
func (c *Clock) SameDay(a, b time.Time) bool {
	return c.DateOf(a).Equal(c.DateOf(b))
}

// CurrentMonth returns the "2006-01" marker stamped onto users at rollover.
func (c *Clock) CurrentMonth() string {
	return c.Now().Format("2006-01")
}

// MonthKey returns the "2006-01" bucket key for a timestamp.
func (c *Clock) MonthKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01")
}

// ISOWeekKey returns the "2006-W02" bucket key for a timestamp. The history
// aggregator uses this one function for both bucket generation and entry
// lookup so the two sides can never disagree on week numbering.
func (c *Clock) ISOWeekKey(t time.Time) string {
	year, week := t.In(c.loc).ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthsBetween returns how many calendar months separate two "2006-01"
// markers. Malformed markers count as a full reset (many months).
func MonthsBetween(from, to string) int {
	ft, err1 := time.Parse("2006-01", from)
	tt, err2 := time.Parse("2006-01", to)
	if err1 != nil || err2 != nil {
		return 12
	}
	return (tt.Year()-ft.Year())*12 + int(tt.Month()) - int(ft.Month())
}
