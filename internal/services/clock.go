package services

import "time"

// WireLayout is the timestamp format exchanged with the app and the export API.
const WireLayout = "2006-01-02 15:04:05"

// Clock supplies "now" in the business time zone.
type Clock struct {
	Loc *time.Location
	Now func() time.Time
}

func NewClock(loc *time.Location) Clock {
	return Clock{Loc: loc, Now: time.Now}
}

func (c Clock) Current() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().In(c.Loc).Truncate(time.Second)
}

// StartOfDay is midnight of t's calendar day in the clock's zone.
func (c Clock) StartOfDay(t time.Time) time.Time {
	t = t.In(c.Loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.Loc)
}

// ParseWire parses WireLayout in the clock's zone.
func (c Clock) ParseWire(s string) (time.Time, error) {
	return time.ParseInLocation(WireLayout, s, c.Loc)
}

// FormatWire renders t in the clock's zone; nil renders as "".
func (c Clock) FormatWire(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(c.Loc).Format(WireLayout)
}
