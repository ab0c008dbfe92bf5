package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// DateOf truncates t to its calendar day at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts a YYYY-MM-DD date or an RFC 3339 timestamp and returns the calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return DateOf(t), nil
}

// TimeOfDay is a wall-clock offset from midnight, in [0, 24h).
type TimeOfDay time.Duration

// NewTimeOfDay builds a TimeOfDay from clock components.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second)
}

// TimeOfDayOf extracts the UTC wall clock of t, discarding its date.
func TimeOfDayOf(t time.Time) TimeOfDay {
	t = t.UTC()
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
}

var timeOfDayLayouts = []string{"15:04:05", "15:04", "15:04:05Z07:00", "15:04:05.000Z07:00"}

// ParseTimeOfDay accepts HH:MM, HH:MM:SS (optionally zoned) or a full RFC 3339
// timestamp, whose date part is ignored.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return TimeOfDayOf(t), nil
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

// On anchors the time of day to the calendar day of date.
func (t TimeOfDay) On(date time.Time) time.Time {
	return DateOf(date).Add(time.Duration(t))
}

func (t TimeOfDay) String() string {
	return time.Time{}.Add(time.Duration(t)).Format("15:04:05")
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// DateRange is a closed range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether Start <= End. A single day (Start == End) is valid.
func (r DateRange) Valid() bool {
	return !r.Start.After(r.End)
}

// Overlaps applies the closed-interval test a1 <= b2 && b1 <= a2, so ranges that
// share only a boundary day overlap.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End) && !o.Start.After(r.End)
}

// TimeRange is a half-open range of instants [Start, End). When Start == End the
// range is the single instant Start.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

func (r TimeRange) instant() bool { return r.Start.Equal(r.End) }

func (r TimeRange) contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Overlaps reports whether the ranges share an instant. Ranges that only touch
// (one ends where the other starts) do not overlap.
func (r TimeRange) Overlaps(o TimeRange) bool {
	switch {
	case r.instant() && o.instant():
		return r.Start.Equal(o.Start)
	case r.instant():
		return o.contains(r.Start)
	case o.instant():
		return r.contains(o.Start)
	}
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Slot is the window an event occupies on its venue: the same time-of-day range
// on every day of a date range, or whole days when AllDay is set. A timed slot
// with a missing bound extends to the start or end of each day.
type Slot struct {
	StartDate time.Time
	EndDate   time.Time
	AllDay    bool
	StartTime *TimeOfDay
	EndTime   *TimeOfDay
}

func (s Slot) Dates() DateRange {
	return DateRange{Start: DateOf(s.StartDate), End: DateOf(s.EndDate)}
}

func (s Slot) clock() (TimeOfDay, TimeOfDay) {
	start, end := TimeOfDay(0), TimeOfDay(day)
	if s.StartTime != nil {
		start = *s.StartTime
	}
	if s.EndTime != nil {
		end = *s.EndTime
	}
	return start, end
}

// TimesOn composes the slot's time-of-day range onto the given calendar day.
func (s Slot) TimesOn(date time.Time) TimeRange {
	start, end := s.clock()
	return TimeRange{Start: start.On(date), End: end.On(date)}
}

// Validate checks date ordering and, for timed slots, time ordering.
func (s Slot) Validate() error {
	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return InputValidation("startDate and endDate are required")
	}
	if !s.Dates().Valid() {
		return InputValidation("startDate must be on or before endDate")
	}
	if s.AllDay {
		return nil
	}
	bounds := []struct {
		name string
		t    *TimeOfDay
	}{{"startTime", s.StartTime}, {"endTime", s.EndTime}}
	for _, b := range bounds {
		if b.t != nil && (*b.t < 0 || time.Duration(*b.t) >= day) {
			return InputValidation(b.name + " must be within a day")
		}
	}
	if start, end := s.clock(); start > end {
		return InputValidation("startTime must be on or before endTime")
	}
	return nil
}

// Conflicts reports whether two slots on the same venue collide. Dates must
// overlap; unless either side is all-day, the time ranges composed on the first
// shared day must overlap too. Every shared day carries the same clock range, so
// checking one day decides all of them.
func (s Slot) Conflicts(o Slot) bool {
	a, b := s.Dates(), o.Dates()
	if !a.Overlaps(b) {
		return false
	}
	if s.AllDay || o.AllDay {
		return true
	}
	shared := a.Start
	if b.Start.After(shared) {
		shared = b.Start
	}
	return s.TimesOn(shared).Overlaps(o.TimesOn(shared))
}
