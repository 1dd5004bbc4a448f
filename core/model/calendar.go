package model

import (
	"fmt"
	"time"
)

// Period is a single operating window within a day schedule. Hours are
// whole clock hours; EndHour is exclusive. A period whose EndHour is lower
// than its StartHour spans midnight.
type Period struct {
	StartHour  int      `json:"from_hour" yaml:"from_hour"`
	EndHour    int      `json:"to_hour" yaml:"to_hour"`
	TargetTemp float64  `json:"target_temp" yaml:"target_temp"`
	MinTemp    *float64 `json:"min_temp,omitempty" yaml:"min_temp,omitempty"`
	MaxTemp    *float64 `json:"max_temp,omitempty" yaml:"max_temp,omitempty"`
}

// Degenerate reports whether the period is zero-length and must be ignored.
func (p Period) Degenerate() bool { return p.StartHour == p.EndHour }

// ContainsHour reports whether the given clock hour falls inside the period.
// Overnight periods wrap around midnight.
func (p Period) ContainsHour(hour int) bool {
	if p.Degenerate() {
		return false
	}
	if p.StartHour < p.EndHour {
		return hour >= p.StartHour && hour < p.EndHour
	}
	return hour >= p.StartHour || hour < p.EndHour
}

// Validate checks hour bounds.
func (p Period) Validate() error {
	if p.StartHour < 0 || p.StartHour > 23 {
		return fmt.Errorf("from_hour %d out of range [0,23]", p.StartHour)
	}
	if p.EndHour < 0 || p.EndHour > 23 {
		return fmt.Errorf("to_hour %d out of range [0,23]", p.EndHour)
	}
	return nil
}

// DaySchedule is a named day type ("Normal", "Closed", ...) owning an
// ordered set of periods. An empty period list means closed all day.
type DaySchedule struct {
	Name    string   `json:"name" yaml:"name"`
	Periods []Period `json:"periods" yaml:"periods"`
}

// WeekSchedule maps each weekday to a day-schedule name. An empty name
// means closed for that weekday.
type WeekSchedule struct {
	Monday    string `json:"monday" yaml:"monday"`
	Tuesday   string `json:"tuesday" yaml:"tuesday"`
	Wednesday string `json:"wednesday" yaml:"wednesday"`
	Thursday  string `json:"thursday" yaml:"thursday"`
	Friday    string `json:"friday" yaml:"friday"`
	Saturday  string `json:"saturday" yaml:"saturday"`
	Sunday    string `json:"sunday" yaml:"sunday"`
}

// ForWeekday returns the day-schedule name mapped to the given weekday.
func (w WeekSchedule) ForWeekday(d time.Weekday) string {
	switch d {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// CalendarDateRange is a seasonal override of the default week. Ranges are
// resolved in descending priority order; the first range whose window
// contains the queried date wins. A range whose end month/day precedes its
// start denotes a window crossing the turn of the year.
type CalendarDateRange struct {
	Name       string       `json:"name" yaml:"name"`
	Week       WeekSchedule `json:"week" yaml:"week"`
	StartMonth int          `json:"start_month" yaml:"start_month"`
	StartDay   int          `json:"start_day" yaml:"start_day"`
	EndMonth   int          `json:"end_month" yaml:"end_month"`
	EndDay     int          `json:"end_day" yaml:"end_day"`
	Priority   int          `json:"priority" yaml:"priority"`
	Recurring  bool         `json:"recurring" yaml:"recurring"`
	Active     bool         `json:"active" yaml:"active"`
}

// Contains reports whether the month/day of date falls inside the range
// window. Comparison is on (month, day) tuples; recurring ranges with an
// inverted window use OR logic to match both sides of the year boundary.
func (r CalendarDateRange) Contains(date time.Time) bool {
	cur := int(date.Month())*100 + date.Day()
	start := r.StartMonth*100 + r.StartDay
	end := r.EndMonth*100 + r.EndDay
	if r.Recurring && start > end {
		return cur >= start || cur <= end
	}
	return cur >= start && cur <= end
}

// Validate checks month/day bounds.
func (r CalendarDateRange) Validate() error {
	for _, md := range [][2]int{{r.StartMonth, r.StartDay}, {r.EndMonth, r.EndDay}} {
		if md[0] < 1 || md[0] > 12 {
			return fmt.Errorf("range %q: month %d out of range", r.Name, md[0])
		}
		if md[1] < 1 || md[1] > 31 {
			return fmt.Errorf("range %q: day %d out of range", r.Name, md[1])
		}
	}
	return nil
}

// ExceptionDay is a holiday definition. Fixed exceptions carry a month/day
// pair; moving exceptions reference an anchor date (e.g. Easter Sunday)
// plus a signed day offset. Exceptions outrank date ranges and the default
// week.
type ExceptionDay struct {
	Name         string `json:"name" yaml:"name"`
	Month        int    `json:"month,omitempty" yaml:"month,omitempty"`
	Day          int    `json:"day,omitempty" yaml:"day,omitempty"`
	AnchorID     string `json:"anchor_id,omitempty" yaml:"anchor_id,omitempty"`
	OffsetDays   int    `json:"offset_days,omitempty" yaml:"offset_days,omitempty"`
	ScheduleName string `json:"schedule" yaml:"schedule"`
}

// Moving reports whether the exception is anchor-relative.
func (e ExceptionDay) Moving() bool { return e.AnchorID != "" }

// ReferenceAnchorDate is a precomputed per-year anchor used to resolve
// moving exceptions.
type ReferenceAnchorDate struct {
	ID    string `json:"id" yaml:"id"`
	Year  int    `json:"year" yaml:"year"`
	Month int    `json:"month" yaml:"month"`
	Day   int    `json:"day" yaml:"day"`
}

// ScheduleTemplate is the top-level calendar: named day schedules, a
// default weekly pattern, seasonal overrides, holiday exceptions and anchor
// dates. It is immutable once loaded for a simulation run.
type ScheduleTemplate struct {
	Name         string                `json:"name" yaml:"name"`
	DaySchedules []DaySchedule         `json:"day_schedules" yaml:"day_schedules"`
	DefaultWeek  WeekSchedule          `json:"default_week" yaml:"default_week"`
	DateRanges   []CalendarDateRange   `json:"date_ranges" yaml:"date_ranges"`
	Exceptions   []ExceptionDay        `json:"exceptions" yaml:"exceptions"`
	Anchors      []ReferenceAnchorDate `json:"anchors" yaml:"anchors"`
}

// Validate checks structural soundness of the template.
func (t ScheduleTemplate) Validate() error {
	seen := make(map[string]bool, len(t.DaySchedules))
	for _, ds := range t.DaySchedules {
		if ds.Name == "" {
			return fmt.Errorf("day schedule without a name")
		}
		if seen[ds.Name] {
			return fmt.Errorf("duplicate day schedule %q", ds.Name)
		}
		seen[ds.Name] = true
		for _, p := range ds.Periods {
			if err := p.Validate(); err != nil {
				return fmt.Errorf("day schedule %q: %w", ds.Name, err)
			}
		}
	}
	for _, r := range t.DateRanges {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	for _, e := range t.Exceptions {
		if e.ScheduleName == "" {
			return fmt.Errorf("exception %q: schedule is required", e.Name)
		}
		if !e.Moving() && (e.Month < 1 || e.Month > 12 || e.Day < 1 || e.Day > 31) {
			return fmt.Errorf("exception %q: invalid month/day", e.Name)
		}
	}
	return nil
}
