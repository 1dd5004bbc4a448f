package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aquatherm/poolsim/core/model"
)

// ErrNoSchedule is returned when resolution fails entirely: no exception,
// no date range, no default week entry and no fallback day schedule.
var ErrNoSchedule = errors.New("no schedule resolvable")

// nextOpeningHorizonDays bounds the forward search of FindNextOpening.
const nextOpeningHorizonDays = 30

// MissingScheduleAction decides what happens when a schedule name resolves
// but no day schedule with that name is defined.
type MissingScheduleAction string

const (
	// MissingScheduleClosed treats the day as closed. Historical behavior;
	// masks configuration mistakes.
	MissingScheduleClosed MissingScheduleAction = "closed"
	// MissingScheduleError surfaces the dangling reference as an error.
	MissingScheduleError MissingScheduleAction = "error"
)

// MissingScheduleErr reports a resolved schedule name with no definition.
type MissingScheduleErr struct {
	Name string
	Date time.Time
}

func (e *MissingScheduleErr) Error() string {
	return fmt.Sprintf("schedule %q resolved for %s but is not defined", e.Name, e.Date.Format("2006-01-02"))
}

// TransitionType marks an opening or closing event.
type TransitionType string

const (
	TransitionOpen  TransitionType = "open"
	TransitionClose TransitionType = "close"
)

// Transition is one schedule event within a day. TargetTemp is the water
// target after the event, FromTemp the target before it; nil means closed.
type Transition struct {
	Time       time.Time      `json:"time"`
	Type       TransitionType `json:"type"`
	TargetTemp *float64       `json:"target_temp,omitempty"`
	FromTemp   *float64       `json:"from_temp,omitempty"`
}

// Opening is the result of a next-opening search.
type Opening struct {
	Time       time.Time `json:"time"`
	TargetTemp float64   `json:"target_temp"`
}

// Resolver answers schedule queries over an immutable calendar template.
// It is safe for concurrent use once constructed.
type Resolver struct {
	tmpl    model.ScheduleTemplate
	missing MissingScheduleAction
	days    map[string]model.DaySchedule
	ranges  []model.CalendarDateRange
	anchors map[string]time.Time
}

// NewResolver validates the template and builds lookup structures. The
// missing action defaults to MissingScheduleClosed when empty.
func NewResolver(tmpl model.ScheduleTemplate, missing MissingScheduleAction) (*Resolver, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, fmt.Errorf("schedule template: %w", err)
	}
	switch missing {
	case "":
		missing = MissingScheduleClosed
	case MissingScheduleClosed, MissingScheduleError:
	default:
		return nil, fmt.Errorf("unknown missing schedule action %q", missing)
	}
	r := &Resolver{
		tmpl:    tmpl,
		missing: missing,
		days:    make(map[string]model.DaySchedule, len(tmpl.DaySchedules)),
		anchors: make(map[string]time.Time, len(tmpl.Anchors)),
	}
	for _, ds := range tmpl.DaySchedules {
		r.days[ds.Name] = ds
	}
	for _, rg := range tmpl.DateRanges {
		if rg.Active {
			r.ranges = append(r.ranges, rg)
		}
	}
	sort.SliceStable(r.ranges, func(i, j int) bool {
		return r.ranges[i].Priority > r.ranges[j].Priority
	})
	for _, a := range tmpl.Anchors {
		r.anchors[anchorKey(a.ID, a.Year)] = time.Date(a.Year, time.Month(a.Month), a.Day, 0, 0, 0, 0, time.UTC)
	}
	return r, nil
}

func anchorKey(id string, year int) string { return fmt.Sprintf("%s/%d", id, year) }

// anchorDate returns the anchor date for the given year, preferring the
// precomputed table and falling back to the computed Easter Sunday.
func (r *Resolver) anchorDate(id string, year int) time.Time {
	if d, ok := r.anchors[anchorKey(id, year)]; ok {
		return d
	}
	return easterSunday(year)
}

// exceptionFor returns the first exception matching the date, if any.
func (r *Resolver) exceptionFor(date time.Time) (model.ExceptionDay, bool) {
	for _, e := range r.tmpl.Exceptions {
		if e.Moving() {
			a := r.anchorDate(e.AnchorID, date.Year()).AddDate(0, 0, e.OffsetDays)
			if a.Month() == date.Month() && a.Day() == date.Day() {
				return e, true
			}
			continue
		}
		if int(date.Month()) == e.Month && date.Day() == e.Day {
			return e, true
		}
	}
	return model.ExceptionDay{}, false
}

// ScheduleNameForDate resolves the day-schedule name applying to the date.
// Priority: holiday exceptions, then active date ranges by descending
// priority, then the default week, then the first defined day schedule as a
// last resort. ErrNoSchedule when nothing resolves.
func (r *Resolver) ScheduleNameForDate(date time.Time) (string, error) {
	if e, ok := r.exceptionFor(date); ok {
		return e.ScheduleName, nil
	}
	wd := date.Weekday()
	for _, rg := range r.ranges {
		if !rg.Contains(date) {
			continue
		}
		if name := rg.Week.ForWeekday(wd); name != "" {
			return name, nil
		}
	}
	if name := r.tmpl.DefaultWeek.ForWeekday(wd); name != "" {
		return name, nil
	}
	if len(r.tmpl.DaySchedules) > 0 {
		return r.tmpl.DaySchedules[0].Name, nil
	}
	return "", ErrNoSchedule
}

// PeriodsForDate returns the periods of the resolved day schedule. A
// resolved name without a definition follows the configured missing
// schedule action: closed (empty list) or an error.
func (r *Resolver) PeriodsForDate(date time.Time) ([]model.Period, error) {
	name, err := r.ScheduleNameForDate(date)
	if err != nil {
		return nil, err
	}
	ds, ok := r.days[name]
	if !ok {
		if r.missing == MissingScheduleError {
			return nil, &MissingScheduleErr{Name: name, Date: date}
		}
		return nil, nil
	}
	return ds.Periods, nil
}

// CurrentPeriod returns the period covering the datetime's hour, or nil
// when the pool is closed. Degenerate periods never match.
func (r *Resolver) CurrentPeriod(t time.Time) (*model.Period, error) {
	periods, err := r.PeriodsForDate(t)
	if err != nil {
		return nil, err
	}
	hour := t.Hour()
	for i := range periods {
		if periods[i].ContainsHour(hour) {
			p := periods[i]
			return &p, nil
		}
	}
	return nil, nil
}

// TargetTemperature returns the active target temperature, or ok=false
// when the pool is closed at the datetime.
func (r *Resolver) TargetTemperature(t time.Time) (float64, bool, error) {
	p, err := r.CurrentPeriod(t)
	if err != nil || p == nil {
		return 0, false, err
	}
	return p.TargetTemp, true, nil
}

// IsOpen reports whether any period covers the datetime's hour.
func (r *Resolver) IsOpen(t time.Time) (bool, error) {
	p, err := r.CurrentPeriod(t)
	return p != nil, err
}

// DailyTransitions returns the open and close events of the date,
// time-sorted. Each non-degenerate period contributes one open and one
// close event at its start and end hour.
func (r *Resolver) DailyTransitions(date time.Time) ([]Transition, error) {
	periods, err := r.PeriodsForDate(date)
	if err != nil {
		return nil, err
	}
	y, m, d := date.Date()
	loc := date.Location()
	var out []Transition
	for _, p := range periods {
		if p.Degenerate() {
			continue
		}
		target := p.TargetTemp
		out = append(out,
			Transition{
				Time:       time.Date(y, m, d, p.StartHour, 0, 0, 0, loc),
				Type:       TransitionOpen,
				TargetTemp: &target,
			},
			Transition{
				Time:     time.Date(y, m, d, p.EndHour, 0, 0, 0, loc),
				Type:     TransitionClose,
				FromTemp: &target,
			},
		)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

// FindNextOpening scans the remaining transitions of the current day, then
// forward day by day up to a bounded horizon. It returns nil when no
// opening exists within the horizon.
func (r *Resolver) FindNextOpening(from time.Time) (*Opening, error) {
	for offset := 0; offset <= nextOpeningHorizonDays; offset++ {
		day := from.AddDate(0, 0, offset)
		trs, err := r.DailyTransitions(day)
		if err != nil {
			return nil, err
		}
		for _, tr := range trs {
			if tr.Type != TransitionOpen || !tr.Time.After(from) {
				continue
			}
			return &Opening{Time: tr.Time, TargetTemp: *tr.TargetTemp}, nil
		}
	}
	return nil, nil
}
