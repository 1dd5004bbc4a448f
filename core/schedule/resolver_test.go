package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/aquatherm/poolsim/core/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testTemplate() model.ScheduleTemplate {
	return model.ScheduleTemplate{
		Name: "municipal",
		DaySchedules: []model.DaySchedule{
			{Name: "Normal", Periods: []model.Period{{StartHour: 8, EndHour: 20, TargetTemp: 27}}},
			{Name: "Weekend", Periods: []model.Period{{StartHour: 9, EndHour: 18, TargetTemp: 28}}},
			{Name: "Holiday", Periods: []model.Period{{StartHour: 10, EndHour: 16, TargetTemp: 26}}},
			{Name: "Closed"},
		},
		DefaultWeek: model.WeekSchedule{
			Monday: "Normal", Tuesday: "Normal", Wednesday: "Normal",
			Thursday: "Normal", Friday: "Normal",
			Saturday: "Weekend", Sunday: "Weekend",
		},
		DateRanges: []model.CalendarDateRange{
			{
				Name:       "winter-break",
				Week:       weekOf("Closed"),
				StartMonth: 12, StartDay: 20, EndMonth: 1, EndDay: 5,
				Priority: 10, Recurring: true, Active: true,
			},
			{
				Name:       "high-season",
				Week:       weekOf("Weekend"),
				StartMonth: 7, StartDay: 1, EndMonth: 8, EndDay: 31,
				Priority: 5, Recurring: true, Active: true,
			},
		},
		Exceptions: []model.ExceptionDay{
			{Name: "christmas", Month: 12, Day: 25, ScheduleName: "Holiday"},
			{Name: "good-friday", AnchorID: "easter", OffsetDays: -2, ScheduleName: "Holiday"},
			{Name: "easter-monday", AnchorID: "easter", OffsetDays: 1, ScheduleName: "Holiday"},
		},
	}
}

func weekOf(name string) model.WeekSchedule {
	return model.WeekSchedule{
		Monday: name, Tuesday: name, Wednesday: name, Thursday: name,
		Friday: name, Saturday: name, Sunday: name,
	}
}

func mustResolver(t *testing.T, tmpl model.ScheduleTemplate, action MissingScheduleAction) *Resolver {
	t.Helper()
	r, err := NewResolver(tmpl, action)
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	return r
}

func TestScheduleNameForDate_Priority(t *testing.T) {
	r := mustResolver(t, testTemplate(), "")

	// Christmas falls inside the winter break range and the default week,
	// but the exception outranks both.
	name, err := r.ScheduleNameForDate(date(2024, 12, 25))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "Holiday" {
		t.Errorf("expected Holiday for Christmas, got %q", name)
	}

	// A plain winter-break day uses the range, not the default week.
	name, err = r.ScheduleNameForDate(date(2024, 12, 23)) // Monday
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "Closed" {
		t.Errorf("expected Closed during winter break, got %q", name)
	}

	// Outside any range and exception the default week applies.
	name, err = r.ScheduleNameForDate(date(2024, 6, 12)) // Wednesday
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "Normal" {
		t.Errorf("expected Normal on a plain weekday, got %q", name)
	}
}

func TestScheduleNameForDate_RangePriorityOrder(t *testing.T) {
	tmpl := testTemplate()
	// An overlapping lower-priority range must lose.
	tmpl.DateRanges = append(tmpl.DateRanges, model.CalendarDateRange{
		Name: "overlap", Week: weekOf("Weekend"),
		StartMonth: 12, StartDay: 1, EndMonth: 12, EndDay: 31,
		Priority: 1, Recurring: true, Active: true,
	})
	r := mustResolver(t, tmpl, "")
	name, err := r.ScheduleNameForDate(date(2024, 12, 23))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "Closed" {
		t.Errorf("higher priority range must win, got %q", name)
	}
}

func TestScheduleNameForDate_InactiveRangeIgnored(t *testing.T) {
	tmpl := testTemplate()
	tmpl.DateRanges[0].Active = false
	r := mustResolver(t, tmpl, "")
	name, err := r.ScheduleNameForDate(date(2024, 12, 23)) // Monday
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "Normal" {
		t.Errorf("inactive range must be skipped, got %q", name)
	}
}

func TestDateRange_YearCrossing(t *testing.T) {
	rg := model.CalendarDateRange{
		StartMonth: 12, StartDay: 20, EndMonth: 1, EndDay: 5,
		Recurring: true, Active: true,
	}
	for _, d := range []time.Time{date(2024, 12, 25), date(2025, 1, 2), date(1999, 12, 20), date(2030, 1, 5)} {
		if !rg.Contains(d) {
			t.Errorf("range must contain %s", d.Format("2006-01-02"))
		}
	}
	for _, d := range []time.Time{date(2024, 6, 15), date(2025, 1, 6), date(2024, 12, 19)} {
		if rg.Contains(d) {
			t.Errorf("range must not contain %s", d.Format("2006-01-02"))
		}
	}
}

func TestCurrentPeriod_Overnight(t *testing.T) {
	tmpl := testTemplate()
	tmpl.DaySchedules = append(tmpl.DaySchedules, model.DaySchedule{
		Name:    "Night",
		Periods: []model.Period{{StartHour: 22, EndHour: 6, TargetTemp: 25}},
	})
	tmpl.DefaultWeek = weekOf("Night")
	tmpl.DateRanges = nil
	tmpl.Exceptions = nil
	r := mustResolver(t, tmpl, "")

	cases := []struct {
		hour int
		open bool
	}{
		{23, true}, {2, true}, {22, true}, {10, false}, {6, false}, {21, false},
	}
	for _, tc := range cases {
		open, err := r.IsOpen(time.Date(2024, 6, 12, tc.hour, 30, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("isOpen: %v", err)
		}
		if open != tc.open {
			t.Errorf("hour %d: open=%v, want %v", tc.hour, open, tc.open)
		}
	}
}

func TestCurrentPeriod_DegenerateSkipped(t *testing.T) {
	tmpl := testTemplate()
	tmpl.DaySchedules = []model.DaySchedule{{
		Name:    "Degenerate",
		Periods: []model.Period{{StartHour: 12, EndHour: 12, TargetTemp: 30}},
	}}
	tmpl.DefaultWeek = weekOf("Degenerate")
	tmpl.DateRanges = nil
	tmpl.Exceptions = nil
	r := mustResolver(t, tmpl, "")

	for hour := 0; hour < 24; hour++ {
		open, err := r.IsOpen(time.Date(2024, 6, 12, hour, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("isOpen: %v", err)
		}
		if open {
			t.Fatalf("degenerate period must never register open (hour %d)", hour)
		}
	}
}

func TestTargetTemperature(t *testing.T) {
	r := mustResolver(t, testTemplate(), "")
	temp, ok, err := r.TargetTemperature(time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	if !ok || temp != 27 {
		t.Errorf("expected 27 during opening hours, got %v ok=%v", temp, ok)
	}
	_, ok, err = r.TargetTemperature(time.Date(2024, 6, 12, 5, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	if ok {
		t.Error("expected closed before opening hours")
	}
}

func TestMovingException_EasterRelative(t *testing.T) {
	r := mustResolver(t, testTemplate(), "")

	// Easter Sunday 2024 is March 31: offset −2 is Good Friday March 29,
	// offset +1 is Easter Monday April 1.
	for _, d := range []time.Time{date(2024, 3, 29), date(2024, 4, 1)} {
		name, err := r.ScheduleNameForDate(d)
		if err != nil {
			t.Fatalf("resolve %s: %v", d.Format("2006-01-02"), err)
		}
		if name != "Holiday" {
			t.Errorf("%s: expected Holiday, got %q", d.Format("2006-01-02"), name)
		}
	}

	// March 30 sits between the two offsets and must not match.
	name, err := r.ScheduleNameForDate(date(2024, 3, 30)) // Saturday
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "Weekend" {
		t.Errorf("expected Weekend on Holy Saturday, got %q", name)
	}
}

func TestMovingException_PrecomputedAnchorWins(t *testing.T) {
	tmpl := testTemplate()
	// Deliberately wrong anchor to prove the table outranks the computation.
	tmpl.Anchors = []model.ReferenceAnchorDate{{ID: "easter", Year: 2024, Month: 5, Day: 10}}
	r := mustResolver(t, tmpl, "")

	name, err := r.ScheduleNameForDate(date(2024, 5, 11)) // anchor +1
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "Holiday" {
		t.Errorf("expected Holiday from precomputed anchor, got %q", name)
	}
}

func TestPeriodsForDate_MissingSchedule(t *testing.T) {
	tmpl := testTemplate()
	tmpl.DefaultWeek = weekOf("Ghost")
	tmpl.DateRanges = nil
	tmpl.Exceptions = nil

	r := mustResolver(t, tmpl, MissingScheduleClosed)
	periods, err := r.PeriodsForDate(date(2024, 6, 12))
	if err != nil {
		t.Fatalf("closed policy must not error: %v", err)
	}
	if len(periods) != 0 {
		t.Errorf("closed policy must yield no periods, got %d", len(periods))
	}

	r = mustResolver(t, tmpl, MissingScheduleError)
	_, err = r.PeriodsForDate(date(2024, 6, 12))
	var missing *MissingScheduleErr
	if !errors.As(err, &missing) {
		t.Fatalf("error policy must surface MissingScheduleErr, got %v", err)
	}
	if missing.Name != "Ghost" {
		t.Errorf("expected dangling name Ghost, got %q", missing.Name)
	}
}

func TestScheduleNameForDate_Fallbacks(t *testing.T) {
	tmpl := testTemplate()
	tmpl.DefaultWeek = model.WeekSchedule{}
	tmpl.DateRanges = nil
	tmpl.Exceptions = nil
	r := mustResolver(t, tmpl, "")

	name, err := r.ScheduleNameForDate(date(2024, 6, 12))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "Normal" {
		t.Errorf("expected first defined schedule as last resort, got %q", name)
	}

	empty := model.ScheduleTemplate{}
	r = mustResolver(t, empty, "")
	if _, err := r.ScheduleNameForDate(date(2024, 6, 12)); !errors.Is(err, ErrNoSchedule) {
		t.Fatalf("expected ErrNoSchedule, got %v", err)
	}
}

func TestDailyTransitions(t *testing.T) {
	tmpl := testTemplate()
	tmpl.DaySchedules = []model.DaySchedule{{
		Name: "Split",
		Periods: []model.Period{
			{StartHour: 14, EndHour: 20, TargetTemp: 27},
			{StartHour: 7, EndHour: 12, TargetTemp: 28},
			{StartHour: 3, EndHour: 3, TargetTemp: 30}, // degenerate
		},
	}}
	tmpl.DefaultWeek = weekOf("Split")
	tmpl.DateRanges = nil
	tmpl.Exceptions = nil
	r := mustResolver(t, tmpl, "")

	trs, err := r.DailyTransitions(date(2024, 6, 12))
	if err != nil {
		t.Fatalf("transitions: %v", err)
	}
	if len(trs) != 4 {
		t.Fatalf("expected 4 transitions, got %d", len(trs))
	}
	wantHours := []int{7, 12, 14, 20}
	wantTypes := []TransitionType{TransitionOpen, TransitionClose, TransitionOpen, TransitionClose}
	for i, tr := range trs {
		if tr.Time.Hour() != wantHours[i] || tr.Type != wantTypes[i] {
			t.Errorf("transition %d: got %s@%d, want %s@%d", i, tr.Type, tr.Time.Hour(), wantTypes[i], wantHours[i])
		}
	}
	if trs[0].TargetTemp == nil || *trs[0].TargetTemp != 28 {
		t.Error("open transition must carry the period target")
	}
	if trs[1].FromTemp == nil || *trs[1].FromTemp != 28 {
		t.Error("close transition must carry the prior target")
	}
}

func TestFindNextOpening(t *testing.T) {
	r := mustResolver(t, testTemplate(), "")

	// Wednesday 05:00: opens the same day at 08:00.
	op, err := r.FindNextOpening(time.Date(2024, 6, 12, 5, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("next opening: %v", err)
	}
	if op == nil || op.Time.Day() != 12 || op.Time.Hour() != 8 || op.TargetTemp != 27 {
		t.Fatalf("expected opening 2024-06-12T08:00 target 27, got %+v", op)
	}

	// Wednesday 21:00 is past closing: next opening is Thursday 08:00.
	op, err = r.FindNextOpening(time.Date(2024, 6, 12, 21, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("next opening: %v", err)
	}
	if op == nil || op.Time.Day() != 13 || op.Time.Hour() != 8 {
		t.Fatalf("expected opening 2024-06-13T08:00, got %+v", op)
	}
}

func TestFindNextOpening_HorizonExhausted(t *testing.T) {
	tmpl := testTemplate()
	tmpl.DefaultWeek = weekOf("Closed")
	tmpl.DateRanges = nil
	tmpl.Exceptions = nil
	r := mustResolver(t, tmpl, "")

	op, err := r.FindNextOpening(time.Date(2024, 6, 12, 5, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("next opening: %v", err)
	}
	if op != nil {
		t.Fatalf("expected nil beyond the search horizon, got %+v", op)
	}
}
