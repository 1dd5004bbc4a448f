package schedule

import (
	"testing"
	"time"
)

func TestEasterSunday(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2024, time.March, 31},
		{2025, time.April, 20},
		{2026, time.April, 5},
		{2000, time.April, 23},
		{1999, time.April, 4},
		{2038, time.April, 25}, // latest possible Easter
	}
	for _, tc := range cases {
		got := easterSunday(tc.year)
		if got.Month() != tc.month || got.Day() != tc.day {
			t.Errorf("easter %d: got %s, want %d-%02d-%02d",
				tc.year, got.Format("2006-01-02"), tc.year, tc.month, tc.day)
		}
	}
}
