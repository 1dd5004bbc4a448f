package schedule

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templateYAML = `
name: municipal
day_schedules:
  - name: Normal
    periods:
      - from_hour: 8
        to_hour: 20
        target_temp: 27.5
  - name: Closed
default_week:
  monday: Normal
  saturday: Closed
  sunday: Closed
date_ranges:
  - name: winter
    start_month: 12
    start_day: 20
    end_month: 1
    end_day: 5
    priority: 10
    recurring: true
    active: true
    week:
      monday: Closed
exceptions:
  - name: easter-monday
    anchor_id: easter
    offset_days: 1
    schedule: Closed
`

func TestDecodeTemplate_YAML(t *testing.T) {
	tmpl, err := DecodeTemplate(strings.NewReader(templateYAML), "yaml")
	require.NoError(t, err)
	assert.Equal(t, "municipal", tmpl.Name)
	require.Len(t, tmpl.DaySchedules, 2)
	require.Len(t, tmpl.DaySchedules[0].Periods, 1)
	assert.Equal(t, 27.5, tmpl.DaySchedules[0].Periods[0].TargetTemp)
	assert.Equal(t, "Normal", tmpl.DefaultWeek.Monday)
	require.Len(t, tmpl.DateRanges, 1)
	assert.True(t, tmpl.DateRanges[0].Recurring)
	require.Len(t, tmpl.Exceptions, 1)
	assert.True(t, tmpl.Exceptions[0].Moving())
}

func TestDecodeTemplate_InvalidHour(t *testing.T) {
	bad := strings.Replace(templateYAML, "to_hour: 20", "to_hour: 25", 1)
	_, err := DecodeTemplate(strings.NewReader(bad), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestDecodeTemplate_DuplicateName(t *testing.T) {
	bad := strings.Replace(templateYAML, "name: Closed", "name: Normal", 1)
	_, err := DecodeTemplate(strings.NewReader(bad), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestDecodeTemplate_UnknownFormat(t *testing.T) {
	_, err := DecodeTemplate(strings.NewReader(templateYAML), "toml")
	require.Error(t, err)
}
