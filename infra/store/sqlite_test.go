package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquatherm/poolsim/core/model"
)

func testResult(runID string, generated time.Time) *model.RunResult {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return &model.RunResult{
		Meta: model.RunMeta{
			RunID:            runID,
			Start:            day,
			End:              day.Add(47 * time.Hour),
			GeneratedAt:      generated,
			Strategy:         model.ControlReactive,
			ConstantsVersion: "2024.1",
		},
		Daily: []model.DailyRecord{
			{Date: day, Hours: 24, HoursOpen: 12, TotalLossKWh: 1100.5, AvgWaterTempC: 26.8},
			{Date: day.AddDate(0, 0, 1), Hours: 24, HoursOpen: 12, TotalLossKWh: 980.2, AvgWaterTempC: 27.1},
		},
		Summary: model.Summary{Hours: 48, Days: 2, TotalLossKWh: 2080.7},
	}
}

func TestRunStore_Roundtrip(t *testing.T) {
	s, err := NewRunStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	res := testResult("run-1", time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC))
	require.NoError(t, s.SaveRun(ctx, res))

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].Meta.RunID)
	assert.Equal(t, model.ControlReactive, runs[0].Meta.Strategy)
	assert.Equal(t, 48, runs[0].Summary.Hours)
	assert.Equal(t, 2080.7, runs[0].Summary.TotalLossKWh)

	days, err := s.LoadDaily(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 1100.5, days[0].TotalLossKWh)
	assert.True(t, days[0].Date.Before(days[1].Date), "daily records must come back in date order")
}

func TestRunStore_ListNewestFirst(t *testing.T) {
	s, err := NewRunStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	older := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	newer := older.Add(2 * time.Hour)
	require.NoError(t, s.SaveRun(ctx, testResult("run-old", older)))
	require.NoError(t, s.SaveRun(ctx, testResult("run-new", newer)))

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-new", runs[0].Meta.RunID)
	assert.Equal(t, "run-old", runs[1].Meta.RunID)
}

func TestRunStore_DuplicateRunID(t *testing.T) {
	s, err := NewRunStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	res := testResult("run-1", time.Now().UTC())
	require.NoError(t, s.SaveRun(ctx, res))
	assert.Error(t, s.SaveRun(ctx, res))
}

func TestRunStore_PruneBefore(t *testing.T) {
	s, err := NewRunStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	cutoff := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveRun(ctx, testResult("run-old", cutoff.Add(-time.Hour))))
	require.NoError(t, s.SaveRun(ctx, testResult("run-new", cutoff.Add(time.Hour))))

	require.NoError(t, s.PruneBefore(ctx, cutoff))

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-new", runs[0].Meta.RunID)

	days, err := s.LoadDaily(ctx, "run-old")
	require.NoError(t, err)
	assert.Empty(t, days)
}
