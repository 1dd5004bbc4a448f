package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquatherm/poolsim/core/model"
)

func TestMemoryWeather(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	w := NewMemoryWeather([]model.WeatherSample{
		{Time: base.Add(2 * time.Hour), AirTempC: 15},
		{Time: base, AirTempC: 14},
		{Time: base.Add(time.Hour).Add(20 * time.Minute), AirTempC: 14.5},
	})

	start, end, ok := w.Bounds()
	require.True(t, ok)
	assert.Equal(t, base, start)
	assert.Equal(t, base.Add(2*time.Hour), end)

	s, ok := w.Sample(base.Add(time.Hour))
	require.True(t, ok)
	assert.Equal(t, 14.5, s.AirTempC)

	_, ok = w.Sample(base.Add(3 * time.Hour))
	assert.False(t, ok)
}

func TestMemoryWeather_Empty(t *testing.T) {
	w := NewMemoryWeather(nil)
	_, _, ok := w.Bounds()
	assert.False(t, ok)
}

func TestMemorySolar(t *testing.T) {
	noon := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := &MemorySolar{
		HourlyWM2: map[int64]float64{noon.Unix(): 640},
		DailyWhM2: map[string]float64{"2024-06-01": 5400},
	}

	v, ok := s.Hourly(noon.Add(30 * time.Minute))
	require.True(t, ok)
	assert.Equal(t, 640.0, v)

	v, ok = s.Daily(noon)
	require.True(t, ok)
	assert.Equal(t, 5400.0, v)

	_, ok = s.Hourly(noon.Add(time.Hour))
	assert.False(t, ok)
}
