package weather

import (
	"time"

	"github.com/aquatherm/poolsim/core/model"
)

// MemoryWeather serves samples from a slice. Used in tests and by callers
// that already hold the series in memory.
type MemoryWeather struct {
	samples map[int64]model.WeatherSample
	start   time.Time
	end     time.Time
}

// NewMemoryWeather indexes the given samples by hour.
func NewMemoryWeather(samples []model.WeatherSample) *MemoryWeather {
	w := &MemoryWeather{samples: make(map[int64]model.WeatherSample, len(samples))}
	for _, s := range samples {
		s.Time = s.Time.Truncate(time.Hour)
		if len(w.samples) == 0 || s.Time.Before(w.start) {
			w.start = s.Time
		}
		if len(w.samples) == 0 || s.Time.After(w.end) {
			w.end = s.Time
		}
		w.samples[s.Time.Unix()] = s
	}
	return w
}

func (w *MemoryWeather) Sample(t time.Time) (model.WeatherSample, bool) {
	s, ok := w.samples[t.Truncate(time.Hour).Unix()]
	return s, ok
}

func (w *MemoryWeather) Bounds() (time.Time, time.Time, bool) {
	if len(w.samples) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return w.start, w.end, true
}

// MemorySolar serves hourly and daily irradiance values from maps.
type MemorySolar struct {
	HourlyWM2 map[int64]float64
	DailyWhM2 map[string]float64
}

func (s *MemorySolar) Hourly(t time.Time) (float64, bool) {
	v, ok := s.HourlyWM2[t.Truncate(time.Hour).Unix()]
	return v, ok
}

func (s *MemorySolar) Daily(t time.Time) (float64, bool) {
	v, ok := s.DailyWhM2[t.Format("2006-01-02")]
	return v, ok
}
