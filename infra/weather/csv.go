package weather

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/aquatherm/poolsim/core/model"
)

// CSVWeather serves hourly weather samples parsed from a CSV file with the
// columns time,air_temp_c,wind_ms,humidity_pct. Timestamps are RFC 3339
// and get truncated to the hour.
type CSVWeather struct {
	samples map[int64]model.WeatherSample
	start   time.Time
	end     time.Time
}

// LoadCSVWeather reads and indexes the weather file.
func LoadCSVWeather(path string) (*CSVWeather, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ParseCSVWeather(f)
}

// ParseCSVWeather reads weather samples from r.
func ParseCSVWeather(r io.Reader) (*CSVWeather, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read weather csv: %w", err)
	}
	w := &CSVWeather{samples: make(map[int64]model.WeatherSample, len(rows))}
	for i, row := range rows {
		if i == 0 && row[0] == "time" {
			continue
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("weather csv line %d: expected 4 columns, got %d", i+1, len(row))
		}
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return nil, fmt.Errorf("weather csv line %d: %w", i+1, err)
		}
		ts = ts.Truncate(time.Hour)
		s := model.WeatherSample{Time: ts}
		if s.AirTempC, err = strconv.ParseFloat(row[1], 64); err != nil {
			return nil, fmt.Errorf("weather csv line %d: air_temp_c: %w", i+1, err)
		}
		if s.WindMS, err = strconv.ParseFloat(row[2], 64); err != nil {
			return nil, fmt.Errorf("weather csv line %d: wind_ms: %w", i+1, err)
		}
		if s.HumidityPct, err = strconv.ParseFloat(row[3], 64); err != nil {
			return nil, fmt.Errorf("weather csv line %d: humidity_pct: %w", i+1, err)
		}
		w.add(s)
	}
	return w, nil
}

func (w *CSVWeather) add(s model.WeatherSample) {
	if len(w.samples) == 0 || s.Time.Before(w.start) {
		w.start = s.Time
	}
	if len(w.samples) == 0 || s.Time.After(w.end) {
		w.end = s.Time
	}
	w.samples[s.Time.Unix()] = s
}

// Sample returns the observation for the hour containing t.
func (w *CSVWeather) Sample(t time.Time) (model.WeatherSample, bool) {
	s, ok := w.samples[t.Truncate(time.Hour).Unix()]
	return s, ok
}

// Bounds returns the covered time range.
func (w *CSVWeather) Bounds() (time.Time, time.Time, bool) {
	if len(w.samples) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return w.start, w.end, true
}

// CSVSolar serves solar irradiance from up to two CSV files: an hourly one
// (time,irradiance_wm2) and a daily one (date,total_wh_m2 with dates as
// 2006-01-02). Either may be absent.
type CSVSolar struct {
	hourly map[int64]float64
	daily  map[string]float64
}

// LoadCSVSolar reads the given files; empty paths are skipped.
func LoadCSVSolar(hourlyPath, dailyPath string) (*CSVSolar, error) {
	s := &CSVSolar{hourly: make(map[int64]float64), daily: make(map[string]float64)}
	if hourlyPath != "" {
		if err := s.loadHourly(hourlyPath); err != nil {
			return nil, err
		}
	}
	if dailyPath != "" {
		if err := s.loadDaily(dailyPath); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *CSVSolar) loadHourly(path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i == 0 && row[0] == "time" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return fmt.Errorf("solar csv line %d: %w", i+1, err)
		}
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return fmt.Errorf("solar csv line %d: %w", i+1, err)
		}
		s.hourly[ts.Truncate(time.Hour).Unix()] = v
	}
	return nil
}

func (s *CSVSolar) loadDaily(path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i == 0 && row[0] == "date" {
			continue
		}
		if _, err := time.Parse("2006-01-02", row[0]); err != nil {
			return fmt.Errorf("daily solar csv line %d: %w", i+1, err)
		}
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return fmt.Errorf("daily solar csv line %d: %w", i+1, err)
		}
		s.daily[row[0]] = v
	}
	return nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return csv.NewReader(f).ReadAll()
}

// Hourly returns the irradiance observation for the hour, if present.
func (s *CSVSolar) Hourly(t time.Time) (float64, bool) {
	v, ok := s.hourly[t.Truncate(time.Hour).Unix()]
	return v, ok
}

// Daily returns the daily total for the date of t, if present.
func (s *CSVSolar) Daily(t time.Time) (float64, bool) {
	v, ok := s.daily[t.Format("2006-01-02")]
	return v, ok
}
