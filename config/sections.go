package config

import (
	"fmt"
	"time"
)

// CalendarConfig locates the schedule template and fixes the policy for
// dangling schedule references.
type CalendarConfig struct {
	// TemplatePath is the YAML or JSON schedule template file.
	TemplatePath string `json:"template_path"`
	// MissingScheduleAction is "closed" or "error".
	MissingScheduleAction string `json:"missing_schedule_action"`
}

// SetDefaults applies sane defaults.
func (c *CalendarConfig) SetDefaults() {
	if c.MissingScheduleAction == "" {
		c.MissingScheduleAction = "closed"
	}
}

// Validate checks mandatory fields.
func (c CalendarConfig) Validate() error {
	if c.TemplatePath == "" {
		return fmt.Errorf("calendar: template_path is required")
	}
	if c.MissingScheduleAction != "closed" && c.MissingScheduleAction != "error" {
		return fmt.Errorf("calendar: unknown missing_schedule_action %q", c.MissingScheduleAction)
	}
	return nil
}

// SimulationConfig bounds and tunes the run.
type SimulationConfig struct {
	// Start and End are calendar dates, 2006-01-02, both inclusive.
	Start string `json:"start"`
	End   string `json:"end"`
	// InitialWaterTemp seeds the run when the first hour is closed.
	InitialWaterTemp float64 `json:"initial_water_temp"`
	// Precision is the decimal places of reported figures.
	Precision int `json:"precision"`
	// ColdThresholds are water temperatures for the cold-day counts.
	ColdThresholds []float64 `json:"cold_thresholds"`
}

func (c *SimulationConfig) SetDefaults() {
	if c.Precision == 0 {
		c.Precision = 3
	}
}

func (c SimulationConfig) Validate() error {
	if _, _, err := c.Window(); err != nil {
		return err
	}
	return nil
}

// Window parses the configured date range. The end date extends to its
// last hour so both dates are simulated in full.
func (c SimulationConfig) Window() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("simulation: start: %w", err)
	}
	end, err := time.Parse("2006-01-02", c.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("simulation: end: %w", err)
	}
	end = end.Add(23 * time.Hour)
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("simulation: end precedes start")
	}
	return start, end, nil
}

// WeatherConfig locates the input series files.
type WeatherConfig struct {
	WeatherCSV     string `json:"weather_csv"`
	SolarHourlyCSV string `json:"solar_hourly_csv"`
	SolarDailyCSV  string `json:"solar_daily_csv"`
}

func (c WeatherConfig) Validate() error {
	if c.WeatherCSV == "" {
		return fmt.Errorf("weather: weather_csv is required")
	}
	return nil
}

// StoreConfig enables run persistence.
type StoreConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

func (c *StoreConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "poolsim.db"
	}
}
