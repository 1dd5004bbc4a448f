package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquatherm/poolsim/core/model"
)

const validYAML = `pool:
  surface_area_m2: 312.5
  volume_m3: 625
  depth_m: 2
  perimeter_m: 75
  target_temp: 27
  heat_pump:
    enabled: true
    type: air_source
    capacity_kw: 120
    nominal_cop: 4.5
  boiler:
    enabled: true
    capacity_kw: 250
    efficiency: 0.92
calendar:
  template_path: schedule.yaml
simulation:
  start: "2024-06-01"
  end: "2024-06-07"
  cold_thresholds: [24, 20]
weather:
  weather_csv: weather.csv
store:
  enabled: true
`

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", validYAML))
	require.NoError(t, err)

	assert.Equal(t, 625.0, cfg.Pool.VolumeM3)
	assert.Equal(t, model.ControlReactive, cfg.Pool.Strategy, "strategy defaults to reactive")
	assert.Equal(t, 27.0, cfg.Pool.SetbackTemp, "setback defaults to the target")
	assert.Equal(t, "closed", cfg.Calendar.MissingScheduleAction)
	assert.Equal(t, 3, cfg.Simulation.Precision)
	assert.Equal(t, []float64{24, 20}, cfg.Simulation.ColdThresholds)
	assert.Equal(t, "poolsim.db", cfg.Store.Path)

	start, end, err := cfg.Simulation.Window()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 7, 23, 0, 0, 0, time.UTC), end)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PS_POOL__VOLUME_M3", "900")
	t.Setenv("PS_CALENDAR__MISSING_SCHEDULE_ACTION", "error")

	cfg, err := Load(writeConfig(t, "config.yaml", validYAML))
	require.NoError(t, err)
	assert.Equal(t, 900.0, cfg.Pool.VolumeM3)
	assert.Equal(t, "error", cfg.Calendar.MissingScheduleAction)
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := map[string][2]string{
		"missing template path":       {"template_path: schedule.yaml", `template_path: ""`},
		"zero volume":                 {"volume_m3: 625", "volume_m3: 0"},
		"end before start":            {`end: "2024-06-07"`, `end: "2024-05-01"`},
		"bad missing-schedule action": {"calendar:", "calendar:\n  missing_schedule_action: ignore"},
		"missing weather csv":         {"weather_csv: weather.csv", `weather_csv: ""`},
	}
	for name, sub := range cases {
		t.Run(name, func(t *testing.T) {
			body := strings.Replace(validYAML, sub[0], sub[1], 1)
			_, err := Load(writeConfig(t, "config.yaml", body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load(writeConfig(t, "config.toml", "whatever = true"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
