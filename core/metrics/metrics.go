package metrics

import (
	"time"

	"github.com/aquatherm/poolsim/core/model"
)

// RunRecord captures the identity and totals of one completed run.
// Duration is the wall-clock time the computation took, not the simulated
// window.
type RunRecord struct {
	Meta     model.RunMeta
	Summary  model.Summary
	Duration time.Duration
}

// RunRecorder records simulation results for observability purposes.
// Recording happens after a run completes (or per finalized day), never
// inside the hourly loop.
type RunRecorder interface {
	RecordRun(rec RunRecord) error
	RecordDaily(runID string, days []model.DailyRecord) error
}

// NopRecorder implements RunRecorder with no-op methods.
type NopRecorder struct{}

func (NopRecorder) RecordRun(RunRecord) error                     { return nil }
func (NopRecorder) RecordDaily(string, []model.DailyRecord) error { return nil }

// Config selects the enabled recorder backends.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled" yaml:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port" yaml:"prometheus_port"`

	InfluxEnabled bool   `json:"influx_enabled" yaml:"influx_enabled"`
	InfluxURL     string `json:"influx_url" yaml:"influx_url"`
	InfluxToken   string `json:"influx_token" yaml:"influx_token"`
	InfluxOrg     string `json:"influx_org" yaml:"influx_org"`
	InfluxBucket  string `json:"influx_bucket" yaml:"influx_bucket"`
}
