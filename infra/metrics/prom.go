package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/aquatherm/poolsim/core/metrics"
	"github.com/aquatherm/poolsim/core/model"
)

// PromRecorder exposes run totals as Prometheus metrics.
type PromRecorder struct {
	runs       *prometheus.CounterVec
	hours      prometheus.Counter
	unmetKWh   prometheus.Counter
	unmetHours prometheus.Counter
	totalCost  prometheus.Counter
	avgCOP     prometheus.Gauge
	duration   prometheus.Histogram
}

// NewPromRecorder registers run metrics on the default registerer.
func NewPromRecorder() (*PromRecorder, error) {
	return NewPromRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromRecorderWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global one.
func NewPromRecorderWithRegistry(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "poolsim_runs_total",
		Help: "Total number of completed simulation runs",
	}, []string{"strategy"})
	hours := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "poolsim_simulated_hours_total",
		Help: "Total number of simulated hours",
	})
	unmet := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "poolsim_unmet_heat_kwh_total",
		Help: "Heat demand the equipment could not cover, kWh",
	})
	cost := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "poolsim_energy_cost_total",
		Help: "Accumulated energy cost across runs",
	})
	unmetHours := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "poolsim_unmet_hours_total",
		Help: "Simulated hours where demand exceeded equipment capacity",
	})
	cop := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "poolsim_run_avg_cop",
		Help: "Average heat pump COP of the last completed run",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "poolsim_run_duration_seconds",
		Help:    "Wall-clock duration of simulation runs",
		Buckets: prometheus.DefBuckets,
	})

	rec := &PromRecorder{
		runs: runs, hours: hours, unmetKWh: unmet, unmetHours: unmetHours,
		totalCost: cost, avgCOP: cop, duration: duration,
	}
	for _, c := range []prometheus.Collector{runs, hours, unmet, unmetHours, cost, cop, duration} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return rec, nil
}

// RecordRun updates the run counters with the summary totals.
func (r *PromRecorder) RecordRun(rec coremetrics.RunRecord) error {
	r.runs.WithLabelValues(string(rec.Meta.Strategy)).Inc()
	r.hours.Add(float64(rec.Summary.Hours))
	r.unmetKWh.Add(rec.Summary.UnmetHeatKWh)
	r.unmetHours.Add(float64(rec.Summary.UnmetHours))
	r.totalCost.Add(rec.Summary.TotalCost)
	r.avgCOP.Set(rec.Summary.AvgCOP)
	r.duration.Observe(rec.Duration.Seconds())
	return nil
}

// RecordDaily is a no-op for Prometheus; counters only track run totals.
func (r *PromRecorder) RecordDaily(string, []model.DailyRecord) error { return nil }

// StartPromServer serves the metrics endpoint until the context is done.
func StartPromServer(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
