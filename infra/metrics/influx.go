package metrics

import (
	"context"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/aquatherm/poolsim/core/metrics"
	"github.com/aquatherm/poolsim/core/model"
	"github.com/aquatherm/poolsim/infra/logger"
)

// InfluxRecorder writes run summaries and daily aggregates to InfluxDB
// using the official client.
type InfluxRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxRecorder creates a recorder for the given InfluxDB endpoint.
func NewInfluxRecorder(cfg coremetrics.Config) *InfluxRecorder {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-recorder"),
	}
}

// NewInfluxRecorderWithFallback pings the InfluxDB instance and returns a
// NopRecorder when the health check fails, so a dead endpoint never blocks
// a simulation run.
func NewInfluxRecorderWithFallback(cfg coremetrics.Config) coremetrics.RunRecorder {
	rec := NewInfluxRecorder(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := rec.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			rec.log.Errorf("influx health check error: %v", err)
		} else {
			rec.log.Errorf("influx health status: %s", health.Status)
		}
		rec.client.Close()
		return coremetrics.NopRecorder{}
	}
	return rec
}

// RecordRun writes the run summary as a single point.
func (r *InfluxRecorder) RecordRun(rec coremetrics.RunRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("pool_run_summary").
		AddTag("run_id", rec.Meta.RunID).
		AddTag("strategy", string(rec.Meta.Strategy)).
		AddTag("constants_version", rec.Meta.ConstantsVersion).
		AddField("hours", rec.Summary.Hours).
		AddField("days", rec.Summary.Days).
		AddField("total_loss_kwh", rec.Summary.TotalLossKWh).
		AddField("solar_kwh", rec.Summary.SolarKWh).
		AddField("heat_pump_kwh", rec.Summary.HeatPumpKWh).
		AddField("boiler_kwh", rec.Summary.BoilerKWh).
		AddField("hp_electricity_kwh", rec.Summary.HPElectricityKWh).
		AddField("boiler_fuel_kwh", rec.Summary.BoilerFuelKWh).
		AddField("unmet_heat_kwh", rec.Summary.UnmetHeatKWh).
		AddField("avg_water_temp_c", rec.Summary.AvgWaterTempC).
		AddField("avg_cop", rec.Summary.AvgCOP).
		AddField("total_cost", rec.Summary.TotalCost).
		SetTime(rec.Meta.GeneratedAt)
	return r.writeAPI.WritePoint(ctx, p)
}

// RecordDaily writes one point per daily aggregate.
func (r *InfluxRecorder) RecordDaily(runID string, days []model.DailyRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, d := range days {
		p := write.NewPointWithMeasurement("pool_day").
			AddTag("run_id", runID).
			AddField("total_loss_kwh", d.TotalLossKWh).
			AddField("solar_kwh", d.SolarKWh).
			AddField("heat_pump_kwh", d.HeatPumpKWh).
			AddField("boiler_kwh", d.BoilerKWh).
			AddField("unmet_heat_kwh", d.UnmetHeatKWh).
			AddField("min_water_temp_c", d.MinWaterTempC).
			AddField("max_water_temp_c", d.MaxWaterTempC).
			AddField("avg_water_temp_c", d.AvgWaterTempC).
			AddField("cost", d.Cost).
			SetTime(d.Date)
		if err := r.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (r *InfluxRecorder) Close() { r.client.Close() }
