package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/aquatherm/poolsim/core/model"
)

// WriteResultJSON writes the full run result to w.
func WriteResultJSON(w io.Writer, res *model.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteHourlyCSV writes the hourly records to w in CSV format.
func WriteHourlyCSV(w io.Writer, hourly []model.HourlyRecord) error {
	cw := csv.NewWriter(w)
	header := []string{
		"time", "air_temp_c", "wind_ms", "humidity_pct", "open", "target_temp",
		"water_temp_c", "evaporation_kw", "convection_kw", "radiation_kw",
		"conduction_kw", "total_loss_kw", "solar_kw", "heat_pump_kw",
		"boiler_kw", "hp_electricity_kwh", "boiler_fuel_kwh", "cop",
		"unmet_heat_kwh", "cost",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, h := range hourly {
		target := ""
		if h.TargetTemp != nil {
			target = ftoa(*h.TargetTemp)
		}
		rec := []string{
			h.Time.Format(time.RFC3339),
			ftoa(h.AirTempC), ftoa(h.WindMS), ftoa(h.HumidityPct),
			strconv.FormatBool(h.Open), target,
			ftoa(h.WaterTempC),
			ftoa(h.EvaporationKW), ftoa(h.ConvectionKW), ftoa(h.RadiationKW),
			ftoa(h.ConductionKW), ftoa(h.TotalLossKW),
			ftoa(h.SolarKW), ftoa(h.HeatPumpKW), ftoa(h.BoilerKW),
			ftoa(h.HPElectricityKWh), ftoa(h.BoilerFuelKWh), ftoa(h.COP),
			ftoa(h.UnmetHeatKWh), ftoa(h.Cost),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDailyCSV writes the daily aggregates to w in CSV format.
func WriteDailyCSV(w io.Writer, daily []model.DailyRecord) error {
	cw := csv.NewWriter(w)
	header := []string{
		"date", "hours", "hours_open", "evaporation_kwh", "convection_kwh",
		"radiation_kwh", "conduction_kwh", "total_loss_kwh", "solar_kwh",
		"heat_pump_kwh", "boiler_kwh", "hp_electricity_kwh",
		"boiler_fuel_kwh", "unmet_heat_kwh", "min_water_temp_c",
		"max_water_temp_c", "avg_water_temp_c", "cost",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, d := range daily {
		rec := []string{
			d.Date.Format("2006-01-02"),
			strconv.Itoa(d.Hours), strconv.Itoa(d.HoursOpen),
			ftoa(d.EvaporationKWh), ftoa(d.ConvectionKWh), ftoa(d.RadiationKWh),
			ftoa(d.ConductionKWh), ftoa(d.TotalLossKWh), ftoa(d.SolarKWh),
			ftoa(d.HeatPumpKWh), ftoa(d.BoilerKWh), ftoa(d.HPElectricityKWh),
			ftoa(d.BoilerFuelKWh), ftoa(d.UnmetHeatKWh),
			ftoa(d.MinWaterTempC), ftoa(d.MaxWaterTempC), ftoa(d.AvgWaterTempC),
			ftoa(d.Cost),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
