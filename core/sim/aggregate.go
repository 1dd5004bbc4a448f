package sim

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aquatherm/poolsim/core/model"
)

// dayAccum collects one calendar day of hourly records before
// finalization.
type dayAccum struct {
	date       time.Time
	rec        model.DailyRecord
	waterTemps []float64
}

// rollDay folds one hourly record into the current day aggregate, opening
// a new one on the first hour of a date.
func rollDay(day *dayAccum, rec model.HourlyRecord) *dayAccum {
	if day == nil {
		y, m, d := rec.Time.Date()
		day = &dayAccum{date: time.Date(y, m, d, 0, 0, 0, 0, rec.Time.Location())}
		day.rec.Date = day.date
	}
	r := &day.rec
	r.Hours++
	if rec.Open {
		r.HoursOpen++
	}
	r.EvaporationKWh += rec.EvaporationKW
	r.ConvectionKWh += rec.ConvectionKW
	r.RadiationKWh += rec.RadiationKW
	r.ConductionKWh += rec.ConductionKW
	r.TotalLossKWh += rec.TotalLossKW
	r.SolarKWh += rec.SolarKW
	r.HeatPumpKWh += rec.HeatPumpKW
	r.BoilerKWh += rec.BoilerKW
	r.HPElectricityKWh += rec.HPElectricityKWh
	r.BoilerFuelKWh += rec.BoilerFuelKWh
	r.UnmetHeatKWh += rec.UnmetHeatKWh
	r.Cost += rec.Cost
	day.waterTemps = append(day.waterTemps, rec.WaterTempC)
	return day
}

// finalizeDay computes the day's water temperature statistics and rounds
// the aggregate for reporting.
func finalizeDay(day *dayAccum, precision int) model.DailyRecord {
	rec := day.rec
	if len(day.waterTemps) > 0 {
		rec.MinWaterTempC = floats.Min(day.waterTemps)
		rec.MaxWaterTempC = floats.Max(day.waterTemps)
		rec.AvgWaterTempC = stat.Mean(day.waterTemps, nil)
	}
	roundDaily(&rec, precision)
	return rec
}

// summarize totals the run. Averages guard against zero-hour runs.
func (s *Simulator) summarize(acc accumulator) model.Summary {
	var sum model.Summary
	sum.Hours = len(acc.hourly)
	sum.Days = len(acc.daily)

	for _, h := range acc.hourly {
		sum.EvaporationKWh += h.EvaporationKW
		sum.ConvectionKWh += h.ConvectionKW
		sum.RadiationKWh += h.RadiationKW
		sum.ConductionKWh += h.ConductionKW
		sum.TotalLossKWh += h.TotalLossKW
		sum.SolarKWh += h.SolarKW
		sum.HeatPumpKWh += h.HeatPumpKW
		sum.BoilerKWh += h.BoilerKW
		sum.HPElectricityKWh += h.HPElectricityKWh
		sum.BoilerFuelKWh += h.BoilerFuelKWh
		sum.UnmetHeatKWh += h.UnmetHeatKWh
		sum.TotalCost += h.Cost
		if h.UnmetHeatKWh > 0 {
			sum.UnmetHours++
		}
	}

	if sum.Hours > 0 {
		temps := make([]float64, len(acc.hourly))
		for i, h := range acc.hourly {
			temps[i] = h.WaterTempC
		}
		sum.MinWaterTempC = floats.Min(temps)
		sum.MaxWaterTempC = floats.Max(temps)
		sum.AvgWaterTempC = stat.Mean(temps, nil)
	}
	if acc.copHours > 0 {
		sum.AvgCOP = acc.copSum / float64(acc.copHours)
	}

	for _, th := range s.opts.ColdThresholds {
		tc := model.ThresholdCount{ThresholdC: th}
		for _, d := range acc.daily {
			if d.MinWaterTempC < th {
				tc.Days++
			}
		}
		sum.ColdDays = append(sum.ColdDays, tc)
	}

	roundSummary(&sum, s.opts.Precision)
	return sum
}

// round rounds v to the given number of decimal places, half away from
// zero.
func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

func roundDaily(r *model.DailyRecord, p int) {
	for _, f := range []*float64{
		&r.EvaporationKWh, &r.ConvectionKWh, &r.RadiationKWh, &r.ConductionKWh,
		&r.TotalLossKWh, &r.SolarKWh, &r.HeatPumpKWh, &r.BoilerKWh,
		&r.HPElectricityKWh, &r.BoilerFuelKWh, &r.UnmetHeatKWh,
		&r.MinWaterTempC, &r.MaxWaterTempC, &r.AvgWaterTempC, &r.Cost,
	} {
		*f = round(*f, p)
	}
}

func roundSummary(s *model.Summary, p int) {
	for _, f := range []*float64{
		&s.EvaporationKWh, &s.ConvectionKWh, &s.RadiationKWh, &s.ConductionKWh,
		&s.TotalLossKWh, &s.SolarKWh, &s.HeatPumpKWh, &s.BoilerKWh,
		&s.HPElectricityKWh, &s.BoilerFuelKWh, &s.UnmetHeatKWh,
		&s.MinWaterTempC, &s.MaxWaterTempC, &s.AvgWaterTempC, &s.AvgCOP,
		&s.TotalCost,
	} {
		*f = round(*f, p)
	}
}
