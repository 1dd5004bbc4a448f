package model

import "time"

// HourlyRecord is the full accounting of one simulated hour. Loss and gain
// figures are average powers over the hour in kW, which makes them equal to
// energies in kWh.
type HourlyRecord struct {
	Time time.Time `json:"time"`

	// Weather echo.
	AirTempC    float64 `json:"air_temp_c"`
	WindMS      float64 `json:"wind_ms"`
	HumidityPct float64 `json:"humidity_pct"`

	// Resolved schedule state.
	Open       bool     `json:"open"`
	TargetTemp *float64 `json:"target_temp,omitempty"`
	WaterTempC float64  `json:"water_temp_c"`

	// Losses, kW.
	EvaporationKW float64 `json:"evaporation_kw"`
	ConvectionKW  float64 `json:"convection_kw"`
	RadiationKW   float64 `json:"radiation_kw"`
	ConductionKW  float64 `json:"conduction_kw"`
	TotalLossKW   float64 `json:"total_loss_kw"`

	// Gains, kW.
	SolarKW    float64 `json:"solar_kw"`
	HeatPumpKW float64 `json:"heat_pump_kw"`
	BoilerKW   float64 `json:"boiler_kw"`

	// Consumed energy and efficiency.
	HPElectricityKWh float64 `json:"hp_electricity_kwh"`
	BoilerFuelKWh    float64 `json:"boiler_fuel_kwh"`
	COP              float64 `json:"cop"`
	UnmetHeatKWh     float64 `json:"unmet_heat_kwh"`

	Cost float64 `json:"cost"`
}

// DailyRecord aggregates one calendar day of hourly records.
type DailyRecord struct {
	Date time.Time `json:"date"`

	Hours     int `json:"hours"`
	HoursOpen int `json:"hours_open"`

	EvaporationKWh float64 `json:"evaporation_kwh"`
	ConvectionKWh  float64 `json:"convection_kwh"`
	RadiationKWh   float64 `json:"radiation_kwh"`
	ConductionKWh  float64 `json:"conduction_kwh"`
	TotalLossKWh   float64 `json:"total_loss_kwh"`

	SolarKWh    float64 `json:"solar_kwh"`
	HeatPumpKWh float64 `json:"heat_pump_kwh"`
	BoilerKWh   float64 `json:"boiler_kwh"`

	HPElectricityKWh float64 `json:"hp_electricity_kwh"`
	BoilerFuelKWh    float64 `json:"boiler_fuel_kwh"`
	UnmetHeatKWh     float64 `json:"unmet_heat_kwh"`

	MinWaterTempC float64 `json:"min_water_temp_c"`
	MaxWaterTempC float64 `json:"max_water_temp_c"`
	AvgWaterTempC float64 `json:"avg_water_temp_c"`

	Cost float64 `json:"cost"`
}

// ThresholdCount counts days whose daily minimum water temperature fell
// below a configured threshold.
type ThresholdCount struct {
	ThresholdC float64 `json:"threshold_c"`
	Days       int     `json:"days"`
}

// Summary totals every quantity across a run.
type Summary struct {
	Hours int `json:"hours"`
	Days  int `json:"days"`

	EvaporationKWh float64 `json:"evaporation_kwh"`
	ConvectionKWh  float64 `json:"convection_kwh"`
	RadiationKWh   float64 `json:"radiation_kwh"`
	ConductionKWh  float64 `json:"conduction_kwh"`
	TotalLossKWh   float64 `json:"total_loss_kwh"`

	SolarKWh    float64 `json:"solar_kwh"`
	HeatPumpKWh float64 `json:"heat_pump_kwh"`
	BoilerKWh   float64 `json:"boiler_kwh"`

	HPElectricityKWh float64 `json:"hp_electricity_kwh"`
	BoilerFuelKWh    float64 `json:"boiler_fuel_kwh"`
	UnmetHeatKWh     float64 `json:"unmet_heat_kwh"`

	// UnmetHours counts hours where demand exceeded equipment capacity.
	UnmetHours int `json:"unmet_hours"`

	MinWaterTempC float64 `json:"min_water_temp_c"`
	MaxWaterTempC float64 `json:"max_water_temp_c"`
	AvgWaterTempC float64 `json:"avg_water_temp_c"`

	// AvgCOP averages the COP over hours where the heat pump ran.
	AvgCOP float64 `json:"avg_cop"`

	ColdDays []ThresholdCount `json:"cold_days,omitempty"`

	TotalCost float64 `json:"total_cost"`
}

// RunMeta identifies one simulation run.
type RunMeta struct {
	RunID            string          `json:"run_id"`
	Start            time.Time       `json:"start"`
	End              time.Time       `json:"end"`
	GeneratedAt      time.Time       `json:"generated_at"`
	Strategy         ControlStrategy `json:"strategy"`
	ConstantsVersion string          `json:"constants_version"`
}

// DayEvent pairs a finalized daily record with the run producing it, for
// streaming consumers while a run is still in progress.
type DayEvent struct {
	RunID  string      `json:"run_id"`
	Record DailyRecord `json:"record"`
}

// RunResult is the complete output of one simulation run.
type RunResult struct {
	Meta    RunMeta        `json:"meta"`
	Hourly  []HourlyRecord `json:"hourly"`
	Daily   []DailyRecord  `json:"daily"`
	Summary Summary        `json:"summary"`
}
