package model

import "fmt"

// ControlStrategy selects how the target temperature is chosen during
// scheduled-closed hours.
type ControlStrategy string

const (
	// ControlReactive holds the configured target temperature at all times.
	ControlReactive ControlStrategy = "reactive"
	// ControlPredictive drops to the setback temperature while closed.
	ControlPredictive ControlStrategy = "predictive"
)

// HeatPumpType distinguishes the COP model of the heat pump.
type HeatPumpType string

const (
	HeatPumpAirSource    HeatPumpType = "air_source"
	HeatPumpGroundSource HeatPumpType = "ground_source"
)

// HeatPump describes the heat pump equipment and its COP model parameters.
type HeatPump struct {
	Enabled    bool         `json:"enabled" yaml:"enabled"`
	Type       HeatPumpType `json:"type" yaml:"type"`
	CapacityKW float64      `json:"capacity_kw" yaml:"capacity_kw"`
	NominalCOP float64      `json:"nominal_cop" yaml:"nominal_cop"`
	// MinAirTemp/MaxAirTemp bound the operating range of air-source units.
	// Nil means unbounded on that side. Ignored for ground-source units.
	MinAirTemp *float64 `json:"min_air_temp,omitempty" yaml:"min_air_temp,omitempty"`
	MaxAirTemp *float64 `json:"max_air_temp,omitempty" yaml:"max_air_temp,omitempty"`
}

// Boiler describes the backup boiler.
type Boiler struct {
	Enabled    bool    `json:"enabled" yaml:"enabled"`
	CapacityKW float64 `json:"capacity_kw" yaml:"capacity_kw"`
	Efficiency float64 `json:"efficiency" yaml:"efficiency"`
}

// Cover describes the pool cover. RValue is informational; the simulator
// applies a fixed loss-reduction factor when the cover is deployed.
type Cover struct {
	Present            bool    `json:"present" yaml:"present"`
	RValue             float64 `json:"r_value" yaml:"r_value"`
	SolarTransmittance float64 `json:"solar_transmittance" yaml:"solar_transmittance"`
}

// PoolConfig carries the physical and equipment parameters of one pool.
// It is loaded once per simulation and never mutated mid-run.
type PoolConfig struct {
	SurfaceAreaM2 float64 `json:"surface_area_m2" yaml:"surface_area_m2"`
	VolumeM3      float64 `json:"volume_m3" yaml:"volume_m3"`
	DepthM        float64 `json:"depth_m" yaml:"depth_m"`
	PerimeterM    float64 `json:"perimeter_m" yaml:"perimeter_m"`

	// WindExposure scales the measured wind speed to the effective speed at
	// the water surface (1.0 = fully exposed).
	WindExposure float64 `json:"wind_exposure" yaml:"wind_exposure"`

	// YearsOperating keys the ground thermal maturity factor: freshly built
	// pools lose heat to the ground faster than settled ones.
	YearsOperating int `json:"years_operating" yaml:"years_operating"`
	// GroundMaturity optionally overrides the built-in maturity lookup,
	// keyed by years operating.
	GroundMaturity map[int]float64 `json:"ground_maturity,omitempty" yaml:"ground_maturity,omitempty"`

	Cover           Cover   `json:"cover" yaml:"cover"`
	SolarAbsorption float64 `json:"solar_absorption" yaml:"solar_absorption"`
	// ActivityFactor scales evaporation while the pool is open (swimmers
	// agitate the surface). Must be >= 1.
	ActivityFactor float64 `json:"activity_factor" yaml:"activity_factor"`

	HeatPump HeatPump `json:"heat_pump" yaml:"heat_pump"`
	Boiler   Boiler   `json:"boiler" yaml:"boiler"`

	ElectricityRate float64 `json:"electricity_rate" yaml:"electricity_rate"`
	FuelRate        float64 `json:"fuel_rate" yaml:"fuel_rate"`

	Strategy    ControlStrategy `json:"strategy" yaml:"strategy"`
	TargetTemp  float64         `json:"target_temp" yaml:"target_temp"`
	SetbackTemp float64         `json:"setback_temp" yaml:"setback_temp"`
}

// WaterMassKg returns the water mass derived from the pool volume.
func (c PoolConfig) WaterMassKg(waterDensity float64) float64 {
	return c.VolumeM3 * waterDensity
}

// SetDefaults fills neutral values for optional fields.
func (c *PoolConfig) SetDefaults() {
	if c.WindExposure == 0 {
		c.WindExposure = 1.0
	}
	if c.ActivityFactor == 0 {
		c.ActivityFactor = 1.0
	}
	if c.SolarAbsorption == 0 {
		c.SolarAbsorption = 0.85
	}
	if c.Strategy == "" {
		c.Strategy = ControlReactive
	}
	if c.SetbackTemp == 0 {
		c.SetbackTemp = c.TargetTemp
	}
}

// Validate checks mandatory physical and equipment parameters. Missing
// geometry or capacities are configuration errors, never silently defaulted.
func (c PoolConfig) Validate() error {
	if c.SurfaceAreaM2 <= 0 {
		return fmt.Errorf("surface_area_m2 must be positive")
	}
	if c.VolumeM3 <= 0 {
		return fmt.Errorf("volume_m3 must be positive")
	}
	if c.DepthM <= 0 {
		return fmt.Errorf("depth_m must be positive")
	}
	if c.PerimeterM < 0 {
		return fmt.Errorf("perimeter_m must not be negative")
	}
	if c.HeatPump.Enabled {
		if c.HeatPump.CapacityKW <= 0 {
			return fmt.Errorf("heat_pump.capacity_kw must be positive")
		}
		if c.HeatPump.NominalCOP <= 0 {
			return fmt.Errorf("heat_pump.nominal_cop must be positive")
		}
		switch c.HeatPump.Type {
		case HeatPumpAirSource, HeatPumpGroundSource:
		default:
			return fmt.Errorf("unknown heat pump type %q", c.HeatPump.Type)
		}
	}
	if c.Boiler.Enabled {
		if c.Boiler.CapacityKW <= 0 {
			return fmt.Errorf("boiler.capacity_kw must be positive")
		}
		if c.Boiler.Efficiency <= 0 || c.Boiler.Efficiency > 1 {
			return fmt.Errorf("boiler.efficiency must be in (0,1]")
		}
	}
	switch c.Strategy {
	case ControlReactive, ControlPredictive:
	default:
		return fmt.Errorf("unknown control strategy %q", c.Strategy)
	}
	if c.TargetTemp <= 0 {
		return fmt.Errorf("target_temp must be positive")
	}
	if c.ActivityFactor < 1 {
		return fmt.Errorf("activity_factor must be >= 1")
	}
	return nil
}
