package sim

// Constants is the versioned table of physical constants and model factors
// used by the simulator. Passing it explicitly keeps simulator versions
// reproducible: a changed factor is a new table version, not a code edit.
type Constants struct {
	Version string

	// Water properties.
	WaterDensity      float64 // kg/m³
	SpecificHeat      float64 // J/(kg·K)
	LatentHeatKJPerKg float64 // kJ/kg, heat of vaporization

	// Radiation.
	StefanBoltzmann float64 // W/(m²·K⁴)
	WaterEmissivity float64
	SkyTempOffsetC  float64 // sky temperature = air temperature − offset

	// Conduction to the ground.
	ConductionUWM2K float64 // W/(m²·K) through walls and floor
	GroundTempC     float64

	// Cover model: fraction of surface losses remaining when the cover is
	// deployed on a closed pool.
	CoverLossFactor float64

	// Safety clamp on the simulated water temperature.
	MinWaterTempC float64
	MaxWaterTempC float64

	// Daylight window for distributing daily solar totals.
	SolarWindowStart int // hour, inclusive
	SolarWindowEnd   int // hour, exclusive
	SolarNoonHour    float64
	SolarSigmaHours  float64

	// Air-source COP model.
	COPReferenceTempC  float64
	COPDeratePerDegree float64 // fraction lost per °C below reference
	COPBonusPerDegree  float64 // fraction gained per °C above reference
	COPBonusCap        float64 // max fractional gain above reference
	COPFloor           float64
}

// DefaultConstants returns the current constants table.
func DefaultConstants() Constants {
	return Constants{
		Version:           "2024.1",
		WaterDensity:      1000,
		SpecificHeat:      4186,
		LatentHeatKJPerKg: 2257,
		StefanBoltzmann:   5.67e-8,
		WaterEmissivity:   0.95,
		SkyTempOffsetC:    15,
		ConductionUWM2K:   0.6,
		GroundTempC:       10,
		CoverLossFactor:   0.1,
		MinWaterTempC:     5,
		MaxWaterTempC:     35,
		SolarWindowStart:  6,
		SolarWindowEnd:    20,
		SolarNoonHour:     13,
		SolarSigmaHours:   3.5,

		COPReferenceTempC:  15,
		COPDeratePerDegree: 0.025,
		COPBonusPerDegree:  0.01,
		COPBonusCap:        0.2,
		COPFloor:           2.0,
	}
}

// groundMaturityFallback maps years operating to a conduction multiplier
// when no lookup table is configured. Fresh pools lose heat to still-cold
// ground faster; the ground settles by year three. Years beyond the table
// clamp at 1.0.
func groundMaturityFallback(years int) float64 {
	switch years {
	case 0, 1:
		return 1.5
	case 2:
		return 1.2
	default:
		return 1.0
	}
}
