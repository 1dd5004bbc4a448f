package sim

import (
	"math"

	"github.com/aquatherm/poolsim/core/model"
)

// losses breaks down the surface and ground heat losses of one hour, kW.
type losses struct {
	evaporation float64
	convection  float64
	radiation   float64
	conduction  float64
}

func (l losses) total() float64 {
	return l.evaporation + l.convection + l.radiation + l.conduction
}

// saturationPressureKPa returns the saturation vapor pressure of water at
// the given temperature using the Tetens formula.
func saturationPressureKPa(tempC float64) float64 {
	return 0.6108 * math.Exp(17.27*tempC/(tempC+237.3))
}

// humidityRatio converts a partial vapor pressure to a humidity ratio
// (kg water per kg dry air) at standard atmospheric pressure.
func humidityRatio(vaporKPa float64) float64 {
	return 0.622 * vaporKPa / (101.325 - vaporKPa)
}

// evaporationKW models the dominant loss of an open-air pool: mass
// transfer driven by the humidity-ratio difference between saturated air
// at water temperature and the ambient air, with a wind-dependent transfer
// coefficient. The activity factor raises the rate while swimmers agitate
// the surface.
func evaporationKW(c Constants, cfg *model.PoolConfig, waterC float64, ws model.WeatherSample, open bool) float64 {
	wind := ws.WindMS * cfg.WindExposure
	xs := humidityRatio(saturationPressureKPa(waterC))
	xa := humidityRatio(saturationPressureKPa(ws.AirTempC) * ws.HumidityPct / 100)
	rateKgH := (25 + 19*wind) * cfg.SurfaceAreaM2 * (xs - xa)
	if rateKgH < 0 {
		rateKgH = 0
	}
	kw := rateKgH * c.LatentHeatKJPerKg / 3600
	if open {
		kw *= cfg.ActivityFactor
	}
	return kw
}

// convectionKW is linear in the water/air temperature difference with a
// wind-dependent coefficient. Negative values are convective gains from
// air warmer than the water.
func convectionKW(cfg *model.PoolConfig, waterC float64, ws model.WeatherSample) float64 {
	wind := ws.WindMS * cfg.WindExposure
	h := 3.1 + 4.1*wind // W/(m²·K)
	return h * cfg.SurfaceAreaM2 * (waterC - ws.AirTempC) / 1000
}

// radiationKW applies the Stefan-Boltzmann law between the water surface
// and an estimated sky temperature below the air temperature.
func radiationKW(c Constants, cfg *model.PoolConfig, waterC float64, ws model.WeatherSample) float64 {
	waterK := waterC + 273.15
	skyK := ws.AirTempC - c.SkyTempOffsetC + 273.15
	q := c.WaterEmissivity * c.StefanBoltzmann * cfg.SurfaceAreaM2 *
		(math.Pow(waterK, 4) - math.Pow(skyK, 4))
	return q / 1000
}

// conductionKW models heat lost through walls and floor to the ground,
// scaled by the ground thermal maturity factor for the pool's age.
func conductionKW(c Constants, cfg *model.PoolConfig, waterC float64) float64 {
	area := cfg.PerimeterM*cfg.DepthM + cfg.SurfaceAreaM2
	return c.ConductionUWM2K * area * (waterC - c.GroundTempC) * groundMaturity(cfg) / 1000
}

// groundMaturity prefers the configured lookup table, falling back to the
// built-in 3-point table for missing years.
func groundMaturity(cfg *model.PoolConfig) float64 {
	if cfg.GroundMaturity != nil {
		if f, ok := cfg.GroundMaturity[cfg.YearsOperating]; ok {
			return f
		}
	}
	return groundMaturityFallback(cfg.YearsOperating)
}

// computeLosses evaluates all loss components for one hour. When the pool
// is covered and closed, surface losses are reduced to the cover loss
// factor; conduction is unaffected by the cover.
func computeLosses(c Constants, cfg *model.PoolConfig, waterC float64, ws model.WeatherSample, open bool) losses {
	l := losses{
		evaporation: evaporationKW(c, cfg, waterC, ws, open),
		convection:  convectionKW(cfg, waterC, ws),
		radiation:   radiationKW(c, cfg, waterC, ws),
		conduction:  conductionKW(c, cfg, waterC),
	}
	if cfg.Cover.Present && !open {
		l.evaporation *= c.CoverLossFactor
		l.convection *= c.CoverLossFactor
		l.radiation *= c.CoverLossFactor
	}
	return l
}

// solarGainKW converts irradiance to absorbed heat. A deployed cover on a
// closed pool passes only its solar transmittance fraction.
func solarGainKW(cfg *model.PoolConfig, irradianceWM2 float64, open bool) float64 {
	kw := irradianceWM2 * cfg.SurfaceAreaM2 * cfg.SolarAbsorption / 1000
	if cfg.Cover.Present && !open {
		kw *= cfg.Cover.SolarTransmittance
	}
	return kw
}
