package sim

import "github.com/aquatherm/poolsim/core/model"

// heatPumpCOP returns the coefficient of performance at the given air
// temperature. Ground-source units hold their nominal COP; air-source
// units derate below the reference temperature down to a floor and improve
// above it up to a capped bonus.
func heatPumpCOP(c Constants, hp model.HeatPump, airTempC float64) float64 {
	if hp.Type == model.HeatPumpGroundSource {
		return hp.NominalCOP
	}
	if airTempC < c.COPReferenceTempC {
		cop := hp.NominalCOP * (1 - c.COPDeratePerDegree*(c.COPReferenceTempC-airTempC))
		if cop < c.COPFloor {
			cop = c.COPFloor
		}
		return cop
	}
	bonus := c.COPBonusPerDegree * (airTempC - c.COPReferenceTempC)
	if bonus > c.COPBonusCap {
		bonus = c.COPBonusCap
	}
	return hp.NominalCOP * (1 + bonus)
}

// hpInRange reports whether an air-source heat pump may run at the given
// air temperature. Ground-source units always may.
func hpInRange(hp model.HeatPump, airTempC float64) bool {
	if hp.Type == model.HeatPumpGroundSource {
		return true
	}
	if hp.MinAirTemp != nil && airTempC < *hp.MinAirTemp {
		return false
	}
	if hp.MaxAirTemp != nil && airTempC > *hp.MaxAirTemp {
		return false
	}
	return true
}
