package sim

import "github.com/aquatherm/poolsim/core/model"

// dispatchResult is the outcome of one hour of equipment dispatch. Powers
// in kW equal energies in kWh over the hour.
type dispatchResult struct {
	heatPumpKW    float64
	hpElecKWh     float64
	cop           float64
	boilerKW      float64
	boilerFuelKWh float64
	unmetKW       float64
}

// dispatchHeat offers the required heat to the heat pump first, then the
// boiler, each capped at its capacity. Heat neither can cover is recorded
// as unmet, never retried.
func dispatchHeat(c Constants, cfg *model.PoolConfig, requiredKW, airTempC float64) dispatchResult {
	var res dispatchResult
	if requiredKW <= 0 {
		return res
	}
	remaining := requiredKW

	hp := cfg.HeatPump
	if hp.Enabled && hpInRange(hp, airTempC) {
		out := remaining
		if out > hp.CapacityKW {
			out = hp.CapacityKW
		}
		res.cop = heatPumpCOP(c, hp, airTempC)
		res.heatPumpKW = out
		res.hpElecKWh = out / res.cop
		remaining -= out
	}

	if remaining > 0 && cfg.Boiler.Enabled {
		out := remaining
		if out > cfg.Boiler.CapacityKW {
			out = cfg.Boiler.CapacityKW
		}
		res.boilerKW = out
		res.boilerFuelKWh = out / cfg.Boiler.Efficiency
		remaining -= out
	}

	res.unmetKW = remaining
	return res
}
