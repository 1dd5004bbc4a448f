// Package sim implements the hourly thermal heat-balance simulation of an
// outdoor pool. Each hour it computes evaporation, convection, radiation
// and conduction losses plus solar gain, dispatches the heat pump and
// boiler against the schedule's target temperature, and advances the water
// temperature. Results accumulate into hourly, daily and run-level records.
package sim
