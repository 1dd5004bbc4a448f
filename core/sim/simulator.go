package sim

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aquatherm/poolsim/core/logger"
	"github.com/aquatherm/poolsim/core/model"
	"github.com/aquatherm/poolsim/internal/eventbus"
)

// Options tunes a simulation run.
type Options struct {
	// InitialWaterTemp seeds the water temperature when the first simulated
	// hour is closed. Zero falls back to the pool's target temperature.
	InitialWaterTemp float64
	// Precision is the number of decimal places applied to daily and
	// summary figures for reporting determinism. Zero means 3.
	Precision int
	// ColdThresholds lists water temperatures; the summary counts days
	// whose daily minimum fell below each.
	ColdThresholds []float64
	// DayEvents, when set, receives each finalized daily record as the run
	// progresses, tagged with the run ID.
	DayEvents *eventbus.Bus[model.DayEvent]
	Logger    logger.Logger
}

// Simulator iterates a weather series hour by hour and advances the pool
// water temperature. A Simulator holds no run state; each Run owns its own
// accumulator, so concurrent runs over the same Simulator are safe.
type Simulator struct {
	cfg      *model.PoolConfig
	schedule ScheduleSource
	weather  WeatherProvider
	solar    SolarProvider
	consts   Constants
	shape    dailyShape
	opts     Options
	log      logger.Logger
}

// New builds a Simulator over immutable configuration and providers.
func New(cfg *model.PoolConfig, sched ScheduleSource, weather WeatherProvider, solar SolarProvider, consts Constants, opts Options) *Simulator {
	if opts.Precision == 0 {
		opts.Precision = 3
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop{}
	}
	return &Simulator{
		cfg:      cfg,
		schedule: sched,
		weather:  weather,
		solar:    solar,
		consts:   consts,
		shape:    newDailyShape(consts),
		opts:     opts,
		log:      log,
	}
}

// accumulator is the run state threaded through the hourly fold. It never
// escapes a single Run call.
type accumulator struct {
	water  float64
	seeded bool

	hourly []model.HourlyRecord
	daily  []model.DailyRecord
	day    *dayAccum

	copSum   float64
	copHours int
}

// Run executes the simulation over [start, end] at hourly resolution.
// The context is consulted at day boundaries so callers can bound long
// runs; the algorithm itself has no suspension points.
func (s *Simulator) Run(ctx context.Context, start, end time.Time) (*model.RunResult, error) {
	start = start.Truncate(time.Hour)
	end = end.Truncate(time.Hour)
	if err := s.validate(start, end); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	hours := int(end.Sub(start)/time.Hour) + 1
	s.log.Infof("run %s: simulating %d hours from %s to %s", runID, hours, start.Format("2006-01-02"), end.Format("2006-01-02"))

	acc := accumulator{}
	for t := start; !t.After(end); t = t.Add(time.Hour) {
		if acc.day != nil && !sameDate(acc.day.date, t) {
			acc = s.flushDay(acc, runID)
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		var err error
		acc, err = s.stepHour(acc, t)
		if err != nil {
			return nil, err
		}
	}
	if acc.day != nil {
		acc = s.flushDay(acc, runID)
	}

	res := &model.RunResult{
		Meta: model.RunMeta{
			RunID:            runID,
			Start:            start,
			End:              end,
			GeneratedAt:      time.Now().UTC(),
			Strategy:         s.cfg.Strategy,
			ConstantsVersion: s.consts.Version,
		},
		Hourly:  acc.hourly,
		Daily:   acc.daily,
		Summary: s.summarize(acc),
	}
	s.log.Infof("run %s complete: %d hours, %d days", res.Meta.RunID, res.Summary.Hours, res.Summary.Days)
	return res, nil
}

// validate fails fast before the loop: pool parameters must be sound and
// the weather series must cover every hour of the requested range.
func (s *Simulator) validate(start, end time.Time) error {
	if err := s.cfg.Validate(); err != nil {
		return &ConfigError{Reason: err.Error()}
	}
	if s.schedule == nil {
		return &ConfigError{Reason: "schedule source is required"}
	}
	if s.weather == nil {
		return &ConfigError{Reason: "weather provider is required"}
	}
	if end.Before(start) {
		return &ConfigError{Reason: "end precedes start"}
	}
	wStart, wEnd, ok := s.weather.Bounds()
	if !ok {
		return &ConfigError{Reason: "weather series is empty"}
	}
	if start.Before(wStart) || end.After(wEnd) {
		return &ConfigError{Reason: "weather series does not cover the requested range"}
	}
	// Bounds can cover the range while hours inside it are missing. Scan
	// for gaps now so a broken series never aborts a half-finished run.
	for t := start; !t.After(end); t = t.Add(time.Hour) {
		if _, ok := s.weather.Sample(t); !ok {
			return &DataGapError{At: t}
		}
	}
	return nil
}

// stepHour advances the simulation by one hour and returns the new
// accumulator state.
func (s *Simulator) stepHour(acc accumulator, t time.Time) (accumulator, error) {
	ws, ok := s.weather.Sample(t)
	if !ok {
		return acc, &DataGapError{At: t}
	}

	target, open, err := s.schedule.TargetTemperature(t)
	if err != nil {
		return acc, err
	}

	// Seed at the resolved target so the run does not start with an
	// artificial reheat transient.
	if !acc.seeded {
		switch {
		case open:
			acc.water = target
		case s.opts.InitialWaterTemp != 0:
			acc.water = s.opts.InitialWaterTemp
		default:
			acc.water = s.cfg.TargetTemp
		}
		acc.seeded = true
	}

	irr := s.irradiance(t)
	l := computeLosses(s.consts, s.cfg, acc.water, ws, open)
	solarKW := solarGainKW(s.cfg, irr, open)
	netKW := l.total() - solarKW

	effTarget := s.effectiveTarget(target, open)
	mass := s.cfg.WaterMassKg(s.consts.WaterDensity)
	// kW needed to close the full temperature gap within one hour. Below
	// target this adds to the demand; above target it is the thermal
	// credit of the excess. No deadband: the comparison is direct.
	gapKW := mass * s.consts.SpecificHeat * (effTarget - acc.water) / 3600 / 1000
	requiredKW := netKW + gapKW
	if requiredKW < 0 {
		requiredKW = 0
	}

	disp := dispatchHeat(s.consts, s.cfg, requiredKW, ws.AirTempC)

	deltaC := (solarKW + disp.heatPumpKW + disp.boilerKW - l.total()) * 1000 * 3600 /
		(mass * s.consts.SpecificHeat)
	acc.water += deltaC
	if acc.water < s.consts.MinWaterTempC {
		acc.water = s.consts.MinWaterTempC
	}
	if acc.water > s.consts.MaxWaterTempC {
		acc.water = s.consts.MaxWaterTempC
	}

	rec := model.HourlyRecord{
		Time:          t,
		AirTempC:      ws.AirTempC,
		WindMS:        ws.WindMS,
		HumidityPct:   ws.HumidityPct,
		Open:          open,
		WaterTempC:    acc.water,
		EvaporationKW: l.evaporation,
		ConvectionKW:  l.convection,
		RadiationKW:   l.radiation,
		ConductionKW:  l.conduction,
		TotalLossKW:   l.total(),
		SolarKW:       solarKW,
		HeatPumpKW:    disp.heatPumpKW,
		BoilerKW:      disp.boilerKW,

		HPElectricityKWh: disp.hpElecKWh,
		BoilerFuelKWh:    disp.boilerFuelKWh,
		COP:              disp.cop,
		UnmetHeatKWh:     disp.unmetKW,
		Cost:             disp.hpElecKWh*s.cfg.ElectricityRate + disp.boilerFuelKWh*s.cfg.FuelRate,
	}
	if open {
		tt := target
		rec.TargetTemp = &tt
	}

	if disp.heatPumpKW > 0 {
		acc.copSum += disp.cop
		acc.copHours++
	}
	acc.hourly = append(acc.hourly, rec)
	acc.day = rollDay(acc.day, rec)
	return acc, nil
}

// effectiveTarget applies the control strategy when the schedule provides
// no target.
func (s *Simulator) effectiveTarget(target float64, open bool) float64 {
	if open {
		return target
	}
	if s.cfg.Strategy == model.ControlPredictive {
		return s.cfg.SetbackTemp
	}
	return s.cfg.TargetTemp
}

// irradiance prefers an hourly observation and falls back to spreading the
// daily total over daylight hours.
func (s *Simulator) irradiance(t time.Time) float64 {
	if s.solar == nil {
		return 0
	}
	if v, ok := s.solar.Hourly(t); ok {
		return v
	}
	if daily, ok := s.solar.Daily(t); ok {
		return s.shape.irradianceForHour(daily, t.Hour())
	}
	return 0
}

// flushDay finalizes the open day aggregate and publishes it.
func (s *Simulator) flushDay(acc accumulator, runID string) accumulator {
	rec := finalizeDay(acc.day, s.opts.Precision)
	acc.daily = append(acc.daily, rec)
	acc.day = nil
	if s.opts.DayEvents != nil {
		s.opts.DayEvents.Publish(model.DayEvent{RunID: runID, Record: rec})
	}
	return acc
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
