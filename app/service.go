package app

import (
	"context"
	"fmt"
	"time"

	"github.com/aquatherm/poolsim/config"
	coremetrics "github.com/aquatherm/poolsim/core/metrics"
	"github.com/aquatherm/poolsim/core/model"
	"github.com/aquatherm/poolsim/core/schedule"
	"github.com/aquatherm/poolsim/core/sim"
	"github.com/aquatherm/poolsim/infra/logger"
	"github.com/aquatherm/poolsim/infra/metrics"
	"github.com/aquatherm/poolsim/infra/store"
	"github.com/aquatherm/poolsim/infra/weather"
	"github.com/aquatherm/poolsim/internal/eventbus"
)

// Service wires the resolver, simulator, recorders and store from the
// configuration and executes runs.
type Service struct {
	Resolver  *schedule.Resolver
	Simulator *sim.Simulator

	cfg           *config.Config
	recorder      coremetrics.RunRecorder
	store         *store.RunStore
	bus           *eventbus.Bus[model.DayEvent]
	collectorDone <-chan struct{}
	log           logger.Logger

	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	tmpl, err := schedule.LoadTemplate(cfg.Calendar.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("schedule template: %w", err)
	}
	resolver, err := schedule.NewResolver(tmpl, schedule.MissingScheduleAction(cfg.Calendar.MissingScheduleAction))
	if err != nil {
		return nil, err
	}

	weatherProv, err := weather.LoadCSVWeather(cfg.Weather.WeatherCSV)
	if err != nil {
		return nil, fmt.Errorf("weather series: %w", err)
	}
	solarProv, err := weather.LoadCSVSolar(cfg.Weather.SolarHourlyCSV, cfg.Weather.SolarDailyCSV)
	if err != nil {
		return nil, fmt.Errorf("solar series: %w", err)
	}

	var recorders []coremetrics.RunRecorder
	if cfg.Metrics.PrometheusEnabled {
		rec, err := metrics.NewPromRecorder()
		if err != nil {
			return nil, fmt.Errorf("prom recorder: %w", err)
		}
		recorders = append(recorders, rec)
	}
	if cfg.Metrics.InfluxEnabled {
		recorders = append(recorders, metrics.NewInfluxRecorderWithFallback(cfg.Metrics))
	}
	var recorder coremetrics.RunRecorder = coremetrics.NopRecorder{}
	if len(recorders) == 1 {
		recorder = recorders[0]
	} else if len(recorders) > 1 {
		recorder = metrics.NewMultiRecorder(recorders...)
	}

	var runStore *store.RunStore
	if cfg.Store.Enabled {
		runStore, err = store.NewRunStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("run store: %w", err)
		}
	}

	// Daily aggregates stream to the recorder as each simulated day
	// finalizes; only the run summary is recorded after the fact.
	bus := eventbus.New[model.DayEvent]()
	collectorDone := metrics.StartEventCollector(bus, recorder, logg)
	simulator := sim.New(&cfg.Pool, resolver, weatherProv, solarProv, sim.DefaultConstants(), sim.Options{
		InitialWaterTemp: cfg.Simulation.InitialWaterTemp,
		Precision:        cfg.Simulation.Precision,
		ColdThresholds:   cfg.Simulation.ColdThresholds,
		DayEvents:        bus,
		Logger:           logger.New("simulator"),
	})

	return &Service{
		Resolver:      resolver,
		Simulator:     simulator,
		cfg:           cfg,
		recorder:      recorder,
		store:         runStore,
		bus:           bus,
		collectorDone: collectorDone,
		log:           logg,
		promEnabled:   cfg.Metrics.PrometheusEnabled,
		promPort:      cfg.Metrics.PrometheusPort,
	}, nil
}

// Run executes the configured simulation window and fans the results out
// to the recorders and store.
func (s *Service) Run(ctx context.Context) (*model.RunResult, error) {
	start, end, err := s.cfg.Simulation.Window()
	if err != nil {
		return nil, err
	}
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	began := time.Now()
	res, err := s.Simulator.Run(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rec := coremetrics.RunRecord{Meta: res.Meta, Summary: res.Summary, Duration: time.Since(began)}
	if err := s.recorder.RecordRun(rec); err != nil {
		s.log.Errorf("record run: %v", err)
	}
	if s.store != nil {
		if err := s.store.SaveRun(ctx, res); err != nil {
			s.log.Errorf("save run: %v", err)
		}
	}
	return res, nil
}

// Close releases resources held by the service. It waits for the day
// collector to drain before closing the store.
func (s *Service) Close() error {
	s.bus.Close()
	<-s.collectorDone
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
