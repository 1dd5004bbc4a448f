package metrics

import (
	coremetrics "github.com/aquatherm/poolsim/core/metrics"
	"github.com/aquatherm/poolsim/core/model"
	"github.com/aquatherm/poolsim/infra/logger"
	"github.com/aquatherm/poolsim/internal/eventbus"
)

// StartEventCollector subscribes to the day-event bus and streams each
// finalized daily record to the recorder while a run is still in progress.
// Recording failures are logged and do not stop the stream. The returned
// channel closes once the bus is closed and the subscription is drained.
func StartEventCollector(bus *eventbus.Bus[model.DayEvent], rec coremetrics.RunRecorder, log logger.Logger) <-chan struct{} {
	sub := bus.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range sub {
			if err := rec.RecordDaily(ev.RunID, []model.DailyRecord{ev.Record}); err != nil {
				log.Errorf("record day %s: %v", ev.Record.Date.Format("2006-01-02"), err)
			}
		}
	}()
	return done
}
