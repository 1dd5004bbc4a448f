package metrics

import (
	"errors"

	coremetrics "github.com/aquatherm/poolsim/core/metrics"
	"github.com/aquatherm/poolsim/core/model"
)

// MultiRecorder fans every record out to all underlying recorders and
// joins their errors.
type MultiRecorder struct {
	recorders []coremetrics.RunRecorder
}

// NewMultiRecorder builds a MultiRecorder from the given recorders.
func NewMultiRecorder(recorders ...coremetrics.RunRecorder) *MultiRecorder {
	return &MultiRecorder{recorders: recorders}
}

func (m *MultiRecorder) RecordRun(rec coremetrics.RunRecord) error {
	var errs []error
	for _, r := range m.recorders {
		if err := r.RecordRun(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiRecorder) RecordDaily(runID string, days []model.DailyRecord) error {
	var errs []error
	for _, r := range m.recorders {
		if err := r.RecordDaily(runID, days); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
