package sim

import (
	"fmt"
	"time"
)

// ConfigError reports a missing or invalid pool/equipment parameter. It is
// raised before the simulation starts; nothing is silently defaulted.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("simulation configuration: %s", e.Reason)
}

// DataGapError reports a missing weather sample for an expected hour. The
// physical state cannot advance across a gap, so the run aborts.
type DataGapError struct {
	At time.Time
}

func (e *DataGapError) Error() string {
	return fmt.Sprintf("missing weather sample for %s", e.At.Format(time.RFC3339))
}
