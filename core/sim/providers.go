package sim

import (
	"time"

	"github.com/aquatherm/poolsim/core/model"
)

// WeatherProvider serves hourly weather samples. Sample reports ok=false
// when no observation exists for the hour; Bounds returns the covered time
// range, ok=false for an empty series.
type WeatherProvider interface {
	Sample(t time.Time) (model.WeatherSample, bool)
	Bounds() (start, end time.Time, ok bool)
}

// SolarProvider serves solar irradiance. Hourly values (W/m²) are
// preferred; when only a daily total (Wh/m²) exists the simulator spreads
// it over daylight hours with a bell curve. Both report ok=false when no
// data exists for the hour or day.
type SolarProvider interface {
	Hourly(t time.Time) (float64, bool)
	Daily(date time.Time) (float64, bool)
}

// ScheduleSource is the narrow view of the schedule resolver the simulator
// needs: the active target temperature, ok=false when closed.
type ScheduleSource interface {
	TargetTemperature(t time.Time) (float64, bool, error)
}
