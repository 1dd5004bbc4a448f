package sim

import "math"

// dailyShape precomputes the normalized bell-curve weights used to spread
// a daily solar total across daylight hours. Weights outside the daylight
// window are zero and the in-window weights sum to one.
type dailyShape [24]float64

func newDailyShape(c Constants) dailyShape {
	var s dailyShape
	var sum float64
	for h := c.SolarWindowStart; h < c.SolarWindowEnd; h++ {
		d := float64(h) - c.SolarNoonHour
		w := math.Exp(-d * d / (2 * c.SolarSigmaHours * c.SolarSigmaHours))
		s[h] = w
		sum += w
	}
	for h := range s {
		s[h] /= sum
	}
	return s
}

// irradianceForHour spreads a daily total (Wh/m²) into an average
// irradiance (W/m²) for the given hour. With one-hour steps the hourly
// energy share equals the average power.
func (s dailyShape) irradianceForHour(dailyWhM2 float64, hour int) float64 {
	return dailyWhM2 * s[hour]
}
