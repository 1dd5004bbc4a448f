package model

import "time"

// WeatherSample is one hourly meteorological observation.
type WeatherSample struct {
	Time      time.Time `json:"time"`
	AirTempC  float64   `json:"air_temp_c"`
	WindMS    float64   `json:"wind_ms"`
	// HumidityPct is the relative humidity in percent [0,100].
	HumidityPct float64 `json:"humidity_pct"`
}

// SolarSample is one hourly solar irradiance observation in W/m².
type SolarSample struct {
	Time          time.Time `json:"time"`
	IrradianceWM2 float64   `json:"irradiance_wm2"`
}
