package weather

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned for every non-200 reply from the provider
var ErrNotFound = errors.New("weather not found")

// StatusError records the status code behind an ErrNotFound
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("OpenWeatherMap API error: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("OpenWeatherMap API error: %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrNotFound }

// IncompleteResponseError is returned when a 200 body lacks required fields
type IncompleteResponseError struct {
	Missing []string
}

func (e *IncompleteResponseError) Error() string {
	return "incomplete weather response: missing " + strings.Join(e.Missing, ", ")
}

// Response is the current conditions for one city. A Response is only
// ever handed out with every field populated.
type Response struct {
	City                  string
	TemperatureKelvin     float64
	FeelsLikeKelvin       float64
	PressureHPa           int
	HumidityPercent       int
	CloudinessPercent     int
	WindSpeed             json.Number
	SunriseUnixUTC        int64
	SunsetUnixUTC         int64
	TimezoneOffsetSeconds int64
	Description           string
}

// currentResponse represents the OpenWeatherMap /data/2.5/weather body.
// Pointers tell absent fields apart from zero values.
type currentResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Pressure  *int     `json:"pressure"`
		Humidity  *int     `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *json.Number `json:"speed"`
	} `json:"wind"`
	Clouds *struct {
		All *int `json:"all"`
	} `json:"clouds"`
	Sys *struct {
		Sunrise *int64 `json:"sunrise"`
		Sunset  *int64 `json:"sunset"`
	} `json:"sys"`
	Timezone *int64 `json:"timezone"`
	Weather  []struct {
		Description *string `json:"description"`
	} `json:"weather"`
}

// apiError represents an error body from OpenWeatherMap
type apiError struct {
	Message string `json:"message"`
}

func (cr *currentResponse) toResponse() (*Response, error) {
	var missing []string
	need := func(ok bool, field string) {
		if !ok {
			missing = append(missing, field)
		}
	}

	m := cr.Main
	need(m != nil && m.Temp != nil, "main.temp")
	need(m != nil && m.FeelsLike != nil, "main.feels_like")
	need(m != nil && m.Pressure != nil, "main.pressure")
	need(m != nil && m.Humidity != nil, "main.humidity")
	need(cr.Wind != nil && cr.Wind.Speed != nil, "wind.speed")
	need(cr.Clouds != nil && cr.Clouds.All != nil, "clouds.all")
	need(cr.Sys != nil && cr.Sys.Sunrise != nil, "sys.sunrise")
	need(cr.Sys != nil && cr.Sys.Sunset != nil, "sys.sunset")
	need(cr.Timezone != nil, "timezone")
	need(len(cr.Weather) > 0 && cr.Weather[0].Description != nil, "weather[0].description")

	if len(missing) > 0 {
		return nil, &IncompleteResponseError{Missing: missing}
	}

	return &Response{
		City:                  cr.Name,
		TemperatureKelvin:     *m.Temp,
		FeelsLikeKelvin:       *m.FeelsLike,
		PressureHPa:           *m.Pressure,
		HumidityPercent:       *m.Humidity,
		CloudinessPercent:     *cr.Clouds.All,
		WindSpeed:             *cr.Wind.Speed,
		SunriseUnixUTC:        *cr.Sys.Sunrise,
		SunsetUnixUTC:         *cr.Sys.Sunset,
		TimezoneOffsetSeconds: *cr.Timezone,
		Description:           *cr.Weather[0].Description,
	}, nil
}
