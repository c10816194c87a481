package weather

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const kelvinOffset = 273.15

// Celsius converts Kelvin to whole degrees Celsius, truncating toward
// zero: 291.99 K is 18, not 19.
func Celsius(kelvin float64) int {
	return int(kelvin - kelvinOffset)
}

// LocalTimeOfDay shifts a UTC timestamp by a timezone offset and returns
// the wall-clock time as HH:MM:SS. The date is dropped.
func LocalTimeOfDay(utc, offsetSeconds int64) string {
	return time.Unix(utc+offsetSeconds, 0).UTC().Format("15:04:05")
}

// FormatWindSpeed prints the speed as the provider sent it: integer
// literals stay integers, fractional ones keep at least one decimal.
// Magnitudes of 1e16 and above or below 1e-4 print in plain decimal, not
// exponent form; real wind speeds never get there.
func FormatWindSpeed(speed json.Number) string {
	s := speed.String()
	if !strings.ContainsAny(s, ".eE") {
		if s == "-0" {
			return "0"
		}
		return s
	}

	f, err := speed.Float64()
	if err != nil {
		return s
	}

	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}

// Format renders the report lines for a complete Response
func Format(r *Response) string {
	lines := []string{
		fmt.Sprintf("Celsius: %d°", Celsius(r.TemperatureKelvin)),
		fmt.Sprintf("Feels like: %d°", Celsius(r.FeelsLikeKelvin)),
		fmt.Sprintf("Pressure: %d hPa", r.PressureHPa),
		fmt.Sprintf("Humidity: %d%%", r.HumidityPercent),
		fmt.Sprintf("Sunrise at %s and Sunset at %s",
			LocalTimeOfDay(r.SunriseUnixUTC, r.TimezoneOffsetSeconds),
			LocalTimeOfDay(r.SunsetUnixUTC, r.TimezoneOffsetSeconds)),
		fmt.Sprintf("Cloud: %d%%", r.CloudinessPercent),
		fmt.Sprintf("Wind speed: %s m/s", FormatWindSpeed(r.WindSpeed)),
		fmt.Sprintf("Description: %s", r.Description),
	}
	return strings.Join(lines, "\n")
}
