package display

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/swelljoe/weatherapp/internal/weather"
)

// fakeFetcher returns canned results and records the cities asked for
type fakeFetcher struct {
	resp  *weather.Response
	err   error
	calls []string
}

func (f *fakeFetcher) FetchWeather(ctx context.Context, city string) (*weather.Response, error) {
	f.calls = append(f.calls, city)
	return f.resp, f.err
}

func londonResponse() *weather.Response {
	return &weather.Response{
		City:                  "London",
		TemperatureKelvin:     291.99,
		FeelsLikeKelvin:       290.5,
		PressureHPa:           1012,
		HumidityPercent:       60,
		CloudinessPercent:     40,
		WindSpeed:             "3.5",
		SunriseUnixUTC:        1700000000,
		SunsetUnixUTC:         1700030000,
		TimezoneOffsetSeconds: 0,
		Description:           "clear sky",
	}
}

func TestCheckWeather_Found(t *testing.T) {
	f := &fakeFetcher{resp: londonResponse()}
	p := New(f, zap.NewNop())

	got := p.CheckWeather(context.Background(), "London")

	expected := "Current weather for city: London\n\n" +
		"Celsius: 18°\n" +
		"Feels like: 17°\n" +
		"Pressure: 1012 hPa\n" +
		"Humidity: 60%\n" +
		"Sunrise at 22:13:20 and Sunset at 06:33:20\n" +
		"Cloud: 40%\n" +
		"Wind speed: 3.5 m/s\n" +
		"Description: clear sky"
	if got != expected {
		t.Errorf("CheckWeather() =\n%s\nwant\n%s", got, expected)
	}
	if len(f.calls) != 1 || f.calls[0] != "London" {
		t.Errorf("expected one lookup for London, got %v", f.calls)
	}
}

// TestCheckWeather_UsesEnteredName tests that the header echoes the input, not the provider's name
func TestCheckWeather_UsesEnteredName(t *testing.T) {
	p := New(&fakeFetcher{resp: londonResponse()}, nil)

	got := p.CheckWeather(context.Background(), "london")
	if !strings.HasPrefix(got, "Current weather for city: london\n\n") {
		t.Errorf("unexpected header in %q", got)
	}
}

func TestCheckWeather_NotFound(t *testing.T) {
	tests := []struct {
		name     string
		city     string
		err      error
		expected string
	}{
		{
			name:     "sentinel",
			city:     "Atlantis",
			err:      weather.ErrNotFound,
			expected: `Weather for "Atlantis" was not found! Please enter a valid city name.`,
		},
		{
			name:     "status error",
			city:     "Atlantis",
			err:      &weather.StatusError{StatusCode: 404, Message: "city not found"},
			expected: `Weather for "Atlantis" was not found! Please enter a valid city name.`,
		},
		{
			name:     "empty city",
			city:     "",
			err:      &weather.StatusError{StatusCode: 400},
			expected: `Weather for "" was not found! Please enter a valid city name.`,
		},
		{
			name:     "rate limited",
			city:     "Paris",
			err:      fmt.Errorf("lookup: %w", &weather.StatusError{StatusCode: 429}),
			expected: `Weather for "Paris" was not found! Please enter a valid city name.`,
		},
		{
			name:     "quotes are not escaped",
			city:     `Say "hi"`,
			err:      weather.ErrNotFound,
			expected: `Weather for "Say "hi"" was not found! Please enter a valid city name.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(&fakeFetcher{err: tt.err}, nil)
			if got := p.CheckWeather(context.Background(), tt.city); got != tt.expected {
				t.Errorf("CheckWeather(%q) = %q, want %q", tt.city, got, tt.expected)
			}
		})
	}
}

// TestCheckWeather_OtherErrors tests that failures other than not found show the generic message
func TestCheckWeather_OtherErrors(t *testing.T) {
	errs := []error{
		&weather.IncompleteResponseError{Missing: []string{"main.temp"}},
		errors.New("failed to decode weather response: unexpected end of JSON input"),
		context.DeadlineExceeded,
	}

	for _, e := range errs {
		t.Run(e.Error(), func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			p := New(&fakeFetcher{err: e}, zap.New(core))

			got := p.CheckWeather(context.Background(), "London")
			if got != `Unable to get weather for "London". Please try again later.` {
				t.Errorf("unexpected message %q", got)
			}
			if strings.Contains(got, "Celsius") {
				t.Errorf("partial report shown: %q", got)
			}

			errLogs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
			if len(errLogs) != 1 {
				t.Fatalf("expected 1 error log, got %d", len(errLogs))
			}
			if errLogs[0].ContextMap()["city"] != "London" {
				t.Errorf("expected city field in error log, got %v", errLogs[0].ContextMap())
			}
		})
	}
}

// TestCheckWeather_ReplacesPreviousOutput tests that each call stands alone
func TestCheckWeather_ReplacesPreviousOutput(t *testing.T) {
	f := &fakeFetcher{resp: londonResponse()}
	p := New(f, nil)

	first := p.CheckWeather(context.Background(), "London")

	f.resp, f.err = nil, weather.ErrNotFound
	second := p.CheckWeather(context.Background(), "Nowhere")

	if strings.Contains(second, first) || strings.Contains(second, "London") {
		t.Errorf("previous output leaked into %q", second)
	}
	if second != NotFoundMessage("Nowhere") {
		t.Errorf("unexpected second output %q", second)
	}
}

// TestCheckWeather_NetworkFailureKeepsAPIKeyOutOfLogs tests the whole lookup path against a dead server
func TestCheckWeather_NetworkFailureKeepsAPIKeyOutOfLogs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	p := New(weather.NewClient("SECRETKEY123", url, time.Second, logger), logger)

	got := p.CheckWeather(context.Background(), "London")
	if got != ErrorMessage("London") {
		t.Errorf("unexpected output %q", got)
	}

	if len(logs.FilterLevelExact(zapcore.ErrorLevel).All()) != 1 {
		t.Fatalf("expected the failure to be logged at error level")
	}
	for _, e := range logs.All() {
		for k, v := range e.ContextMap() {
			if strings.Contains(fmt.Sprint(v), "SECRETKEY123") {
				t.Errorf("API key leaked in %q field of %q", k, e.Message)
			}
		}
	}
}
