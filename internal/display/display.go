package display

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/swelljoe/weatherapp/internal/weather"
)

// Fetcher looks up current conditions for a city name
type Fetcher interface {
	FetchWeather(ctx context.Context, city string) (*weather.Response, error)
}

// Presenter turns a "check weather" action into the text shown to the user
type Presenter struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// New creates a Presenter backed by the given Fetcher
func New(fetcher Fetcher, logger *zap.Logger) *Presenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Presenter{fetcher: fetcher, logger: logger}
}

// NotFoundMessage is shown when the provider has no weather for city
func NotFoundMessage(city string) string {
	return fmt.Sprintf("Weather for \"%s\" was not found! Please enter a valid city name.", city)
}

// ErrorMessage is shown when the lookup failed for any other reason
func ErrorMessage(city string) string {
	return fmt.Sprintf("Unable to get weather for \"%s\". Please try again later.", city)
}

// Report prefixes the formatted conditions with the city header
func Report(city string, resp *weather.Response) string {
	return fmt.Sprintf("Current weather for city: %s\n\n%s", city, weather.Format(resp))
}

// CheckWeather fetches and renders the weather for city. The result
// replaces whatever was displayed before.
func (p *Presenter) CheckWeather(ctx context.Context, city string) string {
	resp, err := p.fetcher.FetchWeather(ctx, city)
	switch {
	case errors.Is(err, weather.ErrNotFound):
		p.logger.Info("weather not found", zap.String("city", city), zap.Error(err))
		return NotFoundMessage(city)
	case err != nil:
		p.logger.Error("weather lookup failed", zap.String("city", city), zap.Error(err))
		return ErrorMessage(city)
	}

	return Report(city, resp)
}
