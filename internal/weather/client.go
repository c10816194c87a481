package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const currentWeatherPath = "/data/2.5/weather"

// Client handles OpenWeatherMap API interactions
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a new OpenWeatherMap client. A zero timeout leaves
// requests unbounded.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Logger: logger,
	}
}

func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, redactURLError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		// best effort, the body is only used for logging
		_ = json.Unmarshal(body, &apiErr)
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	return body, nil
}

// FetchWeather fetches current conditions for a city name. Every non-200
// reply yields an error matching ErrNotFound.
func (c *Client) FetchWeather(ctx context.Context, city string) (*Response, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.APIKey)
	requestURL := strings.TrimRight(c.BaseURL, "/") + currentWeatherPath + "?" + params.Encode()

	start := time.Now()
	data, err := c.get(ctx, requestURL)
	c.logger().Debug("weather lookup",
		zap.String("city", city),
		zap.Duration("latency", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	// null and {} carry no weather at all
	if len(fields) == 0 {
		return nil, &StatusError{StatusCode: http.StatusOK, Message: "empty weather response"}
	}

	var cr currentResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return cr.toResponse()
}

// redactURLError strips the API key from the URL that net/http puts into
// transport errors.
func redactURLError(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}

	u, perr := url.Parse(ue.URL)
	if perr != nil {
		return &url.Error{Op: ue.Op, URL: "<redacted>", Err: ue.Err}
	}
	q := u.Query()
	if q.Has("appid") {
		q.Set("appid", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return &url.Error{Op: ue.Op, URL: u.String(), Err: ue.Err}
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
