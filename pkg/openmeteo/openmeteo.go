// Package openmeteo fetches current conditions from the Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"liyu1981.xyz/weather-alert-pipeline/pkg/common"
	"liyu1981.xyz/weather-alert-pipeline/pkg/config"
	"liyu1981.xyz/weather-alert-pipeline/pkg/models"
)

const currentFields = "temperature_2m,precipitation,wind_speed_10m,relative_humidity_2m,weather_code"

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	retry   RetryPolicy
	clock   func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) {
		c.retry = p
	}
}

func WithClock(clock func() time.Time) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

func NewClient(cfg config.OpenMeteoConfig, opts ...Option) *Client {
	c := &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: newBreaker("openmeteo"),
		retry:   DefaultRetryPolicy(),
		clock:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type currentResponse struct {
	Current struct {
		Temperature   *float64 `json:"temperature_2m"`
		Precipitation *float64 `json:"precipitation"`
		WindSpeed     *float64 `json:"wind_speed_10m"`
		Humidity      *float64 `json:"relative_humidity_2m"`
		WeatherCode   *int     `json:"weather_code"`
	} `json:"current"`
}

// Fetch returns the current conditions. The reading is stamped with the fetch
// time in UTC, not the API's observation time, and a missing precipitation
// value is reported as 0.
func (c *Client) Fetch(ctx context.Context, latitude, longitude float64) (*models.Reading, error) {
	logger := common.GetLoggerWith(common.LoggerNameOpenMeteo)

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
		values.Set("current", currentFields)
		values.Set("timezone", "auto")

		return http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	}

	logger.Info("Fetching weather", zap.Float64("latitude", latitude), zap.Float64("longitude", longitude))

	resp, err := c.do(ctx, buildRequest)
	if err != nil {
		logger.Error("Weather request failed", zap.Error(err))
		return nil, fmt.Errorf("fetch current weather: %w", err)
	}
	defer resp.Body.Close()

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode current weather: %w", err)
	}

	current := payload.Current
	precipitation := current.Precipitation
	if precipitation == nil {
		precipitation = common.Ptr(0.0)
	}

	reading := &models.Reading{
		Timestamp:     c.clock(),
		Temperature:   current.Temperature,
		Precipitation: precipitation,
		WindSpeed:     current.WindSpeed,
		Humidity:      current.Humidity,
		WeatherCode:   current.WeatherCode,
	}

	logger.Info("Weather fetched", zap.Reflect("reading", reading))
	return reading, nil
}
