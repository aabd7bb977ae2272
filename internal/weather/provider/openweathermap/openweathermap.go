// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openweathermap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/wneessen/owm-weather/internal/http"
	"github.com/wneessen/owm-weather/internal/logger"
	"github.com/wneessen/owm-weather/internal/weather"
)

const (
	name = "openweathermap"

	// DefaultBaseURL is the base URL of the public OpenWeatherMap API.
	DefaultBaseURL = "https://api.openweathermap.org"
	// DefaultForecastDays is the maximum number of days the daily forecast supports.
	DefaultForecastDays = 16

	forecastPath = "/data/2.5/forecast/daily"
	currentPath  = "/data/2.5/weather"
)

type OpenWeatherMap struct {
	apiKey  string
	baseURL string
	days    int
	http    *http.Client
	log     *logger.Logger
}

func New(http *http.Client, log *logger.Logger, apiKey, baseURL string, days int) (*OpenWeatherMap, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if days <= 0 || days > DefaultForecastDays {
		days = DefaultForecastDays
	}

	return &OpenWeatherMap{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		days:    days,
		http:    http,
		log:     log,
	}, nil
}

func (o *OpenWeatherMap) Name() string {
	return name
}

// ForecastByCity retrieves the daily forecast for the given free-text city name.
func (o *OpenWeatherMap) ForecastByCity(ctx context.Context, city string) ([]weather.Weather, error) {
	res := new(ForecastResponse)
	query := url.Values{}
	query.Set("q", city)
	query.Set("mode", "json")
	query.Set("units", "metric")
	query.Set("cnt", strconv.Itoa(o.days))
	query.Set("appid", o.apiKey)

	code, err := o.http.Get(ctx, o.baseURL+forecastPath, res, query, nil)
	if err = classify(code, err, res.errorMessage()); err != nil {
		return nil, fmt.Errorf("failed to retrieve forecast from OpenWeatherMap API: %w", err)
	}
	o.log.Debug("forecast received", slog.String("city", res.City.Name), slog.Int("entries", len(res.List)))

	return ForecastToWeather(*res), nil
}

// CurrentByCoordinates retrieves the current weather for the given coordinates.
func (o *OpenWeatherMap) CurrentByCoordinates(ctx context.Context, coords weather.Coordinate) (weather.Weather, error) {
	res := new(CurrentResponse)
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	query.Set("units", "metric")
	query.Set("appid", o.apiKey)

	code, err := o.http.Get(ctx, o.baseURL+currentPath, res, query, nil)
	if err = classify(code, err, res.Message); err != nil {
		return weather.Weather{}, fmt.Errorf("failed to retrieve current weather from OpenWeatherMap API: %w", err)
	}

	return ToWeather(*res), nil
}

// classify translates the outcome of a HTTP request into the weather error taxonomy.
func classify(code int, err error, message string) error {
	switch {
	case err == nil && code == 200:
		return nil
	case errors.Is(err, http.ErrRequestFailed), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", weather.ErrConnectivity, err)
	case errors.Is(err, http.ErrDecodeFailed):
		return fmt.Errorf("%w: status %d: %w", weather.ErrServer, code, err)
	case err != nil:
		return err
	case message != "":
		return fmt.Errorf("%w: status %d: %s", weather.ErrServer, code, message)
	default:
		return fmt.Errorf("%w: status %d", weather.ErrServer, code)
	}
}
