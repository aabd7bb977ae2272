// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/url"
	"time"

	"github.com/hectormalot/omgo"

	"github.com/wneessen/owm-weather/internal/geocode"
	"github.com/wneessen/owm-weather/internal/http"
	"github.com/wneessen/owm-weather/internal/logger"
	"github.com/wneessen/owm-weather/internal/weather"
)

const (
	name         = "open-meteo"
	FetchTimeout = time.Second * 10
	noonHour     = 12

	// MaxForecastDays is the forecast length of the Open-Meteo API. omgo has no option
	// to request more days.
	MaxForecastDays = 7
)

var hourlyMetrics = []string{
	"temperature_2m", "apparent_temperature", "weather_code", "is_day", "relative_humidity_2m",
	"pressure_msl",
}

// forecaster is implemented by omgo.Client.
type forecaster interface {
	Forecast(ctx context.Context, loc omgo.Location, opts *omgo.Options) (*omgo.Forecast, error)
}

type OpenMeteo struct {
	client   forecaster
	geocoder geocode.Geocoder
	days     int
	log      *logger.Logger
}

func New(geocoder geocode.Geocoder, log *logger.Logger, days int) (*OpenMeteo, error) {
	if geocoder == nil {
		return nil, errors.New("geocoder is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	client, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo client: %w", err)
	}
	if days > MaxForecastDays {
		log.Warn("forecast days exceed the Open-Meteo forecast length, limiting forecast",
			slog.Int("configured", days), slog.Int("limit", MaxForecastDays))
		days = MaxForecastDays
	}

	return &OpenMeteo{client: &client, geocoder: geocoder, days: days, log: log}, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

// ForecastByCity resolves the city through the geocoder and aggregates the hourly
// forecast into daily entries.
func (o *OpenMeteo) ForecastByCity(ctx context.Context, city string) ([]weather.Weather, error) {
	place, err := o.geocoder.Search(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode city %q: %w", city, classify(err))
	}
	if !place.Found {
		return nil, fmt.Errorf("%w: city %q not found", weather.ErrServer, city)
	}
	o.log.Debug("city resolved", slog.String("city", city), slog.String("place", place.Label()),
		slog.Bool("cache_hit", place.CacheHit))

	forecast, err := o.fetch(ctx, place.Coordinate)
	if err != nil {
		return nil, err
	}
	return dailyWeather(forecast, o.days), nil
}

// CurrentByCoordinates returns the current weather, enriched with the values of the
// matching hourly slot.
func (o *OpenMeteo) CurrentByCoordinates(ctx context.Context, coords weather.Coordinate) (weather.Weather, error) {
	forecast, err := o.fetch(ctx, coords)
	if err != nil {
		return weather.Weather{}, err
	}
	return currentWeather(forecast), nil
}

func (o *OpenMeteo) fetch(ctx context.Context, coords weather.Coordinate) (*omgo.Forecast, error) {
	ctxFetch, cancelFetch := context.WithTimeout(ctx, FetchTimeout)
	defer cancelFetch()

	location, err := omgo.NewLocation(coords.Lat, coords.Lon)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", weather.ErrInvalidCoordinates, err)
	}
	opts := &omgo.Options{
		TemperatureUnit:   "celsius",
		WindspeedUnit:     "kmh",
		PrecipitationUnit: "mm",
		Timezone:          "UTC",
		HourlyMetrics:     hourlyMetrics,
	}
	forecast, err := o.client.Forecast(ctxFetch, location, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve forecast from Open-Meteo API: %w", classify(err))
	}
	return forecast, nil
}

// classify translates client errors into the weather error taxonomy.
func classify(err error) error {
	var urlErr *url.Error
	var netErr net.Error
	switch {
	case errors.Is(err, http.ErrRequestFailed), errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &urlErr), errors.As(err, &netErr):
		return fmt.Errorf("%w: %w", weather.ErrConnectivity, err)
	default:
		return fmt.Errorf("%w: %w", weather.ErrServer, err)
	}
}

func currentWeather(forecast *omgo.Forecast) weather.Weather {
	current := forecast.CurrentWeather
	at := current.Time.Time
	idx := hourIndex(forecast.HourlyTimes, at)
	isDay := metric(forecast, "is_day", idx, 1) > 0
	cond := conditionFor(int(current.WeatherCode), isDay)
	high, low := dayRange(forecast, at)

	return weather.Weather{
		Dt:          at.Unix(),
		Day:         high,
		Night:       low,
		Title:       cond.Main,
		Description: cond.Description,
		Icon:        cond.Icon,
		CurrentTemp: current.Temperature,
		FeelsLike:   metric(forecast, "apparent_temperature", idx, current.Temperature),
		Pressure:    int(math.Round(metric(forecast, "pressure_msl", idx, 0))),
		Humidity:    int(math.Round(metric(forecast, "relative_humidity_2m", idx, 0))),
		Lat:         forecast.Latitude,
		Lon:         forecast.Longitude,
	}
}

// dailyWeather aggregates the hourly slots per day. Day and night are the maximum and
// minimum temperature of the day, everything else is taken from the noon slot.
func dailyWeather(forecast *omgo.Forecast, days int) []weather.Weather {
	var order []string
	slots := make(map[string][]int)
	for i, t := range forecast.HourlyTimes {
		day := t.UTC().Format(time.DateOnly)
		if _, ok := slots[day]; !ok {
			order = append(order, day)
		}
		slots[day] = append(slots[day], i)
	}
	if days > 0 && len(order) > days {
		order = order[:days]
	}

	list := make([]weather.Weather, 0, len(order))
	for _, day := range order {
		indexes := slots[day]
		noon := indexes[len(indexes)/2]
		for _, i := range indexes {
			if forecast.HourlyTimes[i].UTC().Hour() == noonHour {
				noon = i
			}
		}
		high, low := dayRange(forecast, forecast.HourlyTimes[noon])
		cond := conditionFor(int(metric(forecast, "weather_code", noon, -1)), true)
		list = append(list, weather.Weather{
			Dt:          forecast.HourlyTimes[noon].Unix(),
			Day:         high,
			Night:       low,
			Title:       cond.Main,
			Description: cond.Description,
			Icon:        cond.Icon,
			CurrentTemp: metric(forecast, "temperature_2m", noon, 0),
			FeelsLike:   metric(forecast, "apparent_temperature", noon, 0),
			Pressure:    int(math.Round(metric(forecast, "pressure_msl", noon, 0))),
			Humidity:    int(math.Round(metric(forecast, "relative_humidity_2m", noon, 0))),
			Lat:         forecast.Latitude,
			Lon:         forecast.Longitude,
		})
	}
	return list
}

// dayRange returns the highest and lowest hourly temperature of the day of t.
func dayRange(forecast *omgo.Forecast, t time.Time) (high, low float64) {
	day := t.UTC().Format(time.DateOnly)
	found := false
	for i, slot := range forecast.HourlyTimes {
		if slot.UTC().Format(time.DateOnly) != day {
			continue
		}
		temp := metric(forecast, "temperature_2m", i, 0)
		if !found {
			high, low, found = temp, temp, true
			continue
		}
		high = math.Max(high, temp)
		low = math.Min(low, temp)
	}
	return high, low
}

func hourIndex(times []time.Time, t time.Time) int {
	hour := t.UTC().Truncate(time.Hour)
	for i, slot := range times {
		if slot.UTC().Equal(hour) {
			return i
		}
	}
	return -1
}

// metric returns the hourly value of key at idx or def if it is not available.
func metric(forecast *omgo.Forecast, key string, idx int, def float64) float64 {
	values, ok := forecast.HourlyMetrics[key]
	if !ok || idx < 0 || idx >= len(values) {
		return def
	}
	return values[idx]
}
