// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/hectormalot/omgo"

	"github.com/wneessen/owm-weather/internal/geocode"
	"github.com/wneessen/owm-weather/internal/logger"
	"github.com/wneessen/owm-weather/internal/weather"
)

const (
	testLat = 50.95099552
	testLon = 6.929531592
)

var testStart = time.Date(2021, 7, 7, 0, 0, 0, 0, time.UTC)

type fakeForecaster struct {
	forecast *omgo.Forecast
	err      error
	opts     *omgo.Options
}

func (f *fakeForecaster) Forecast(_ context.Context, _ omgo.Location, opts *omgo.Options) (*omgo.Forecast, error) {
	f.opts = opts
	return f.forecast, f.err
}

type fakeGeocoder struct {
	place geocode.Place
	err   error
}

func (f *fakeGeocoder) Name() string { return "fake" }

func (f *fakeGeocoder) Search(context.Context, string) (geocode.Place, error) {
	return f.place, f.err
}

func (f *fakeGeocoder) Reverse(context.Context, weather.Coordinate) (geocode.Place, error) {
	return f.place, f.err
}

func TestNew(t *testing.T) {
	t.Run("new provider succeeds", func(t *testing.T) {
		var provider weather.Provider
		provider, err := New(&fakeGeocoder{}, testLogger(), 7)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		if provider.Name() != name {
			t.Errorf("expected provider name to be %s, got %s", name, provider.Name())
		}
	})
	t.Run("forecast days are limited to the API forecast length", func(t *testing.T) {
		buf := &bytes.Buffer{}
		provider, err := New(&fakeGeocoder{}, logger.NewLogger(slog.LevelDebug, buf), 16)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		if provider.days != MaxForecastDays {
			t.Errorf("expected forecast days to be %d, got %d", MaxForecastDays, provider.days)
		}
		if !strings.Contains(buf.String(), "limiting forecast") {
			t.Errorf("expected warning to be logged, got %q", buf.String())
		}
	})
	t.Run("forecast days within the API forecast length are kept", func(t *testing.T) {
		provider, err := New(&fakeGeocoder{}, testLogger(), 3)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		if provider.days != 3 {
			t.Errorf("expected forecast days to be %d, got %d", 3, provider.days)
		}
	})
	t.Run("new provider without geocoder fails", func(t *testing.T) {
		if _, err := New(nil, testLogger(), 7); err == nil {
			t.Fatal("expected provider creation to fail")
		}
	})
	t.Run("new provider without logger fails", func(t *testing.T) {
		if _, err := New(&fakeGeocoder{}, nil, 7); err == nil {
			t.Fatal("expected provider creation to fail")
		}
	})
}

func TestOpenMeteo_CurrentByCoordinates(t *testing.T) {
	t.Run("current weather is enriched with the hourly slot", func(t *testing.T) {
		client := &fakeForecaster{forecast: testForecast(2)}
		provider := testProvider(t, client, &fakeGeocoder{})

		got, err := provider.CurrentByCoordinates(t.Context(), weather.Coordinate{Lat: testLat, Lon: testLon})
		if err != nil {
			t.Fatalf("failed to retrieve current weather: %s", err)
		}
		want := weather.Weather{
			Dt:          testStart.Add(time.Hour*15 + time.Minute*30).Unix(),
			Day:         23,
			Night:       0,
			Title:       "Clouds",
			Description: "overcast clouds",
			Icon:        "04d",
			CurrentTemp: 21.5,
			FeelsLike:   14,
			Pressure:    1015,
			Humidity:    65,
			Lat:         testLat,
			Lon:         testLon,
		}
		if got != want {
			t.Errorf("expected weather to be %+v, got %+v", want, got)
		}
		if client.opts.TemperatureUnit != "celsius" || client.opts.Timezone != "UTC" {
			t.Errorf("unexpected request options: %+v", client.opts)
		}
	})
	t.Run("missing hourly data results in defaults", func(t *testing.T) {
		forecast := &omgo.Forecast{Latitude: testLat, Longitude: testLon}
		forecast.CurrentWeather.Time.Time = testStart
		forecast.CurrentWeather.Temperature = 18
		forecast.CurrentWeather.WeatherCode = 0
		provider := testProvider(t, &fakeForecaster{forecast: forecast}, &fakeGeocoder{})

		got, err := provider.CurrentByCoordinates(t.Context(), weather.Coordinate{Lat: testLat, Lon: testLon})
		if err != nil {
			t.Fatalf("failed to retrieve current weather: %s", err)
		}
		if got.FeelsLike != 18 || got.Humidity != 0 || got.Pressure != 0 {
			t.Errorf("expected defaults for missing hourly data, got %+v", got)
		}
		if got.Icon != "01d" {
			t.Errorf("expected icon to be %s, got %s", "01d", got.Icon)
		}
	})
	t.Run("transport failure is a connectivity error", func(t *testing.T) {
		client := &fakeForecaster{err: &url.Error{Op: "Get", URL: "https://api.open-meteo.com", Err: io.EOF}}
		provider := testProvider(t, client, &fakeGeocoder{})
		_, err := provider.CurrentByCoordinates(t.Context(), weather.Coordinate{Lat: testLat, Lon: testLon})
		if !errors.Is(err, weather.ErrConnectivity) {
			t.Errorf("expected error to be %s, got %s", weather.ErrConnectivity, err)
		}
	})
	t.Run("API failure is a server error", func(t *testing.T) {
		client := &fakeForecaster{err: errors.New("400 Bad Request: invalid latitude")}
		provider := testProvider(t, client, &fakeGeocoder{})
		_, err := provider.CurrentByCoordinates(t.Context(), weather.Coordinate{Lat: testLat, Lon: testLon})
		if !errors.Is(err, weather.ErrServer) {
			t.Errorf("expected error to be %s, got %s", weather.ErrServer, err)
		}
	})
}

func TestOpenMeteo_ForecastByCity(t *testing.T) {
	found := &fakeGeocoder{place: geocode.Place{
		Found: true, Coordinate: weather.Coordinate{Lat: testLat, Lon: testLon}, City: "Köln",
	}}
	t.Run("hourly slots are aggregated per day", func(t *testing.T) {
		provider := testProvider(t, &fakeForecaster{forecast: testForecast(3)}, found)
		got, err := provider.ForecastByCity(t.Context(), "Köln")
		if err != nil {
			t.Fatalf("failed to retrieve forecast: %s", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 days, got %d", len(got))
		}
		for i, entry := range got {
			wantDt := testStart.AddDate(0, 0, i).Add(time.Hour * noonHour).Unix()
			if entry.Dt != wantDt {
				t.Errorf("expected day %d to have dt %d, got %d", i, wantDt, entry.Dt)
			}
			if entry.Day != 23 || entry.Night != 0 {
				t.Errorf("expected day %d to range from 0 to 23, got %f to %f", i, entry.Night, entry.Day)
			}
			if entry.CurrentTemp != noonHour {
				t.Errorf("expected day %d to use the noon temperature, got %f", i, entry.CurrentTemp)
			}
		}
	})
	t.Run("forecast is limited to the configured days", func(t *testing.T) {
		provider := testProvider(t, &fakeForecaster{forecast: testForecast(7)}, found)
		provider.days = 2
		got, err := provider.ForecastByCity(t.Context(), "Köln")
		if err != nil {
			t.Fatalf("failed to retrieve forecast: %s", err)
		}
		if len(got) != 2 {
			t.Errorf("expected 2 days, got %d", len(got))
		}
	})
	t.Run("unknown city is a server error", func(t *testing.T) {
		provider := testProvider(t, &fakeForecaster{forecast: testForecast(1)}, &fakeGeocoder{})
		_, err := provider.ForecastByCity(t.Context(), "Nowhere")
		if !errors.Is(err, weather.ErrServer) {
			t.Errorf("expected error to be %s, got %s", weather.ErrServer, err)
		}
	})
	t.Run("geocoder failure is classified", func(t *testing.T) {
		geocoder := &fakeGeocoder{err: fmt.Errorf("lookup: %w", context.DeadlineExceeded)}
		provider := testProvider(t, &fakeForecaster{forecast: testForecast(1)}, geocoder)
		_, err := provider.ForecastByCity(t.Context(), "Köln")
		if !errors.Is(err, weather.ErrConnectivity) {
			t.Errorf("expected error to be %s, got %s", weather.ErrConnectivity, err)
		}
	})
}

func TestConditionFor(t *testing.T) {
	tests := []struct {
		code  int
		isDay bool
		want  condition
	}{
		{0, true, condition{"Clear", "clear sky", "01d"}},
		{0, false, condition{"Clear", "clear sky", "01n"}},
		{63, true, condition{"Rain", "moderate rain", "10d"}},
		{95, false, condition{"Thunderstorm", "thunderstorm", "11n"}},
		{42, true, condition{}},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("code %d", tc.code), func(t *testing.T) {
			if got := conditionFor(tc.code, tc.isDay); got != tc.want {
				t.Errorf("expected condition to be %+v, got %+v", tc.want, got)
			}
		})
	}
}

// testForecast returns hourly slots for the given number of days starting at testStart.
// The temperature equals the hour of the day. The current weather is at 15:30 on the
// first day.
func testForecast(days int) *omgo.Forecast {
	forecast := &omgo.Forecast{
		Latitude:      testLat,
		Longitude:     testLon,
		HourlyMetrics: make(map[string][]float64),
	}
	for i := range days * 24 {
		slot := testStart.Add(time.Hour * time.Duration(i))
		forecast.HourlyTimes = append(forecast.HourlyTimes, slot)
		forecast.HourlyMetrics["temperature_2m"] = append(forecast.HourlyMetrics["temperature_2m"],
			float64(slot.Hour()))
		forecast.HourlyMetrics["apparent_temperature"] = append(forecast.HourlyMetrics["apparent_temperature"],
			float64(slot.Hour())-1)
		forecast.HourlyMetrics["weather_code"] = append(forecast.HourlyMetrics["weather_code"], 3)
		forecast.HourlyMetrics["is_day"] = append(forecast.HourlyMetrics["is_day"], 1)
		forecast.HourlyMetrics["relative_humidity_2m"] = append(forecast.HourlyMetrics["relative_humidity_2m"],
			64.6)
		forecast.HourlyMetrics["pressure_msl"] = append(forecast.HourlyMetrics["pressure_msl"], 1014.8)
	}
	forecast.CurrentWeather.Time.Time = testStart.Add(time.Hour*15 + time.Minute*30)
	forecast.CurrentWeather.Temperature = 21.5
	forecast.CurrentWeather.WeatherCode = 3
	return forecast
}

func testProvider(t *testing.T, client forecaster, geocoder geocode.Geocoder) *OpenMeteo {
	t.Helper()
	provider, err := New(geocoder, testLogger(), 16)
	if err != nil {
		t.Fatalf("failed to create provider: %s", err)
	}
	provider.client = client
	return provider
}

func testLogger() *logger.Logger {
	return logger.NewLogger(slog.LevelDebug, io.Discard)
}
