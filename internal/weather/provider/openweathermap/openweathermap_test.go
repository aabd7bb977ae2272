// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openweathermap

import (
	"errors"
	"log/slog"
	stdhttp "net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/wneessen/owm-weather/internal/http"
	"github.com/wneessen/owm-weather/internal/logger"
	"github.com/wneessen/owm-weather/internal/testhelper"
	"github.com/wneessen/owm-weather/internal/weather"
)

const (
	testAPIKey       = "test-api-key"
	testCurrentFile  = "../../../../testdata/owm_current.json"
	testNoCondFile   = "../../../../testdata/owm_current_noconditions.json"
	testForecastFile = "../../../../testdata/owm_forecast.json"
	testNotFoundFile = "../../../../testdata/owm_error_404.json"
	testUnauthorized = "../../../../testdata/owm_error_401.json"
	testInvalidFile  = "../../../../testdata/invalid.html"
)

func TestNew(t *testing.T) {
	t.Run("new provider succeeds", func(t *testing.T) {
		var provider weather.Provider
		provider, err := New(http.New(logger.New(slog.LevelInfo)), logger.New(slog.LevelInfo), testAPIKey, "", 0)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		if provider.Name() != name {
			t.Errorf("expected provider name to be %s, got %s", name, provider.Name())
		}
	})
	t.Run("defaults are applied", func(t *testing.T) {
		provider, err := New(http.New(logger.New(slog.LevelInfo)), logger.New(slog.LevelInfo), testAPIKey,
			"https://example.com/", 99)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		if provider.days != DefaultForecastDays {
			t.Errorf("expected forecast days to be %d, got %d", DefaultForecastDays, provider.days)
		}
		if provider.baseURL != "https://example.com" {
			t.Errorf("expected base URL to be %s, got %s", "https://example.com", provider.baseURL)
		}
	})
	t.Run("new provider without HTTP client fails", func(t *testing.T) {
		_, err := New(nil, logger.New(slog.LevelInfo), testAPIKey, "", 0)
		if err == nil {
			t.Fatal("expected provider creation to fail")
		}
	})
	t.Run("new provider without logger fails", func(t *testing.T) {
		_, err := New(http.New(logger.New(slog.LevelInfo)), nil, testAPIKey, "", 0)
		if err == nil {
			t.Fatal("expected provider creation to fail")
		}
	})
	t.Run("new provider without API key fails", func(t *testing.T) {
		_, err := New(http.New(logger.New(slog.LevelInfo)), logger.New(slog.LevelInfo), "", "", 0)
		if err == nil {
			t.Fatal("expected provider creation to fail")
		}
	})
}

func TestOpenWeatherMap_CurrentByCoordinates(t *testing.T) {
	t.Run("current weather is mapped from the response", func(t *testing.T) {
		var gotURL *url.URL
		serve := testhelper.FileResponder(t, testCurrentFile, 200)
		provider := testProvider(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotURL = req.URL
			return serve(req)
		})

		got, err := provider.CurrentByCoordinates(t.Context(), weather.Coordinate{Lat: 51.5085, Lon: -0.1257})
		if err != nil {
			t.Fatalf("failed to retrieve current weather: %s", err)
		}
		want := weather.Weather{
			Dt:          1625670000,
			Day:         289.31,
			Night:       286.4,
			Title:       "Clouds",
			Description: "overcast clouds",
			Icon:        "04n",
			CurrentTemp: 288.46,
			FeelsLike:   287.85,
			Pressure:    1029,
			Humidity:    69,
			Lat:         51.5085,
			Lon:         -0.1257,
		}
		if got != want {
			t.Errorf("expected weather to be %+v, got %+v", want, got)
		}

		if gotURL.Path != currentPath {
			t.Errorf("expected request path to be %s, got %s", currentPath, gotURL.Path)
		}
		query := gotURL.Query()
		wantQuery := map[string]string{"lat": "51.5085", "lon": "-0.1257", "units": "metric", "appid": testAPIKey}
		for key, value := range wantQuery {
			if query.Get(key) != value {
				t.Errorf("expected query parameter %s to be %s, got %s", key, value, query.Get(key))
			}
		}
	})
	t.Run("missing conditions result in empty strings", func(t *testing.T) {
		provider := testProvider(t, testhelper.FileResponder(t, testNoCondFile, 200))
		got, err := provider.CurrentByCoordinates(t.Context(), weather.Coordinate{Lat: 52.52, Lon: 13.41})
		if err != nil {
			t.Fatalf("failed to retrieve current weather: %s", err)
		}
		if got.Title != "" || got.Description != "" || got.Icon != "" {
			t.Errorf("expected condition fields to be empty, got %q/%q/%q", got.Title, got.Description, got.Icon)
		}
		if got.Day != 23.2 || got.Night != 19.8 {
			t.Errorf("expected day/night to be 23.2/19.8, got %f/%f", got.Day, got.Night)
		}
	})
	t.Run("unauthorized response is a server error", func(t *testing.T) {
		provider := testProvider(t, testhelper.FileResponder(t, testUnauthorized, 401))
		_, err := provider.CurrentByCoordinates(t.Context(), weather.Coordinate{Lat: 52.52, Lon: 13.41})
		if err == nil {
			t.Fatal("expected request to fail")
		}
		if !errors.Is(err, weather.ErrServer) {
			t.Errorf("expected error to be %s, got %s", weather.ErrServer, err)
		}
		if !strings.Contains(err.Error(), "Invalid API key") {
			t.Errorf("expected error to contain the API message, got %s", err)
		}
	})
	t.Run("transport failure is a connectivity error", func(t *testing.T) {
		provider := testProvider(t, func(*stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("dial tcp: lookup api.openweathermap.org: no such host")
		})
		_, err := provider.CurrentByCoordinates(t.Context(), weather.Coordinate{Lat: 52.52, Lon: 13.41})
		if !errors.Is(err, weather.ErrConnectivity) {
			t.Errorf("expected error to be %s, got %s", weather.ErrConnectivity, err)
		}
	})
}

func TestOpenWeatherMap_ForecastByCity(t *testing.T) {
	t.Run("forecast is mapped in provider order", func(t *testing.T) {
		var gotURL *url.URL
		serve := testhelper.FileResponder(t, testForecastFile, 200)
		provider := testProvider(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotURL = req.URL
			return serve(req)
		})

		got, err := provider.ForecastByCity(t.Context(), "London")
		if err != nil {
			t.Fatalf("failed to retrieve forecast: %s", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 forecast entries, got %d", len(got))
		}
		wantDts := []int64{1625655600, 1625670000, 1625742000}
		for i, dt := range wantDts {
			if got[i].Dt != dt {
				t.Errorf("expected entry %d to have dt %d, got %d", i, dt, got[i].Dt)
			}
			if got[i].Lat != 51.5085 || got[i].Lon != -0.1257 {
				t.Errorf("expected entry %d to carry the city coordinates, got %f/%f", i, got[i].Lat, got[i].Lon)
			}
		}
		first := got[0]
		if first.Day != 20.12 || first.Night != 13.35 || first.CurrentTemp != 18.92 || first.FeelsLike != 18.61 {
			t.Errorf("unexpected temperatures in first entry: %+v", first)
		}
		if first.Title != "Rain" || first.Icon != "10d" {
			t.Errorf("unexpected condition in first entry: %+v", first)
		}
		if got[2].Title != "" {
			t.Errorf("expected empty title for entry without conditions, got %q", got[2].Title)
		}

		if gotURL.Path != forecastPath {
			t.Errorf("expected request path to be %s, got %s", forecastPath, gotURL.Path)
		}
		query := gotURL.Query()
		wantQuery := map[string]string{
			"q": "London", "mode": "json", "units": "metric", "cnt": "16", "appid": testAPIKey,
		}
		for key, value := range wantQuery {
			if query.Get(key) != value {
				t.Errorf("expected query parameter %s to be %s, got %s", key, value, query.Get(key))
			}
		}
	})
	t.Run("unknown city is a server error", func(t *testing.T) {
		provider := testProvider(t, testhelper.FileResponder(t, testNotFoundFile, 404))
		_, err := provider.ForecastByCity(t.Context(), "Nowhere")
		if !errors.Is(err, weather.ErrServer) {
			t.Fatalf("expected error to be %s, got %s", weather.ErrServer, err)
		}
		if !strings.Contains(err.Error(), "city not found") {
			t.Errorf("expected error to contain the API message, got %s", err)
		}
	})
	t.Run("malformed body is a server error", func(t *testing.T) {
		provider := testProvider(t, testhelper.FileResponder(t, testInvalidFile, 502))
		_, err := provider.ForecastByCity(t.Context(), "London")
		if !errors.Is(err, weather.ErrServer) {
			t.Errorf("expected error to be %s, got %s", weather.ErrServer, err)
		}
	})
	t.Run("online forecast request without valid key is rejected", func(t *testing.T) {
		testhelper.PerformIntegrationTests(t)
		provider, err := New(http.New(logger.New(slog.LevelInfo)), logger.New(slog.LevelInfo), testAPIKey, "", 1)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		_, err = provider.ForecastByCity(t.Context(), "London")
		if !errors.Is(err, weather.ErrServer) {
			t.Errorf("expected error to be %s, got %s", weather.ErrServer, err)
		}
	})
}

func TestToWeather(t *testing.T) {
	t.Run("mapping is deterministic", func(t *testing.T) {
		res := CurrentResponse{
			Coord:   Coord{Lat: 1, Lon: 2},
			Weather: []Condition{{Main: "Clear", Description: "clear sky", Icon: "01d"}, {Main: "Mist"}},
			Main:    MainBlock{Temp: 10, FeelsLike: 9, TempMin: 8, TempMax: 12, Pressure: 1000, Humidity: 40},
			Dt:      42,
		}
		first, second := ToWeather(res), ToWeather(res)
		if first != second {
			t.Errorf("expected mapping to be deterministic, got %+v and %+v", first, second)
		}
		if first.Title != "Clear" {
			t.Errorf("expected first condition to be used, got %s", first.Title)
		}
	})
	t.Run("empty response maps to zero values", func(t *testing.T) {
		got := ToWeather(CurrentResponse{})
		if got != (weather.Weather{}) {
			t.Errorf("expected zero weather, got %+v", got)
		}
	})
}

func TestForecastToWeather(t *testing.T) {
	t.Run("duplicates and order are kept", func(t *testing.T) {
		res := ForecastResponse{List: []DailyEntry{{Dt: 3}, {Dt: 1}, {Dt: 3}}}
		got := ForecastToWeather(res)
		if len(got) != 3 || got[0].Dt != 3 || got[1].Dt != 1 || got[2].Dt != 3 {
			t.Errorf("expected provider order to be kept, got %+v", got)
		}
	})
	t.Run("empty list maps to empty slice", func(t *testing.T) {
		got := ForecastToWeather(ForecastResponse{})
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %+v", got)
		}
	})
}

func testProvider(t *testing.T, fn func(*stdhttp.Request) (*stdhttp.Response, error)) *OpenWeatherMap {
	t.Helper()
	client := http.New(logger.New(slog.LevelInfo))
	client.Transport = testhelper.MockRoundTripper{Fn: fn}
	provider, err := New(client, logger.New(slog.LevelInfo), testAPIKey, "https://api.example.com", 0)
	if err != nil {
		t.Fatalf("failed to create provider: %s", err)
	}
	return provider
}
