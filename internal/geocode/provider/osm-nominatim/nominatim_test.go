// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package nominatim

import (
	"log/slog"
	stdhttp "net/http"
	"net/url"
	"testing"

	"golang.org/x/text/language"

	"github.com/wneessen/owm-weather/internal/geocode"
	"github.com/wneessen/owm-weather/internal/http"
	"github.com/wneessen/owm-weather/internal/logger"
	"github.com/wneessen/owm-weather/internal/testhelper"
	"github.com/wneessen/owm-weather/internal/weather"
)

const (
	searchFile          = "../../../../testdata/nominatim_search_london.json"
	searchFileEmpty     = "../../../../testdata/nominatim_search_empty.json"
	searchFileBrokenLat = "../../../../testdata/nominatim_search_brokenlat.json"
	reverseFile         = "../../../../testdata/nominatim_reverse_otley.json"
	reverseFileError    = "../../../../testdata/nominatim_reverse_error.json"
)

func TestNew(t *testing.T) {
	t.Run("creating a new provider succeeds", func(t *testing.T) {
		var coder geocode.Geocoder = New(http.New(logger.New(slog.LevelInfo)), language.German)
		if coder.Name() != name {
			t.Errorf("expected provider name to be %q, got %q", name, coder.Name())
		}
	})
}

func TestNominatim_Search(t *testing.T) {
	t.Run("search succeeds", func(t *testing.T) {
		var gotURL *url.URL
		serve := testhelper.FileResponder(t, searchFile, 200)
		coder := testCoder(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotURL = req.URL
			return serve(req)
		})
		place, err := coder.Search(t.Context(), "London,GB")
		if err != nil {
			t.Fatalf("failed to search: %s", err)
		}
		if !place.Found {
			t.Fatal("expected place to be found")
		}
		want := weather.Coordinate{Lat: 51.5074456, Lon: -0.1277653}
		if place.Coordinate != want {
			t.Errorf("expected coordinates to be %s, got %s", want, place.Coordinate)
		}
		if place.Label() != "London, United Kingdom" {
			t.Errorf("expected label to be %q, got %q", "London, United Kingdom", place.Label())
		}
		if gotURL.Path != "/search" {
			t.Errorf("expected path to be %q, got %q", "/search", gotURL.Path)
		}
		if gotURL.Query().Get("q") != "London,GB" {
			t.Errorf("expected query to be %q, got %q", "London,GB", gotURL.Query().Get("q"))
		}
		if gotURL.Query().Get("accept-language") != "en" {
			t.Errorf("expected language to be %q, got %q", "en", gotURL.Query().Get("accept-language"))
		}
	})
	t.Run("search without results is not found", func(t *testing.T) {
		coder := testCoder(t, testhelper.FileResponder(t, searchFileEmpty, 200))
		place, err := coder.Search(t.Context(), "Nowhere")
		if err != nil {
			t.Fatalf("failed to search: %s", err)
		}
		if place.Found {
			t.Error("expected place not to be found")
		}
	})
	t.Run("search with broken latitude fails", func(t *testing.T) {
		coder := testCoder(t, testhelper.FileResponder(t, searchFileBrokenLat, 200))
		if _, err := coder.Search(t.Context(), "London"); err == nil {
			t.Error("expected search to fail")
		}
	})
	t.Run("search with server error fails", func(t *testing.T) {
		coder := testCoder(t, testhelper.FileResponder(t, searchFileEmpty, 500))
		if _, err := coder.Search(t.Context(), "London"); err == nil {
			t.Error("expected search to fail")
		}
	})
}

func TestNominatim_Reverse(t *testing.T) {
	t.Run("reverse geocoding falls back to the town", func(t *testing.T) {
		coder := testCoder(t, testhelper.FileResponder(t, reverseFile, 200))
		place, err := coder.Reverse(t.Context(), weather.Coordinate{Lat: 53.90712, Lon: -1.69404})
		if err != nil {
			t.Fatalf("failed to reverse geocode: %s", err)
		}
		if !place.Found {
			t.Fatal("expected place to be found")
		}
		if place.City != "Otley" {
			t.Errorf("expected city to be %q, got %q", "Otley", place.City)
		}
	})
	t.Run("unknown place is not found", func(t *testing.T) {
		coder := testCoder(t, testhelper.FileResponder(t, reverseFileError, 200))
		coords := weather.Coordinate{Lat: 0, Lon: -30}
		place, err := coder.Reverse(t.Context(), coords)
		if err != nil {
			t.Fatalf("failed to reverse geocode: %s", err)
		}
		if place.Found {
			t.Error("expected place not to be found")
		}
		if place.Label() != coords.String() {
			t.Errorf("expected label to be %q, got %q", coords.String(), place.Label())
		}
	})
}

func testCoder(t *testing.T, fn func(*stdhttp.Request) (*stdhttp.Response, error)) *Nominatim {
	t.Helper()
	client := http.New(logger.New(slog.LevelInfo))
	client.Transport = testhelper.MockRoundTripper{Fn: fn}
	coder := New(client, language.English)
	coder.baseURL = "https://nominatim.example.com"
	return coder
}
