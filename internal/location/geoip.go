// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/owm-weather/internal/http"
	"github.com/wneessen/owm-weather/internal/weather"
)

const (
	GeoIPEndpoint = "https://reallyfreegeoip.org/json/"
	LookupTimeout = time.Second * 5
)

// GeoIPSource derives the position from the public IP address.
type GeoIPSource struct {
	http     *http.Client
	endpoint string
}

type GeoIPResult struct {
	IP          string  `json:"ip"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country_name"`
	RegionCode  string  `json:"region_code,omitempty"`
	Region      string  `json:"region_name,omitempty"`
	City        string  `json:"city,omitempty"`
	ZipCode     string  `json:"zip_code,omitempty"`
	TimeZone    string  `json:"time_zone"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	MetroCode   int     `json:"metro_code"`
}

func NewGeoIPSource(client *http.Client) (*GeoIPSource, error) {
	if client == nil {
		return nil, errors.New("http client is required")
	}
	return &GeoIPSource{http: client, endpoint: GeoIPEndpoint}, nil
}

func (g *GeoIPSource) Name() string {
	return "geoip"
}

func (g *GeoIPSource) Locate(ctx context.Context) (weather.Coordinate, error) {
	result := new(GeoIPResult)
	code, err := g.http.GetWithTimeout(ctx, g.endpoint, result, nil, nil, LookupTimeout)
	if err != nil {
		return weather.Coordinate{}, fmt.Errorf("failed to get geolocation data from API: %w", err)
	}
	if code != 200 {
		return weather.Coordinate{}, fmt.Errorf("geolocation API returned non-positive response code: %d", code)
	}
	// The API answers with 0,0 for addresses it cannot resolve
	if result.CountryCode == "" && result.Latitude == 0 && result.Longitude == 0 {
		return weather.Coordinate{}, fmt.Errorf("%w for IP %s", ErrNoCoordinates, result.IP)
	}

	return truncated(result.Latitude, result.Longitude), nil
}
