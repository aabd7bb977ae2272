// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package nominatim

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/owm-weather/internal/geocode"
	"github.com/wneessen/owm-weather/internal/http"
	"github.com/wneessen/owm-weather/internal/weather"
)

const (
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	APITimeout     = time.Second * 10
	name           = "osm-nominatim"
)

type Nominatim struct {
	http    *http.Client
	lang    language.Tag
	baseURL string
}

type result struct {
	APILat      string  `json:"lat"`
	APILon      string  `json:"lon"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
	Error       string  `json:"error"`
}

type Address struct {
	Suburb       string `json:"suburb"`
	Municipality string `json:"municipality"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	State        string `json:"state"`
	Postcode     string `json:"postcode"`
	Country      string `json:"country"`
	CountryCode  string `json:"country_code"`
}

func New(client *http.Client, lang language.Tag) *Nominatim {
	return &Nominatim{
		lang:    lang,
		http:    client,
		baseURL: DefaultBaseURL,
	}
}

func (n *Nominatim) Name() string {
	return name
}

// Search looks up the coordinates of a free-text address like "London,GB".
func (n *Nominatim) Search(ctx context.Context, address string) (geocode.Place, error) {
	var results []result

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("addressdetails", "1")
	query.Set("limit", "1")
	query.Set("q", address)
	query.Set("accept-language", n.lang.String())

	code, err := n.http.GetWithTimeout(ctx, n.baseURL+"/search", &results, query, nil, APITimeout)
	if err != nil {
		return geocode.Place{}, fmt.Errorf("failed to fetch address details from Nominatim API: %w", err)
	}
	if code != 200 {
		return geocode.Place{}, fmt.Errorf("Nominatim API returned non-positive response code: %d", code)
	}
	if len(results) < 1 {
		return geocode.Place{}, nil
	}

	return results[0].place()
}

// Reverse looks up the address for the given coordinates.
func (n *Nominatim) Reverse(ctx context.Context, coords weather.Coordinate) (geocode.Place, error) {
	var res result

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	query.Set("accept-language", n.lang.String())

	code, err := n.http.GetWithTimeout(ctx, n.baseURL+"/reverse", &res, query, nil, APITimeout)
	if err != nil {
		return geocode.Place{}, fmt.Errorf("failed to fetch reverse address details from Nominatim API: %w", err)
	}
	if code != 200 {
		return geocode.Place{}, fmt.Errorf("Nominatim API returned non-positive response code: %d", code)
	}
	// Nominatim answers with {"error":"Unable to geocode"} for places in the middle of nowhere
	if res.Error != "" {
		return geocode.Place{Coordinate: coords}, nil
	}

	return res.place()
}

func (r result) place() (geocode.Place, error) {
	var err error
	place := geocode.Place{
		Found:       true,
		DisplayName: r.DisplayName,
		City:        firstNonEmpty(r.Address.City, r.Address.Town, r.Address.Village, r.Address.Municipality),
		State:       r.Address.State,
		Country:     r.Address.Country,
	}
	place.Coordinate.Lat, err = strconv.ParseFloat(r.APILat, 64)
	if err != nil {
		return geocode.Place{}, fmt.Errorf("failed to parse latitude from Nominatim API response: %w", err)
	}
	place.Coordinate.Lon, err = strconv.ParseFloat(r.APILon, 64)
	if err != nil {
		return geocode.Place{}, fmt.Errorf("failed to parse longitude from Nominatim API response: %w", err)
	}

	return place, nil
}

func firstNonEmpty(vals ...string) string {
	for _, val := range vals {
		if strings.TrimSpace(val) != "" {
			return val
		}
	}
	return ""
}
