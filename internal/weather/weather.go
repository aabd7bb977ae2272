// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Provider is implemented by each weather API backend.
type Provider interface {
	Name() string
	ForecastByCity(ctx context.Context, city string) ([]Weather, error)
	CurrentByCoordinates(ctx context.Context, coords Coordinate) (Weather, error)
}

// Weather is the display model every provider response is mapped into. All fields are
// always set; missing provider data results in zero values.
type Weather struct {
	Dt          int64   `json:"dt"`
	Day         float64 `json:"day"`
	Night       float64 `json:"night"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	CurrentTemp float64 `json:"current_temp"`
	FeelsLike   float64 `json:"feels_like"`
	Pressure    int     `json:"pressure"`
	Humidity    int     `json:"humidity"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Time returns the timestamp of the entry.
func (w Weather) Time() time.Time {
	return time.Unix(w.Dt, 0)
}

// Coordinate represents a geographic coordinate.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Valid checks if the coordinate is valid according to the EPSG logic
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

// Query is a single user initiated request, either for a city name or for a coordinate pair.
type Query struct {
	city   string
	coords Coordinate
	byCity bool
}

// CityQuery returns a Query for the given free-text city name.
func CityQuery(city string) Query {
	return Query{city: city, byCity: true}
}

// CoordinatesQuery returns a Query for the given coordinates.
func CoordinatesQuery(coords Coordinate) Query {
	return Query{coords: coords}
}

// IsCity reports whether the query is keyed by city name.
func (q Query) IsCity() bool {
	return q.byCity
}

// City returns the trimmed city name of the query.
func (q Query) City() string {
	return strings.TrimSpace(q.city)
}

// Coordinates returns the coordinates of the query.
func (q Query) Coordinates() Coordinate {
	return q.coords
}

// Validate checks the query before anything is sent over the wire.
func (q Query) Validate() error {
	if q.byCity {
		if q.City() == "" {
			return ErrEmptyInput
		}
		return nil
	}
	if !q.coords.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidCoordinates, q.coords)
	}
	return nil
}

func (q Query) String() string {
	if q.byCity {
		return q.City()
	}
	return q.coords.String()
}
