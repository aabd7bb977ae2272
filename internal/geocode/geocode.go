// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"

	"github.com/wneessen/owm-weather/internal/weather"
)

// Place is the result of a forward or reverse geocoding lookup.
type Place struct {
	Found       bool
	CacheHit    bool
	Coordinate  weather.Coordinate
	DisplayName string
	City        string
	State       string
	Country     string
}

// Geocoder turns city names into coordinates and vice versa. A lookup without a result
// is not an error, it returns a Place with Found set to false.
type Geocoder interface {
	Name() string
	Search(ctx context.Context, query string) (Place, error)
	Reverse(ctx context.Context, coords weather.Coordinate) (Place, error)
}

// Label returns a short human readable name of the place.
func (p Place) Label() string {
	switch {
	case p.City != "" && p.Country != "":
		return p.City + ", " + p.Country
	case p.City != "":
		return p.City
	case p.DisplayName != "":
		return p.DisplayName
	default:
		return p.Coordinate.String()
	}
}
