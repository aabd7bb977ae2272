// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package location provides sources for the current position of the user.
package location

import (
	"context"
	"errors"
	"math"

	"github.com/wneessen/owm-weather/internal/weather"
)

// TruncPrecision is the number of decimal places coordinates are truncated to. Four
// places are roughly 11 meters.
const TruncPrecision = 4

// ErrNoCoordinates is returned if a source could not determine a position.
var ErrNoCoordinates = errors.New("no valid coordinates found")

// Source looks up the current position.
type Source interface {
	Name() string
	Locate(ctx context.Context) (weather.Coordinate, error)
}

// Truncate truncates val to the given number of decimal places.
func Truncate(val float64, precision int) float64 {
	pow := math.Pow(10, float64(precision))
	return math.Trunc(val*pow) / pow
}

func truncated(lat, lon float64) weather.Coordinate {
	return weather.Coordinate{Lat: Truncate(lat, TruncPrecision), Lon: Truncate(lon, TruncPrecision)}
}
