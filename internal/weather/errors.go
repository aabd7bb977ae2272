// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import "errors"

var (
	// ErrConnectivity indicates that the provider could not be reached.
	ErrConnectivity = errors.New("weather provider could not be reached")

	// ErrServer indicates that the provider answered with an error status or a body we
	// could not make sense of.
	ErrServer = errors.New("weather provider returned an error")

	// ErrNotFound is returned if no entry matches a timestamp lookup.
	ErrNotFound = errors.New("weather data not found")

	// ErrEmptyInput is returned for blank city names.
	ErrEmptyInput = errors.New("city name must not be empty")

	// ErrInvalidCoordinates is returned for coordinates outside of the EPSG:4326 range.
	ErrInvalidCoordinates = errors.New("coordinates out of range")
)

// Kind classifies an error into the small set of categories the user gets to see.
type Kind int

const (
	KindUnexpected Kind = iota
	KindConnectivity
	KindNotFound
	KindEmptyInput
	KindInvalidCoordinates
)

// Classify maps err to its Kind. Unknown errors, including ErrServer, are unexpected.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, ErrConnectivity):
		return KindConnectivity
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrEmptyInput):
		return KindEmptyInput
	case errors.Is(err, ErrInvalidCoordinates):
		return KindInvalidCoordinates
	default:
		return KindUnexpected
	}
}

// Recoverable reports whether a user initiated retry might succeed.
func (k Kind) Recoverable() bool {
	return k == KindConnectivity
}

func (k Kind) String() string {
	switch k {
	case KindConnectivity:
		return "connectivity"
	case KindNotFound:
		return "not_found"
	case KindEmptyInput:
		return "empty_input"
	case KindInvalidCoordinates:
		return "invalid_coordinates"
	default:
		return "unexpected"
	}
}
