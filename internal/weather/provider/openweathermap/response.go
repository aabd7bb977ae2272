// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openweathermap

import (
	"bytes"
	"fmt"
	"strconv"
)

// Condition is a single weather condition descriptor as returned by the API.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Coord is a coordinate pair in API notation.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CurrentResponse is the response of the current weather endpoint.
type CurrentResponse struct {
	Coord      Coord       `json:"coord"`
	Weather    []Condition `json:"weather"`
	Base       string      `json:"base"`
	Main       MainBlock   `json:"main"`
	Visibility int         `json:"visibility"`
	Wind       Wind        `json:"wind"`
	Clouds     Clouds      `json:"clouds"`
	Dt         int64       `json:"dt"`
	Timezone   int         `json:"timezone"`
	ID         int         `json:"id"`
	Name       string      `json:"name"`
	Cod        statusCode  `json:"cod"`
	Message    string      `json:"message"`
}

// MainBlock holds the temperature and atmosphere values of a current weather response.
type MainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type Wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
	Gust  float64 `json:"gust"`
}

type Clouds struct {
	All int `json:"all"`
}

// ForecastResponse is the response of the daily forecast endpoint.
type ForecastResponse struct {
	City    City         `json:"city"`
	Cod     statusCode   `json:"cod"`
	Message any          `json:"message"`
	Cnt     int          `json:"cnt"`
	List    []DailyEntry `json:"list"`
}

type City struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Coord      Coord  `json:"coord"`
	Country    string `json:"country"`
	Population int    `json:"population"`
	Timezone   int    `json:"timezone"`
}

// DailyEntry is one day of the daily forecast.
type DailyEntry struct {
	Dt        int64       `json:"dt"`
	Sunrise   int64       `json:"sunrise"`
	Sunset    int64       `json:"sunset"`
	Temp      DailyTemp   `json:"temp"`
	FeelsLike FeelsLike   `json:"feels_like"`
	Pressure  int         `json:"pressure"`
	Humidity  int         `json:"humidity"`
	Weather   []Condition `json:"weather"`
	Speed     float64     `json:"speed"`
	Deg       int         `json:"deg"`
	Gust      float64     `json:"gust"`
	Clouds    int         `json:"clouds"`
	Pop       float64     `json:"pop"`
	Rain      *float64    `json:"rain,omitempty"`
}

type DailyTemp struct {
	Day   float64 `json:"day"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

type FeelsLike struct {
	Day   float64 `json:"day"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

// statusCode is the "cod" field, which the API sends as a number on success and as a
// string on errors.
type statusCode int

func (s *statusCode) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	code, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("invalid status code %q: %w", string(b), err)
	}
	*s = statusCode(code)
	return nil
}

// errorMessage returns the API error message of a forecast response, which is a string
// on errors and a number on success.
func (f ForecastResponse) errorMessage() string {
	if msg, ok := f.Message.(string); ok {
		return msg
	}
	return ""
}
