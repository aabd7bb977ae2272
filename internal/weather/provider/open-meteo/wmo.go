// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

// condition is an OpenWeatherMap style description of a WMO weather code. The icon is
// completed with a "d" or "n" suffix for day or night.
type condition struct {
	Main        string
	Description string
	Icon        string
}

// wmoConditions maps WMO weather codes to OpenWeatherMap condition groups and icons.
var wmoConditions = map[int]condition{
	0:  {"Clear", "clear sky", "01"},
	1:  {"Clouds", "mainly clear", "02"},
	2:  {"Clouds", "partly cloudy", "03"},
	3:  {"Clouds", "overcast clouds", "04"},
	45: {"Fog", "fog", "50"},
	48: {"Fog", "depositing rime fog", "50"},
	51: {"Drizzle", "light drizzle", "09"},
	53: {"Drizzle", "moderate drizzle", "09"},
	55: {"Drizzle", "dense drizzle", "09"},
	56: {"Drizzle", "light freezing drizzle", "09"},
	57: {"Drizzle", "dense freezing drizzle", "09"},
	61: {"Rain", "light rain", "10"},
	63: {"Rain", "moderate rain", "10"},
	65: {"Rain", "heavy intensity rain", "10"},
	66: {"Rain", "light freezing rain", "13"},
	67: {"Rain", "heavy freezing rain", "13"},
	71: {"Snow", "light snow", "13"},
	73: {"Snow", "snow", "13"},
	75: {"Snow", "heavy snow", "13"},
	77: {"Snow", "snow grains", "13"},
	80: {"Rain", "light shower rain", "09"},
	81: {"Rain", "shower rain", "09"},
	82: {"Rain", "violent shower rain", "09"},
	85: {"Snow", "light shower snow", "13"},
	86: {"Snow", "heavy shower snow", "13"},
	95: {"Thunderstorm", "thunderstorm", "11"},
	96: {"Thunderstorm", "thunderstorm with slight hail", "11"},
	99: {"Thunderstorm", "thunderstorm with heavy hail", "11"},
}

// conditionFor returns the condition for the WMO code. Unknown codes result in empty
// strings.
func conditionFor(code int, isDay bool) condition {
	cond, ok := wmoConditions[code]
	if !ok {
		return condition{}
	}
	if isDay {
		cond.Icon += "d"
	} else {
		cond.Icon += "n"
	}
	return cond
}
