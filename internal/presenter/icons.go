// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import "strings"

const unknownIcon = "❔"

type moonPhase struct {
	Name string
	Icon string
}

// moonPhases maps the go-moonphase phase names to a translatable name and an emoji.
var moonPhases = map[string]moonPhase{
	"New Moon":        {"New moon", "🌑"},
	"Waxing Crescent": {"Waxing crescent", "🌒"},
	"First Quarter":   {"First quarter", "🌓"},
	"Waxing Gibbous":  {"Waxing gibbous", "🌔"},
	"Full Moon":       {"Full moon", "🌕"},
	"Waning Gibbous":  {"Waning gibbous", "🌖"},
	"Third Quarter":   {"Third quarter", "🌗"},
	"Waning Crescent": {"Waning crescent", "🌘"},
}

// conditionIcons maps the OpenWeatherMap icon groups to an emoji for day (true) and
// night (false).
var conditionIcons = map[string]map[bool]string{
	"01": {true: "☀️", false: "🌙"},
	"02": {true: "🌤️", false: "☁️"},
	"03": {true: "⛅", false: "☁️"},
	"04": {true: "☁️", false: "☁️"},
	"09": {true: "🌧️", false: "🌧️"},
	"10": {true: "🌦️", false: "🌧️"},
	"11": {true: "⛈️", false: "⛈️"},
	"13": {true: "🌨️", false: "🌨️"},
	"50": {true: "🌫️", false: "🌫️"},
}

// conditionIcon returns the emoji for an icon code like "10d".
func conditionIcon(code string) string {
	if len(code) != 3 {
		return unknownIcon
	}
	icons, ok := conditionIcons[code[:2]]
	if !ok {
		return unknownIcon
	}
	return icons[!strings.HasSuffix(code, "n")]
}
