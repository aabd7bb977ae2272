// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openweathermap

import (
	"github.com/wneessen/owm-weather/internal/weather"
)

// ToWeather maps a current weather response into a weather.Weather. The day value is
// the maximum and the night value is the minimum temperature.
func ToWeather(res CurrentResponse) weather.Weather {
	cond := firstCondition(res.Weather)
	return weather.Weather{
		Dt:          res.Dt,
		Day:         res.Main.TempMax,
		Night:       res.Main.TempMin,
		Title:       cond.Main,
		Description: cond.Description,
		Icon:        cond.Icon,
		CurrentTemp: res.Main.Temp,
		FeelsLike:   res.Main.FeelsLike,
		Pressure:    res.Main.Pressure,
		Humidity:    res.Main.Humidity,
		Lat:         res.Coord.Lat,
		Lon:         res.Coord.Lon,
	}
}

// ForecastToWeather maps every forecast entry in provider order.
func ForecastToWeather(res ForecastResponse) []weather.Weather {
	list := make([]weather.Weather, 0, len(res.List))
	for _, entry := range res.List {
		cond := firstCondition(entry.Weather)
		list = append(list, weather.Weather{
			Dt:          entry.Dt,
			Day:         entry.Temp.Max,
			Night:       entry.Temp.Min,
			Title:       cond.Main,
			Description: cond.Description,
			Icon:        cond.Icon,
			CurrentTemp: entry.Temp.Day,
			FeelsLike:   entry.FeelsLike.Day,
			Pressure:    entry.Pressure,
			Humidity:    entry.Humidity,
			Lat:         res.City.Coord.Lat,
			Lon:         res.City.Coord.Lon,
		})
	}
	return list
}

func firstCondition(conditions []Condition) Condition {
	if len(conditions) == 0 {
		return Condition{}
	}
	return conditions[0]
}
