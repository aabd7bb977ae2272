// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/wneessen/owm-weather/internal/weather"
)

func (p *Presenter) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"timeFormat":    p.timeFormat,
		"localizedTime": p.localizedTime,
		"localizedDate": p.localizedDate,
		"temp":          p.temp,
		"loc":           p.loc,
		"lc":            strings.ToLower,
		"uc":            strings.ToUpper,
		"pad":           p.pad,
		"icon":          p.icon,
		"iconURL":       p.iconURL,
	}
}

func (p *Presenter) loc(val string) string {
	if val == "" {
		return val
	}
	return p.localizer.Get(val)
}

func (p *Presenter) localizedTime(val time.Time) string {
	return p.localizer.FormatTime(val)
}

func (p *Presenter) localizedDate(val time.Time) string {
	return p.localizer.FormatDate(val)
}

func (p *Presenter) timeFormat(val time.Time, fmt string) string {
	return val.Format(fmt)
}

func (p *Presenter) temp(val float64) string {
	return fmt.Sprintf("%.2f", val)
}

// pad fills val with spaces up to the given display width.
func (p *Presenter) pad(val string, width int) string {
	return runewidth.FillRight(val, width)
}

func (p *Presenter) icon(w weather.Weather) string {
	return conditionIcon(w.Icon)
}

func (p *Presenter) iconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return fmt.Sprintf("https://%s/img/wn/%s@2x.png", p.iconHost, icon)
}
