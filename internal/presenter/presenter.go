// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/owm-weather/internal/config"
	"github.com/wneessen/owm-weather/internal/i18n"
	"github.com/wneessen/owm-weather/internal/result"
	"github.com/wneessen/owm-weather/internal/weather"
)

// ListView is the template context of the list screen.
type ListView struct {
	State   result.State
	Message string
	Query   string
	Entries []weather.Weather
}

// DetailView is the template context of the detail screen.
type DetailView struct {
	State         result.State
	Message       string
	Entry         weather.Weather
	Sunrise       time.Time
	Sunset        time.Time
	MoonPhase     string
	MoonPhaseIcon string
}

type jsonView struct {
	State   result.State `json:"state"`
	Data    any          `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
}

type Presenter struct {
	ListTemplate   *template.Template
	DetailTemplate *template.Template

	iconHost  string
	localizer *i18n.Localizer
}

// New parses the list and detail templates of the config. The templates are rendered
// once with sample data so that broken templates are reported at startup.
func New(conf *config.Config, localizer *i18n.Localizer) (*Presenter, error) {
	if conf == nil {
		return nil, errors.New("config is required")
	}
	if localizer == nil {
		return nil, errors.New("localizer is required")
	}
	p := &Presenter{iconHost: conf.Weather.IconHost, localizer: localizer}

	var err error
	p.ListTemplate, err = template.New("list").Funcs(p.templateFuncMap()).Parse(conf.Templates.List)
	if err != nil {
		return nil, fmt.Errorf("failed to parse list template: %w", err)
	}
	if _, err = p.ListTemplate.New("item").Parse(conf.Templates.ListItem); err != nil {
		return nil, fmt.Errorf("failed to parse list item template: %w", err)
	}
	p.DetailTemplate, err = template.New("detail").Funcs(p.templateFuncMap()).Parse(conf.Templates.Detail)
	if err != nil {
		return nil, fmt.Errorf("failed to parse detail template: %w", err)
	}

	sample := weather.Weather{Dt: time.Now().Unix(), Title: "Clear", Description: "clear sky", Icon: "01d"}
	if _, err = p.RenderList("", result.Success[[]weather.Weather]{Data: []weather.Weather{sample}}); err != nil {
		return nil, fmt.Errorf("failed to render list template: %w", err)
	}
	if _, err = p.RenderDetail(result.Success[weather.Weather]{Data: sample}); err != nil {
		return nil, fmt.Errorf("failed to render detail template: %w", err)
	}

	return p, nil
}

func (p *Presenter) BuildList(query string, res result.Result[[]weather.Weather]) ListView {
	view := ListView{Query: query}
	if res == nil {
		return view
	}
	view.State = res.State()
	view.Message = result.Message(res)
	view.Entries, _ = result.Data(res)
	return view
}

// BuildDetail fills the detail context. Sunrise, sunset and moon phase are calculated
// for the date and location of the entry.
func (p *Presenter) BuildDetail(res result.Result[weather.Weather]) DetailView {
	var view DetailView
	if res == nil {
		return view
	}
	view.State = res.State()
	view.Message = result.Message(res)

	entry, ok := result.Data(res)
	if !ok {
		return view
	}
	view.Entry = entry
	at := entry.Time().UTC()
	view.Sunrise, view.Sunset = sunrise.SunriseSunset(entry.Lat, entry.Lon, at.Year(), at.Month(), at.Day())
	if phase, ok := moonPhases[moonphase.New(at).PhaseName()]; ok {
		view.MoonPhase, view.MoonPhaseIcon = phase.Name, phase.Icon
	}
	return view
}

// RenderList renders the list screen. An idle screen renders as an empty string.
func (p *Presenter) RenderList(query string, res result.Result[[]weather.Weather]) (string, error) {
	if res == nil {
		return "", nil
	}
	return render(p.ListTemplate, p.BuildList(query, res))
}

// RenderDetail renders the detail screen. An idle screen renders as an empty string.
func (p *Presenter) RenderDetail(res result.Result[weather.Weather]) (string, error) {
	if res == nil {
		return "", nil
	}
	return render(p.DetailTemplate, p.BuildDetail(res))
}

// EncodeList writes the list state as a single JSON document.
func (p *Presenter) EncodeList(w io.Writer, res result.Result[[]weather.Weather]) error {
	return encode(w, p, res)
}

// EncodeDetail writes the detail state as a single JSON document.
func (p *Presenter) EncodeDetail(w io.Writer, res result.Result[weather.Weather]) error {
	return encode(w, p, res)
}

func encode[T any](w io.Writer, p *Presenter, res result.Result[T]) error {
	if res == nil {
		return nil
	}
	view := jsonView{State: res.State(), Message: p.loc(result.Message(res))}
	if data, ok := result.Data(res); ok {
		view.Data = data
	}
	if err := json.NewEncoder(w).Encode(view); err != nil {
		return fmt.Errorf("failed to encode %s state: %w", view.State, err)
	}
	return nil
}

func render(tpl *template.Template, data any) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := tpl.Execute(buf, data); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
