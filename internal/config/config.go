// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/kkyr/fig"
)

const (
	configEnv       = "OWMWEATHER"
	appName         = "owm-weather"
	maxForecastDays = 16

	DefaultListTpl = `{{- if eq .State "loading"}}{{loc "Loading..."}}
{{- else if eq .State "error"}}{{loc .Message}}
{{- else}}{{loc "Weather data for"}} {{.Query}}
{{range .Entries}}{{template "item" .}}
{{end}}{{end}}`
	DefaultListItemTpl = `{{pad (localizedDate .Time) 12}}{{icon .}} {{pad (temp .Day) 7}}/{{pad (temp .Night) 7}} ` +
		`{{.Description}}`
	DefaultDetailTpl = `{{- if eq .State "loading"}}{{loc "Loading..."}}
{{- else if eq .State "error"}}{{loc .Message}}
{{- else}}{{icon .Entry}} {{.Entry.Title}} ({{.Entry.Description}})
{{pad (loc "Temperature") 18}}{{temp .Entry.CurrentTemp}}°C
{{pad (loc "Feels like") 18}}{{temp .Entry.FeelsLike}}°C
{{pad (loc "Day") 18}}{{temp .Entry.Day}}°C
{{pad (loc "Night") 18}}{{temp .Entry.Night}}°C
{{pad (loc "Humidity") 18}}{{.Entry.Humidity}}%
{{pad (loc "Pressure") 18}}{{.Entry.Pressure}} hPa
{{pad (loc "Sunrise") 18}}{{localizedTime .Sunrise}}
{{pad (loc "Sunset") 18}}{{localizedTime .Sunset}}
{{pad (loc "Moonphase") 18}}{{.MoonPhaseIcon}} {{loc .MoonPhase}}
{{pad (loc "Location") 18}}{{printf "%.4f, %.4f" .Entry.Lat .Entry.Lon}}
{{iconURL .Entry.Icon}}{{end}}`
)

var (
	providers          = []string{"openweathermap", "open-meteo"}
	preferenceBackends = []string{"file", "redis", "memory"}
	locationSources    = []string{"file", "geoip", "gpsd"}
)

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Weather struct {
		// Allowed values: openweathermap, open-meteo
		Provider string `fig:"provider" default:"openweathermap"`
		APIKey   string `fig:"apikey"`
		BaseURL  string `fig:"base_url" default:"https://api.openweathermap.org"`
		// Allowed values: 1 to 16. Zero is replaced by the default on load.
		ForecastDays uint   `fig:"forecast_days" default:"16"`
		IconHost     string `fig:"icon_host" default:"openweathermap.org"`
	} `fig:"weather"`

	Preferences struct {
		// Allowed values: file, redis, memory
		Backend     string `fig:"backend" default:"file"`
		File        string `fig:"file"`
		DefaultCity string `fig:"default_city" default:"Atlanta,USA"`
		Redis       struct {
			Addr     string `fig:"addr" default:"localhost:6379"`
			Password string `fig:"password"`
			DB       int    `fig:"db" default:"0"`
			Prefix   string `fig:"prefix" default:"owm-weather:"`
		} `fig:"redis"`
	} `fig:"preferences"`

	Location struct {
		// Allowed values: file, geoip, gpsd
		Source   string `fig:"source" default:"geoip"`
		File     string `fig:"file"`
		GPSDAddr string `fig:"gpsd_addr" default:"localhost:2947"`
	} `fig:"location"`

	Geocoder struct {
		CacheTTL time.Duration `fig:"cache_ttl" default:"24h"`
	} `fig:"geocoder"`

	Intervals struct {
		Refresh time.Duration `fig:"refresh" default:"15m"`
	} `fig:"intervals"`

	Templates struct {
		List     string `fig:"list"`
		ListItem string `fig:"list_item"`
		Detail   string `fig:"detail"`
	} `fig:"templates"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// Dir returns the directory that holds the configuration and state files.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

func (c *Config) Validate() error {
	if !slices.Contains(providers, c.Weather.Provider) {
		return fmt.Errorf("invalid weather provider: %s", c.Weather.Provider)
	}
	if c.Weather.Provider == "openweathermap" && c.Weather.APIKey == "" {
		return fmt.Errorf("an API key is required for the %s provider", c.Weather.Provider)
	}
	if c.Weather.ForecastDays < 1 || c.Weather.ForecastDays > maxForecastDays {
		return fmt.Errorf("invalid forecast days: %d", c.Weather.ForecastDays)
	}
	if !slices.Contains(preferenceBackends, c.Preferences.Backend) {
		return fmt.Errorf("invalid preferences backend: %s", c.Preferences.Backend)
	}
	if !slices.Contains(locationSources, c.Location.Source) {
		return fmt.Errorf("invalid location source: %s", c.Location.Source)
	}
	if c.Intervals.Refresh < time.Minute {
		return fmt.Errorf("refresh interval must be at least one minute, got %s", c.Intervals.Refresh)
	}
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if c.Templates.List == "" {
		c.Templates.List = DefaultListTpl
	}
	if c.Templates.ListItem == "" {
		c.Templates.ListItem = DefaultListItemTpl
	}
	if c.Templates.Detail == "" {
		c.Templates.Detail = DefaultDetailTpl
	}
	if c.Preferences.File == "" {
		c.Preferences.File = filepath.Join(Dir(), "preferences.yaml")
	}
	if c.Location.File == "" {
		c.Location.File = filepath.Join(Dir(), "geolocation")
	}

	return nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
