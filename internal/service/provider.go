// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/wneessen/owm-weather/internal/config"
	"github.com/wneessen/owm-weather/internal/geocode"
	nominatim "github.com/wneessen/owm-weather/internal/geocode/provider/osm-nominatim"
	"github.com/wneessen/owm-weather/internal/http"
	"github.com/wneessen/owm-weather/internal/location"
	"github.com/wneessen/owm-weather/internal/logger"
	"github.com/wneessen/owm-weather/internal/preference"
	"github.com/wneessen/owm-weather/internal/weather"
	openmeteo "github.com/wneessen/owm-weather/internal/weather/provider/open-meteo"
	"github.com/wneessen/owm-weather/internal/weather/provider/openweathermap"
)

func selectWeatherProvider(conf *config.Config, log *logger.Logger, client *http.Client, geocoder geocode.Geocoder,
) (weather.Provider, error) {
	days := int(conf.Weather.ForecastDays) //nolint:gosec
	switch strings.ToLower(conf.Weather.Provider) {
	case "openweathermap":
		provider, err := openweathermap.New(client, log, conf.Weather.APIKey, conf.Weather.BaseURL, days)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenWeatherMap weather provider: %w", err)
		}
		return provider, nil
	case "open-meteo":
		provider, err := openmeteo.New(geocoder, log, days)
		if err != nil {
			return nil, fmt.Errorf("failed to create Open-Meteo weather provider: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported weather provider: %s", conf.Weather.Provider)
	}
}

// selectGeocoder returns the cached Nominatim geocoder. Misses are kept for a tenth of
// the configured TTL.
func selectGeocoder(conf *config.Config, client *http.Client) geocode.Geocoder {
	lang := language.Make(conf.Locale)
	if lang == language.Und {
		lang = language.English
	}
	ttl := conf.Geocoder.CacheTTL
	return geocode.NewCachedGeocoder(nominatim.New(client, lang), ttl, ttl/10)
}

func selectLocationSource(conf *config.Config, client *http.Client) (location.Source, error) {
	switch strings.ToLower(conf.Location.Source) {
	case "file":
		return location.NewFileSource(conf.Location.File), nil
	case "geoip":
		source, err := location.NewGeoIPSource(client)
		if err != nil {
			return nil, fmt.Errorf("failed to create GeoIP location source: %w", err)
		}
		return source, nil
	case "gpsd":
		return location.NewGPSDSource(conf.Location.GPSDAddr), nil
	default:
		return nil, fmt.Errorf("unsupported location source: %s", conf.Location.Source)
	}
}

func selectPreferenceStore(ctx context.Context, conf *config.Config, noSave bool) (preference.Store, error) {
	if noSave {
		return preference.NewMemoryStore(), nil
	}
	switch strings.ToLower(conf.Preferences.Backend) {
	case "file":
		store, err := preference.NewFileStore(conf.Preferences.File)
		if err != nil {
			return nil, fmt.Errorf("failed to create file preference store: %w", err)
		}
		return store, nil
	case "redis":
		redisConf := conf.Preferences.Redis
		client, err := preference.NewRedisClient(ctx, redisConf.Addr, redisConf.Password, redisConf.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store, err := preference.NewRedisStore(client, redisConf.Prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis preference store: %w", err)
		}
		return store, nil
	case "memory":
		return preference.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported preference backend: %s", conf.Preferences.Backend)
	}
}
