// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/go-co-op/gocron/v2"

	"github.com/wneessen/owm-weather/internal/config"
	"github.com/wneessen/owm-weather/internal/geocode"
	"github.com/wneessen/owm-weather/internal/http"
	"github.com/wneessen/owm-weather/internal/i18n"
	"github.com/wneessen/owm-weather/internal/location"
	"github.com/wneessen/owm-weather/internal/logger"
	"github.com/wneessen/owm-weather/internal/pipeline"
	"github.com/wneessen/owm-weather/internal/preference"
	"github.com/wneessen/owm-weather/internal/presenter"
	"github.com/wneessen/owm-weather/internal/result"
	"github.com/wneessen/owm-weather/internal/weather"
)

const refreshJobName = "weather_refresh_job"

// Options control the output and persistence of a Service.
type Options struct {
	// Output receives the rendered screens. Defaults to os.Stdout.
	Output io.Writer
	// JSON switches the output to one JSON document per state change.
	JSON bool
	// NoSave keeps preferences in memory only.
	NoSave bool
}

type Service struct {
	config     *config.Config
	logger     *logger.Logger
	output     io.Writer
	jsonOutput bool
	pipeline   *pipeline.Pipeline
	presenter  *presenter.Presenter
	prefs      preference.Store
	locator    location.Source
	geocoder   geocode.Geocoder
	SignalSrc  signalSource

	sleepMonitor func(context.Context)

	List   *presenter.ListScreen
	Detail *presenter.DetailScreen

	outputLock sync.Mutex
	queryLock  sync.RWMutex
	query      weather.Query
	hasQuery   bool
	detailDt   int64
	isDetail   bool
}

// New wires the weather provider, location source and preference store selected in
// the config into a Service.
func New(ctx context.Context, conf *config.Config, log *logger.Logger, lang *i18n.Localizer, opts Options) (*Service, error) {
	if conf == nil {
		return nil, errors.New("config is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	client := http.New(log)
	geocoder := selectGeocoder(conf, client)

	provider, err := selectWeatherProvider(conf, log, client, geocoder)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather provider: %w", err)
	}
	locator, err := selectLocationSource(conf, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create location source: %w", err)
	}
	prefs, err := selectPreferenceStore(ctx, conf, opts.NoSave)
	if err != nil {
		return nil, fmt.Errorf("failed to create preference store: %w", err)
	}

	return newService(conf, log, lang, opts, provider, prefs, locator, geocoder)
}

func newService(conf *config.Config, log *logger.Logger, lang *i18n.Localizer, opts Options,
	provider weather.Provider, prefs preference.Store, locator location.Source, geocoder geocode.Geocoder,
) (*Service, error) {
	pipe, err := pipeline.New(provider, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}
	pres, err := presenter.New(conf, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	service := &Service{
		config:     conf,
		logger:     log,
		output:     output,
		jsonOutput: opts.JSON,
		pipeline:   pipe,
		presenter:  pres,
		prefs:      prefs,
		locator:    locator,
		geocoder:   geocoder,
		SignalSrc:  stdLibSignalSource{},
	}
	service.sleepMonitor = service.monitorSleepResume
	service.List = presenter.NewScreen(service.printList)
	service.Detail = presenter.NewScreen(service.printDetail)
	return service, nil
}

// SearchCity stores city as the last searched city and binds the list screen to its
// forecast. Blank input is not stored.
func (s *Service) SearchCity(ctx context.Context, city string) <-chan struct{} {
	if strings.TrimSpace(city) != "" {
		if err := preference.SaveLastCity(ctx, s.prefs, city); err != nil {
			s.logger.Error("failed to store last searched city", logger.Err(err))
		}
	}
	return s.search(ctx, weather.CityQuery(city))
}

// SearchCoordinates binds the list screen to the current weather at coords.
func (s *Service) SearchCoordinates(ctx context.Context, coords weather.Coordinate) <-chan struct{} {
	return s.search(ctx, weather.CoordinatesQuery(coords))
}

// SearchHere asks the configured location source for the current position. If the
// position resolves to a locality, that city is searched and stored like SearchCity
// does. Otherwise the position is searched by coordinates.
func (s *Service) SearchHere(ctx context.Context) (<-chan struct{}, error) {
	coords, err := s.Locate(ctx)
	if err != nil {
		return nil, err
	}
	if city := s.locality(ctx, coords); city != "" {
		return s.SearchCity(ctx, city), nil
	}
	return s.SearchCoordinates(ctx, coords), nil
}

// locality returns the city name at coords or an empty string if there is none.
func (s *Service) locality(ctx context.Context, coords weather.Coordinate) string {
	if s.geocoder == nil {
		return ""
	}
	place, err := s.geocoder.Reverse(ctx, coords)
	if err != nil {
		s.logger.Warn("failed to resolve locality of current position", logger.Err(err),
			slog.String("coordinates", coords.String()))
		return ""
	}
	if !place.Found {
		return ""
	}
	s.logger.Debug("current position resolved", slog.String("city", place.City),
		slog.Bool("cache_hit", place.CacheHit))
	return strings.TrimSpace(place.City)
}

// Locate returns the current position of the configured location source.
func (s *Service) Locate(ctx context.Context) (weather.Coordinate, error) {
	coords, err := s.locator.Locate(ctx)
	if err != nil {
		return coords, fmt.Errorf("failed to locate current position via %s: %w", s.locator.Name(), err)
	}
	s.logger.Debug("current position located", slog.String("source", s.locator.Name()),
		slog.String("coordinates", coords.String()))
	return coords, nil
}

// LoadLastCity searches the last stored city or the configured default city.
func (s *Service) LoadLastCity(ctx context.Context) <-chan struct{} {
	return s.search(ctx, weather.CityQuery(s.LastCity(ctx)))
}

// LastCity returns the last stored city or the configured default city.
func (s *Service) LastCity(ctx context.Context) string {
	city, err := preference.LastCity(ctx, s.prefs, s.config.Preferences.DefaultCity)
	if err != nil {
		s.logger.Error("failed to load last searched city", logger.Err(err))
	}
	return city
}

// ShowDetail binds the detail screen to the entry of query with the timestamp dt.
func (s *Service) ShowDetail(ctx context.Context, query weather.Query, dt int64) <-chan struct{} {
	s.queryLock.Lock()
	s.query, s.hasQuery = query, true
	s.detailDt, s.isDetail = dt, true
	s.queryLock.Unlock()

	label := fmt.Sprintf("%s@%d", query, dt)
	return s.Detail.BindLabel(label, s.pipeline.At(ctx, query, dt))
}

// Run refreshes the last query in the configured interval until ctx is cancelled. The
// last query is refreshed as well after the system resumed from sleep or on SIGUSR1.
func (s *Service) Run(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(s.config.Intervals.Refresh),
		gocron.NewTask(s.refresh),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(refreshJobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", refreshJobName, err)
	}
	scheduler.Start()

	go s.sleepMonitor(ctx)

	<-ctx.Done()
	return scheduler.Shutdown()
}

// Query returns the last searched query.
func (s *Service) Query() (weather.Query, bool) {
	s.queryLock.RLock()
	defer s.queryLock.RUnlock()
	return s.query, s.hasQuery
}

func (s *Service) search(ctx context.Context, query weather.Query) <-chan struct{} {
	s.queryLock.Lock()
	s.query, s.hasQuery = query, true
	s.isDetail = false
	s.queryLock.Unlock()

	return s.List.BindLabel(query.String(), s.pipeline.Run(ctx, query))
}

// refresh repeats the last list or detail query without storing it again.
func (s *Service) refresh(ctx context.Context) {
	s.queryLock.RLock()
	query, ok, dt, isDetail := s.query, s.hasQuery, s.detailDt, s.isDetail
	s.queryLock.RUnlock()
	if !ok {
		s.logger.Debug("no query to refresh yet")
		return
	}

	s.logger.Debug("refreshing weather data", slog.String("query", query.String()),
		slog.Bool("detail", isDetail))
	if isDetail {
		<-s.ShowDetail(ctx, query, dt)
		return
	}
	<-s.search(ctx, query)
}

func (s *Service) printList(label string, res result.Result[[]weather.Weather]) {
	s.outputLock.Lock()
	defer s.outputLock.Unlock()

	if s.jsonOutput {
		if err := s.presenter.EncodeList(s.output, res); err != nil {
			s.logger.Error("failed to encode weather list", logger.Err(err))
		}
		return
	}
	out, err := s.presenter.RenderList(label, res)
	if err != nil {
		s.logger.Error("failed to render weather list", logger.Err(err))
		return
	}
	s.write(out)
}

func (s *Service) printDetail(_ string, res result.Result[weather.Weather]) {
	s.outputLock.Lock()
	defer s.outputLock.Unlock()

	if s.jsonOutput {
		if err := s.presenter.EncodeDetail(s.output, res); err != nil {
			s.logger.Error("failed to encode weather detail", logger.Err(err))
		}
		return
	}
	out, err := s.presenter.RenderDetail(res)
	if err != nil {
		s.logger.Error("failed to render weather detail", logger.Err(err))
		return
	}
	s.write(out)
}

func (s *Service) write(out string) {
	if out == "" {
		return
	}
	if _, err := fmt.Fprintln(s.output, out); err != nil {
		s.logger.Error("failed to write output", logger.Err(err))
	}
}
