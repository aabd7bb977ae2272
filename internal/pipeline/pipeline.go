// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package pipeline turns weather queries into result sequences. Each sequence emits
// exactly one Loading value followed by exactly one Success or Failure and is then
// closed.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wneessen/owm-weather/internal/logger"
	"github.com/wneessen/owm-weather/internal/result"
	"github.com/wneessen/owm-weather/internal/weather"
)

// User facing failure messages.
const (
	MsgConnectivity       = "Couldn't reach server. Check your internet connection"
	MsgUnexpected         = "An unexpected error occurred"
	MsgNotFound           = "Weather data for the given date not found"
	MsgEmptyInput         = "Please enter a city name"
	MsgInvalidCoordinates = "Invalid coordinates"
)

type Pipeline struct {
	provider weather.Provider
	log      *logger.Logger
}

func New(provider weather.Provider, log *logger.Logger) (*Pipeline, error) {
	if provider == nil {
		return nil, errors.New("weather provider is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	return &Pipeline{provider: provider, log: log}, nil
}

// ByCity emits the daily forecast for the given city name.
func (p *Pipeline) ByCity(ctx context.Context, city string) <-chan result.Result[[]weather.Weather] {
	return p.Run(ctx, weather.CityQuery(city))
}

// ByCoordinates emits the current weather for the given coordinates as a single
// element list.
func (p *Pipeline) ByCoordinates(ctx context.Context, coords weather.Coordinate) <-chan result.Result[[]weather.Weather] {
	return p.Run(ctx, weather.CoordinatesQuery(coords))
}

// Run dispatches the query to the provider. Invalid queries fail without a network call.
func (p *Pipeline) Run(ctx context.Context, query weather.Query) <-chan result.Result[[]weather.Weather] {
	queryID := uuid.NewString()
	log := p.log.With(slog.String("query_id", queryID), slog.String("query", query.String()))

	return produce(ctx, log, func(ctx context.Context) ([]weather.Weather, error) {
		if err := query.Validate(); err != nil {
			return nil, err
		}
		log.Debug("requesting weather data", slog.String("provider", p.provider.Name()))
		if query.IsCity() {
			return p.provider.ForecastByCity(ctx, query.City())
		}
		current, err := p.provider.CurrentByCoordinates(ctx, query.Coordinates())
		if err != nil {
			return nil, err
		}
		return []weather.Weather{current}, nil
	})
}

// At emits the entry of the query result whose timestamp equals dt. It consumes the
// list result of Run and performs no additional request.
func (p *Pipeline) At(ctx context.Context, query weather.Query, dt int64) <-chan result.Result[weather.Weather] {
	list := p.Run(ctx, query)
	return produce(ctx, p.log, func(context.Context) (weather.Weather, error) {
		for res := range list {
			switch r := res.(type) {
			case result.Success[[]weather.Weather]:
				return Find(r.Data, dt)
			case result.Failure[[]weather.Weather]:
				return weather.Weather{}, r.Err
			}
		}
		return weather.Weather{}, errors.New("result sequence closed without terminal value")
	})
}

// Find searches list linearly for the first entry with the given timestamp.
func Find(list []weather.Weather, dt int64) (weather.Weather, error) {
	for _, entry := range list {
		if entry.Dt == dt {
			return entry, nil
		}
	}
	return weather.Weather{}, fmt.Errorf("%w: no entry for timestamp %d", weather.ErrNotFound, dt)
}

// Message returns the user facing message for err.
func Message(err error) string {
	switch weather.Classify(err) {
	case weather.KindConnectivity:
		return MsgConnectivity
	case weather.KindNotFound:
		return MsgNotFound
	case weather.KindEmptyInput:
		return MsgEmptyInput
	case weather.KindInvalidCoordinates:
		return MsgInvalidCoordinates
	default:
		return MsgUnexpected
	}
}

// Collect drains a result sequence.
func Collect[T any](ch <-chan result.Result[T]) []result.Result[T] {
	var list []result.Result[T]
	for res := range ch {
		list = append(list, res)
	}
	return list
}

// produce emits Loading, runs fn in its own goroutine and emits its outcome. The channel
// has room for both values, so the producer never blocks on an abandoned consumer.
func produce[T any](ctx context.Context, log *logger.Logger, fn func(context.Context) (T, error)) <-chan result.Result[T] {
	ch := make(chan result.Result[T], 2)
	ch <- result.Loading[T]{}

	go func() {
		defer close(ch)
		start := time.Now()
		data, err := fn(ctx)
		if err != nil {
			kind := weather.Classify(err)
			log.Error("weather query failed", logger.Err(err), slog.String("kind", kind.String()),
				slog.Bool("recoverable", kind.Recoverable()), slog.Duration("took", time.Since(start)))
			ch <- result.Failure[T]{Message: Message(err), Err: err}
			return
		}
		log.Debug("weather query succeeded", slog.Duration("took", time.Since(start)))
		ch <- result.Success[T]{Data: data}
	}()

	return ch
}
