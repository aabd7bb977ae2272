// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stratoberry/go-gpsd"

	"github.com/wneessen/owm-weather/internal/weather"
)

const (
	DefaultGPSDAddr = "localhost:2947"
	FixTimeout      = time.Second * 10
)

// GPSDSource waits for the first TPV report with at least a 2D fix from a gpsd daemon.
type GPSDSource struct {
	addr     string
	timeout  time.Duration
	locateFn func(ctx context.Context) (weather.Coordinate, error)
}

func NewGPSDSource(addr string) *GPSDSource {
	if addr == "" {
		addr = DefaultGPSDAddr
	}
	source := &GPSDSource{addr: addr, timeout: FixTimeout}
	source.locateFn = source.watch
	return source
}

func (g *GPSDSource) Name() string {
	return "gpsd"
}

func (g *GPSDSource) Locate(ctx context.Context) (weather.Coordinate, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.locateFn(ctx)
}

func (g *GPSDSource) watch(ctx context.Context) (weather.Coordinate, error) {
	session, err := gpsd.Dial(g.addr)
	if err != nil {
		return weather.Coordinate{}, fmt.Errorf("failed to connect to gpsd at %q: %w", g.addr, err)
	}

	fixes := make(chan weather.Coordinate, 1)
	session.AddFilter("TPV", func(r interface{}) {
		coord, ok := fixFromReport(r)
		if !ok {
			return
		}
		select {
		case fixes <- coord:
		default:
		}
	})

	// go-gpsd has no Close(), the watch ends with the connection.
	done := session.Watch()
	select {
	case coord := <-fixes:
		return coord, nil
	case <-done:
		return weather.Coordinate{}, fmt.Errorf("%w: gpsd connection closed before a fix was received",
			ErrNoCoordinates)
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return weather.Coordinate{}, fmt.Errorf("%w: no gpsd fix within %s", ErrNoCoordinates, g.timeout)
		}
		return weather.Coordinate{}, ctx.Err()
	}
}

// fixFromReport returns the position of a TPV report with at least a 2D fix.
func fixFromReport(r interface{}) (weather.Coordinate, bool) {
	tpv, ok := r.(*gpsd.TPVReport)
	if !ok || tpv.Mode < gpsd.Mode2D {
		return weather.Coordinate{}, false
	}
	coord := truncated(tpv.Lat, tpv.Lon)
	return coord, coord.Valid()
}
