// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/wneessen/owm-weather/internal/weather"
)

// coordPrecision is the precision used to quantize coordinates (0.01 degrees ≈ 1.1 km)
const coordPrecision = 1e-2

type cacheKey struct {
	Provider string
	Query    string
	LatQ     int32
	LonQ     int32
}

type cacheEntry struct {
	Place  Place
	Expiry time.Time
}

type CachedGeocoder struct {
	coder   Geocoder
	ttlHit  time.Duration
	ttlMiss time.Duration

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry
}

func NewCachedGeocoder(coder Geocoder, ttlHit, ttlMiss time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		coder:   coder,
		ttlHit:  ttlHit,
		ttlMiss: ttlMiss,
		cache:   make(map[cacheKey]cacheEntry),
	}
}

func (c *CachedGeocoder) Name() string {
	return "geocoder cache using " + c.coder.Name()
}

func (c *CachedGeocoder) Search(ctx context.Context, query string) (Place, error) {
	key := cacheKey{Provider: c.coder.Name(), Query: normalizeQuery(query)}
	return c.lookup(key, func() (Place, error) {
		return c.coder.Search(ctx, query)
	})
}

func (c *CachedGeocoder) Reverse(ctx context.Context, coords weather.Coordinate) (Place, error) {
	key := cacheKey{
		Provider: c.coder.Name(),
		LatQ:     quantizeCoord(coords.Lat),
		LonQ:     quantizeCoord(coords.Lon),
	}
	return c.lookup(key, func() (Place, error) {
		return c.coder.Reverse(ctx, coords)
	})
}

func (c *CachedGeocoder) lookup(key cacheKey, fetch func() (Place, error)) (Place, error) {
	c.mu.RLock()
	entry, ok := c.cache[key]
	if ok && time.Now().Before(entry.Expiry) {
		place := entry.Place
		c.mu.RUnlock()
		place.CacheHit = true
		return place, nil
	}
	c.mu.RUnlock()

	place, err := fetch()
	if err != nil {
		return place, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ttl := c.ttlHit
	if !place.Found {
		ttl = c.ttlMiss
	}
	c.cache[key] = cacheEntry{
		Place:  place,
		Expiry: time.Now().Add(ttl),
	}

	return place, nil
}

// normalizeQuery lowercases the query and collapses whitespace, so "New  York" and
// "new york" share a cache entry.
func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

func quantizeCoord(val float64) int32 {
	return int32(math.Round(val / coordPrecision))
}
