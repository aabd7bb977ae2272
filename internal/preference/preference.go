// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package preference persists small user preferences like the last searched city.
package preference

import (
	"context"
	"fmt"
	"strings"
)

const (
	// KeyLastCity is the key under which the last searched city is stored.
	KeyLastCity = "last_city"

	// DefaultCity is returned if no city has been searched yet.
	DefaultCity = "Atlanta,USA"
)

// Store is a string key/value store. Writes are last-write-wins.
type Store interface {
	Get(ctx context.Context, key, def string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// LastCity returns the last searched city or def if none was stored.
func LastCity(ctx context.Context, store Store, def string) (string, error) {
	if def == "" {
		def = DefaultCity
	}
	city, err := store.Get(ctx, KeyLastCity, def)
	if err != nil {
		return def, fmt.Errorf("failed to read last city: %w", err)
	}
	if strings.TrimSpace(city) == "" {
		return def, nil
	}
	return city, nil
}

// SaveLastCity stores city as the last searched city.
func SaveLastCity(ctx context.Context, store Store, city string) error {
	if err := store.Set(ctx, KeyLastCity, city); err != nil {
		return fmt.Errorf("failed to save last city: %w", err)
	}
	return nil
}
