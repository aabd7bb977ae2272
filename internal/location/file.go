// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package location

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wneessen/owm-weather/internal/weather"
)

// FileSource reads the position from a file with a single "lat,lon" line. Lines starting
// with # are ignored.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Name() string {
	return "file"
}

func (f *FileSource) Locate(context.Context) (weather.Coordinate, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return weather.Coordinate{}, fmt.Errorf("failed to read geolocation file %q: %w", f.path, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		coords := strings.Split(line, ",")
		if len(coords) != 2 {
			continue
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
		if err != nil {
			continue
		}
		coord := weather.Coordinate{Lat: lat, Lon: lon}
		if !coord.Valid() {
			continue
		}
		return coord, nil
	}
	return weather.Coordinate{}, fmt.Errorf("%w in geolocation file %q", ErrNoCoordinates, f.path)
}
