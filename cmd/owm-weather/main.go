// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build linux

// Package main implements the owm-weather command line client.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wneessen/owm-weather/internal/config"
	"github.com/wneessen/owm-weather/internal/i18n"
	"github.com/wneessen/owm-weather/internal/logger"
	"github.com/wneessen/owm-weather/internal/result"
	"github.com/wneessen/owm-weather/internal/service"
	"github.com/wneessen/owm-weather/internal/weather"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	confPath := flag.String("config", "", "path to the config file")
	city := flag.String("city", "", "show the daily forecast for the given city")
	lat := flag.Float64("lat", 0, "latitude for the current weather (requires -lon)")
	lon := flag.Float64("lon", 0, "longitude for the current weather (requires -lat)")
	here := flag.Bool("here", false, "show the current weather at the position of the location source")
	dt := flag.Int64("dt", 0, "show the details of the entry with the given UNIX timestamp")
	jsonOutput := flag.Bool("json", false, "print every state change as JSON document")
	watch := flag.Bool("watch", false, "keep running and refresh the weather data periodically")
	noSave := flag.Bool("no-save", false, "do not persist the searched city")
	flag.Parse()
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	loadDotEnv(log)

	conf, err := loadConfig(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}
	log = logger.New(conf.LogLevel)
	lang, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}

	serv, err := service.New(ctx, conf, log, lang, service.Options{JSON: *jsonOutput, NoSave: *noSave})
	if err != nil {
		log.Error("failed to initialize owm-weather service", logger.Err(err))
		os.Exit(1)
	}
	log.Debug("owm-weather initialized", slog.String("version", version), slog.String("commit", commit),
		slog.String("date", date), slog.String("provider", conf.Weather.Provider))

	var query weather.Query
	switch {
	case *here:
		coords, err := serv.Locate(ctx)
		if err != nil {
			log.Error("failed to determine current position", logger.Err(err))
			os.Exit(1)
		}
		query = weather.CoordinatesQuery(coords)
	case setFlags["lat"] || setFlags["lon"]:
		if !setFlags["lat"] || !setFlags["lon"] {
			log.Error("both -lat and -lon are required")
			os.Exit(2)
		}
		query = weather.CoordinatesQuery(weather.Coordinate{Lat: *lat, Lon: *lon})
	case setFlags["city"]:
		query = weather.CityQuery(*city)
	default:
		query = weather.CityQuery(serv.LastCity(ctx))
	}

	failed := false
	switch {
	case setFlags["dt"]:
		<-serv.ShowDetail(ctx, query, *dt)
		failed = isFailure(serv.Detail.State())
	case setFlags["city"]:
		<-serv.SearchCity(ctx, *city)
		failed = isFailure(serv.List.State())
	case query.IsCity():
		<-serv.LoadLastCity(ctx)
		failed = isFailure(serv.List.State())
	default:
		<-serv.SearchCoordinates(ctx, query.Coordinates())
		failed = isFailure(serv.List.State())
	}

	if !*watch {
		if failed {
			os.Exit(1)
		}
		return
	}

	sigChan := make(chan os.Signal, 1)
	serv.SignalSrc.Notify(sigChan, syscall.SIGUSR1, syscall.SIGUSR2)
	defer serv.SignalSrc.Stop(sigChan)
	go serv.HandleSignals(ctx, sigChan)

	log.Info("starting owm-weather watch mode", slog.Duration("interval", conf.Intervals.Refresh))
	if err = serv.Run(ctx); err != nil {
		log.Error("failed to run owm-weather watch mode", logger.Err(err))
	}
	log.Info("shutting down owm-weather")
}

// loadConfig reads the given config file, the first config file found in the config
// directory or the defaults, in that order.
func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return config.NewFromFile(path, file)
	}
	return config.New()
}

func findConfigFile() (string, string) {
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(config.Dir(), "config."+ext)
		if _, err := os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}

// loadDotEnv loads .env files from the working directory and the config directory.
// Variables that are already set take precedence.
func loadDotEnv(log *logger.Logger) {
	for _, file := range []string{".env", filepath.Join(config.Dir(), ".env")} {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Error("failed to load env file", slog.String("file", file), logger.Err(err))
		}
	}
}

func isFailure[T any](res result.Result[T]) bool {
	return res != nil && res.State() == result.StateFailure
}
