package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all settings, populated from environment variables.
type Config struct {
	TornadoDataURL      string
	BoundaryURLTemplate string // {year} and {level} placeholders
	BoundaryYear        int
	BoundaryCacheSize   int

	OutputPath   string
	RenderWidth  int
	RenderHeight int

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	FetchTimeout    time.Duration
	ShutdownTimeout time.Duration
}

const (
	defaultDataURL = "https://www.spc.noaa.gov/wcm/data/1950-2023_actual_tornadoes.csv"

	// Cartographic boundary GeoJSON, 20m resolution. {level} is "state" or
	// "county", {year} the vintage of the boundary files.
	defaultBoundaryTemplate = "https://www2.census.gov/geos/tiger/GENZ{year}/geojson/cb_{year}_us_{level}_20m.json"
)

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	boundaryYear, err := parseInt("BOUNDARY_YEAR", 2021)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parseInt("BOUNDARY_CACHE_SIZE", 8)
	if err != nil {
		return nil, err
	}
	width, err := parseInt("RENDER_WIDTH", 1600)
	if err != nil {
		return nil, err
	}
	height, err := parseInt("RENDER_HEIGHT", 1000)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		TornadoDataURL:      envOrDefault("TORNADO_DATA_URL", defaultDataURL),
		BoundaryURLTemplate: envOrDefault("CENSUS_BOUNDARY_URL", defaultBoundaryTemplate),
		BoundaryYear:        boundaryYear,
		BoundaryCacheSize:   cacheSize,
		OutputPath:          envOrDefault("OUTPUT_PATH", "tornado_map.png"),
		RenderWidth:         width,
		RenderHeight:        height,
		HTTPAddr:            envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:            envOrDefault("LOG_LEVEL", "info"),
		LogFormat:           envOrDefault("LOG_FORMAT", "json"),
		FetchTimeout:        fetchTimeout,
		ShutdownTimeout:     shutdownTimeout,
	}

	if cfg.TornadoDataURL == "" {
		return nil, errors.New("TORNADO_DATA_URL is required")
	}
	if !strings.Contains(cfg.BoundaryURLTemplate, "{level}") {
		return nil, errors.New("CENSUS_BOUNDARY_URL must contain a {level} placeholder")
	}
	if cfg.BoundaryYear < 1990 {
		return nil, errors.New("BOUNDARY_YEAR is before the first cartographic boundary vintage")
	}
	if cfg.BoundaryCacheSize <= 0 {
		return nil, errors.New("BOUNDARY_CACHE_SIZE must be positive")
	}
	if cfg.RenderWidth <= 0 || cfg.RenderHeight <= 0 {
		return nil, errors.New("render dimensions must be positive")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
