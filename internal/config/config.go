// Package config defines the dashboard configuration and how it is loaded.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Garsondee/skill-constellation/internal/constellation"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// WindowWidth and WindowHeight size the OS window.
	WindowWidth  int `koanf:"window_width"`
	WindowHeight int `koanf:"window_height"`

	// CanvasWidth and CanvasHeight fix the star field surface. They are read
	// once at startup; resizing the window scales the surface instead.
	CanvasWidth  int `koanf:"canvas_width"`
	CanvasHeight int `koanf:"canvas_height"`

	// APIBaseURL is the skill tracker API, e.g. http://localhost:5000.
	APIBaseURL string `koanf:"api_base_url"`
	// UserID selects whose progress is shown.
	UserID string `koanf:"user_id"`

	RefreshInterval time.Duration `koanf:"refresh_interval"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`

	// DemoFallback shows demo progress when the API cannot be reached on startup.
	DemoFallback bool `koanf:"demo_fallback"`

	// MetricsAddr serves Prometheus /metrics when non-empty, e.g. ":9464".
	MetricsAddr string `koanf:"metrics_addr"`

	// Seed fixes star placement; 0 picks one from the clock.
	Seed int64 `koanf:"seed"`

	// Progress is a static skill mapping. When set the API is not polled.
	Progress map[string]float64 `koanf:"progress"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		WindowWidth:     1280,
		WindowHeight:    800,
		CanvasWidth:     1000,
		CanvasHeight:    800,
		APIBaseURL:      "http://localhost:5000",
		UserID:          "user123",
		RefreshInterval: 30 * time.Second,
		RequestTimeout:  5 * time.Second,
		DemoFallback:    true,
	}
}

// Static reports whether progress comes from the config instead of the API.
func (c *Config) Static() bool { return len(c.Progress) > 0 }

// Validate checks the values a running dashboard depends on.
func (c *Config) Validate() error {
	if float64(c.CanvasWidth) < constellation.MinCanvasSize || float64(c.CanvasHeight) < constellation.MinCanvasSize {
		return fmt.Errorf("%w: canvas must be at least %vx%v, got %dx%d", ErrInvalidConfig,
			constellation.MinCanvasSize, constellation.MinCanvasSize, c.CanvasWidth, c.CanvasHeight)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("%w: window must be positive, got %dx%d", ErrInvalidConfig, c.WindowWidth, c.WindowHeight)
	}
	if c.Static() {
		return nil
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api_base_url %q is not an absolute URL", ErrInvalidConfig, c.APIBaseURL)
	}
	if c.UserID == "" {
		return fmt.Errorf("%w: user_id must not be empty", ErrInvalidConfig)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("%w: refresh_interval must be positive", ErrInvalidConfig)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}
