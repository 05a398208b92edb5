package viacep

import (
	"errors"
	"net/url"
	"time"
)

// DefaultBaseURL is the public ViaCEP endpoint
const DefaultBaseURL = "https://viacep.com.br/ws"

// Errors for ViaCEP configuration
var (
	ErrConfigMissingBaseURL = errors.New("viacep: base URL is required")
	ErrConfigInvalidBaseURL = errors.New("viacep: base URL must be an absolute http(s) URL")
	ErrConfigInvalidTimeout = errors.New("viacep: timeout must be positive")
	ErrConfigInvalidRate    = errors.New("viacep: rate limit must not be negative")
)

// Config holds the ViaCEP client settings
type Config struct {
	// BaseURL is the API root; requests go to {BaseURL}/{cep}/json/
	BaseURL string
	// Timeout bounds a whole lookup including waiting for the rate limiter
	Timeout time.Duration
	// RateLimit is the sustained outbound requests per second; 0 disables limiting
	RateLimit float64
	// Burst is the number of requests allowed above RateLimit
	Burst int
}

// DefaultConfig returns the production settings
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   10 * time.Second,
		RateLimit: 20,
		Burst:     10,
	}
}

// Validate validates the configuration
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrConfigInvalidBaseURL
	}
	if c.Timeout <= 0 {
		return ErrConfigInvalidTimeout
	}
	if c.RateLimit < 0 {
		return ErrConfigInvalidRate
	}
	return nil
}
