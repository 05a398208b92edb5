// Package viacep resolves Brazilian postal codes (CEP) with the ViaCEP API.
package viacep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shipping"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/logger"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/telemetry"
)

const maxResponseSize = 64 << 10

// Client implements shipping.AddressLookup. It never retries.
type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *telemetry.Metrics
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithMetrics records lookup outcomes
func WithMetrics(m *telemetry.Metrics) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

// WithLogger sets the fallback logger used when the context carries none
func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// NewClient creates a ViaCEP client
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Lookup resolves code to an address.
// Errors wrap shared.ErrPostalCodeNotFound or shared.ErrAddressLookupFailed.
func (c *Client) Lookup(ctx context.Context, code valueobject.PostalCode) (*shipping.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	ctx, span := telemetry.StartClientSpan(ctx, "viacep.lookup", telemetry.SpanAttrPostalCode, code.String())
	defer span.End()

	log := logger.WithLogger(ctx, logger.FromContextOr(ctx, c.logger)).With(zap.String("cep", code.String()))

	start := time.Now()
	addr, outcome, err := c.lookup(ctx, code)
	c.metrics.ObserveAddressLookup(outcome, time.Since(start))
	telemetry.SetAttributes(span, telemetry.SpanAttrLookupState, outcome)

	switch {
	case err == nil:
		log.Debug("address resolved", zap.String("city", addr.City))
	case errors.Is(err, shared.ErrPostalCodeNotFound):
		log.Info("postal code not found")
	default:
		telemetry.RecordError(span, err)
		log.Warn("address lookup failed", zap.Error(err))
	}
	return addr, err
}

func (c *Client) lookup(ctx context.Context, code valueobject.PostalCode) (*shipping.Address, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, telemetry.LookupRateLimited, fmt.Errorf("%w: rate limiter: %v", shared.ErrAddressLookupFailed, err)
	}

	url := fmt.Sprintf("%s/%s/json/", strings.TrimRight(c.config.BaseURL, "/"), code.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, telemetry.LookupFailed, fmt.Errorf("%w: failed to create request: %v", shared.ErrAddressLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, telemetry.LookupFailed, fmt.Errorf("%w: %v", shared.ErrAddressLookupFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, telemetry.LookupFailed, fmt.Errorf("%w: failed to read response: %v", shared.ErrAddressLookupFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, telemetry.LookupFailed, fmt.Errorf("%w: HTTP %d", shared.ErrAddressLookupFailed, resp.StatusCode)
	}

	var payload addressResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, telemetry.LookupFailed, fmt.Errorf("%w: invalid response: %v", shared.ErrAddressLookupFailed, err)
	}
	if payload.notFound() {
		return nil, telemetry.LookupNotFound, shared.ErrPostalCodeNotFound
	}

	return payload.toAddress(code.Formatted()), telemetry.LookupFound, nil
}

var _ shipping.AddressLookup = (*Client)(nil)
