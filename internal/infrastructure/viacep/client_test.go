package viacep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/telemetry"
)

const saoPauloResponse = `{
  "cep": "01001-000",
  "logradouro": "Praça da Sé",
  "complemento": "lado ímpar",
  "bairro": "Sé",
  "localidade": "São Paulo",
  "uf": "SP",
  "ibge": "3550308",
  "ddd": "11"
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL + "/ws"
	cfg.Timeout = 2 * time.Second

	c, err := NewClient(cfg, opts...)
	require.NoError(t, err)
	return c
}

func mustCEP(t *testing.T, s string) valueobject.PostalCode {
	t.Helper()
	code, err := valueobject.NewPostalCode(s)
	require.NoError(t, err)
	return code
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"missing base url", func(c *Config) { c.BaseURL = "" }, ErrConfigMissingBaseURL},
		{"relative base url", func(c *Config) { c.BaseURL = "/ws" }, ErrConfigInvalidBaseURL},
		{"ftp base url", func(c *Config) { c.BaseURL = "ftp://viacep.com.br/ws" }, ErrConfigInvalidBaseURL},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrConfigInvalidTimeout},
		{"negative rate", func(c *Config) { c.RateLimit = -1 }, ErrConfigInvalidRate},
		{"rate disabled", func(c *Config) { c.RateLimit = 0 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Equal(t, tt.wantErr, cfg.Validate())
		})
	}
}

func TestClient_Lookup_Found(t *testing.T) {
	var gotPath string
	metrics := telemetry.NewMetrics()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(saoPauloResponse))
	}, WithMetrics(metrics))

	addr, err := c.Lookup(context.Background(), mustCEP(t, "01001-000"))
	require.NoError(t, err)

	assert.Equal(t, "/ws/01001000/json/", gotPath)
	assert.Equal(t, "01001-000", addr.PostalCode)
	assert.Equal(t, "Praça da Sé", addr.Street)
	assert.Equal(t, "lado ímpar", addr.Complement)
	assert.Equal(t, "Sé", addr.Neighborhood)
	assert.Equal(t, "São Paulo", addr.City)
	assert.Equal(t, "SP", addr.State)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `storefront_address_lookups_total{outcome="found"} 1`)
}

func TestClient_Lookup_NotFound(t *testing.T) {
	for _, body := range []string{`{"erro": true}`, `{"erro": "true"}`} {
		t.Run(body, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			addr, err := c.Lookup(context.Background(), mustCEP(t, "99999999"))
			assert.Nil(t, addr)
			assert.ErrorIs(t, err, shared.ErrPostalCodeNotFound)
		})
	}
}

func TestClient_Lookup_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"bad request", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)

			addr, err := c.Lookup(context.Background(), mustCEP(t, "01001000"))
			assert.Nil(t, addr)
			assert.ErrorIs(t, err, shared.ErrAddressLookupFailed)
			assert.NotErrorIs(t, err, shared.ErrPostalCodeNotFound)
		})
	}
}

func TestClient_Lookup_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.Timeout = 50 * time.Millisecond
	c, err := NewClient(cfg)
	require.NoError(t, err)

	_, err = c.Lookup(context.Background(), mustCEP(t, "01001000"))
	assert.ErrorIs(t, err, shared.ErrAddressLookupFailed)
}

func TestClient_Lookup_NoRetry(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Lookup(context.Background(), mustCEP(t, "01001000"))
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Lookup_RateLimited(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(saoPauloResponse))
	})
	c.limiter.SetLimit(0.001)
	c.limiter.SetBurst(1)

	_, err := c.Lookup(context.Background(), mustCEP(t, "01001000"))
	require.NoError(t, err)

	// the next token is far beyond the timeout
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Lookup(ctx, mustCEP(t, "01001000"))
	assert.ErrorIs(t, err, shared.ErrAddressLookupFailed)
}

func TestClient_Lookup_Span(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Lookup(context.Background(), mustCEP(t, "01001000"))
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "viacep.lookup", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "01001000", attrs[telemetry.SpanAttrPostalCode])
	assert.Equal(t, telemetry.LookupFailed, attrs[telemetry.SpanAttrLookupState])
}
