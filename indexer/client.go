package indexer

import (
	"context"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"io"
	"net/http"
	"time"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "tezos-preview/0.1 (+https://github.com/xyths/tezos-preview)"

	tracerName = "github.com/xyths/tezos-preview/indexer"
)

// Option configures an upstream client.
type Option func(*client)

// WithHTTPClient replaces the default http client, its timeout is kept as given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.http = hc
	}
}

// WithTimeout sets the upper bound of a single upstream call. A client given
// through WithHTTPClient is copied, never changed.
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func WithLogger(sugar *zap.SugaredLogger) Option {
	return func(c *client) {
		c.Sugar = sugar
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *client) {
		c.tracer = tracer
	}
}

// client holds what both upstreams share: the gate, the bounded http client,
// the identifying header and tracing.
type client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	gate      *Gate
	tracer    trace.Tracer

	Sugar *zap.SugaredLogger
}

func newClient(baseURL string, gate *Gate, opts ...Option) client {
	c := client{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
		gate:      gate,
		tracer:    otel.Tracer(tracerName),
		Sugar:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// do runs one gated request and returns the body of a 2xx response.
func (c *client) do(ctx context.Context, endpoint string, req *http.Request) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, endpoint, trace.WithAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.url", req.URL.String()),
	))
	defer span.End()

	if !c.gate.Allow(endpoint) {
		span.SetStatus(codes.Error, ErrRateLimited.Error())
		return nil, &Error{Kind: ErrRateLimited, Endpoint: endpoint}
	}

	req = req.WithContext(ctx)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.Sugar.Debugf("request %s: %s", endpoint, req.URL)
	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, newError(ErrTransport, endpoint, "%s", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		span.SetStatus(codes.Error, resp.Status)
		return nil, &Error{Kind: ErrHTTP, Endpoint: endpoint, Status: resp.StatusCode, Message: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, newError(ErrTransport, endpoint, "read body: %s", err)
	}
	return body, nil
}
