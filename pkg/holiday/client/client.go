// Package client fetches holiday documents from api-feiertage.de.
//
// Each call issues exactly one GET and decodes the body exactly once. Failures
// are reported as *TransportError, *RemoteStatusError or *APIError; retrying
// is left to the caller (see IsRetryable).
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"feiertage/pkg/domain"
	"feiertage/pkg/holiday"
	"feiertage/pkg/holiday/codec"
	"feiertage/pkg/platform/config"
	"feiertage/pkg/platform/logger"
	"feiertage/pkg/platform/metrics"
	"feiertage/pkg/requestcontext"
)

// DefaultBaseURL is the public holiday API endpoint.
const DefaultBaseURL = config.DefaultBaseURL

const (
	tracerName      = "feiertage/pkg/holiday/client"
	headerRequestID = "X-Request-ID"

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 8 << 20
)

// Client is safe for concurrent use.
type Client struct {
	baseURL   string
	doer      HTTPDoer
	timeout   time.Duration
	userAgent string
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPDoer replaces the default *http.Client.
func WithHTTPDoer(doer HTTPDoer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithTimeout bounds each request, including reading the body.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// New creates a client. Without options it targets DefaultBaseURL with the
// default timeout, no metrics, and a discarding logger.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:   DefaultBaseURL,
		timeout:   config.DefaultTimeout,
		userAgent: config.DefaultUserAgent,
		logger:    logger.Discard(),
		tracer:    otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(c)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("holiday client: parse base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("holiday client: base URL must be an absolute http(s) URL, got %q", c.baseURL)
	}
	if c.timeout <= 0 {
		return nil, fmt.Errorf("holiday client: timeout must be positive, got %s", c.timeout)
	}
	if c.logger == nil {
		return nil, fmt.Errorf("holiday client: logger is required")
	}
	if c.doer == nil {
		c.doer = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

// NewFromConfig creates a client from platform configuration. opts are
// applied after the configured values.
func NewFromConfig(cfg config.Client, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := []Option{
		WithBaseURL(cfg.BaseURL),
		WithTimeout(cfg.Timeout),
		WithUserAgent(cfg.UserAgent),
		WithLogger(logger.New(cfg.LogLevel)),
	}
	return New(append(base, opts...)...)
}

// BuildURL returns the request URL for req against the client's base URL.
func (c *Client) BuildURL(req holiday.Request) (string, error) {
	return BuildURL(c.baseURL, req)
}

// FetchYear fetches the holidays of one year, optionally limited to states.
func (c *Client) FetchYear(ctx context.Context, year int, states ...domain.Region) (*holiday.Response, error) {
	return c.Fetch(ctx, holiday.Request{Years: []int{year}, States: states})
}

// FetchYears fetches several years in one request.
func (c *Client) FetchYears(ctx context.Context, years []int, states ...domain.Region) (*holiday.Response, error) {
	return c.Fetch(ctx, holiday.Request{Years: years, States: states})
}

// Fetch issues one request for req and decodes the response.
//
// A cancelled or expired ctx yields ctx.Err() unchanged. Otherwise failures
// are *TransportError, *RemoteStatusError or *APIError; a document whose
// status is "error" is an *APIError carrying the API's description.
func (c *Client) Fetch(ctx context.Context, req holiday.Request) (*holiday.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	uri, err := c.BuildURL(req)
	if err != nil {
		return nil, err
	}

	requestID := requestcontext.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	ctx, span := c.tracer.Start(ctx, "holiday.client.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.url", uri),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	c.logger.DebugContext(ctx, "fetching holidays",
		slog.String("uri", uri),
		slog.String("request_id", requestID),
	)

	start := time.Now()
	resp, err := c.fetch(ctx, uri, requestID)
	c.metrics.ObserveRequest(outcomeOf(err), time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		attrs := []any{
			slog.String("uri", uri),
			slog.String("request_id", requestID),
			slog.String("category", string(GetCategory(err))),
			slog.String("error", err.Error()),
		}
		var statusErr *RemoteStatusError
		if errors.As(err, &statusErr) {
			attrs = append(attrs, slog.Int("status_code", statusErr.StatusCode))
			span.SetAttributes(attribute.Int("http.status_code", statusErr.StatusCode))
		}
		c.logger.WarnContext(ctx, "holiday request failed", attrs...)
		return nil, err
	}

	c.metrics.AddHolidays(len(resp.Holidays))
	span.SetAttributes(attribute.Int("holiday.count", len(resp.Holidays)))
	c.logger.DebugContext(ctx, "fetched holidays",
		slog.String("request_id", requestID),
		slog.Int("count", len(resp.Holidays)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

func (c *Client) fetch(parent context.Context, uri, requestID string) (*holiday.Response, error) {
	ctx, cancel := context.WithTimeout(parent, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, &TransportError{URI: uri, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(headerRequestID, requestID)

	httpResp, err := c.doer.Do(httpReq)
	if err != nil {
		return nil, transportFailure(parent, ctx, uri, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return nil, transportFailure(parent, ctx, uri, err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, &RemoteStatusError{URI: uri, StatusCode: httpResp.StatusCode, Body: string(body)}
	}

	decoded, err := codec.Decode(body)
	if err != nil {
		return nil, &APIError{Description: err.Error(), Body: string(body), Err: err}
	}
	if decoded.IsError() {
		description := ""
		if decoded.ErrorMessage != nil {
			description = *decoded.ErrorMessage
		}
		return nil, &APIError{Status: decoded.Status, Description: description, Body: string(body)}
	}
	return decoded, nil
}

// transportFailure prefers the caller's own cancellation over a transport error.
func transportFailure(parent, ctx context.Context, uri string, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return parentErr
	}
	return &TransportError{URI: uri, Timeout: isTimeout(ctx, err), Err: err}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	switch GetCategory(err) {
	case ErrorTransport:
		return metrics.OutcomeTransport
	case ErrorRemoteStatus:
		return metrics.OutcomeRemoteStatus
	case ErrorAPI:
		return metrics.OutcomeAPI
	default:
		return metrics.OutcomeCanceled
	}
}
