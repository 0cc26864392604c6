package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"
	"github.com/tuitionhub/tuitionhub-web/pkg/circuitbreaker"
	"github.com/tuitionhub/tuitionhub-web/pkg/httpclient"
	"github.com/tuitionhub/tuitionhub-web/pkg/logger"
	"github.com/tuitionhub/tuitionhub-web/pkg/metrics"
	"github.com/tuitionhub/tuitionhub-web/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const maxResponseBytes = 10 << 20

// Client talks to the marketplace REST backend
type Client struct {
	baseURL  string
	http     httpclient.Client
	breaker  *gobreaker.CircuitBreaker
	validate *validator.Validate
}

// NewClient creates a backend client. Only unavailable-kind failures count
// against the circuit breaker; 4xx answers mean the backend is healthy.
func NewClient(baseURL string, httpClient httpclient.Client) *Client {
	cbCfg := circuitbreaker.DefaultConfig("marketplace-backend")
	cbCfg.IsSuccessful = func(err error) bool {
		if err == nil || errors.Is(err, context.Canceled) {
			return true
		}
		return KindOf(err) != KindUnavailable
	}

	return &Client{
		baseURL:  baseURL,
		http:     httpClient,
		breaker:  circuitbreaker.New(cbCfg),
		validate: validator.New(),
	}
}

// call performs one request and returns the raw response body
func (c *Client) call(ctx context.Context, operation, method, path, credential string, payload any) ([]byte, error) {
	start := time.Now()

	ctx, span := tracing.StartSpan(ctx, "upstream."+operation,
		attribute.String("http.method", method),
		attribute.String("backend.path", path))
	defer span.End()

	body, err := circuitbreaker.Execute(c.breaker, func() ([]byte, error) {
		return c.roundTrip(ctx, operation, method, path, credential, payload)
	})
	if circuitbreaker.IsOpen(err) {
		err = &APIError{Operation: operation, Message: BreakerOpenMessage, Err: err}
	}

	duration := metrics.MeasureDuration(start)
	status := "success"
	statusCode := http.StatusOK
	if err != nil {
		status = "error"
		statusCode = 0
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			statusCode = apiErr.StatusCode
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	metrics.BackendRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.BackendRequestTotal.WithLabelValues(operation, status).Inc()
	logger.LogAPICall(operation, status, statusCode, duration, zap.String("method", method))

	return body, err
}

func (c *Client) roundTrip(ctx context.Context, operation, method, path, credential string, payload any) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, &APIError{Operation: operation, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &APIError{Operation: operation, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, parseError(operation, resp.StatusCode, respBody)
	}

	return respBody, nil
}

// BreakerOpenMessage is shown while the breaker refuses backend calls
const BreakerOpenMessage = "The service is temporarily unavailable. Please try again shortly."

// BreakerState reports the circuit breaker state guarding the backend
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}
