package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/colonial-go/internal/application/common"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultMaxRetries      = 3
	defaultBackoffBase     = 500 * time.Millisecond
	defaultRequestsPerSec  = 4
	defaultBurst           = 4
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * time.Second
	defaultUserAgent       = "colonial-go"
)

// RequestRecorder receives per-request metrics. The Prometheus API collector
// satisfies it.
type RequestRecorder interface {
	RecordAPIRequest(method, endpoint string, statusCode int, duration float64)
	RecordAPIRetry(method, endpoint, reason string)
	RecordRateLimitWait(method, endpoint string, duration float64)
}

type nopRecorder struct{}

func (nopRecorder) RecordAPIRequest(string, string, int, float64) {}
func (nopRecorder) RecordAPIRetry(string, string, string)         {}
func (nopRecorder) RecordRateLimitWait(string, string, float64)   {}

// Options configures a Client. Zero values take the defaults.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	BackoffBase       time.Duration
	BreakerFailures   int
	BreakerTimeout    time.Duration
	UserAgent         string
	Clock             shared.Clock
	Recorder          RequestRecorder
	HTTPClient        *http.Client
}

// Client is a JSON-over-HTTP client with rate limiting, a circuit breaker and
// retries. Only GET requests are retried; mutations are attempted once and
// the caller decides whether to re-trigger them.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	validate    *validator.Validate
	recorder    RequestRecorder
	baseURL     string
	userAgent   string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

// NewClient creates a client for one base URL.
func NewClient(opts Options) *Client {
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = defaultRequestsPerSec
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	} else if opts.MaxRetries == 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = defaultBackoffBase
	}
	if opts.BreakerFailures <= 0 {
		opts.BreakerFailures = defaultBreakerFailures
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = defaultBreakerTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		breaker:     NewCircuitBreaker(opts.BreakerFailures, opts.BreakerTimeout, opts.Clock),
		validate:    validator.New(),
		recorder:    opts.Recorder,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		userAgent:   opts.UserAgent,
		maxRetries:  opts.MaxRetries,
		backoffBase: opts.BackoffBase,
		clock:       opts.Clock,
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Breaker exposes the circuit breaker for state reporting.
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

// call describes one logical request.
type call struct {
	method         string
	path           string
	endpoint       string // metrics label: the path template
	query          url.Values
	body           interface{}
	result         interface{}
	idempotencyKey string
}

// Get fetches path and decodes a 200 body into result. A 202 yields
// ErrAccepted since there is no body to decode.
func (c *Client) Get(ctx context.Context, endpoint, path string, query url.Values, result interface{}) error {
	return c.do(ctx, call{method: http.MethodGet, path: path, endpoint: endpoint, query: query, result: result})
}

func (c *Client) do(ctx context.Context, cl call) error {
	return c.breaker.Call(func() error {
		return c.request(ctx, cl)
	})
}

// request makes an HTTP request with rate limiting and, for GET, exponential
// backoff retries
func (c *Client) request(ctx context.Context, cl call) error {
	logger := common.LoggerFromContext(ctx)

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var payload []byte
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	attempts := 1
	if cl.method == http.MethodGet {
		attempts += c.maxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		waitStart := time.Now()
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}
		c.recorder.RecordRateLimitWait(cl.method, cl.endpoint, time.Since(waitStart).Seconds())

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, cl.method, target, reqBody)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if cl.idempotencyKey != "" {
			req.Header.Set("Idempotency-Key", cl.idempotencyKey)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("context cancelled: %w", ctx.Err())
			}
			c.recorder.RecordAPIRequest(cl.method, cl.endpoint, 0, time.Since(start).Seconds())
			lastErr = &retryableError{message: fmt.Sprintf("network error: %v", err), cause: err}
			if attempt+1 >= attempts {
				break
			}
			c.backoff(ctx, cl, attempt, 0, "network")
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		c.recorder.RecordAPIRequest(cl.method, cl.endpoint, resp.StatusCode, time.Since(start).Seconds())
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return c.decode(respBody, cl.result)

		case resp.StatusCode == http.StatusAccepted:
			if cl.result != nil {
				return fmt.Errorf("%s %s: %w", cl.method, cl.path, ErrAccepted)
			}
			return nil

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = &APIError{StatusCode: resp.StatusCode, Method: cl.method, Path: cl.path, Body: string(respBody)}
			if attempt+1 >= attempts {
				continue
			}
			var retryAfter time.Duration
			if v := resp.Header.Get("Retry-After"); v != "" {
				if seconds, err := strconv.Atoi(v); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			}
			logger.Debug("retrying request",
				logging.String("method", cl.method),
				logging.String("path", cl.path),
				logging.Int("status", resp.StatusCode),
				logging.Int("attempt", attempt+1))
			c.backoff(ctx, cl, attempt, retryAfter, strconv.Itoa(resp.StatusCode))
			continue

		default:
			return &APIError{StatusCode: resp.StatusCode, Method: cl.method, Path: cl.path, Body: string(respBody)}
		}
	}

	if attempts == 1 {
		return fmt.Errorf("%s %s: %w", cl.method, cl.path, lastErr)
	}
	logger.Warn("request failed after retries",
		logging.String("method", cl.method),
		logging.String("path", cl.path),
		logging.Int("attempts", attempts),
		logging.Err(lastErr))
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// backoff sleeps before the next attempt using the clock (instant in tests
// with MockClock). A server-provided Retry-After wins over the computed delay.
func (c *Client) backoff(ctx context.Context, cl call, attempt int, retryAfter time.Duration, reason string) {
	c.recorder.RecordAPIRetry(cl.method, cl.endpoint, reason)
	if ctx.Err() != nil {
		return
	}
	delay := addJitter(c.backoffBase * time.Duration(1<<attempt))
	if retryAfter > 0 {
		delay = retryAfter
	}
	c.clock.Sleep(delay)
}

func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64() // 0.5 to 1.5
	return time.Duration(float64(d) * jitter)
}

// decode parses a 200 body into result and validates it against its struct
// tags.
func (c *Client) decode(body []byte, result interface{}) error {
	if result == nil {
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: empty body", ErrMalformedPayload)
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if err := c.validatePayload(result); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

func (c *Client) validatePayload(v interface{}) error {
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Struct:
		return c.validate.Struct(rv.Interface())
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			if elem.Kind() == reflect.Ptr {
				if elem.IsNil() {
					return fmt.Errorf("element %d is null", i)
				}
				elem = elem.Elem()
			}
			if elem.Kind() != reflect.Struct {
				continue
			}
			if err := c.validate.Struct(elem.Interface()); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	}
	return nil
}
