package datasource

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// DefaultMaxDocumentSize bounds a single dataset response body.
const DefaultMaxDocumentSize = 64 << 20

// HTTPSource serves documents relative to a base URL, typically the static
// site that publishes them.
type HTTPSource struct {
	baseURL      string
	httpClient   *http.Client
	logger       logging.Logger
	userAgent    string
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	maxBytes     int64
}

type HTTPOption func(*HTTPSource)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if c != nil {
			s.httpClient = c
		}
	}
}

func WithLogger(l logging.Logger) HTTPOption {
	return func(s *HTTPSource) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRetry sets the retry budget and the initial backoff. The backoff
// doubles per attempt up to 16x wait.
func WithRetry(max int, wait time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if max >= 0 {
			s.retryMax = max
		}
		if wait > 0 {
			s.retryWaitMin = wait
			s.retryWaitMax = 16 * wait
		}
	}
}

func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if d > 0 {
			s.httpClient.Timeout = d
		}
	}
}

// WithMaxDocumentSize overrides DefaultMaxDocumentSize.
func WithMaxDocumentSize(n int64) HTTPOption {
	return func(s *HTTPSource) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

func NewHTTPSource(baseURL string, opts ...HTTPOption) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New(errors.ErrCodeValidation, "dataset base URL must be an absolute http(s) URL").WithDetail(baseURL)
	}
	s := &HTTPSource{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		logger:       logging.NewNopLogger(),
		userAgent:    "cbtalk-datasource/1",
		retryMax:     3,
		retryWaitMin: 200 * time.Millisecond,
		retryWaitMax: 3200 * time.Millisecond,
		maxBytes:     DefaultMaxDocumentSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *HTTPSource) Name() string {
	return s.baseURL
}

// Fetch GETs baseURL/path. Network errors and 5xx responses are retried with
// exponential backoff; a 404 is reported as not found without retrying.
func (s *HTTPSource) Fetch(ctx context.Context, p string) ([]byte, error) {
	fullURL := s.baseURL + "/" + strings.TrimPrefix(p, "/")

	var lastErr error
	for attempt := 0; attempt <= s.retryMax; attempt++ {
		if attempt > 0 {
			backoff := s.calculateBackoff(attempt)
			s.logger.Debug("Retrying dataset fetch",
				logging.String("path", p),
				logging.Int("attempt", attempt),
				logging.Duration("backoff", backoff),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, errors.Wrap(ctx.Err(), errors.ErrCodeDatasetUnavailable, "fetch cancelled").WithDetail(p)
			}
		}

		data, retry, err := s.once(ctx, fullURL, p)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (s *HTTPSource) once(ctx context.Context, fullURL, p string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeValidation, "invalid dataset URL").WithDetail(fullURL)
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("Dataset request failed", logging.String("url", fullURL), logging.Err(err))
		return nil, true, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "dataset request failed").WithDetail(p)
	}
	defer resp.Body.Close()

	s.logger.Debug("Dataset response",
		logging.String("url", fullURL),
		logging.Int("status", resp.StatusCode),
		logging.Duration("duration", time.Since(start)),
		logging.String("request_id", requestID),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, errors.New(errors.ErrCodeDatasetNotFound, "dataset not found").WithDetail(p)
	case resp.StatusCode >= 500:
		return nil, true, errors.New(errors.ErrCodeDatasetUnavailable, fmt.Sprintf("dataset server returned HTTP %d", resp.StatusCode)).WithDetail(p)
	case resp.StatusCode >= 400:
		return nil, false, errors.New(errors.ErrCodeDatasetUnavailable, fmt.Sprintf("dataset request rejected with HTTP %d", resp.StatusCode)).WithDetail(p)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, true, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "failed to read dataset body").WithDetail(p)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, false, errors.New(errors.ErrCodeDatasetTooLarge, "dataset document too large").
			WithDetail(fmt.Sprintf("%s exceeds %d bytes", p, s.maxBytes))
	}
	return data, false, nil
}

func (s *HTTPSource) calculateBackoff(attempt int) time.Duration {
	backoff := s.retryWaitMin * time.Duration(1<<uint(attempt-1))
	if backoff > s.retryWaitMax {
		backoff = s.retryWaitMax
	}
	// 0-25% jitter
	if q := int64(backoff / 4); q > 0 {
		backoff += time.Duration(rand.Int63n(q))
	}
	return backoff
}

//Personal.AI order the ending
