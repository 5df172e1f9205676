package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/shinji-kodama/countrylist/internal/model"
)

const (
	// DefaultRemoteURL is the REST Countries v2 listing endpoint. The
	// response is an array of records in the same shape as the bundled
	// dataset.
	DefaultRemoteURL = "https://restcountries.com/v2/all"

	// defaultClientTimeout bounds a single listing request.
	defaultClientTimeout = 10 * time.Second

	// defaultBackoff is the delay before the first retry. Later retries
	// back off exponentially.
	defaultBackoff = 500 * time.Millisecond
)

// statusError reports a non-200 HTTP response.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("received non-200 status code: %d", e.code)
}

// permanentError marks a failure that retrying cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// RemoteSource fetches the catalog with a single GET to a listing endpoint.
//
// With Retries > 0, transport failures and 5xx responses are retried with
// exponential backoff. 4xx responses and undecodable bodies are permanent and
// returned immediately.
type RemoteSource struct {
	// URL is the listing endpoint. Defaults to DefaultRemoteURL.
	URL string

	// Client performs the request. Defaults to a client with a 10s timeout.
	Client *http.Client

	// Retries is the number of additional attempts after the first.
	Retries int

	// Backoff is the delay before the first retry. Defaults to 500ms.
	Backoff time.Duration

	// Logger receives one debug record per failed attempt.
	Logger *slog.Logger
}

// NewRemoteSource creates a RemoteSource for url with default settings.
func NewRemoteSource(url string) *RemoteSource {
	if url == "" {
		url = DefaultRemoteURL
	}
	return &RemoteSource{
		URL:     url,
		Client:  &http.Client{Timeout: defaultClientTimeout},
		Backoff: defaultBackoff,
	}
}

// Load fetches and decodes the listing, retrying as configured.
func (s *RemoteSource) Load(ctx context.Context) ([]model.Country, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var (
		countries []model.Country
		attempt   int
	)
	op := func() error {
		attempt++
		var err error
		countries, err = s.fetch(ctx)
		if err == nil {
			return nil
		}

		logger.Debug("catalog fetch failed",
			slog.String("url", s.URL),
			slog.Int("attempt", attempt),
			slog.Any("error", err))

		if !isRetryable(ctx, err) {
			return backoff.Permanent(err)
		}
		return err
	}

	if err := backoff.Retry(op, s.retryPolicy(ctx)); err != nil {
		return nil, err
	}
	return countries, nil
}

// retryPolicy allows s.Retries extra attempts with exponential backoff
// starting at s.Backoff, abandoned as soon as ctx is done.
func (s *RemoteSource) retryPolicy(ctx context.Context) backoff.BackOffContext {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = s.Backoff
	if eb.InitialInterval <= 0 {
		eb.InitialInterval = defaultBackoff
	}
	// The attempt budget bounds retries, not elapsed time.
	eb.MaxElapsedTime = 0

	retries := s.Retries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(retries)), ctx)
}

// fetch performs one GET and decodes the body.
func (s *RemoteSource) fetch(ctx context.Context) ([]model.Country, error) {
	url := s.URL
	if url == "" {
		url = DefaultRemoteURL
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: defaultClientTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &permanentError{fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused by the next attempt.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var countries []model.Country
	if err := json.Unmarshal(body, &countries); err != nil {
		return nil, &permanentError{fmt.Errorf("failed to decode response: %w", err)}
	}
	return countries, nil
}

// isRetryable reports whether err is transient: a 5xx status or a
// transport failure that was not caused by the caller's context.
func isRetryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError
	}
	var pe *permanentError
	return !errors.As(err, &pe)
}
