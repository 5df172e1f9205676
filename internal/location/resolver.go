package location

import (
	"context"
	"io"
	"log/slog"
	"time"

	geohash "github.com/TomiHiltunen/geohash-golang"

	"github.com/shinji-kodama/countrylist/internal/model"
)

// DefaultCountryCode is published whenever resolution fails.
const DefaultCountryCode = "IN"

// DefaultAwaitTimeout bounds Await when the caller passes no timeout.
const DefaultAwaitTimeout = 2 * time.Second

// fixLogPrecision is the number of geohash characters logged for a fix,
// roughly a 40km cell. Raw coordinates are never logged.
const fixLogPrecision = 4

// Resolver performs the one-shot locate-then-geocode flow.
type Resolver struct {
	Locator  Locator
	Geocoder Geocoder

	// Fallback is published on failure. Defaults to DefaultCountryCode.
	Fallback string

	Logger *slog.Logger
}

// Resolve starts resolution in the background and returns a channel that
// receives exactly one country code and is then closed. The channel is
// buffered, so the background work never blocks on a consumer that has
// stopped listening.
func (r *Resolver) Resolve(ctx context.Context) <-chan string {
	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		ch <- r.resolve(ctx)
	}()
	return ch
}

// resolve runs the flow synchronously. It never fails: every error path
// returns the fallback code.
func (r *Resolver) resolve(ctx context.Context) string {
	logger := r.logger()
	fallback := r.fallback()

	if r.Locator == nil || r.Geocoder == nil {
		logger.Debug("location resolver not configured, using fallback",
			slog.String("code", fallback))
		return fallback
	}

	// Step 1: one location fix.
	fix, err := r.Locator.Locate(ctx)
	if err != nil {
		logger.Debug("location fix failed, using fallback",
			slog.String("code", fallback), slog.Any("error", err))
		return fallback
	}
	logger.Debug("location fix received", slog.String("geohash", Cell(fix)))

	// Step 2: one reverse geocode.
	code, err := r.Geocoder.CountryCode(ctx, fix)
	if err != nil {
		logger.Debug("reverse geocode failed, using fallback",
			slog.String("code", fallback), slog.Any("error", err))
		return fallback
	}

	code = model.NormalizeCode(code)
	if model.ValidateCode(code) != nil {
		logger.Debug("reverse geocode returned malformed code, using fallback",
			slog.String("got", code), slog.String("code", fallback))
		return fallback
	}

	logger.Debug("location resolved", slog.String("code", code))
	return code
}

func (r *Resolver) fallback() string {
	if r.Fallback == "" {
		return DefaultCountryCode
	}
	return model.NormalizeCode(r.Fallback)
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// Cell returns the coarse geohash cell containing c. It is logged and shown
// in place of raw coordinates.
func Cell(c model.Coordinate) string {
	h := geohash.Encode(c.Latitude, c.Longitude)
	if len(h) > fixLogPrecision {
		h = h[:fixLogPrecision]
	}
	return h
}

// Await waits for the code published on codes, for at most timeout.
//
// It returns fallback when the timeout elapses, ctx is done, or the channel
// closes without a value. A non-positive timeout selects
// DefaultAwaitTimeout, so the wait is always bounded.
func Await(ctx context.Context, codes <-chan string, timeout time.Duration, fallback string) string {
	if timeout <= 0 {
		timeout = DefaultAwaitTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case code, ok := <-codes:
		if !ok || code == "" {
			return fallback
		}
		return code
	case <-timer.C:
		return fallback
	case <-ctx.Done():
		return fallback
	}
}
