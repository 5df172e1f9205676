package location

import (
	"context"
	"errors"

	"github.com/shinji-kodama/countrylist/internal/model"
)

var (
	// ErrPermissionDenied is returned when location access is disabled.
	ErrPermissionDenied = errors.New("location permission denied")

	// ErrNoFix is returned when no location fix is available.
	ErrNoFix = errors.New("no location fix available")
)

// Locator obtains a single location fix.
type Locator interface {
	Locate(ctx context.Context) (model.Coordinate, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context) (model.Coordinate, error)

// Locate calls f(ctx).
func (f LocatorFunc) Locate(ctx context.Context) (model.Coordinate, error) {
	return f(ctx)
}

// StaticLocator serves a fix configured ahead of time. It stands in for a
// device location service on hosts that have none.
type StaticLocator struct {
	// Enabled mirrors the platform permission. When false, Locate returns
	// ErrPermissionDenied.
	Enabled bool

	// Fix is the configured position. Nil means no fix is available.
	Fix *model.Coordinate
}

// Locate returns the configured fix.
func (l StaticLocator) Locate(ctx context.Context) (model.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return model.Coordinate{}, err
	}
	if !l.Enabled {
		return model.Coordinate{}, ErrPermissionDenied
	}
	if l.Fix == nil {
		return model.Coordinate{}, ErrNoFix
	}
	if err := l.Fix.Validate(); err != nil {
		return model.Coordinate{}, err
	}
	return *l.Fix, nil
}
