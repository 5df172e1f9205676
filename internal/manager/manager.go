package manager

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/shinji-kodama/countrylist/internal/catalog"
	"github.com/shinji-kodama/countrylist/internal/location"
	"github.com/shinji-kodama/countrylist/internal/model"
	"github.com/shinji-kodama/countrylist/internal/savedlist"
	"github.com/shinji-kodama/countrylist/internal/storage"
)

// loadErrorPrefix starts every user-facing catalog load error message.
const loadErrorPrefix = "Failed to load countries data: "

// Options configures a Manager. Zero values select the defaults noted on
// each field.
type Options struct {
	// Source provides the catalog. Defaults to catalog.EmbeddedSource.
	Source catalog.Source

	// Store persists the saved list. Defaults to an in-memory store, which
	// means nothing survives the process.
	Store storage.KVStore

	// DefaultCountry is the code seeded when location resolution does not
	// answer in time. Defaults to location.DefaultCountryCode.
	DefaultCountry string

	// Logger receives debug diagnostics. Defaults to a discard logger.
	Logger *slog.Logger
}

// Manager owns the catalog and the saved list for one consumer.
//
// All methods are safe for concurrent use, although a single consumer is
// the expected usage.
type Manager struct {
	// source is read by every Load.
	source catalog.Source

	// defaultCountry is seeded when no location code arrives in time.
	defaultCountry string

	logger *slog.Logger

	// saved has its own lock and is never replaced after New.
	saved *savedlist.List

	// mu guards the fields below, which Load replaces.
	mu           sync.RWMutex
	catalog      *catalog.Catalog
	isLoading    bool
	errorMessage string
}

// New creates a Manager and restores the saved list from opts.Store.
// The catalog starts empty until Load is called.
func New(opts Options) *Manager {
	if opts.Source == nil {
		opts.Source = catalog.EmbeddedSource{}
	}
	if opts.Store == nil {
		opts.Store = storage.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.DefaultCountry == "" {
		opts.DefaultCountry = location.DefaultCountryCode
	}

	persisted := storage.NewSavedCountries(opts.Store, opts.Logger)

	return &Manager{
		source:         opts.Source,
		defaultCountry: model.NormalizeCode(opts.DefaultCountry),
		logger:         opts.Logger,
		saved:          savedlist.New(persisted.Load(), persisted, opts.Logger),
		catalog:        catalog.Empty(),
	}
}

// Load reads the catalog from the configured source.
//
// IsLoading reports true while the source is being read. On failure the
// catalog is left empty, ErrorMessage is set, and the underlying error is
// returned so the caller can choose an exit status. A successful load
// clears any previous ErrorMessage.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	m.isLoading = true
	m.errorMessage = ""
	m.mu.Unlock()

	// The source is read without holding the lock, so readers see the
	// previous catalog and IsLoading in the meantime.
	cat, err := catalog.Load(ctx, m.source)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.isLoading = false
	m.catalog = cat
	if err != nil {
		m.errorMessage = loadErrorPrefix + err.Error()
		m.logger.Debug("catalog load failed", slog.Any("error", err))
		return err
	}

	m.logger.Debug("catalog loaded", slog.Int("countries", cat.Len()))
	return nil
}

// Countries returns the full catalog in its original order.
func (m *Manager) Countries() []model.Country {
	return m.currentCatalog().Countries()
}

// SavedCountries returns the saved list in insertion order.
func (m *Manager) SavedCountries() []model.Country {
	return m.saved.Countries()
}

// IsLoading reports whether a catalog load is in progress.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isLoading
}

// ErrorMessage returns the message of the last failed catalog load, or "".
func (m *Manager) ErrorMessage() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errorMessage
}

// Search filters the catalog by name or capital.
func (m *Manager) Search(query string) []model.Country {
	return m.currentCatalog().Search(query)
}

// Add appends c to the saved list. It is a silent no-op when the list is
// full or c is already saved; use CanAdd to find out which.
func (m *Manager) Add(c model.Country) {
	m.saved.Add(c)
}

// Remove drops every saved country with c's code.
func (m *Manager) Remove(c model.Country) {
	m.saved.Remove(c)
}

// CanAdd reports why Add would not append c, or nil.
func (m *Manager) CanAdd(c model.Country) error {
	return m.saved.CanAdd(c)
}

// IsSaved reports whether a country with code is in the saved list.
func (m *Manager) IsSaved(code string) bool {
	return m.saved.Contains(code)
}

// GetByCode looks code up in the catalog, ignoring case. The saved list is
// not consulted.
func (m *Manager) GetByCode(code string) (model.Country, bool) {
	return m.currentCatalog().Lookup(code)
}

// Seed adds the user's home country to an empty saved list.
//
// When the saved list already has entries Seed returns immediately and codes
// is never read. Otherwise it waits up to timeout for a code on codes,
// falling back to the default country, looks the code up in the catalog
// and adds the match if the list is still empty. A cancelled ctx adds
// nothing.
//
// The added country is returned with true; false means nothing was added.
func (m *Manager) Seed(ctx context.Context, codes <-chan string, timeout time.Duration) (model.Country, bool) {
	if !m.saved.IsEmpty() {
		m.logger.Debug("seed skipped, saved list not empty", slog.Int("saved", m.saved.Len()))
		return model.Country{}, false
	}

	code := location.Await(ctx, codes, timeout, m.defaultCountry)
	if ctx.Err() != nil {
		return model.Country{}, false
	}

	country, ok := m.GetByCode(code)
	if !ok {
		m.logger.Debug("seed skipped, country not in catalog", slog.String("code", code))
		return model.Country{}, false
	}

	// The list may have been filled while waiting; only a still-empty
	// list is seeded.
	if !m.saved.AddIfEmpty(country) {
		m.logger.Debug("seed skipped, saved list filled while waiting", slog.String("code", code))
		return model.Country{}, false
	}
	m.logger.Debug("saved list seeded", slog.String("code", country.Code()))
	return country, true
}

func (m *Manager) currentCatalog() *catalog.Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog
}

// String summarizes the manager state for verbose output.
func (m *Manager) String() string {
	return fmt.Sprintf("catalog=%d saved=%d/%d", m.currentCatalog().Len(), m.saved.Len(), savedlist.Capacity)
}
