package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shinji-kodama/countrylist/internal/catalog"
	"github.com/shinji-kodama/countrylist/internal/config"
	"github.com/shinji-kodama/countrylist/internal/location"
	"github.com/shinji-kodama/countrylist/internal/manager"
	"github.com/shinji-kodama/countrylist/internal/model"
	"github.com/shinji-kodama/countrylist/internal/storage"
)

// app holds what every data command needs once configuration is resolved.
type app struct {
	// cfg is the merged configuration, --data-dir already applied.
	cfg *config.Config

	// manager owns the loaded catalog and the saved list.
	manager *manager.Manager

	// logger is shared with the core packages and the location resolver.
	logger *slog.Logger
}

// loadConfig reads the config file named by --config (or the default
// path) and applies the --data-dir override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "failed to load configuration", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// newApp loads configuration, opens the saved-list store and loads the
// catalog. A catalog that cannot be loaded is reported with
// ExitCatalogUnavailable.
func newApp(ctx context.Context, stderr io.Writer) (*app, error) {
	// Step 1: Configuration.
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(stderr)

	// Step 2: Saved-list store.
	dir, err := cfg.ResolvedDataDir()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "invalid data directory", err)
	}
	VerboseLog("Data directory: %s", dir)

	// Step 3: Manager over the configured catalog source.
	m := manager.New(manager.Options{
		Source:         newCatalogSource(cfg.Catalog, logger),
		Store:          storage.NewFileStore(dir),
		DefaultCountry: cfg.Location.DefaultCountry,
		Logger:         logger,
	})

	VerboseLog("Loading %s catalog", cfg.Catalog.Source)
	if err := m.Load(ctx); err != nil {
		return nil, model.NewCLIError(model.ExitCatalogUnavailable, m.ErrorMessage())
	}
	VerboseLog("State: %s", m)

	return &app{cfg: cfg, manager: m, logger: logger}, nil
}

// newLogger builds the structured logger handed to the core packages.
// Debug records are shown only with --verbose.
func newLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newCatalogSource maps the catalog section of the config to a Source.
func newCatalogSource(cfg config.CatalogConfig, logger *slog.Logger) catalog.Source {
	switch cfg.Source {
	case config.SourceFile:
		return catalog.FileSource{Path: cfg.Path}
	case config.SourceRemote:
		src := catalog.NewRemoteSource(cfg.URL)
		if cfg.Timeout > 0 {
			src.Client.Timeout = cfg.Timeout
		}
		src.Retries = cfg.Retries
		src.Logger = logger
		return src
	default:
		return catalog.EmbeddedSource{}
	}
}

// seed runs the one-shot location lookup and seeds an empty saved list.
// The geocoder indexes the loaded catalog, so only catalog countries can
// be resolved.
func (a *app) seed(ctx context.Context) (model.Country, bool) {
	resolver := &location.Resolver{
		Locator: location.StaticLocator{
			Enabled: a.cfg.Location.Enabled,
			Fix:     a.cfg.Location.Fix(),
		},
		Geocoder: location.NewNearestCountryGeocoder(a.manager.Countries(), a.cfg.Location.MaxDistanceKm),
		Fallback: a.cfg.Location.DefaultCountry,
		Logger:   a.logger,
	}

	VerboseLog("Resolving home country (timeout %s)", a.cfg.Seed.Timeout)
	country, ok := a.manager.Seed(ctx, resolver.Resolve(ctx), a.cfg.Seed.Timeout)
	if ok {
		VerboseLog("Seeded saved list with %s", country.Code())
	}
	return country, ok
}

// requireCode validates a country code argument.
func requireCode(arg string) (string, error) {
	code := model.NormalizeCode(arg)
	if err := model.ValidateCode(code); err != nil {
		return "", model.WrapCLIError(model.ExitInvalidArgument, fmt.Sprintf("invalid country code %q", arg), err)
	}
	return code, nil
}

// lookup resolves a code argument against the catalog.
func (a *app) lookup(arg string) (model.Country, error) {
	code, err := requireCode(arg)
	if err != nil {
		return model.Country{}, err
	}
	country, ok := a.manager.GetByCode(code)
	if !ok {
		return model.Country{}, model.NewCLIError(model.ExitCountryNotFound,
			fmt.Sprintf("country not found: %s", code))
	}
	return country, nil
}
