package storage

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/shinji-kodama/countrylist/internal/model"
)

// SavedCountriesKey is the single key under which the saved list lives.
const SavedCountriesKey = "SavedCountries"

// SavedCountries persists the saved-country list as a JSON array under
// SavedCountriesKey.
//
// Failures never reach the caller. A missing, unreadable or corrupt value
// loads as an empty list, and a failed write is dropped; both are logged at
// debug level.
type SavedCountries struct {
	store  KVStore
	logger *slog.Logger
}

// NewSavedCountries creates the adapter over store. A nil logger discards.
func NewSavedCountries(store KVStore, logger *slog.Logger) *SavedCountries {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SavedCountries{store: store, logger: logger}
}

// Save overwrites the persisted list with countries.
func (s *SavedCountries) Save(countries []model.Country) {
	if countries == nil {
		// Persist "[]" rather than "null" so the stored value is always an array.
		countries = []model.Country{}
	}

	data, err := json.Marshal(countries)
	if err != nil {
		s.logger.Debug("saved countries not encoded", slog.Any("error", err))
		return
	}
	if err := s.store.Set(SavedCountriesKey, data); err != nil {
		s.logger.Debug("saved countries not written", slog.Any("error", err))
		return
	}
	s.logger.Debug("saved countries written", slog.Int("count", len(countries)))
}

// Load returns the persisted list, or an empty list when there is none.
func (s *SavedCountries) Load() []model.Country {
	data, found, err := s.store.Get(SavedCountriesKey)
	if err != nil {
		s.logger.Debug("saved countries not readable, starting empty", slog.Any("error", err))
		return []model.Country{}
	}
	if !found {
		return []model.Country{}
	}

	var countries []model.Country
	if err := json.Unmarshal(data, &countries); err != nil {
		s.logger.Debug("saved countries corrupt, starting empty",
			slog.Int("bytes", len(data)),
			slog.Any("error", err))
		return []model.Country{}
	}
	if countries == nil {
		return []model.Country{}
	}
	return countries
}
