package savedlist

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/shinji-kodama/countrylist/internal/model"
)

// Capacity is the maximum number of saved countries.
const Capacity = 5

var (
	// ErrListFull is reported by CanAdd when the list holds Capacity countries.
	ErrListFull = errors.New("saved list is full")

	// ErrAlreadySaved is reported by CanAdd when a country with the same
	// code is already in the list.
	ErrAlreadySaved = errors.New("country is already saved")
)

// Persister receives the full list after every mutation.
// storage.SavedCountries satisfies it.
type Persister interface {
	Save(countries []model.Country)
}

// List is the saved-country aggregate. It is safe for concurrent use.
type List struct {
	mu        sync.RWMutex
	countries []model.Country
	persister Persister
	logger    *slog.Logger
}

// New creates a list holding initial, typically the persisted list loaded at
// startup.
//
// The initial contents are re-checked against the list invariants: entries
// with a malformed or duplicate code are dropped and anything past Capacity
// is ignored, so a hand-edited store cannot put the list into an invalid
// state. New itself does not persist.
func New(initial []model.Country, persister Persister, logger *slog.Logger) *List {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	l := &List{
		countries: make([]model.Country, 0, Capacity),
		persister: persister,
		logger:    logger,
	}
	for _, c := range initial {
		if err := model.ValidateCode(c.Code()); err != nil {
			logger.Debug("ignoring persisted country with invalid code",
				slog.String("code", c.Alpha2Code),
				slog.Any("error", err))
			continue
		}
		if l.canAddLocked(c) != nil {
			logger.Debug("ignoring persisted country",
				slog.String("code", c.Code()),
				slog.Int("position", len(l.countries)))
			continue
		}
		l.countries = append(l.countries, c)
	}
	return l
}

// CanAdd reports why Add would be a no-op for c, or nil if it would append.
func (l *List) CanAdd(c model.Country) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.canAddLocked(c)
}

func (l *List) canAddLocked(c model.Country) error {
	if len(l.countries) >= Capacity {
		return ErrListFull
	}
	if l.indexLocked(c.Code()) >= 0 {
		return ErrAlreadySaved
	}
	return nil
}

// Add appends c and persists the list. When the list is full or already
// holds a country with c's code, Add does nothing and reports nothing.
func (l *List) Add(c model.Country) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.canAddLocked(c); err != nil {
		l.logger.Debug("add skipped", slog.String("code", c.Code()), slog.Any("reason", err))
		return
	}
	l.countries = append(l.countries, c)
	l.persistLocked()
}

// AddIfEmpty appends c only when the list holds nothing, checking and
// appending under one lock. It reports whether c was added.
func (l *List) AddIfEmpty(c model.Country) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.countries) > 0 {
		l.logger.Debug("add skipped, list not empty",
			slog.String("code", c.Code()), slog.Int("saved", len(l.countries)))
		return false
	}
	l.countries = append(l.countries, c)
	l.persistLocked()
	return true
}

// Remove deletes every country whose code matches c's code and persists the
// list, even when nothing matched.
func (l *List) Remove(c model.Country) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.countries[:0]
	for _, saved := range l.countries {
		if !saved.Equal(c) {
			kept = append(kept, saved)
		}
	}
	// Clear the tail so removed records are not retained by the backing array.
	for i := len(kept); i < len(l.countries); i++ {
		l.countries[i] = model.Country{}
	}
	l.countries = kept
	l.persistLocked()
}

// Contains reports whether a country with code is saved, ignoring case.
func (l *List) Contains(code string) bool {
	_, ok := l.Find(code)
	return ok
}

// Find returns the saved country with code, ignoring case.
func (l *List) Find(code string) (model.Country, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx := l.indexLocked(model.NormalizeCode(code))
	if idx < 0 {
		return model.Country{}, false
	}
	return l.countries[idx], true
}

// Countries returns the saved countries in insertion order. The returned
// slice is a copy.
func (l *List) Countries() []model.Country {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Country, len(l.countries))
	copy(out, l.countries)
	return out
}

// Len returns the number of saved countries.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.countries)
}

// IsEmpty reports whether nothing is saved.
func (l *List) IsEmpty() bool {
	return l.Len() == 0
}

// IsFull reports whether the list holds Capacity countries.
func (l *List) IsFull() bool {
	return l.Len() >= Capacity
}

// indexLocked returns the position of the normalized code, or -1.
func (l *List) indexLocked(code string) int {
	for i, c := range l.countries {
		if c.Code() == code {
			return i
		}
	}
	return -1
}

func (l *List) persistLocked() {
	if l.persister == nil {
		return
	}
	snapshot := make([]model.Country, len(l.countries))
	copy(snapshot, l.countries)
	l.persister.Save(snapshot)
}
