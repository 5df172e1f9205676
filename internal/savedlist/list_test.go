package savedlist

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/countrylist/internal/model"
	"github.com/shinji-kodama/countrylist/internal/storage"
)

// recordingPersister records every snapshot handed to Save.
type recordingPersister struct {
	mu    sync.Mutex
	saves [][]model.Country
}

func (p *recordingPersister) Save(countries []model.Country) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves = append(p.saves, countries)
}

func (p *recordingPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.saves)
}

func (p *recordingPersister) last() []model.Country {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saves) == 0 {
		return nil
	}
	return p.saves[len(p.saves)-1]
}

// country builds a minimal valid country for code.
func country(code string) model.Country {
	return model.Country{Name: "Country " + code, Alpha2Code: code, Population: 1}
}

func savedCodes(l *List) []string {
	out := []string{}
	for _, c := range l.Countries() {
		out = append(out, c.Code())
	}
	return out
}

// TestAdd_AppendsAndPersists verifies the happy path of Add.
func TestAdd_AppendsAndPersists(t *testing.T) {
	p := &recordingPersister{}
	l := New(nil, p, nil)

	l.Add(country("IN"))

	assert.Equal(t, 1, l.Len())
	assert.True(t, l.Contains("in"))
	require.Equal(t, 1, p.count())
	assert.Equal(t, []string{"IN"}, []string{p.last()[0].Code()})
}

// TestAdd_DuplicateIsSilentNoOp verifies uniqueness by code only.
func TestAdd_DuplicateIsSilentNoOp(t *testing.T) {
	p := &recordingPersister{}
	l := New(nil, p, nil)
	l.Add(country("TC"))

	impostor := model.Country{Name: "Different Name", Alpha2Code: "tc", Population: 99}
	assert.ErrorIs(t, l.CanAdd(impostor), ErrAlreadySaved)

	l.Add(impostor)

	assert.Equal(t, 1, l.Len())
	saved, ok := l.Find("TC")
	require.True(t, ok)
	assert.Equal(t, "Country TC", saved.Name, "the original record must be kept")
	assert.Equal(t, 1, p.count(), "a no-op add must not persist")
}

// TestAdd_SixDistinctKeepsFirstFive verifies the capacity bound.
func TestAdd_SixDistinctKeepsFirstFive(t *testing.T) {
	p := &recordingPersister{}
	l := New(nil, p, nil)

	for _, code := range []string{"IN", "US", "GB", "DE", "FR", "JP"} {
		l.Add(country(code))
	}

	assert.Equal(t, []string{"IN", "US", "GB", "DE", "FR"}, savedCodes(l))
	assert.True(t, l.IsFull())
	assert.ErrorIs(t, l.CanAdd(country("JP")), ErrListFull)
	assert.Equal(t, 5, p.count())
	assert.Len(t, p.last(), 5)
}

// TestAdd_Properties checks the add invariants from every reachable size.
func TestAdd_Properties(t *testing.T) {
	for size := 0; size <= Capacity; size++ {
		t.Run(fmt.Sprintf("size %d", size), func(t *testing.T) {
			l := New(nil, nil, nil)
			for i := 0; i < size; i++ {
				l.Add(country(string([]byte{'A', byte('A' + i)})))
			}
			require.Equal(t, size, l.Len())
			before := savedCodes(l)

			newcomer := country("ZZ")
			l.Add(newcomer)

			if size < Capacity {
				assert.Equal(t, size+1, l.Len())
				assert.True(t, l.Contains("ZZ"))
				assert.Equal(t, append(before, "ZZ"), savedCodes(l))
			} else {
				assert.Equal(t, before, savedCodes(l))
			}

			if size > 0 {
				dup := country("AA")
				snapshot := savedCodes(l)
				l.Add(dup)
				assert.Equal(t, snapshot, savedCodes(l))
			}
		})
	}
}

// TestRemove verifies removal semantics and unconditional persistence.
func TestRemove(t *testing.T) {
	p := &recordingPersister{}
	l := New([]model.Country{country("IN"), country("US"), country("GB")}, p, nil)
	assert.Equal(t, 0, p.count(), "construction must not persist")

	l.Remove(model.Country{Alpha2Code: "us"})
	assert.Equal(t, []string{"IN", "GB"}, savedCodes(l))
	assert.False(t, l.Contains("US"))
	assert.Equal(t, 1, p.count())

	// Removing an absent code is a no-op that still persists.
	l.Remove(country("US"))
	assert.Equal(t, []string{"IN", "GB"}, savedCodes(l))
	assert.Equal(t, 2, p.count())
	assert.Len(t, p.last(), 2)

	_, ok := l.Find("US")
	assert.False(t, ok)
}

// TestRemove_ThenAddAgain verifies that removal frees capacity.
func TestRemove_ThenAddAgain(t *testing.T) {
	l := New(nil, nil, nil)
	for _, code := range []string{"IN", "US", "GB", "DE", "FR"} {
		l.Add(country(code))
	}
	l.Remove(country("GB"))
	l.Add(country("JP"))
	l.Add(country("GB"))

	assert.Equal(t, []string{"IN", "US", "DE", "FR", "JP"}, savedCodes(l))
}

// TestNew_SanitizesInitialContents verifies persisted data cannot break
// the invariants.
func TestNew_SanitizesInitialContents(t *testing.T) {
	initial := []model.Country{
		country("IN"), country("in"), country("US"), country("GB"),
		country("DE"), country("FR"), country("JP"),
	}

	l := New(initial, nil, nil)
	assert.Equal(t, []string{"IN", "US", "GB", "DE", "FR"}, savedCodes(l))
}

// TestNew_DropsMalformedCodes verifies that persisted records without a
// usable code never enter the list.
func TestNew_DropsMalformedCodes(t *testing.T) {
	initial := []model.Country{
		country(""), country("IN"), country("USA"), country("1x"),
		country(" "), country("gb"),
	}

	l := New(initial, nil, nil)
	assert.Equal(t, []string{"IN", "GB"}, savedCodes(l))
	assert.False(t, l.Contains(""))
}

// TestAddIfEmpty verifies the conditional add used for seeding.
func TestAddIfEmpty(t *testing.T) {
	p := &recordingPersister{}
	l := New(nil, p, nil)

	require.True(t, l.AddIfEmpty(country("IN")))
	assert.Equal(t, []string{"IN"}, savedCodes(l))
	assert.Equal(t, 1, p.count())

	assert.False(t, l.AddIfEmpty(country("GB")))
	assert.Equal(t, []string{"IN"}, savedCodes(l))
	assert.Equal(t, 1, p.count(), "a skipped add does not persist")
}

// TestCountries_ReturnsCopy verifies callers cannot mutate the list.
func TestCountries_ReturnsCopy(t *testing.T) {
	p := &recordingPersister{}
	l := New(nil, p, nil)
	l.Add(country("IN"))

	got := l.Countries()
	got[0].Alpha2Code = "XX"
	assert.True(t, l.Contains("IN"))

	snap := p.last()
	snap[0].Alpha2Code = "YY"
	assert.True(t, l.Contains("IN"), "persisted snapshot must not alias the list")
}

// TestList_PersistsThroughStorage wires the list to the real adapter and
// simulates an application restart.
func TestList_PersistsThroughStorage(t *testing.T) {
	store := storage.NewFileStore(t.TempDir())

	first := storage.NewSavedCountries(store, nil)
	l := New(first.Load(), first, nil)
	l.Add(country("IN"))
	l.Add(country("GB"))
	l.Remove(country("IN"))

	second := storage.NewSavedCountries(store, nil)
	restarted := New(second.Load(), second, nil)
	assert.Equal(t, []string{"GB"}, savedCodes(restarted))
}

// TestList_ConcurrentAdds verifies the invariants hold under contention.
func TestList_ConcurrentAdds(t *testing.T) {
	l := New(nil, &recordingPersister{}, nil)
	var wg sync.WaitGroup

	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Add(country(string([]byte{byte('A' + i%26), byte('A' + i/26)})))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, Capacity, l.Len())
	seen := map[string]bool{}
	for _, c := range l.Countries() {
		assert.False(t, seen[c.Code()], "duplicate code %s", c.Code())
		seen[c.Code()] = true
	}
}
