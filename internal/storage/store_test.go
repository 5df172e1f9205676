package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactories lets the same behavioural tests run against every KVStore.
func storeFactories(t *testing.T) map[string]func() KVStore {
	return map[string]func() KVStore{
		"memory": func() KVStore { return NewMemoryStore() },
		"file":   func() KVStore { return NewFileStore(filepath.Join(t.TempDir(), "data")) },
	}
}

// TestKVStore_Contract verifies Get/Set/Delete semantics shared by all stores.
func TestKVStore_Contract(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory()

			_, found, err := s.Get("missing")
			require.NoError(t, err)
			assert.False(t, found, "absent key must not be found")

			require.NoError(t, s.Set("key", []byte("first")))
			v, found, err := s.Get("key")
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, []byte("first"), v)

			// Set overwrites unconditionally.
			require.NoError(t, s.Set("key", []byte("second")))
			v, _, err = s.Get("key")
			require.NoError(t, err)
			assert.Equal(t, []byte("second"), v)

			require.NoError(t, s.Delete("key"))
			_, found, err = s.Get("key")
			require.NoError(t, err)
			assert.False(t, found)

			// Deleting twice is fine.
			assert.NoError(t, s.Delete("key"))
		})
	}
}

// TestKVStore_RejectsUnsafeKeys verifies path-like keys are refused.
func TestKVStore_RejectsUnsafeKeys(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory()
			for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
				assert.Error(t, s.Set(key, []byte("x")), "key %q", key)
			}
		})
	}
}

// TestMemoryStore_CopiesValues ensures callers cannot alias stored bytes.
func TestMemoryStore_CopiesValues(t *testing.T) {
	s := NewMemoryStore()
	in := []byte("abc")
	require.NoError(t, s.Set("k", in))
	in[0] = 'z'

	out, _, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[1] = 'z'
	again, _, _ := s.Get("k")
	assert.Equal(t, []byte("abc"), again)
}

// TestMemoryStore_ConcurrentAccess exercises the store under the race detector.
func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	numGoroutines := 50

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i)
			assert.NoError(t, s.Set(key, []byte(key)))
			v, found, err := s.Get(key)
			assert.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, []byte(key), v)
		}(i)
	}
	wg.Wait()
}

// TestFileStore_Layout verifies the on-disk layout and that no temp file
// survives a successful write.
func TestFileStore_Layout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewFileStore(dir)
	assert.Equal(t, dir, s.Dir())

	require.NoError(t, s.Set("SavedCountries", []byte(`[]`)))

	data, err := os.ReadFile(filepath.Join(dir, "SavedCountries.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	_, err = os.Stat(filepath.Join(dir, "SavedCountries.json.tmp"))
	assert.True(t, os.IsNotExist(err), "temp file must be renamed away")
}

// TestFileStore_SurvivesReopen verifies values persist across instances,
// which is how the saved list survives application restarts.
func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewFileStore(dir).Set("k", []byte("v")))

	v, found, err := NewFileStore(dir).Get("k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("v"), v)
}

// TestFileStore_ReadError verifies non-ENOENT failures are reported.
func TestFileStore_ReadError(t *testing.T) {
	dir := t.TempDir()
	// A directory where the value file should be makes ReadFile fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "k.json"), 0o755))

	_, found, err := NewFileStore(dir).Get("k")
	require.Error(t, err)
	assert.False(t, found)
}
