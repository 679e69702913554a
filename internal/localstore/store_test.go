package localstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Set("authToken", "abc"))

	value, ok, err := store.Get("authToken")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", value)
}

func TestGetMissingKeyIsNotAnError(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	value, ok, err := store.Get("nope")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, value)
}

func TestSetOverwrites(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Set("authToken", "old"))
	require.NoError(t, store.Set("authToken", "new"))

	value, ok, err := store.Get("authToken")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "new", value)
}

func TestDelete(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Set("authToken", "abc"))
	require.NoError(t, store.Delete("authToken"))

	_, ok, err := store.Get("authToken")
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting again is a no-op, not an error.
	require.NoError(t, store.Delete("authToken"))
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("authToken", "abc"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	value, ok, err := reopened.Get("authToken")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", value)
}
