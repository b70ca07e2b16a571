package gateway

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T, token string) (*SessionGuard, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	g := NewSessionGuard(NewMemoryTokenStore(), func() { calls.Add(1) })
	if token != "" {
		require.NoError(t, g.SetToken(token))
	}
	return g, &calls
}

// ===== SessionGuard =====

func TestSessionGuard_UnauthorizedClearsAndSignalsOnce(t *testing.T) {
	g, calls := newTestGuard(t, "tok-1")

	var wg sync.WaitGroup
	var cleared atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.Unauthorized("tok-1") {
				cleared.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(1), cleared.Load())
	token, err := g.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSessionGuard_StaleReportIgnored(t *testing.T) {
	g, calls := newTestGuard(t, "old")
	require.NoError(t, g.SetToken("new"))

	assert.False(t, g.Unauthorized("old"))

	token, err := g.Token()
	require.NoError(t, err)
	assert.Equal(t, "new", token)
	assert.Equal(t, int32(0), calls.Load())
}

func TestSessionGuard_SetTokenRearms(t *testing.T) {
	g, calls := newTestGuard(t, "first")

	assert.True(t, g.Unauthorized("first"))
	require.NoError(t, g.SetToken("second"))
	assert.True(t, g.Unauthorized("second"))

	assert.Equal(t, int32(2), calls.Load())
}

func TestSessionGuard_EmptyTokenIgnored(t *testing.T) {
	g, calls := newTestGuard(t, "")

	assert.False(t, g.Unauthorized(""))
	assert.Equal(t, int32(0), calls.Load())
}

func TestSessionGuard_ClearDoesNotSignal(t *testing.T) {
	g, calls := newTestGuard(t, "tok")

	require.NoError(t, g.Clear())

	token, err := g.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Equal(t, int32(0), calls.Load())
}

// ===== BoltTokenStore =====

func TestBoltTokenStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "token.db")

	store, err := OpenBoltTokenStore(path)
	require.NoError(t, err)
	got, err := store.Get()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Set("persisted-token"))
	require.NoError(t, store.Close())

	reopened, err := OpenBoltTokenStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err = reopened.Get()
	require.NoError(t, err)
	assert.Equal(t, "persisted-token", got)

	require.NoError(t, reopened.Delete())
	got, err = reopened.Get()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBoltTokenStore_BacksSessionGuard(t *testing.T) {
	store, err := OpenBoltTokenStore(filepath.Join(t.TempDir(), "token.db"))
	require.NoError(t, err)
	defer store.Close()

	g := NewSessionGuard(store, nil)
	require.NoError(t, g.SetToken("abc"))
	assert.True(t, g.Unauthorized("abc"))

	got, err := store.Get()
	require.NoError(t, err)
	assert.Empty(t, got)
}
