package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBackend remembers created games so rehydration can be exercised
// without a database.
type fakeBackend struct {
	*LocalBackend
	created int
	games   map[string]GameState
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{LocalBackend: NewLocalBackend(), games: make(map[string]GameState)}
}

func (b *fakeBackend) CreateGame(s Settings) (string, error) {
	b.created++
	id := fmt.Sprintf("G%03d", b.created)
	b.games[id] = GameState{GameID: id, Status: StatusSetup, TurnCount: 1, Settings: s}
	return id, nil
}

func (b *fakeBackend) LoadGame(gameID string) (*GameState, error) {
	state, ok := b.games[gameID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func TestRegistryCreateAndGet(t *testing.T) {
	r := NewRegistry(newFakeBackend(), testCatalog(), zap.NewNop())

	store, id, err := r.CreateGame()
	require.NoError(t, err)
	assert.Equal(t, "G001", id)
	assert.Equal(t, id, store.GameID())

	found, ok := r.Get(id)
	require.True(t, ok)
	assert.Same(t, store, found)
}

func TestRegistryGetOrLoadRehydrates(t *testing.T) {
	backend := newFakeBackend()
	r := NewRegistry(backend, testCatalog(), zap.NewNop())

	_, id, err := r.CreateGame()
	require.NoError(t, err)

	// Simulate a fresh process: the store is gone but the durable copy isn't.
	r.Remove(id)
	_, ok := r.Get(id)
	require.False(t, ok)

	store, err := r.GetOrLoad(id)
	require.NoError(t, err)
	assert.Equal(t, id, store.GameID())

	// Second call returns the same live store.
	again, err := r.GetOrLoad(id)
	require.NoError(t, err)
	assert.Same(t, store, again)
}

func TestRegistryGetOrLoadUnknownGame(t *testing.T) {
	r := NewRegistry(newFakeBackend(), testCatalog(), zap.NewNop())
	_, err := r.GetOrLoad("nope")
	assert.Error(t, err)
}
