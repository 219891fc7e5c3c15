package ledger

import (
	"sync"

	"go.uber.org/zap"
)

// Registry owns one Store per live session. Stores are created on demand
// and share the same backend and board catalog.
type Registry struct {
	mu      sync.RWMutex
	backend Backend
	catalog []Property
	log     *zap.Logger
	stores  map[string]*Store
}

func NewRegistry(backend Backend, catalog []Property, log *zap.Logger) *Registry {
	return &Registry{
		backend: backend,
		catalog: catalog,
		log:     log,
		stores:  make(map[string]*Store),
	}
}

// CreateGame allocates a fresh session and registers its store.
func (r *Registry) CreateGame() (*Store, string, error) {
	store := NewStore(r.backend, r.catalog, r.log)
	id, err := store.CreateGame()
	if err != nil {
		return nil, "", err
	}
	if id != "" {
		r.mu.Lock()
		r.stores[id] = store
		r.mu.Unlock()
	}
	return store, id, nil
}

// Get returns the store for a session already live in this process.
func (r *Registry) Get(gameID string) (*Store, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	store, ok := r.stores[gameID]
	return store, ok
}

// GetOrLoad returns the live store for a session, rehydrating it from the
// backend when this process has not seen the game yet.
func (r *Registry) GetOrLoad(gameID string) (*Store, error) {
	r.mu.RLock()
	store, ok := r.stores[gameID]
	r.mu.RUnlock()
	if ok {
		return store, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if store, ok := r.stores[gameID]; ok {
		return store, nil
	}
	store = NewStore(r.backend, r.catalog, r.log)
	if err := store.JoinGame(gameID); err != nil {
		return nil, err
	}
	r.stores[gameID] = store
	return store, nil
}

// Remove drops a session's store, typically after an end-and-restart.
func (r *Registry) Remove(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, gameID)
}
