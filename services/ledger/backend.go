package ledger

// Backend is the persistence capability behind a Store. It is chosen once at
// session start: games with no reachable database run on LocalBackend and stay
// fully playable in memory, so operation bodies never branch on availability.
//
// Writes are best-effort from the Store's point of view: a failed write is
// logged and the optimistic in-memory mutation stands. The durable copy is
// reconciled later through inbound events or a full rehydrate.
type Backend interface {
	// CreateGame allocates a durable session row and returns its id.
	CreateGame(settings Settings) (string, error)
	// LoadGame returns the canonical state for an existing session.
	LoadGame(gameID string) (*GameState, error)
	DeleteGame(gameID string) error

	InsertPlayer(gameID string, p Player) error
	UpdatePlayer(gameID string, p Player) error

	// UpsertGameProperty persists the per-game mutable slice of a property:
	// owner, houses, mortgage flag and overrides.
	UpsertGameProperty(gameID string, p Property) error

	// SaveGameHeader persists session status, turn pointer and settings.
	SaveGameHeader(gameID string, status GameStatus, currentPlayerIndex, turnCount int, s Settings) error

	InsertTransaction(gameID string, tx Transaction) error

	InsertTrade(gameID string, t Trade) error
	UpdateTrade(gameID string, t Trade) error

	InsertUndoEntry(gameID string, e UndoEntry) (int, error)
	UpdateUndoEntry(gameID string, e UndoEntry) error
	ListUndoEntries(gameID string) ([]UndoEntry, error)

	// SaveCatalogDefault persists a new board-catalog default, used by
	// "apply as default for future games".
	SaveCatalogDefault(propertyID int, price int, rent []int) error

	ClearGameData(gameID string) error
}

// LocalBackend backs local-only mode: every write succeeds without doing
// anything and reads report nothing durable. Ids are assigned by the Store.
type LocalBackend struct{}

func NewLocalBackend() *LocalBackend { return &LocalBackend{} }

func (b *LocalBackend) CreateGame(Settings) (string, error)         { return "", nil }
func (b *LocalBackend) LoadGame(string) (*GameState, error)         { return nil, nil }
func (b *LocalBackend) DeleteGame(string) error                     { return nil }
func (b *LocalBackend) InsertPlayer(string, Player) error           { return nil }
func (b *LocalBackend) UpdatePlayer(string, Player) error           { return nil }
func (b *LocalBackend) UpsertGameProperty(string, Property) error   { return nil }
func (b *LocalBackend) InsertTransaction(string, Transaction) error { return nil }
func (b *LocalBackend) InsertTrade(string, Trade) error             { return nil }
func (b *LocalBackend) UpdateTrade(string, Trade) error             { return nil }
func (b *LocalBackend) InsertUndoEntry(string, UndoEntry) (int, error) {
	return 0, nil
}
func (b *LocalBackend) UpdateUndoEntry(string, UndoEntry) error { return nil }
func (b *LocalBackend) ListUndoEntries(string) ([]UndoEntry, error) {
	return nil, nil
}
func (b *LocalBackend) SaveGameHeader(string, GameStatus, int, int, Settings) error {
	return nil
}
func (b *LocalBackend) SaveCatalogDefault(int, int, []int) error { return nil }
func (b *LocalBackend) ClearGameData(string) error               { return nil }
