package ledger

import (
	"fmt"
	"sync"
	"time"

	game_constants "Magnate/constants/game"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the game-state reducer for one session. It exclusively owns the
// in-memory state; the Backend owns the durable copy. Every mutation applies
// optimistically to memory, persists best-effort, and emits a change event.
type Store struct {
	mu        sync.RWMutex
	backend   Backend
	log       *zap.Logger
	catalog   []Property // pristine board defaults, never mutated
	state     GameState
	listeners []func(Event)
}

func NewStore(backend Backend, catalog []Property, log *zap.Logger) *Store {
	s := &Store{
		backend: backend,
		log:     log,
		catalog: cloneProperties(catalog),
	}
	s.state = GameState{
		Status:     StatusSetup,
		Properties: cloneProperties(catalog),
		TurnCount:  1,
		Settings:   DefaultSettings(),
	}
	return s
}

func DefaultSettings() Settings {
	return Settings{
		StartingMoney:    game_constants.DefaultStartingMoney,
		JailBailAmount:   game_constants.DefaultJailBail,
		BankTotal:        game_constants.DefaultBankTotal,
		BankLowThreshold: game_constants.DefaultBankLowThreshold,
		PriceMultiplier:  1,
		RentMultiplier:   1,
		RentMode:         RentStandard,
		DiceMode:         DiceDigital,
	}
}

func cloneProperties(props []Property) []Property {
	out := make([]Property, len(props))
	copy(out, props)
	for i := range out {
		out[i].Rent = append([]int(nil), props[i].Rent...)
		out[i].CatalogRent = append([]int(nil), props[i].CatalogRent...)
		out[i].RentOverride = append([]int(nil), props[i].RentOverride...)
		if props[i].PriceOverride != nil {
			v := *props[i].PriceOverride
			out[i].PriceOverride = &v
		}
	}
	return out
}

// Snapshot returns a deep copy of the current state for read-only use.
func (s *Store) Snapshot() GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.state
	snap.Players = append([]Player(nil), s.state.Players...)
	snap.Properties = cloneProperties(s.state.Properties)
	snap.Transactions = append([]Transaction(nil), s.state.Transactions...)
	snap.Trades = append([]Trade(nil), s.state.Trades...)
	snap.UndoEntries = append([]UndoEntry(nil), s.state.UndoEntries...)
	return snap
}

func (s *Store) GameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.GameID
}

// persist runs a backend write and logs a failure instead of propagating it:
// the optimistic local mutation already happened and the session must stay
// usable without a durable backend.
func (s *Store) persist(what string, fn func() error) {
	if err := fn(); err != nil {
		s.log.Warn("persistence failed, keeping local state",
			zap.String("op", what), zap.Error(err))
	}
}

func (s *Store) findPlayer(id string) *Player {
	for i := range s.state.Players {
		if s.state.Players[i].ID == id {
			return &s.state.Players[i]
		}
	}
	return nil
}

func (s *Store) findProperty(id int) *Property {
	for i := range s.state.Properties {
		if s.state.Properties[i].ID == id {
			return &s.state.Properties[i]
		}
	}
	return nil
}

func (s *Store) prependTransaction(tx Transaction) {
	s.state.Transactions = append([]Transaction{tx}, s.state.Transactions...)
	if len(s.state.Transactions) > game_constants.TransactionWindow {
		s.state.Transactions = s.state.Transactions[:game_constants.TransactionWindow]
	}
}

// appendTransaction builds the log entry, stores it locally (trimmed to the
// display window) and persists it. Callers hold the lock.
func (s *Store) appendTransaction(txType TransactionType, amount int, fromID, toID, description string) Transaction {
	tx := Transaction{
		ID:          uuid.NewString(),
		Type:        txType,
		Amount:      amount,
		FromID:      fromID,
		ToID:        toID,
		Description: description,
		CreatedAt:   time.Now(),
	}
	s.prependTransaction(tx)
	gameID := s.state.GameID
	s.persist("insert transaction", func() error {
		return s.backend.InsertTransaction(gameID, tx)
	})
	return tx
}

func (s *Store) header() GameHeader {
	return GameHeader{
		Status:             s.state.Status,
		CurrentPlayerIndex: s.state.CurrentPlayerIndex,
		TurnCount:          s.state.TurnCount,
		Settings:           s.state.Settings,
	}
}

func (s *Store) persistHeader() {
	gameID := s.state.GameID
	status, idx, turn, settings := s.state.Status, s.state.CurrentPlayerIndex, s.state.TurnCount, s.state.Settings
	s.persist("save game header", func() error {
		return s.backend.SaveGameHeader(gameID, status, idx, turn, settings)
	})
}

func (s *Store) persistPlayer(p Player) {
	gameID := s.state.GameID
	s.persist("update player", func() error {
		return s.backend.UpdatePlayer(gameID, p)
	})
}

func (s *Store) persistProperty(p Property) {
	gameID := s.state.GameID
	s.persist("upsert property", func() error {
		return s.backend.UpsertGameProperty(gameID, p)
	})
}

// --- Session lifecycle ---

// CreateGame allocates a durable session. With a local backend the returned
// id is empty and the session lives only in this process.
func (s *Store) CreateGame() (string, error) {
	s.mu.Lock()
	id, err := s.backend.CreateGame(s.state.Settings)
	if err != nil {
		s.mu.Unlock()
		return "", fmt.Errorf("creating game: %w", err)
	}
	s.state.GameID = id
	s.state.Status = StatusSetup
	s.mu.Unlock()

	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
	return id, nil
}

// JoinGame replaces local state with the canonical remote copy.
func (s *Store) JoinGame(gameID string) error {
	state, err := s.backend.LoadGame(gameID)
	if err != nil {
		return fmt.Errorf("joining game %s: %w", gameID, err)
	}
	if state == nil {
		return fmt.Errorf("game %s not found", gameID)
	}

	s.mu.Lock()
	s.state = *state
	s.mu.Unlock()

	// Durable rows carry catalog-base prices; the session's multipliers and
	// overrides are reapplied on every load.
	s.ApplySettingsToProperties()

	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
	return nil
}

// LeaveGame drops the session and resets to a pristine setup state.
func (s *Store) LeaveGame() {
	s.mu.Lock()
	s.state = GameState{
		Status:     StatusSetup,
		Properties: cloneProperties(s.catalog),
		TurnCount:  1,
		Settings:   DefaultSettings(),
	}
	s.mu.Unlock()
}

func (s *Store) AddPlayer(name, color, token string) Player {
	s.mu.Lock()
	p := Player{
		ID:      uuid.NewString(),
		Name:    name,
		Color:   color,
		Token:   token,
		Balance: s.state.Settings.StartingMoney,
	}
	s.state.Players = append(s.state.Players, p)
	gameID := s.state.GameID
	s.persist("insert player", func() error {
		return s.backend.InsertPlayer(gameID, p)
	})
	s.mu.Unlock()

	s.emit(Event{Type: EventPlayerAdded, Player: &p})
	return p
}

// StartGame activates the session with the chosen dice-input mode and seeds
// the per-game property rows from the effective property list.
func (s *Store) StartGame(mode DiceMode) {
	s.mu.Lock()
	s.state.Settings.DiceMode = mode
	s.state.Status = StatusActive
	for _, p := range s.state.Properties {
		s.persistProperty(p)
	}
	s.persistHeader()
	s.mu.Unlock()

	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
}

func ptrHeader(s *Store) *GameHeader {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h := s.header()
	return &h
}

// --- Economic operations ---

// UpdateBalance adjusts one player's balance by a signed amount and appends a
// transaction. No balance floor is enforced here: whether a negative result
// is acceptable is the caller's business rule, matching the physical game
// where debts are settled after the fact.
func (s *Store) UpdateBalance(playerID string, amount int, txType TransactionType, description, counterpartyID string) {
	s.mu.Lock()
	player := s.findPlayer(playerID)
	if player == nil {
		s.mu.Unlock()
		return
	}

	absAmount := amount
	if absAmount < 0 {
		absAmount = -absAmount
	}
	from, to := BankID, BankID
	if amount < 0 {
		from = playerID
	} else {
		to = playerID
		if counterpartyID != "" {
			to = counterpartyID
		}
	}
	tx := s.appendTransaction(txType, absAmount, from, to, description)

	player.Balance += amount
	updated := *player
	s.persistPlayer(updated)
	s.mu.Unlock()

	s.emit(Event{Type: EventTransactionAdded, Transaction: &tx})
	s.emit(Event{Type: EventPlayerUpdated, Player: &updated})
}

// TransferMoney moves cash between two players with a single trade-typed
// transaction record.
func (s *Store) TransferMoney(fromID, toID string, amount int, description string) {
	s.mu.Lock()
	fromPlayer := s.findPlayer(fromID)
	toPlayer := s.findPlayer(toID)
	if fromPlayer == nil || toPlayer == nil {
		s.mu.Unlock()
		return
	}

	tx := s.appendTransaction(TxTrade, amount, fromID, toID, description)
	fromPlayer.Balance -= amount
	toPlayer.Balance += amount
	updatedFrom, updatedTo := *fromPlayer, *toPlayer
	s.persistPlayer(updatedFrom)
	s.persistPlayer(updatedTo)
	s.mu.Unlock()

	s.emit(Event{Type: EventTransactionAdded, Transaction: &tx})
	s.emit(Event{Type: EventPlayerUpdated, Player: &updatedFrom})
	s.emit(Event{Type: EventPlayerUpdated, Player: &updatedTo})
}

// MovePlayer sets the token position only. Pass-GO bonuses and landing
// effects are the turn engine's concern, not the position setter's.
func (s *Store) MovePlayer(playerID string, position int) {
	s.mu.Lock()
	player := s.findPlayer(playerID)
	if player == nil {
		s.mu.Unlock()
		return
	}
	player.Position = position
	updated := *player
	s.persistPlayer(updated)
	s.mu.Unlock()

	s.emit(Event{Type: EventPlayerUpdated, Player: &updated})
}

// ToggleJail flips the jailed flag. The jail-turn counter resets on both
// transitions; on release the counter is meaningless anyway.
func (s *Store) ToggleJail(playerID string) {
	s.mu.Lock()
	player := s.findPlayer(playerID)
	if player == nil {
		s.mu.Unlock()
		return
	}
	player.IsJailed = !player.IsJailed
	player.JailTurns = 0
	updated := *player
	s.persistPlayer(updated)
	s.mu.Unlock()

	s.emit(Event{Type: EventPlayerUpdated, Player: &updated})
}

// IncrementJailTurns advances the jail-turn counter; the third turn releases
// the player automatically and logs a zero-amount transaction.
func (s *Store) IncrementJailTurns(playerID string) {
	s.mu.Lock()
	player := s.findPlayer(playerID)
	if player == nil || !player.IsJailed {
		s.mu.Unlock()
		return
	}

	player.JailTurns++
	var tx *Transaction
	if player.JailTurns >= game_constants.MaxJailTurns {
		player.IsJailed = false
		player.JailTurns = 0
		released := s.appendTransaction(TxOther, 0, BankID, playerID,
			fmt.Sprintf("%s released from jail after 3 turns", player.Name))
		tx = &released
	}
	updated := *player
	s.persistPlayer(updated)
	s.mu.Unlock()

	if tx != nil {
		s.emit(Event{Type: EventTransactionAdded, Transaction: tx})
	}
	s.emit(Event{Type: EventPlayerUpdated, Player: &updated})
}

// TakeLoan credits the player from the bank's finite funds. Returns false
// without any state change when the bank cannot cover the amount. The funds
// check is best-effort under concurrent multi-client use.
func (s *Store) TakeLoan(playerID string, amount int) bool {
	s.mu.Lock()
	player := s.findPlayer(playerID)
	if player == nil || amount <= 0 || s.state.Settings.BankTotal < amount {
		s.mu.Unlock()
		return false
	}

	tx := s.appendTransaction(TxOther, amount, BankID, playerID,
		fmt.Sprintf("Took a $%d loan", amount))
	player.Balance += amount
	player.Loans += amount
	s.state.Settings.BankTotal -= amount
	updated := *player
	s.persistPlayer(updated)
	s.persistHeader()
	s.mu.Unlock()

	s.emit(Event{Type: EventTransactionAdded, Transaction: &tx})
	s.emit(Event{Type: EventPlayerUpdated, Player: &updated})
	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
	return true
}

// RepayLoan pays principal back into the bank. No interest is charged.
// Outstanding principal never goes below zero.
func (s *Store) RepayLoan(playerID string, amount int) {
	s.mu.Lock()
	player := s.findPlayer(playerID)
	if player == nil || amount <= 0 {
		s.mu.Unlock()
		return
	}

	tx := s.appendTransaction(TxOther, amount, playerID, BankID,
		fmt.Sprintf("Repaid $%d loan", amount))
	player.Balance -= amount
	player.Loans -= amount
	if player.Loans < 0 {
		player.Loans = 0
	}
	s.state.Settings.BankTotal += amount
	updated := *player
	s.persistPlayer(updated)
	s.persistHeader()
	s.mu.Unlock()

	s.emit(Event{Type: EventTransactionAdded, Transaction: &tx})
	s.emit(Event{Type: EventPlayerUpdated, Player: &updated})
	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
}

// BankLow reports whether the bank-low warning should show.
func (s *Store) BankLow() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings.ShowBankLowWarning &&
		s.state.Settings.BankTotal < s.state.Settings.BankLowThreshold
}

// NextTurn advances the turn pointer cyclically; wrapping back to the first
// player starts a new turn count.
func (s *Store) NextTurn() {
	s.mu.Lock()
	if len(s.state.Players) == 0 {
		s.mu.Unlock()
		return
	}
	s.state.CurrentPlayerIndex = (s.state.CurrentPlayerIndex + 1) % len(s.state.Players)
	if s.state.CurrentPlayerIndex == 0 {
		s.state.TurnCount++
	}
	s.persistHeader()
	s.mu.Unlock()

	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
}

// EndAndRestart returns the session to setup, keeping the roster but
// resetting every player to the configured starting money, clearing logs,
// trades and turn state.
func (s *Store) EndAndRestart() {
	s.mu.Lock()
	gameID := s.state.GameID
	for i := range s.state.Players {
		p := &s.state.Players[i]
		p.Balance = s.state.Settings.StartingMoney
		p.Position = 0
		p.IsJailed = false
		p.JailTurns = 0
		p.Loans = 0
	}
	for i := range s.state.Properties {
		p := &s.state.Properties[i]
		p.OwnerID = ""
		p.Houses = 0
		p.IsMortgaged = false
	}
	s.state.Transactions = nil
	s.state.Trades = nil
	s.state.UndoEntries = nil
	s.state.CurrentPlayerIndex = 0
	s.state.TurnCount = 1
	s.state.Status = StatusSetup
	s.state.Notice = "Game ended, edit players to start again"
	s.persist("clear game data", func() error {
		return s.backend.ClearGameData(gameID)
	})
	s.state.GameID = ""
	s.mu.Unlock()

	s.emit(Event{Type: EventGameReset})
}
