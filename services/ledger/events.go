package ledger

// EventType tags a row-level change notification.
type EventType string

const (
	EventGameUpdated      EventType = "game_updated"
	EventPlayerAdded      EventType = "player_added"
	EventPlayerUpdated    EventType = "player_updated"
	EventPropertyUpdated  EventType = "property_updated"
	EventTransactionAdded EventType = "transaction_added"
	EventTradeCreated     EventType = "trade_created"
	EventTradeUpdated     EventType = "trade_updated"
	EventUndoRecorded     EventType = "undo_recorded"
	EventUndoReverted     EventType = "undo_reverted"
	EventGameReset        EventType = "game_reset"
)

// GameHeader is the session-level slice of state carried by game_updated.
type GameHeader struct {
	Status             GameStatus `json:"status"`
	CurrentPlayerIndex int        `json:"current_player_index"`
	TurnCount          int        `json:"turn_count"`
	Settings           Settings   `json:"settings"`
}

// Event is a typed change notification. Local mutations emit them for
// broadcast; notifications arriving from other writers are fed back through
// Store.Apply so that remote and local changes share one reducer path.
type Event struct {
	Type        EventType    `json:"type"`
	GameID      string       `json:"game_id"`
	Game        *GameHeader  `json:"game,omitempty"`
	Player      *Player      `json:"player,omitempty"`
	Property    *Property    `json:"property,omitempty"`
	Transaction *Transaction `json:"transaction,omitempty"`
	Trade       *Trade       `json:"trade,omitempty"`
	Undo        *UndoEntry   `json:"undo,omitempty"`
}

// Subscribe registers a listener invoked after every committed mutation.
// Listeners run outside the state lock and must not call back into mutating
// Store methods synchronously.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) emit(e Event) {
	s.mu.RLock()
	e.GameID = s.state.GameID
	listeners := make([]func(Event), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(e)
	}
}

// Apply reconciles an authoritative change notification into local state.
// Remote values overwrite local ones at row granularity (last remote write
// wins); unknown rows are inserted. Apply never writes to the backend; the
// notification's sender already owns the durable copy.
func (s *Store) Apply(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e.Type {
	case EventGameUpdated:
		if e.Game != nil {
			s.state.Status = e.Game.Status
			s.state.CurrentPlayerIndex = e.Game.CurrentPlayerIndex
			s.state.TurnCount = e.Game.TurnCount
			s.state.Settings = e.Game.Settings
		}
	case EventPlayerAdded:
		if e.Player != nil && s.findPlayer(e.Player.ID) == nil {
			s.state.Players = append(s.state.Players, *e.Player)
		}
	case EventPlayerUpdated:
		if e.Player != nil {
			if p := s.findPlayer(e.Player.ID); p != nil {
				*p = *e.Player
			}
		}
	case EventPropertyUpdated:
		if e.Property != nil {
			if p := s.findProperty(e.Property.ID); p != nil {
				p.OwnerID = e.Property.OwnerID
				p.Houses = e.Property.Houses
				p.IsMortgaged = e.Property.IsMortgaged
				p.PriceOverride = e.Property.PriceOverride
				p.RentOverride = e.Property.RentOverride
			}
		}
	case EventTransactionAdded:
		if e.Transaction != nil {
			for _, tx := range s.state.Transactions {
				if tx.ID == e.Transaction.ID {
					return
				}
			}
			s.prependTransaction(*e.Transaction)
		}
	case EventTradeCreated:
		if e.Trade != nil {
			for _, t := range s.state.Trades {
				if t.ID == e.Trade.ID {
					return
				}
			}
			s.state.Trades = append([]Trade{*e.Trade}, s.state.Trades...)
		}
	case EventTradeUpdated:
		if e.Trade != nil {
			for i := range s.state.Trades {
				if s.state.Trades[i].ID == e.Trade.ID {
					s.state.Trades[i] = *e.Trade
				}
			}
		}
	case EventUndoRecorded:
		if e.Undo != nil {
			s.state.UndoEntries = append([]UndoEntry{*e.Undo}, s.state.UndoEntries...)
		}
	case EventUndoReverted:
		if e.Undo != nil {
			for i := range s.state.UndoEntries {
				if s.state.UndoEntries[i].ID == e.Undo.ID {
					s.state.UndoEntries[i] = *e.Undo
				}
			}
		}
	}
}
