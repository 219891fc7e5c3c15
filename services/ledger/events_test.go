package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationsEmitEvents(t *testing.T) {
	s := newTestStore(t)
	var seen []EventType
	s.Subscribe(func(e Event) {
		seen = append(seen, e.Type)
	})

	p := s.AddPlayer("Alice", "red", "hat")
	s.UpdateBalance(p.ID, -100, TxTax, "Income tax", "")

	require.NotEmpty(t, seen)
	assert.Contains(t, seen, EventPlayerAdded)
	assert.Contains(t, seen, EventTransactionAdded)
	assert.Contains(t, seen, EventPlayerUpdated)
}

func TestApplyPlayerUpdateOverwritesRow(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")

	remote := p
	remote.Balance = 777
	remote.Position = 12
	s.Apply(Event{Type: EventPlayerUpdated, Player: &remote})

	state := s.Snapshot()
	assert.Equal(t, 777, state.Players[0].Balance)
	assert.Equal(t, 12, state.Players[0].Position)
}

func TestApplyPlayerAddedDeduplicates(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")

	s.Apply(Event{Type: EventPlayerAdded, Player: &p})
	assert.Len(t, s.Snapshot().Players, 1)

	other := Player{ID: "remote-1", Name: "Bob", Balance: 1500}
	s.Apply(Event{Type: EventPlayerAdded, Player: &other})
	assert.Len(t, s.Snapshot().Players, 2)
}

func TestApplyTransactionDeduplicates(t *testing.T) {
	s := newTestStore(t)
	tx := Transaction{ID: "tx-1", Type: TxRent, Amount: 50, FromID: "a", ToID: "b"}

	s.Apply(Event{Type: EventTransactionAdded, Transaction: &tx})
	s.Apply(Event{Type: EventTransactionAdded, Transaction: &tx})

	assert.Len(t, s.Snapshot().Transactions, 1)
}

func TestApplyPropertyUpdate(t *testing.T) {
	s := newTestStore(t)

	remote := Property{ID: 1, OwnerID: "remote-player", Houses: 3, IsMortgaged: true}
	s.Apply(Event{Type: EventPropertyUpdated, Property: &remote})

	state := s.Snapshot()
	assert.Equal(t, "remote-player", state.Properties[1].OwnerID)
	assert.Equal(t, 3, state.Properties[1].Houses)
	assert.True(t, state.Properties[1].IsMortgaged)
	// Static catalog fields are not clobbered by the sparse remote row.
	assert.Equal(t, "Old Kent Road", state.Properties[1].Name)
	assert.Equal(t, 60, state.Properties[1].Price)
}

func TestApplyGameHeader(t *testing.T) {
	s := newTestStore(t)
	settings := DefaultSettings()
	settings.StartingMoney = 2500

	s.Apply(Event{Type: EventGameUpdated, Game: &GameHeader{
		Status:             StatusActive,
		CurrentPlayerIndex: 2,
		TurnCount:          7,
		Settings:           settings,
	}})

	state := s.Snapshot()
	assert.Equal(t, StatusActive, state.Status)
	assert.Equal(t, 2, state.CurrentPlayerIndex)
	assert.Equal(t, 7, state.TurnCount)
	assert.Equal(t, 2500, state.Settings.StartingMoney)
}

func TestApplyTradeLifecycle(t *testing.T) {
	s := newTestStore(t)
	trade := Trade{ID: "trade-1", SenderID: "a", ReceiverID: "b", Status: TradePending}

	s.Apply(Event{Type: EventTradeCreated, Trade: &trade})
	s.Apply(Event{Type: EventTradeCreated, Trade: &trade})
	require.Len(t, s.Snapshot().Trades, 1)

	settled := trade
	settled.Status = TradeAccepted
	s.Apply(Event{Type: EventTradeUpdated, Trade: &settled})
	assert.Equal(t, TradeAccepted, s.Snapshot().Trades[0].Status)
}

func TestApplyUndoReverted(t *testing.T) {
	s := newTestStore(t)
	entry := UndoEntry{ID: 9, PlayerID: "a", Description: "manual move +3"}

	s.Apply(Event{Type: EventUndoRecorded, Undo: &entry})
	require.Len(t, s.Snapshot().UndoEntries, 1)

	reverted := entry
	reverted.Reverted = true
	s.Apply(Event{Type: EventUndoReverted, Undo: &reverted})
	assert.True(t, s.Snapshot().UndoEntries[0].Reverted)
}
