package ledger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RecordUndo notes that something undoable happened: a zero-amount
// undo-tagged transaction for the visible log. Purely observational, it never
// reverses state itself.
func (s *Store) RecordUndo(playerID, description string) {
	s.mu.Lock()
	tx := s.appendTransaction(TxUndo, 0, playerID, BankID, description)
	s.mu.Unlock()
	s.emit(Event{Type: EventTransactionAdded, Transaction: &tx})
}

// AddUndoEntry appends a reversible-move audit record. The backend assigns
// the id when it can; local-only sessions number entries themselves.
func (s *Store) AddUndoEntry(entry UndoEntry) UndoEntry {
	s.mu.Lock()
	entry.CreatedAt = time.Now()
	gameID := s.state.GameID
	id, err := s.backend.InsertUndoEntry(gameID, entry)
	if err != nil {
		s.log.Warn("persistence failed, keeping local state",
			zap.String("op", "insert undo entry"), zap.Error(err))
	}
	if id == 0 {
		id = s.nextUndoID()
	}
	entry.ID = id
	s.state.UndoEntries = append([]UndoEntry{entry}, s.state.UndoEntries...)
	s.mu.Unlock()

	s.emit(Event{Type: EventUndoRecorded, Undo: &entry})
	return entry
}

func (s *Store) nextUndoID() int {
	max := 0
	for _, e := range s.state.UndoEntries {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

// FetchUndoEntries reloads the audit list from the durable copy, newest
// first. Local-only sessions just return what is in memory.
func (s *Store) FetchUndoEntries() []UndoEntry {
	s.mu.Lock()
	gameID := s.state.GameID
	entries, err := s.backend.ListUndoEntries(gameID)
	if err != nil {
		s.log.Warn("failed to fetch undo entries", zap.Error(err))
	} else if entries != nil {
		s.state.UndoEntries = entries
	}
	out := append([]UndoEntry(nil), s.state.UndoEntries...)
	s.mu.Unlock()
	return out
}

// RevertUndoEntry rolls a reversible move back: position is restored, the
// jail flag is put back if it changed, and any pass-GO bonus is debited
// again. Reverting is idempotent: a second call on the same entry reports
// false and changes nothing. If the affected player has left, the entry is
// still marked reverted for audit continuity.
func (s *Store) RevertUndoEntry(entryID int, actorID string) bool {
	s.mu.Lock()
	var entry *UndoEntry
	for i := range s.state.UndoEntries {
		if s.state.UndoEntries[i].ID == entryID {
			entry = &s.state.UndoEntries[i]
			break
		}
	}
	if entry == nil || entry.Reverted {
		s.mu.Unlock()
		return false
	}

	var events []Event
	player := s.findPlayer(entry.PlayerID)
	if player != nil {
		player.Position = entry.PrevPosition
		if player.IsJailed != entry.PrevIsJailed {
			player.IsJailed = entry.PrevIsJailed
			player.JailTurns = 0
		}
		if entry.PassGoAwarded > 0 {
			player.Balance -= entry.PassGoAwarded
			debit := s.appendTransaction(TxUndo, entry.PassGoAwarded, entry.PlayerID, BankID,
				fmt.Sprintf("Undo %s: returned pass-GO bonus", entry.Description))
			events = append(events, Event{Type: EventTransactionAdded, Transaction: &debit})
		}
		updated := *player
		s.persistPlayer(updated)
		events = append(events, Event{Type: EventPlayerUpdated, Player: &updated})
	}

	now := time.Now()
	entry.Reverted = true
	entry.RevertedAt = &now
	entry.RevertedBy = actorID
	updatedEntry := *entry
	gameID := s.state.GameID
	s.persist("update undo entry", func() error {
		return s.backend.UpdateUndoEntry(gameID, updatedEntry)
	})

	audit := s.appendTransaction(TxUndo, 0, entry.PlayerID, BankID,
		fmt.Sprintf("Undo %s", entry.Description))
	events = append(events,
		Event{Type: EventTransactionAdded, Transaction: &audit},
		Event{Type: EventUndoReverted, Undo: &updatedEntry})
	s.mu.Unlock()

	for _, e := range events {
		s.emit(e)
	}
	return true
}
