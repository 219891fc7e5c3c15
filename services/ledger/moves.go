package ledger

import (
	"fmt"
	"math/rand"

	game_constants "Magnate/constants/game"
)

// ManualMove shifts a player by a signed number of steps, wrapping around the
// board. Moving forward across GO awards the salary. The move is recorded as
// a reversible undo entry carrying any awarded bonus.
func (s *Store) ManualMove(playerID string, steps int, actorID string) (UndoEntry, bool) {
	s.mu.Lock()
	player := s.findPlayer(playerID)
	if player == nil || steps == 0 {
		s.mu.Unlock()
		return UndoEntry{}, false
	}

	prevPosition := player.Position
	newPosition := ((player.Position+steps)%game_constants.BOARD_SIZE + game_constants.BOARD_SIZE) % game_constants.BOARD_SIZE

	passGo := 0
	if steps > 0 && prevPosition+steps >= game_constants.BOARD_SIZE {
		passGo = game_constants.PassGoSalary
	}

	player.Position = newPosition
	var events []Event
	if passGo > 0 {
		player.Balance += passGo
		tx := s.appendTransaction(TxPassGo, passGo, BankID, playerID, "Passed GO")
		events = append(events, Event{Type: EventTransactionAdded, Transaction: &tx})
	}
	updated := *player
	s.persistPlayer(updated)
	events = append(events, Event{Type: EventPlayerUpdated, Player: &updated})
	s.mu.Unlock()

	for _, e := range events {
		s.emit(e)
	}

	entry := s.AddUndoEntry(UndoEntry{
		PlayerID:      playerID,
		PerformedBy:   actorID,
		Description:   fmt.Sprintf("manual move %+d", steps),
		PrevPosition:  prevPosition,
		NewPosition:   newPosition,
		PrevIsJailed:  updated.IsJailed,
		NewIsJailed:   updated.IsJailed,
		PassGoAwarded: passGo,
	})
	return entry, true
}

// SendToJail puts a player straight in jail (no pass-GO on the way), recorded
// as a reversible undo entry.
func (s *Store) SendToJail(playerID, actorID string) (UndoEntry, bool) {
	s.mu.Lock()
	player := s.findPlayer(playerID)
	if player == nil || player.IsJailed {
		s.mu.Unlock()
		return UndoEntry{}, false
	}

	prevPosition := player.Position
	player.Position = game_constants.JAIL_POSITION
	player.IsJailed = true
	player.JailTurns = 0
	updated := *player
	s.persistPlayer(updated)
	s.mu.Unlock()

	s.emit(Event{Type: EventPlayerUpdated, Player: &updated})

	entry := s.AddUndoEntry(UndoEntry{
		PlayerID:     playerID,
		PerformedBy:  actorID,
		Description:  "sent to jail",
		PrevPosition: prevPosition,
		NewPosition:  game_constants.JAIL_POSITION,
		PrevIsJailed: false,
		NewIsJailed:  true,
	})
	return entry, true
}

// PayBail buys a jailed player out: debits the configured bail and clears the
// jailed flag. Declined if the player is not jailed.
func (s *Store) PayBail(playerID string) bool {
	s.mu.Lock()
	player := s.findPlayer(playerID)
	if player == nil || !player.IsJailed {
		s.mu.Unlock()
		return false
	}

	bail := s.state.Settings.JailBailAmount
	player.Balance -= bail
	player.IsJailed = false
	player.JailTurns = 0
	tx := s.appendTransaction(TxOther, bail, playerID, BankID,
		fmt.Sprintf("%s paid $%d bail", player.Name, bail))
	updated := *player
	s.persistPlayer(updated)
	s.mu.Unlock()

	s.emit(Event{Type: EventTransactionAdded, Transaction: &tx})
	s.emit(Event{Type: EventPlayerUpdated, Player: &updated})
	return true
}

// RollDice rolls two digital dice for a player, moves the token and awards
// the pass-GO salary on a wrap. Dice rolls are part of normal play and are
// not undoable. Returns the dice and the landing position.
func (s *Store) RollDice(playerID string) (die1, die2, position int, ok bool) {
	die1 = rand.Intn(6) + 1
	die2 = rand.Intn(6) + 1

	s.mu.Lock()
	player := s.findPlayer(playerID)
	if player == nil || player.IsJailed {
		s.mu.Unlock()
		return die1, die2, 0, false
	}

	prevPosition := player.Position
	player.Position = (player.Position + die1 + die2) % game_constants.BOARD_SIZE

	var events []Event
	if player.Position < prevPosition {
		player.Balance += game_constants.PassGoSalary
		tx := s.appendTransaction(TxSalary, game_constants.PassGoSalary, BankID, playerID, "Passed GO")
		events = append(events, Event{Type: EventTransactionAdded, Transaction: &tx})
	}
	updated := *player
	s.persistPlayer(updated)
	events = append(events, Event{Type: EventPlayerUpdated, Player: &updated})
	s.mu.Unlock()

	for _, e := range events {
		s.emit(e)
	}
	return die1, die2, updated.Position, true
}
