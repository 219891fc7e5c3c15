package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayBail(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")

	// Not jailed: nothing to pay.
	assert.False(t, s.PayBail(p.ID))

	s.ToggleJail(p.ID)
	require.True(t, s.PayBail(p.ID))

	state := s.Snapshot()
	assert.False(t, state.Players[0].IsJailed)
	assert.Equal(t, 1500-50, state.Players[0].Balance)
	require.NotEmpty(t, state.Transactions)
	assert.Contains(t, state.Transactions[0].Description, "bail")
}

func TestPayBailUsesConfiguredAmount(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")
	s.SetJailBailAmount(75)

	s.ToggleJail(p.ID)
	require.True(t, s.PayBail(p.ID))
	assert.Equal(t, 1500-75, s.Snapshot().Players[0].Balance)
}

func TestRollDiceMovesWithinBoard(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")

	die1, die2, position, ok := s.RollDice(p.ID)
	require.True(t, ok)
	assert.GreaterOrEqual(t, die1, 1)
	assert.LessOrEqual(t, die1, 6)
	assert.GreaterOrEqual(t, die2, 1)
	assert.LessOrEqual(t, die2, 6)
	assert.Equal(t, die1+die2, position)
	assert.Equal(t, position, s.Snapshot().Players[0].Position)
}

func TestRollDiceBlockedInJail(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")
	s.ToggleJail(p.ID)

	_, _, _, ok := s.RollDice(p.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Snapshot().Players[0].Position)
}

func TestRollDiceAwardsSalaryOnWrap(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")
	s.MovePlayer(p.ID, 38)

	// Any roll from 38 wraps past GO.
	_, _, position, ok := s.RollDice(p.ID)
	require.True(t, ok)
	assert.Less(t, position, 38)
	assert.Equal(t, 1700, s.Snapshot().Players[0].Balance)
}

func TestManualMoveFullLapAwardsSalary(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")
	s.MovePlayer(p.ID, 5)

	// A full lap ends on the same square but still crosses GO.
	entry, ok := s.ManualMove(p.ID, 40, "banker")
	require.True(t, ok)
	assert.Equal(t, 200, entry.PassGoAwarded)
	state := s.Snapshot()
	assert.Equal(t, 5, state.Players[0].Position)
	assert.Equal(t, 1700, state.Players[0].Balance)

	// More than a lap keeps the salary even when the raw position grows.
	s.MovePlayer(p.ID, 0)
	entry, ok = s.ManualMove(p.ID, 43, "banker")
	require.True(t, ok)
	assert.Equal(t, 200, entry.PassGoAwarded)
	assert.Equal(t, 3, s.Snapshot().Players[0].Position)
}

func TestManualMoveUnknownPlayer(t *testing.T) {
	s := newTestStore(t)
	_, ok := s.ManualMove("ghost", 3, "banker")
	assert.False(t, ok)
}

func TestMovePlayerDirect(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")

	s.MovePlayer(p.ID, 24)
	state := s.Snapshot()
	assert.Equal(t, 24, state.Players[0].Position)
	// Direct placement never pays a salary or records an undo entry.
	assert.Equal(t, 1500, state.Players[0].Balance)
	assert.Empty(t, state.UndoEntries)
}
