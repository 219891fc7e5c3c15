package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCatalog() []Property {
	return []Property{
		{ID: 0, Name: "GO", Type: TypeCorner, Group: "corner"},
		{ID: 1, Name: "Old Kent Road", Type: TypeStreet, Group: "brown", Price: 60,
			Rent: []int{2, 10, 30, 90, 160, 250}, HouseCost: 50,
			CatalogPrice: 60, CatalogRent: []int{2, 10, 30, 90, 160, 250}},
		{ID: 3, Name: "Whitechapel Road", Type: TypeStreet, Group: "brown", Price: 60,
			Rent: []int{4, 20, 60, 180, 320, 450}, HouseCost: 50,
			CatalogPrice: 60, CatalogRent: []int{4, 20, 60, 180, 320, 450}},
		{ID: 5, Name: "Kings Cross Station", Type: TypeRailroad, Group: "railroad", Price: 200,
			CatalogPrice: 200},
		{ID: 12, Name: "Electric Company", Type: TypeUtility, Group: "utility", Price: 150,
			CatalogPrice: 150},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(NewLocalBackend(), testCatalog(), zap.NewNop())
}

func TestAddPlayerStartsWithConfiguredMoney(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 1500, p.Balance)

	s.SetStartingMoney(2000)
	q := s.AddPlayer("Bob", "blue", "car")
	assert.Equal(t, 2000, q.Balance)
}

func TestUpdateBalanceSignsAndTransactionLog(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")

	s.UpdateBalance(p.ID, -100, TxTax, "Income tax", "")
	s.UpdateBalance(p.ID, 50, TxOther, "Bank error in your favor", "")

	state := s.Snapshot()
	assert.Equal(t, 1500-100+50, state.Players[0].Balance)
	require.Len(t, state.Transactions, 2)
	// Newest first.
	assert.Equal(t, 50, state.Transactions[0].Amount)
	assert.Equal(t, BankID, state.Transactions[0].FromID)
	assert.Equal(t, p.ID, state.Transactions[0].ToID)
	assert.Equal(t, 100, state.Transactions[1].Amount)
	assert.Equal(t, p.ID, state.Transactions[1].FromID)
}

func TestTransferMoney(t *testing.T) {
	s := newTestStore(t)
	a := s.AddPlayer("Alice", "red", "hat")
	b := s.AddPlayer("Bob", "blue", "car")

	s.TransferMoney(a.ID, b.ID, 300, "Rent for Mayfair")

	state := s.Snapshot()
	assert.Equal(t, 1200, state.Players[0].Balance)
	assert.Equal(t, 1800, state.Players[1].Balance)
	require.Len(t, state.Transactions, 1)
	assert.Equal(t, TxTrade, state.Transactions[0].Type)
}

func TestTakeLoanRejectedWhenBankCannotCover(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")
	before := s.Snapshot()

	ok := s.TakeLoan(p.ID, before.Settings.BankTotal+1)
	assert.False(t, ok)

	after := s.Snapshot()
	assert.Equal(t, before.Players[0].Balance, after.Players[0].Balance)
	assert.Equal(t, before.Players[0].Loans, after.Players[0].Loans)
	assert.Equal(t, before.Settings.BankTotal, after.Settings.BankTotal)
	assert.Empty(t, after.Transactions)
}

func TestLoanRoundTripNoInterest(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")
	before := s.Snapshot()

	require.True(t, s.TakeLoan(p.ID, 500))
	mid := s.Snapshot()
	assert.Equal(t, before.Players[0].Balance+500, mid.Players[0].Balance)
	assert.Equal(t, 500, mid.Players[0].Loans)
	assert.Equal(t, before.Settings.BankTotal-500, mid.Settings.BankTotal)

	s.RepayLoan(p.ID, 500)
	after := s.Snapshot()
	assert.Equal(t, before.Players[0].Balance, after.Players[0].Balance)
	assert.Equal(t, 0, after.Players[0].Loans)
	assert.Equal(t, before.Settings.BankTotal, after.Settings.BankTotal)
}

func TestRepayLoanNeverGoesNegative(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")
	require.True(t, s.TakeLoan(p.ID, 100))

	s.RepayLoan(p.ID, 300)
	state := s.Snapshot()
	assert.Equal(t, 0, state.Players[0].Loans)
}

func TestBankLowWarning(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.BankLow())

	s.SetBankLowWarning(2000, true)
	s.SetBankTotal(1500)
	assert.True(t, s.BankLow())

	s.SetBankLowWarning(2000, false)
	assert.False(t, s.BankLow())
}

func TestJailLifecycle(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")

	s.ToggleJail(p.ID)
	state := s.Snapshot()
	assert.True(t, state.Players[0].IsJailed)
	assert.Equal(t, 0, state.Players[0].JailTurns)

	s.IncrementJailTurns(p.ID)
	s.IncrementJailTurns(p.ID)
	state = s.Snapshot()
	assert.True(t, state.Players[0].IsJailed)
	assert.Equal(t, 2, state.Players[0].JailTurns)

	// Third turn releases automatically and logs it.
	s.IncrementJailTurns(p.ID)
	state = s.Snapshot()
	assert.False(t, state.Players[0].IsJailed)
	assert.Equal(t, 0, state.Players[0].JailTurns)
	require.NotEmpty(t, state.Transactions)
	assert.Contains(t, state.Transactions[0].Description, "released from jail")
}

func TestNextTurnWrapsAndCounts(t *testing.T) {
	s := newTestStore(t)
	s.AddPlayer("Alice", "red", "hat")
	s.AddPlayer("Bob", "blue", "car")
	s.AddPlayer("Cleo", "green", "dog")

	assert.Equal(t, 1, s.Snapshot().TurnCount)

	s.NextTurn()
	s.NextTurn()
	state := s.Snapshot()
	assert.Equal(t, 2, state.CurrentPlayerIndex)
	assert.Equal(t, 1, state.TurnCount)

	s.NextTurn()
	state = s.Snapshot()
	assert.Equal(t, 0, state.CurrentPlayerIndex)
	assert.Equal(t, 2, state.TurnCount)
}

func TestEndAndRestartPreservesRoster(t *testing.T) {
	s := newTestStore(t)
	a := s.AddPlayer("Alice", "red", "hat")
	b := s.AddPlayer("Bob", "blue", "car")
	s.StartGame(DicePhysical)

	s.AssignProperty(1, a.ID)
	s.AssignProperty(3, a.ID)
	require.True(t, s.TakeLoan(b.ID, 400))
	s.ManualMove(a.ID, 5, a.ID)
	s.CreateTrade(a.ID, b.ID, 100, 0, nil, nil)
	s.NextTurn()

	s.EndAndRestart()

	state := s.Snapshot()
	require.Len(t, state.Players, 2)
	for _, p := range state.Players {
		assert.Equal(t, state.Settings.StartingMoney, p.Balance)
		assert.Equal(t, 0, p.Position)
		assert.False(t, p.IsJailed)
		assert.Equal(t, 0, p.Loans)
	}
	for _, prop := range state.Properties {
		assert.Empty(t, prop.OwnerID)
		assert.Equal(t, 0, prop.Houses)
		assert.False(t, prop.IsMortgaged)
	}
	assert.Empty(t, state.Transactions)
	assert.Empty(t, state.Trades)
	assert.Empty(t, state.UndoEntries)
	assert.Equal(t, StatusSetup, state.Status)
	assert.Equal(t, 0, state.CurrentPlayerIndex)
	assert.Equal(t, 1, state.TurnCount)
	assert.NotEmpty(t, state.Notice)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")

	snap := s.Snapshot()
	snap.Players[0].Balance = 0
	snap.Properties[1].OwnerID = "intruder"

	state := s.Snapshot()
	assert.Equal(t, 1500, state.Players[0].Balance)
	assert.Empty(t, state.Properties[1].OwnerID)
	_ = p
}

func TestMortgageRoundTrip(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")
	s.AssignProperty(1, p.ID)

	require.True(t, s.ToggleMortgage(1))
	state := s.Snapshot()
	assert.True(t, state.Properties[1].IsMortgaged)
	assert.Equal(t, 1500+30, state.Players[0].Balance) // floor(60*0.5)

	require.True(t, s.ToggleMortgage(1))
	state = s.Snapshot()
	assert.False(t, state.Properties[1].IsMortgaged)
	assert.Equal(t, 1530-33, state.Players[0].Balance) // ceil(30*1.1)
}

func TestUnmortgageRequiresFunds(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")
	s.AssignProperty(1, p.ID)
	require.True(t, s.ToggleMortgage(1))

	s.UpdateBalance(p.ID, -1520, TxOther, "spent it all", "")
	assert.False(t, s.ToggleMortgage(1))
	assert.True(t, s.Snapshot().Properties[1].IsMortgaged)
}

func TestImprovePropertyRules(t *testing.T) {
	s := newTestStore(t)
	p := s.AddPlayer("Alice", "red", "hat")
	s.AssignProperty(1, p.ID)

	// No monopoly yet.
	assert.False(t, s.ImproveProperty(1, "buy"))

	s.AssignProperty(3, p.ID)
	require.True(t, s.ImproveProperty(1, "buy"))
	state := s.Snapshot()
	assert.Equal(t, 1, state.Properties[1].Houses)
	assert.Equal(t, 1450, state.Players[0].Balance)

	// Hotel cap.
	for i := 0; i < 4; i++ {
		require.True(t, s.ImproveProperty(1, "buy"))
	}
	assert.False(t, s.ImproveProperty(1, "buy"))
	assert.Equal(t, 5, s.Snapshot().Properties[1].Houses)

	// Selling refunds half the house cost.
	before := s.Snapshot().Players[0].Balance
	require.True(t, s.ImproveProperty(1, "sell"))
	state = s.Snapshot()
	assert.Equal(t, 4, state.Properties[1].Houses)
	assert.Equal(t, before+25, state.Players[0].Balance)

	// Selling with no houses fails.
	assert.False(t, s.ImproveProperty(3, "sell"))
}
