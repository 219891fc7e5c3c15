package ledger

import "time"

// BankID is the sentinel counterparty for money that no player holds.
const BankID = "BANK"

type PropertyType string

const (
	TypeStreet   PropertyType = "street"
	TypeRailroad PropertyType = "railroad"
	TypeUtility  PropertyType = "utility"
	TypeTax      PropertyType = "tax"
	TypeChance   PropertyType = "chance"
	TypeChest    PropertyType = "chest"
	TypeCorner   PropertyType = "corner"
)

type TransactionType string

const (
	TxRent        TransactionType = "RENT"
	TxBuyProperty TransactionType = "BUY_PROPERTY"
	TxPassGo      TransactionType = "PASS_GO"
	TxTax         TransactionType = "TAX"
	TxTrade       TransactionType = "TRADE"
	TxSalary      TransactionType = "SALARY"
	TxUndo        TransactionType = "UNDO"
	TxOther       TransactionType = "OTHER"
)

type TradeStatus string

const (
	TradePending   TradeStatus = "PENDING"
	TradeAccepted  TradeStatus = "ACCEPTED"
	TradeRejected  TradeStatus = "REJECTED"
	TradeCancelled TradeStatus = "CANCELLED"
)

type GameStatus string

const (
	StatusSetup     GameStatus = "SETUP"
	StatusActive    GameStatus = "ACTIVE"
	StatusCompleted GameStatus = "COMPLETED"
)

type DiceMode string

const (
	DiceDigital  DiceMode = "DIGITAL"
	DicePhysical DiceMode = "PHYSICAL"
)

// RentMode selects how street rent reacts to houses. Standard is per-property;
// group-total sums improvements across a monopolized color group.
type RentMode string

const (
	RentStandard   RentMode = "STANDARD"
	RentGroupTotal RentMode = "GROUP_TOTAL"
)

type Player struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Color             string `json:"color"`
	Token             string `json:"token"`
	Balance           int    `json:"balance"`
	Position          int    `json:"position"`
	IsJailed          bool   `json:"is_jailed"`
	JailTurns         int    `json:"jail_turns"`
	GetOutOfJailCards int    `json:"get_out_of_jail_cards"`
	Loans             int    `json:"loans"`
}

// Property is one of the 40 board slots. Price/Rent hold the effective values
// after multipliers and overrides; CatalogPrice/CatalogRent keep the pristine
// board defaults so settings can be reapplied idempotently.
type Property struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Type      PropertyType `json:"type"`
	Group     string       `json:"group"`
	Price     int          `json:"price"`
	Rent      []int        `json:"rent"` // indexed by improvement level
	HouseCost int          `json:"house_cost"`
	TaxAmount int          `json:"tax_amount"` // only set on tax slots

	OwnerID     string `json:"owner_id"` // empty = unowned
	Houses      int    `json:"houses"`   // 0-4 houses, 5 = hotel
	IsMortgaged bool   `json:"is_mortgaged"`

	PriceOverride *int  `json:"price_override,omitempty"`
	RentOverride  []int `json:"rent_override,omitempty"`

	CatalogPrice int   `json:"-"`
	CatalogRent  []int `json:"-"`
}

type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      int             `json:"amount"` // always unsigned; direction is From -> To
	FromID      string          `json:"from_id"`
	ToID        string          `json:"to_id"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Trade struct {
	ID                  string      `json:"id"`
	SenderID            string      `json:"sender_id"`
	ReceiverID          string      `json:"receiver_id"`
	OfferedMoney        int         `json:"offered_money"`
	RequestedMoney      int         `json:"requested_money"`
	OfferedProperties   []int       `json:"offered_properties"`
	RequestedProperties []int       `json:"requested_properties"`
	Status              TradeStatus `json:"status"`
	CreatedAt           time.Time   `json:"created_at"`
}

// UndoEntry records a reversible positional mutation (manual move, send to
// jail). Reverting is one-shot; a reverted entry is terminal.
type UndoEntry struct {
	ID            int        `json:"id"`
	PlayerID      string     `json:"player_id"`
	PerformedBy   string     `json:"performed_by,omitempty"`
	Description   string     `json:"description"`
	PrevPosition  int        `json:"prev_position"`
	NewPosition   int        `json:"new_position"`
	PrevIsJailed  bool       `json:"prev_is_jailed"`
	NewIsJailed   bool       `json:"new_is_jailed"`
	PassGoAwarded int        `json:"pass_go_awarded"`
	CreatedAt     time.Time  `json:"created_at"`
	Reverted      bool       `json:"reverted"`
	RevertedAt    *time.Time `json:"reverted_at,omitempty"`
	RevertedBy    string     `json:"reverted_by,omitempty"`
}

type Settings struct {
	StartingMoney        int      `json:"starting_money"`
	JailBailAmount       int      `json:"jail_bail_amount"`
	BankTotal            int      `json:"bank_total"`
	BankLowThreshold     int      `json:"bank_low_threshold"`
	ShowBankLowWarning   bool     `json:"show_bank_low_warning"`
	PriceMultiplier      float64  `json:"price_multiplier"`
	RentMultiplier       float64  `json:"rent_multiplier"`
	RentMode             RentMode `json:"rent_mode"`
	ShowGroupHouseTotals bool     `json:"show_group_house_totals"`
	DiceMode             DiceMode `json:"dice_mode"`
}

// GameState is everything a client needs to render a session. The Store owns
// the single mutable copy; Snapshot() hands out value copies.
type GameState struct {
	GameID             string        `json:"game_id"`
	Status             GameStatus    `json:"status"`
	Players            []Player      `json:"players"`
	Properties         []Property    `json:"properties"`
	Transactions       []Transaction `json:"transactions"` // newest first, display window only
	Trades             []Trade       `json:"trades"`
	UndoEntries        []UndoEntry   `json:"undo_entries"` // newest first
	CurrentPlayerIndex int           `json:"current_player_index"`
	TurnCount          int           `json:"turn_count"`
	Settings           Settings      `json:"settings"`
	Notice             string        `json:"notice,omitempty"`
}
