package game_constants

// Board layout
const BOARD_SIZE = 40
const GO_POSITION = 0
const JAIL_POSITION = 10

// Economy defaults (session settings start from these, all adjustable per game)
const DefaultStartingMoney = 1500
const DefaultJailBail = 50
const DefaultBankTotal = 20580
const DefaultBankLowThreshold = 2000
const PassGoSalary = 200

// Jail
const MaxJailTurns = 3

// Improvement levels: 1-4 houses, 5 = hotel
const MaxImprovementLevel = 5

// Railroad rent doubles per owned railroad starting from this base
const RailroadBaseRent = 25

// Utility rent = dice total times the multiplier
const UtilityMultiplierSingle = 4
const UtilityMultiplierBoth = 10

// Transaction log window kept in memory for display. The durable log in
// PostgreSQL is never truncated.
const TransactionWindow = 50
