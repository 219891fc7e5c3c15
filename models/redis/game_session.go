package redis

// GameSession is the live snapshot of a session kept in Redis while play is
// in progress. It mirrors the games row plus a couple of transient fields
// that never reach PostgreSQL.
type GameSession struct {
	GameID             string `json:"game_id"`
	Status             string `json:"status"`
	CurrentPlayerIndex int    `json:"current_player_index"`
	TurnCount          int    `json:"turn_count"`
	PlayerCount        int    `json:"player_count"`
	BankTotal          int    `json:"bank_total"`
	UpdatedAt          int64  `json:"updated_at"` // Unix timestamp
}
