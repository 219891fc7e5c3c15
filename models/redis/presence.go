package redis

type ClientStatus string

const (
	StatusOnline  ClientStatus = "online"
	StatusOffline ClientStatus = "offline"
	StatusPlaying ClientStatus = "playing"
)

// ClientPresence tracks a connected client inside a game room.
type ClientPresence struct {
	PlayerID string       `json:"player_id"`
	GameID   string       `json:"game_id"`
	Status   ClientStatus `json:"status"`
	LastPing int64        `json:"last_ping"` // Unix timestamp
	SocketID string       `json:"socket_id"` // For direct messaging
}
