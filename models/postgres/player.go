package postgres

import "time"

/*
 * 'Player' is one seat in a session: identity, token and the economic fields
 * nearly every operation touches. Balance is signed; transient negatives are
 * allowed and resolved by the players, as on the physical board.
 */
type Player struct {
	ID                string    `gorm:"primaryKey;size:50;not null"`
	GameID            string    `gorm:"size:50;not null;index:idx_players_game"`
	Name              string    `gorm:"size:50;not null"`
	Color             string    `gorm:"size:20"`
	Token             string    `gorm:"size:30;default:'dog'"`
	Balance           int       `gorm:"default:0"`
	Position          int       `gorm:"default:0"`
	IsJailed          bool      `gorm:"default:false"`
	JailTurns         int       `gorm:"default:0"`
	GetOutOfJailCards int       `gorm:"default:0"`
	Loans             int       `gorm:"default:0"`
	CreatedAt         time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	Game Game `gorm:"foreignKey:GameID"`
}
