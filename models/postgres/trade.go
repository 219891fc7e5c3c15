package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'Trade' is a proposal between two players. Status moves PENDING ->
 * ACCEPTED/REJECTED (receiver) or CANCELLED (proposer); terminal states are
 * never rewritten. Property lists are board indices stored as JSONB.
 */
type Trade struct {
	ID                  string         `gorm:"primaryKey;size:50;not null"`
	GameID              string         `gorm:"size:50;not null;index:idx_trades_game"`
	SenderID            string         `gorm:"size:50;not null"`
	ReceiverID          string         `gorm:"size:50;not null"`
	OfferedMoney        int            `gorm:"default:0"`
	RequestedMoney      int            `gorm:"default:0"`
	OfferedProperties   datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	RequestedProperties datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Status              string         `gorm:"size:20;default:'PENDING'"`
	CreatedAt           time.Time      `gorm:"default:CURRENT_TIMESTAMP"`

	Game Game `gorm:"foreignKey:GameID"`
}
