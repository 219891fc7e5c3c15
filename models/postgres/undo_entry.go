package postgres

import "time"

/*
 * 'UndoEntry' audits a reversible positional mutation (manual move, send to
 * jail). A row is updated exactly once, when reverted; reverting again is a
 * no-op at the service layer.
 */
type UndoEntry struct {
	ID            int       `gorm:"primaryKey;autoIncrement"`
	GameID        string    `gorm:"size:50;not null;index:idx_undo_entries_game"`
	PlayerID      string    `gorm:"size:50;not null"`
	PerformedBy   *string   `gorm:"size:50"`
	Description   string    `gorm:"size:255"`
	PrevPosition  int       `gorm:"not null"`
	NewPosition   int       `gorm:"not null"`
	PrevIsJailed  bool      `gorm:"default:false"`
	NewIsJailed   bool      `gorm:"default:false"`
	PassGoAwarded int       `gorm:"default:0"`
	Reverted      bool      `gorm:"default:false"`
	RevertedAt    *time.Time
	RevertedBy    *string   `gorm:"size:50"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	Game Game `gorm:"foreignKey:GameID"`
}
