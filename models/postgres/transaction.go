package postgres

import "time"

/*
 * 'Transaction' is the append-only money log. Rows are never updated or
 * deleted; the in-memory display window truncates, the table does not.
 * FromID/ToID hold a player id or NULL for the bank.
 */
type Transaction struct {
	ID          string    `gorm:"primaryKey;size:50;not null"`
	GameID      string    `gorm:"size:50;not null;index:idx_transactions_game"`
	Type        string    `gorm:"size:20;not null"`
	Amount      int       `gorm:"not null"` // unsigned; direction is from -> to
	FromID      *string   `gorm:"size:50"`
	ToID        *string   `gorm:"size:50"`
	Description string    `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_transactions_created"`

	Game Game `gorm:"foreignKey:GameID"`
}
