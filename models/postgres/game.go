package postgres

import (
	"math/rand"
	"time"

	"gorm.io/gorm"
)

/*
 * 'Game' is the session row: status, turn pointer and every per-game setting.
 * It is the parent of players, per-game property state, transactions, trades
 * and undo history.
 */
type Game struct {
	ID                   string    `gorm:"primaryKey;size:50;not null"`
	Status               string    `gorm:"size:20;default:'SETUP';index:idx_games_status"`
	DiceMode             string    `gorm:"size:20;default:'DIGITAL'"`
	RentMode             string    `gorm:"size:20;default:'STANDARD'"`
	StartingMoney        int       `gorm:"default:1500"`
	JailBailAmount       int       `gorm:"default:50"`
	BankTotal            int       `gorm:"default:20580"`
	BankLowThreshold     int       `gorm:"default:2000"`
	ShowBankLowWarning   bool      `gorm:"default:false"`
	PriceMultiplier      float64   `gorm:"default:1"`
	RentMultiplier       float64   `gorm:"default:1"`
	ShowGroupHouseTotals bool      `gorm:"default:false"`
	TurnCount            int       `gorm:"default:1"`
	CurrentPlayerIndex   int       `gorm:"default:0"`
	CreatedAt            time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Players      []*Player        `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Properties   []*GameProperty  `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Transactions []*Transaction   `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Trades       []*Trade         `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UndoEntries  []*UndoEntry     `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Game ids are short codes players type or share in a link
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateGameID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// Ensure the id is truly unique before insert. Collisions are unlikely but
// the loop guards against them anyway.
func (g *Game) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID != "" {
		return nil
	}
	for {
		newID := generateGameID(6)
		var existing Game
		if err := tx.Where("id = ?", newID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				g.ID = newID
				return nil
			}
			return err
		}
	}
}
