package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'GameProperty' is the mutable per-game slice of a board slot: owner,
 * improvement level, mortgage flag and the per-game price/rent overrides.
 * The immutable slot definition (name, group, base rent table) lives in the
 * board catalog, keyed by the same index.
 */
type GameProperty struct {
	// NOTE: composite primary key definition
	GameID        string         `gorm:"primaryKey;size:50;not null"`
	PropertyIndex int            `gorm:"primaryKey;not null"`
	OwnerID       *string        `gorm:"size:50;index:idx_game_properties_owner"`
	Houses        int            `gorm:"default:0"` // 0-4 houses, 5 = hotel; always 0 for non-streets
	IsMortgaged   bool           `gorm:"default:false"`
	PriceOverride *int           `gorm:""`
	RentOverride  datatypes.JSON `gorm:"type:jsonb"`

	Game Game `gorm:"foreignKey:GameID"`
}

/*
 * 'PropertyCatalog' persists edited board defaults ("apply as default for
 * future games"). Absent rows fall back to the embedded board file.
 */
type PropertyCatalog struct {
	PropertyIndex int            `gorm:"primaryKey;not null"`
	Price         int            `gorm:"default:0"`
	Rent          datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
}
