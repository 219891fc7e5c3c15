package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"Magnate/models/postgres"
	"Magnate/services/ledger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresBackend is the remote persistence capability: GORM rows are the
// durable truth that in-memory stores reconcile against.
type PostgresBackend struct {
	db      *gorm.DB
	catalog []ledger.Property
}

func NewPostgresBackend(db *gorm.DB, catalog []ledger.Property) *PostgresBackend {
	return &PostgresBackend{db: db, catalog: catalog}
}

func marshalInts(values []int) datatypes.JSON {
	if values == nil {
		return nil
	}
	data, _ := json.Marshal(values)
	return datatypes.JSON(data)
}

func unmarshalInts(data datatypes.JSON) []int {
	if len(data) == 0 {
		return nil
	}
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return nil
	}
	return values
}

func nullableID(id string) *string {
	if id == "" || id == ledger.BankID {
		return nil
	}
	return &id
}

func idOrBank(id *string) string {
	if id == nil {
		return ledger.BankID
	}
	return *id
}

func (b *PostgresBackend) CreateGame(s ledger.Settings) (string, error) {
	game := postgres.Game{
		Status:               string(ledger.StatusSetup),
		DiceMode:             string(s.DiceMode),
		RentMode:             string(s.RentMode),
		StartingMoney:        s.StartingMoney,
		JailBailAmount:       s.JailBailAmount,
		BankTotal:            s.BankTotal,
		BankLowThreshold:     s.BankLowThreshold,
		ShowBankLowWarning:   s.ShowBankLowWarning,
		PriceMultiplier:      s.PriceMultiplier,
		RentMultiplier:       s.RentMultiplier,
		ShowGroupHouseTotals: s.ShowGroupHouseTotals,
		TurnCount:            1,
	}
	if err := b.db.Create(&game).Error; err != nil {
		return "", fmt.Errorf("creating game row: %w", err)
	}
	return game.ID, nil
}

// LoadGame assembles the canonical state: session row, roster, per-game
// property rows merged over the board catalog (with any persisted catalog
// defaults applied first), the recent transaction window, trades and undo
// history.
func (b *PostgresBackend) LoadGame(gameID string) (*ledger.GameState, error) {
	var game postgres.Game
	if err := b.db.Where("id = ?", gameID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading game row: %w", err)
	}

	state := &ledger.GameState{
		GameID:             game.ID,
		Status:             ledger.GameStatus(game.Status),
		CurrentPlayerIndex: game.CurrentPlayerIndex,
		TurnCount:          game.TurnCount,
		Settings: ledger.Settings{
			StartingMoney:        game.StartingMoney,
			JailBailAmount:       game.JailBailAmount,
			BankTotal:            game.BankTotal,
			BankLowThreshold:     game.BankLowThreshold,
			ShowBankLowWarning:   game.ShowBankLowWarning,
			PriceMultiplier:      game.PriceMultiplier,
			RentMultiplier:       game.RentMultiplier,
			RentMode:             ledger.RentMode(game.RentMode),
			ShowGroupHouseTotals: game.ShowGroupHouseTotals,
			DiceMode:             ledger.DiceMode(game.DiceMode),
		},
	}

	var players []postgres.Player
	if err := b.db.Where("game_id = ?", gameID).Order("created_at asc").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("loading players: %w", err)
	}
	for _, p := range players {
		state.Players = append(state.Players, ledger.Player{
			ID:                p.ID,
			Name:              p.Name,
			Color:             p.Color,
			Token:             p.Token,
			Balance:           p.Balance,
			Position:          p.Position,
			IsJailed:          p.IsJailed,
			JailTurns:         p.JailTurns,
			GetOutOfJailCards: p.GetOutOfJailCards,
			Loans:             p.Loans,
		})
	}

	properties, err := b.loadProperties(gameID)
	if err != nil {
		return nil, err
	}
	state.Properties = properties

	var transactions []postgres.Transaction
	if err := b.db.Where("game_id = ?", gameID).
		Order("created_at desc").Limit(50).Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	for _, tx := range transactions {
		state.Transactions = append(state.Transactions, ledger.Transaction{
			ID:          tx.ID,
			Type:        ledger.TransactionType(tx.Type),
			Amount:      tx.Amount,
			FromID:      idOrBank(tx.FromID),
			ToID:        idOrBank(tx.ToID),
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		})
	}

	var trades []postgres.Trade
	if err := b.db.Where("game_id = ?", gameID).Order("created_at desc").Find(&trades).Error; err != nil {
		return nil, fmt.Errorf("loading trades: %w", err)
	}
	for _, t := range trades {
		state.Trades = append(state.Trades, ledger.Trade{
			ID:                  t.ID,
			SenderID:            t.SenderID,
			ReceiverID:          t.ReceiverID,
			OfferedMoney:        t.OfferedMoney,
			RequestedMoney:      t.RequestedMoney,
			OfferedProperties:   unmarshalInts(t.OfferedProperties),
			RequestedProperties: unmarshalInts(t.RequestedProperties),
			Status:              ledger.TradeStatus(t.Status),
			CreatedAt:           t.CreatedAt,
		})
	}

	undoEntries, err := b.ListUndoEntries(gameID)
	if err != nil {
		return nil, err
	}
	state.UndoEntries = undoEntries

	return state, nil
}

func (b *PostgresBackend) loadProperties(gameID string) ([]ledger.Property, error) {
	// Persisted catalog defaults supersede the embedded board file.
	var catalogRows []postgres.PropertyCatalog
	if err := b.db.Find(&catalogRows).Error; err != nil {
		return nil, fmt.Errorf("loading property catalog: %w", err)
	}
	defaults := make(map[int]postgres.PropertyCatalog, len(catalogRows))
	for _, row := range catalogRows {
		defaults[row.PropertyIndex] = row
	}

	var rows []postgres.GameProperty
	if err := b.db.Where("game_id = ?", gameID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading game properties: %w", err)
	}
	dynamic := make(map[int]postgres.GameProperty, len(rows))
	for _, row := range rows {
		dynamic[row.PropertyIndex] = row
	}

	properties := make([]ledger.Property, len(b.catalog))
	for i, base := range b.catalog {
		p := base
		p.Rent = append([]int(nil), base.Rent...)
		p.CatalogRent = append([]int(nil), base.CatalogRent...)
		if def, ok := defaults[p.ID]; ok {
			p.Price = def.Price
			p.CatalogPrice = def.Price
			if rent := unmarshalInts(def.Rent); rent != nil {
				p.Rent = rent
				p.CatalogRent = append([]int(nil), rent...)
			}
		}
		if row, ok := dynamic[p.ID]; ok {
			p.OwnerID = idOrBankEmpty(row.OwnerID)
			p.Houses = row.Houses
			p.IsMortgaged = row.IsMortgaged
			p.PriceOverride = row.PriceOverride
			p.RentOverride = unmarshalInts(row.RentOverride)
			if p.PriceOverride != nil {
				p.Price = *p.PriceOverride
			}
			if p.RentOverride != nil {
				p.Rent = append([]int(nil), p.RentOverride...)
			}
		}
		properties[i] = p
	}
	return properties, nil
}

func idOrBankEmpty(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

func (b *PostgresBackend) DeleteGame(gameID string) error {
	return b.db.Where("id = ?", gameID).Delete(&postgres.Game{}).Error
}

func (b *PostgresBackend) InsertPlayer(gameID string, p ledger.Player) error {
	row := postgres.Player{
		ID:                p.ID,
		GameID:            gameID,
		Name:              p.Name,
		Color:             p.Color,
		Token:             p.Token,
		Balance:           p.Balance,
		Position:          p.Position,
		IsJailed:          p.IsJailed,
		JailTurns:         p.JailTurns,
		GetOutOfJailCards: p.GetOutOfJailCards,
		Loans:             p.Loans,
	}
	return b.db.Create(&row).Error
}

func (b *PostgresBackend) UpdatePlayer(gameID string, p ledger.Player) error {
	return b.db.Model(&postgres.Player{}).
		Where("id = ? AND game_id = ?", p.ID, gameID).
		Updates(map[string]interface{}{
			"balance":               p.Balance,
			"position":              p.Position,
			"is_jailed":             p.IsJailed,
			"jail_turns":            p.JailTurns,
			"get_out_of_jail_cards": p.GetOutOfJailCards,
			"loans":                 p.Loans,
			"token":                 p.Token,
		}).Error
}

func (b *PostgresBackend) UpsertGameProperty(gameID string, p ledger.Property) error {
	row := postgres.GameProperty{
		GameID:        gameID,
		PropertyIndex: p.ID,
		OwnerID:       nullableID(p.OwnerID),
		Houses:        p.Houses,
		IsMortgaged:   p.IsMortgaged,
		PriceOverride: p.PriceOverride,
		RentOverride:  marshalInts(p.RentOverride),
	}
	return b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "property_index"}},
		UpdateAll: true,
	}).Create(&row).Error
}

func (b *PostgresBackend) SaveGameHeader(gameID string, status ledger.GameStatus, currentPlayerIndex, turnCount int, s ledger.Settings) error {
	return b.db.Model(&postgres.Game{}).Where("id = ?", gameID).
		Updates(map[string]interface{}{
			"status":                  string(status),
			"current_player_index":    currentPlayerIndex,
			"turn_count":              turnCount,
			"dice_mode":               string(s.DiceMode),
			"rent_mode":               string(s.RentMode),
			"starting_money":          s.StartingMoney,
			"jail_bail_amount":        s.JailBailAmount,
			"bank_total":              s.BankTotal,
			"bank_low_threshold":      s.BankLowThreshold,
			"show_bank_low_warning":   s.ShowBankLowWarning,
			"price_multiplier":        s.PriceMultiplier,
			"rent_multiplier":         s.RentMultiplier,
			"show_group_house_totals": s.ShowGroupHouseTotals,
		}).Error
}

func (b *PostgresBackend) InsertTransaction(gameID string, tx ledger.Transaction) error {
	row := postgres.Transaction{
		ID:          tx.ID,
		GameID:      gameID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		FromID:      nullableID(tx.FromID),
		ToID:        nullableID(tx.ToID),
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
	return b.db.Create(&row).Error
}

func (b *PostgresBackend) InsertTrade(gameID string, t ledger.Trade) error {
	row := postgres.Trade{
		ID:                  t.ID,
		GameID:              gameID,
		SenderID:            t.SenderID,
		ReceiverID:          t.ReceiverID,
		OfferedMoney:        t.OfferedMoney,
		RequestedMoney:      t.RequestedMoney,
		OfferedProperties:   marshalInts(t.OfferedProperties),
		RequestedProperties: marshalInts(t.RequestedProperties),
		Status:              string(t.Status),
		CreatedAt:           t.CreatedAt,
	}
	return b.db.Create(&row).Error
}

func (b *PostgresBackend) UpdateTrade(gameID string, t ledger.Trade) error {
	return b.db.Model(&postgres.Trade{}).
		Where("id = ? AND game_id = ?", t.ID, gameID).
		Update("status", string(t.Status)).Error
}

func (b *PostgresBackend) InsertUndoEntry(gameID string, e ledger.UndoEntry) (int, error) {
	row := postgres.UndoEntry{
		GameID:        gameID,
		PlayerID:      e.PlayerID,
		PerformedBy:   nullableID(e.PerformedBy),
		Description:   e.Description,
		PrevPosition:  e.PrevPosition,
		NewPosition:   e.NewPosition,
		PrevIsJailed:  e.PrevIsJailed,
		NewIsJailed:   e.NewIsJailed,
		PassGoAwarded: e.PassGoAwarded,
		CreatedAt:     e.CreatedAt,
	}
	if err := b.db.Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (b *PostgresBackend) UpdateUndoEntry(gameID string, e ledger.UndoEntry) error {
	return b.db.Model(&postgres.UndoEntry{}).
		Where("id = ? AND game_id = ?", e.ID, gameID).
		Updates(map[string]interface{}{
			"reverted":    e.Reverted,
			"reverted_at": e.RevertedAt,
			"reverted_by": nullableID(e.RevertedBy),
		}).Error
}

func (b *PostgresBackend) ListUndoEntries(gameID string) ([]ledger.UndoEntry, error) {
	var rows []postgres.UndoEntry
	if err := b.db.Where("game_id = ?", gameID).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading undo entries: %w", err)
	}
	entries := make([]ledger.UndoEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, ledger.UndoEntry{
			ID:            row.ID,
			PlayerID:      row.PlayerID,
			PerformedBy:   idOrBankEmpty(row.PerformedBy),
			Description:   row.Description,
			PrevPosition:  row.PrevPosition,
			NewPosition:   row.NewPosition,
			PrevIsJailed:  row.PrevIsJailed,
			NewIsJailed:   row.NewIsJailed,
			PassGoAwarded: row.PassGoAwarded,
			CreatedAt:     row.CreatedAt,
			Reverted:      row.Reverted,
			RevertedAt:    row.RevertedAt,
			RevertedBy:    idOrBankEmpty(row.RevertedBy),
		})
	}
	return entries, nil
}

func (b *PostgresBackend) SaveCatalogDefault(propertyID int, price int, rent []int) error {
	row := postgres.PropertyCatalog{
		PropertyIndex: propertyID,
		Price:         price,
		Rent:          marshalInts(rent),
	}
	return b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "property_index"}},
		UpdateAll: true,
	}).Create(&row).Error
}

// ClearGameData drops the session's mutable history after an end-and-restart:
// logs, trades, undo rows and property state go, the game row is marked
// completed. The roster survives in memory only.
func (b *PostgresBackend) ClearGameData(gameID string) error {
	if gameID == "" {
		return nil
	}
	if err := b.db.Where("game_id = ?", gameID).Delete(&postgres.Transaction{}).Error; err != nil {
		return fmt.Errorf("clearing transactions: %w", err)
	}
	if err := b.db.Where("game_id = ?", gameID).Delete(&postgres.Trade{}).Error; err != nil {
		return fmt.Errorf("clearing trades: %w", err)
	}
	if err := b.db.Where("game_id = ?", gameID).Delete(&postgres.UndoEntry{}).Error; err != nil {
		return fmt.Errorf("clearing undo entries: %w", err)
	}
	if err := b.db.Where("game_id = ?", gameID).Delete(&postgres.GameProperty{}).Error; err != nil {
		return fmt.Errorf("clearing game properties: %w", err)
	}
	return b.db.Model(&postgres.Game{}).Where("id = ?", gameID).
		Update("status", string(ledger.StatusCompleted)).Error
}
