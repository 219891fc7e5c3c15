package ledger

import (
	"fmt"
	"math"

	game_constants "Magnate/constants/game"
)

// AssignProperty sets ownership without moving money; buying is orchestrated
// by the caller as a debit followed by an assignment.
func (s *Store) AssignProperty(propertyID int, playerID string) {
	s.mu.Lock()
	property := s.findProperty(propertyID)
	if property == nil {
		s.mu.Unlock()
		return
	}
	property.OwnerID = playerID
	updated := *property
	s.persistProperty(updated)
	s.mu.Unlock()

	s.emit(Event{Type: EventPropertyUpdated, Property: &updated})
}

// MortgageValue is the cash paid out when mortgaging: half price, floored.
func MortgageValue(price int) int {
	return int(math.Floor(float64(price) * 0.5))
}

// UnmortgageCost is principal plus 10% interest, ceiled.
func UnmortgageCost(price int) int {
	return int(math.Ceil(float64(MortgageValue(price)) * 1.1))
}

// ToggleMortgage mortgages or unmortgages an owned property. Mortgaging pays
// the owner half the price; lifting it costs that amount plus 10% interest
// and is declined when the owner cannot afford it. Returns false on any
// precondition failure.
func (s *Store) ToggleMortgage(propertyID int) bool {
	s.mu.Lock()
	property := s.findProperty(propertyID)
	if property == nil || property.OwnerID == "" {
		s.mu.Unlock()
		return false
	}
	player := s.findPlayer(property.OwnerID)
	if player == nil {
		s.mu.Unlock()
		return false
	}

	mortgaging := !property.IsMortgaged
	var balanceChange int
	if mortgaging {
		balanceChange = MortgageValue(property.Price)
	} else {
		cost := UnmortgageCost(property.Price)
		if player.Balance < cost {
			s.mu.Unlock()
			return false
		}
		balanceChange = -cost
	}

	property.IsMortgaged = mortgaging
	player.Balance += balanceChange

	var tx Transaction
	if mortgaging {
		tx = s.appendTransaction(TxOther, balanceChange, BankID, player.ID,
			fmt.Sprintf("Mortgaged %s", property.Name))
	} else {
		tx = s.appendTransaction(TxOther, -balanceChange, player.ID, BankID,
			fmt.Sprintf("Unmortgaged %s", property.Name))
	}

	updatedProperty, updatedPlayer := *property, *player
	s.persistProperty(updatedProperty)
	s.persistPlayer(updatedPlayer)
	s.mu.Unlock()

	s.emit(Event{Type: EventTransactionAdded, Transaction: &tx})
	s.emit(Event{Type: EventPropertyUpdated, Property: &updatedProperty})
	s.emit(Event{Type: EventPlayerUpdated, Player: &updatedPlayer})
	return true
}

// ImproveProperty builds or sells one improvement level on a street.
// Building requires a full monopoly on the color group, room below the hotel
// cap, and enough cash; selling requires an existing improvement and refunds
// half the house cost. Returns false on any precondition failure.
func (s *Store) ImproveProperty(propertyID int, action string) bool {
	s.mu.Lock()
	property := s.findProperty(propertyID)
	if property == nil || property.OwnerID == "" || property.HouseCost == 0 {
		s.mu.Unlock()
		return false
	}
	player := s.findPlayer(property.OwnerID)
	if player == nil {
		s.mu.Unlock()
		return false
	}

	var tx Transaction
	switch action {
	case "buy":
		if property.Houses >= game_constants.MaxImprovementLevel {
			s.mu.Unlock()
			return false
		}
		if player.Balance < property.HouseCost {
			s.mu.Unlock()
			return false
		}
		group := SummarizeGroup(property.Group, s.state.Properties)
		if !group.Complete || group.OwnerID != player.ID {
			s.mu.Unlock()
			return false
		}
		property.Houses++
		player.Balance -= property.HouseCost
		tx = s.appendTransaction(TxBuyProperty, property.HouseCost, player.ID, BankID,
			fmt.Sprintf("Built house/hotel on %s", property.Name))

	case "sell":
		if property.Houses <= 0 {
			s.mu.Unlock()
			return false
		}
		refund := int(math.Floor(float64(property.HouseCost) * 0.5))
		property.Houses--
		player.Balance += refund
		tx = s.appendTransaction(TxOther, refund, BankID, player.ID,
			fmt.Sprintf("Sold house/hotel on %s", property.Name))

	default:
		s.mu.Unlock()
		return false
	}

	updatedProperty, updatedPlayer := *property, *player
	s.persistProperty(updatedProperty)
	s.persistPlayer(updatedPlayer)
	s.mu.Unlock()

	s.emit(Event{Type: EventTransactionAdded, Transaction: &tx})
	s.emit(Event{Type: EventPropertyUpdated, Property: &updatedProperty})
	s.emit(Event{Type: EventPlayerUpdated, Player: &updatedPlayer})
	return true
}
