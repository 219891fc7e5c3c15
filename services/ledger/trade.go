package ledger

import (
	"time"

	"github.com/google/uuid"
)

// CreateTrade opens a pending proposal from sender to receiver.
func (s *Store) CreateTrade(senderID, receiverID string, offeredMoney, requestedMoney int, offeredProperties, requestedProperties []int) *Trade {
	s.mu.Lock()
	if s.findPlayer(senderID) == nil || s.findPlayer(receiverID) == nil {
		s.mu.Unlock()
		return nil
	}
	trade := Trade{
		ID:                  uuid.NewString(),
		SenderID:            senderID,
		ReceiverID:          receiverID,
		OfferedMoney:        offeredMoney,
		RequestedMoney:      requestedMoney,
		OfferedProperties:   append([]int(nil), offeredProperties...),
		RequestedProperties: append([]int(nil), requestedProperties...),
		Status:              TradePending,
		CreatedAt:           time.Now(),
	}
	s.state.Trades = append([]Trade{trade}, s.state.Trades...)
	gameID := s.state.GameID
	s.persist("insert trade", func() error {
		return s.backend.InsertTrade(gameID, trade)
	})
	s.mu.Unlock()

	s.emit(Event{Type: EventTradeCreated, Trade: &trade})
	return &trade
}

// RespondToTrade settles or rejects a pending proposal. Acceptance transfers
// cash both ways, reassigns the listed properties and logs a zero-amount
// trade transaction. Terminal trades are immutable; responding again is a
// no-op returning false.
//
// The settlement is several independent row writes with no rollback; a crash
// partway through can leave a partially applied trade (known design gap).
func (s *Store) RespondToTrade(tradeID string, status TradeStatus) bool {
	if status != TradeAccepted && status != TradeRejected {
		return false
	}

	s.mu.Lock()
	trade := s.findTrade(tradeID)
	if trade == nil || trade.Status != TradePending {
		s.mu.Unlock()
		return false
	}

	var events []Event
	if status == TradeAccepted {
		sender := s.findPlayer(trade.SenderID)
		receiver := s.findPlayer(trade.ReceiverID)
		if sender == nil || receiver == nil {
			s.mu.Unlock()
			return false
		}

		sender.Balance += trade.RequestedMoney - trade.OfferedMoney
		receiver.Balance += trade.OfferedMoney - trade.RequestedMoney

		for _, propID := range trade.OfferedProperties {
			if p := s.findProperty(propID); p != nil {
				p.OwnerID = receiver.ID
				updated := *p
				s.persistProperty(updated)
				events = append(events, Event{Type: EventPropertyUpdated, Property: &updated})
			}
		}
		for _, propID := range trade.RequestedProperties {
			if p := s.findProperty(propID); p != nil {
				p.OwnerID = sender.ID
				updated := *p
				s.persistProperty(updated)
				events = append(events, Event{Type: EventPropertyUpdated, Property: &updated})
			}
		}

		tx := s.appendTransaction(TxTrade, 0, sender.ID, receiver.ID, "Completed a trade")
		updatedSender, updatedReceiver := *sender, *receiver
		s.persistPlayer(updatedSender)
		s.persistPlayer(updatedReceiver)
		events = append(events,
			Event{Type: EventTransactionAdded, Transaction: &tx},
			Event{Type: EventPlayerUpdated, Player: &updatedSender},
			Event{Type: EventPlayerUpdated, Player: &updatedReceiver})
	}

	trade.Status = status
	updatedTrade := *trade
	gameID := s.state.GameID
	s.persist("update trade", func() error {
		return s.backend.UpdateTrade(gameID, updatedTrade)
	})
	events = append(events, Event{Type: EventTradeUpdated, Trade: &updatedTrade})
	s.mu.Unlock()

	for _, e := range events {
		s.emit(e)
	}
	return true
}

// CancelTrade withdraws a pending proposal. Only the proposer cancels; a
// settled or rejected trade stays as it is.
func (s *Store) CancelTrade(tradeID string) bool {
	s.mu.Lock()
	trade := s.findTrade(tradeID)
	if trade == nil || trade.Status != TradePending {
		s.mu.Unlock()
		return false
	}
	trade.Status = TradeCancelled
	updated := *trade
	gameID := s.state.GameID
	s.persist("update trade", func() error {
		return s.backend.UpdateTrade(gameID, updated)
	})
	s.mu.Unlock()

	s.emit(Event{Type: EventTradeUpdated, Trade: &updated})
	return true
}

func (s *Store) findTrade(id string) *Trade {
	for i := range s.state.Trades {
		if s.state.Trades[i].ID == id {
			return &s.state.Trades[i]
		}
	}
	return nil
}
