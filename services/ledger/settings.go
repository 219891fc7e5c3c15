package ledger

import "math"

// ApplySettingsToProperties recomputes the effective property list from the
// pristine catalog, the global multipliers and any per-property overrides.
// Owner, houses and mortgage flags survive unchanged, and the whole
// computation is idempotent: reapplying with the same inputs is a no-op.
func (s *Store) ApplySettingsToProperties() {
	s.mu.Lock()
	priceMul := s.state.Settings.PriceMultiplier
	rentMul := s.state.Settings.RentMultiplier

	var updates []Property
	for i := range s.state.Properties {
		current := &s.state.Properties[i]

		price := int(math.Round(float64(current.CatalogPrice) * priceMul))
		if current.PriceOverride != nil {
			price = *current.PriceOverride
		}

		rent := make([]int, len(current.CatalogRent))
		for j, r := range current.CatalogRent {
			rent[j] = int(math.Round(float64(r) * rentMul))
		}
		if current.RentOverride != nil {
			rent = append([]int(nil), current.RentOverride...)
		}

		current.Price = price
		current.Rent = rent
		updates = append(updates, *current)
	}
	s.mu.Unlock()

	for i := range updates {
		s.emit(Event{Type: EventPropertyUpdated, Property: &updates[i]})
	}
}

// SetPropertyOverride sets or clears (nil clears) one property's explicit
// price/rent, superseding the computed defaults. Settings are not reapplied
// retroactively.
func (s *Store) SetPropertyOverride(propertyID int, priceOverride *int, rentOverride []int) {
	s.mu.Lock()
	property := s.findProperty(propertyID)
	if property == nil {
		s.mu.Unlock()
		return
	}
	property.PriceOverride = priceOverride
	property.RentOverride = append([]int(nil), rentOverride...)
	if rentOverride == nil {
		property.RentOverride = nil
	}
	if priceOverride != nil {
		property.Price = *priceOverride
	}
	if rentOverride != nil {
		property.Rent = append([]int(nil), rentOverride...)
	}
	updated := *property
	s.persistProperty(updated)
	s.mu.Unlock()

	s.emit(Event{Type: EventPropertyUpdated, Property: &updated})
}

// SetBaseProperty rewrites a slot's catalog default, for "apply as default
// for future games". The in-memory list updates unconditionally; pushing the
// new default to the durable catalog is best-effort.
func (s *Store) SetBaseProperty(propertyID int, price int, rent []int) {
	s.mu.Lock()
	property := s.findProperty(propertyID)
	if property == nil {
		s.mu.Unlock()
		return
	}
	property.Price = price
	property.Rent = append([]int(nil), rent...)
	property.CatalogPrice = price
	property.CatalogRent = append([]int(nil), rent...)
	for i := range s.catalog {
		if s.catalog[i].ID == propertyID {
			s.catalog[i].Price = price
			s.catalog[i].CatalogPrice = price
			s.catalog[i].Rent = append([]int(nil), rent...)
			s.catalog[i].CatalogRent = append([]int(nil), rent...)
		}
	}
	updated := *property
	s.persist("save catalog default", func() error {
		return s.backend.SaveCatalogDefault(propertyID, price, rent)
	})
	s.mu.Unlock()

	s.emit(Event{Type: EventPropertyUpdated, Property: &updated})
}

// SetStartingMoney changes the configured stake. During setup the roster is
// re-primed so every player starts with the new amount.
func (s *Store) SetStartingMoney(amount int) {
	s.mu.Lock()
	s.state.Settings.StartingMoney = amount
	var updates []Player
	if s.state.Status == StatusSetup {
		for i := range s.state.Players {
			s.state.Players[i].Balance = amount
			updated := s.state.Players[i]
			s.persistPlayer(updated)
			updates = append(updates, updated)
		}
	}
	s.persistHeader()
	s.mu.Unlock()

	for i := range updates {
		s.emit(Event{Type: EventPlayerUpdated, Player: &updates[i]})
	}
	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
}

// SetMultipliers stores the global price/rent multipliers and immediately
// recomputes every property's effective price and rent from them.
func (s *Store) SetMultipliers(priceMultiplier, rentMultiplier float64) {
	s.mu.Lock()
	s.state.Settings.PriceMultiplier = priceMultiplier
	s.state.Settings.RentMultiplier = rentMultiplier
	s.persistHeader()
	s.mu.Unlock()

	s.ApplySettingsToProperties()
	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
}

func (s *Store) SetDiceMode(mode DiceMode) {
	s.mu.Lock()
	s.state.Settings.DiceMode = mode
	s.persistHeader()
	s.mu.Unlock()
	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
}

func (s *Store) SetRentMode(mode RentMode) {
	s.mu.Lock()
	s.state.Settings.RentMode = mode
	s.persistHeader()
	s.mu.Unlock()
	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
}

func (s *Store) SetShowGroupHouseTotals(show bool) {
	s.mu.Lock()
	s.state.Settings.ShowGroupHouseTotals = show
	s.persistHeader()
	s.mu.Unlock()
	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
}

func (s *Store) SetJailBailAmount(amount int) {
	s.mu.Lock()
	s.state.Settings.JailBailAmount = amount
	s.persistHeader()
	s.mu.Unlock()
	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
}

func (s *Store) SetBankTotal(amount int) {
	s.mu.Lock()
	s.state.Settings.BankTotal = amount
	s.persistHeader()
	s.mu.Unlock()
	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
}

func (s *Store) SetBankLowWarning(threshold int, show bool) {
	s.mu.Lock()
	s.state.Settings.BankLowThreshold = threshold
	s.state.Settings.ShowBankLowWarning = show
	s.persistHeader()
	s.mu.Unlock()
	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
}

// ResetSettings restores default economics and drops every override, then
// recomputes the property list.
func (s *Store) ResetSettings() {
	s.mu.Lock()
	defaults := DefaultSettings()
	defaults.DiceMode = s.state.Settings.DiceMode
	s.state.Settings = defaults
	for i := range s.state.Properties {
		s.state.Properties[i].PriceOverride = nil
		s.state.Properties[i].RentOverride = nil
		s.persistProperty(s.state.Properties[i])
	}
	s.persistHeader()
	s.mu.Unlock()

	s.ApplySettingsToProperties()
	s.emit(Event{Type: EventGameUpdated, Game: ptrHeader(s)})
}
