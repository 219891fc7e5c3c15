package handlers

import (
	"Magnate/services/ledger"
	socketio_utils "Magnate/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Settings handlers. Each one is a thin shell around the store: parse,
// apply, let the event feed do the broadcasting.

func HandleSetStartingMoney(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		amount, ok := socketio_utils.IntField(payload, "amount")
		if !ok || amount < 0 {
			client.Emit("error", gin.H{"error": "Need a non-negative amount"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.SetStartingMoney(amount)
	}
}

func HandleSetMultipliers(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		priceMultiplier, okP := socketio_utils.FloatField(payload, "price_multiplier")
		rentMultiplier, okR := socketio_utils.FloatField(payload, "rent_multiplier")
		if !okP || !okR || priceMultiplier <= 0 || rentMultiplier <= 0 {
			client.Emit("error", gin.H{"error": "Multipliers must be positive"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.SetMultipliers(priceMultiplier, rentMultiplier)
	}
}

func HandleSetPropertyOverride(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		propertyID, ok := socketio_utils.IntField(payload, "property_id")
		if !ok {
			client.Emit("error", gin.H{"error": "Missing property_id"})
			return
		}

		var priceOverride *int
		if price, ok := socketio_utils.IntField(payload, "price_override"); ok {
			priceOverride = &price
		}
		rentOverride := socketio_utils.IntSliceField(payload, "rent_override")

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.SetPropertyOverride(propertyID, priceOverride, rentOverride)
	}
}

func HandleSetBaseProperty(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		propertyID, okID := socketio_utils.IntField(payload, "property_id")
		price, okPrice := socketio_utils.IntField(payload, "price")
		if !okID || !okPrice || price < 0 {
			client.Emit("error", gin.H{"error": "Need property_id and a non-negative price"})
			return
		}
		rent := socketio_utils.IntSliceField(payload, "rent")

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.SetBaseProperty(propertyID, price, rent)
	}
}

func HandleSetDiceMode(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		mode, _ := socketio_utils.StringField(payload, "dice_mode")
		if mode != string(ledger.DiceDigital) && mode != string(ledger.DicePhysical) {
			client.Emit("error", gin.H{"error": "dice_mode must be DIGITAL or PHYSICAL"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.SetDiceMode(ledger.DiceMode(mode))
	}
}

func HandleSetRentMode(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		mode, _ := socketio_utils.StringField(payload, "rent_mode")
		if mode != string(ledger.RentStandard) && mode != string(ledger.RentGroupTotal) {
			client.Emit("error", gin.H{"error": "rent_mode must be STANDARD or GROUP_TOTAL"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.SetRentMode(ledger.RentMode(mode))
	}
}

func HandleSetShowGroupHouseTotals(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		show, ok := socketio_utils.BoolField(payload, "show")
		if !ok {
			client.Emit("error", gin.H{"error": "Missing show flag"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.SetShowGroupHouseTotals(show)
	}
}

func HandleSetJailBail(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		amount, ok := socketio_utils.IntField(payload, "amount")
		if !ok || amount < 0 {
			client.Emit("error", gin.H{"error": "Need a non-negative amount"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.SetJailBailAmount(amount)
	}
}

func HandleSetBankTotal(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		amount, ok := socketio_utils.IntField(payload, "amount")
		if !ok || amount < 0 {
			client.Emit("error", gin.H{"error": "Need a non-negative amount"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.SetBankTotal(amount)
	}
}

func HandleSetBankLowWarning(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		threshold, okT := socketio_utils.IntField(payload, "threshold")
		show, okS := socketio_utils.BoolField(payload, "show")
		if !okT || !okS || threshold < 0 {
			client.Emit("error", gin.H{"error": "Need threshold and show flag"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.SetBankLowWarning(threshold, show)
	}
}

func HandleApplySettings(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.ApplySettingsToProperties()
	}
}

func HandleResetSettings(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.ResetSettings()
	}
}
