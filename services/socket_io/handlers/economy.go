package handlers

import (
	"log"

	"Magnate/services/ledger"
	socketio_utils "Magnate/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleUpdateBalance applies a signed balance adjustment to one player.
// Negative results are allowed, the table resolves its own debts.
func HandleUpdateBalance(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		playerID, _ := socketio_utils.StringField(payload, "player_id")
		amount, ok := socketio_utils.IntField(payload, "amount")
		if playerID == "" || !ok {
			client.Emit("error", gin.H{"error": "Missing player_id or amount"})
			return
		}
		txType, _ := socketio_utils.StringField(payload, "type")
		if txType == "" {
			txType = string(ledger.TxOther)
		}
		description, _ := socketio_utils.StringField(payload, "description")
		counterpartyID, _ := socketio_utils.StringField(payload, "counterparty_id")

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.UpdateBalance(playerID, amount, ledger.TransactionType(txType), description, counterpartyID)
	}
}

// HandleTransferMoney moves money between two players, or a player and the bank.
func HandleTransferMoney(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		fromID, _ := socketio_utils.StringField(payload, "from_id")
		toID, _ := socketio_utils.StringField(payload, "to_id")
		amount, ok := socketio_utils.IntField(payload, "amount")
		if !ok || amount <= 0 {
			client.Emit("error", gin.H{"error": "Transfer amount must be positive"})
			return
		}
		description, _ := socketio_utils.StringField(payload, "description")

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.TransferMoney(fromID, toID, amount, description)
	}
}

// HandleAssignProperty changes a property's owner without payment.
// Purchases are a transfer plus an assignment, the table decides the price.
func HandleAssignProperty(registry *ledger.Registry, client *socket.Socket,
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
		playerID, _ := socketio_utils.StringField(payload, "player_id")

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.AssignProperty(propertyID, playerID)
	}
}

// HandleToggleMortgage mortgages or unmortgages a property.
func HandleToggleMortgage(registry *ledger.Registry, client *socket.Socket,
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

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		if !store.ToggleMortgage(propertyID) {
			client.Emit("error", gin.H{"error": "Mortgage change rejected"})
		}
	}
}

// HandleImproveProperty buys or sells one house on a property.
func HandleImproveProperty(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		propertyID, ok := socketio_utils.IntField(payload, "property_id")
		action, _ := socketio_utils.StringField(payload, "action")
		if !ok || (action != "buy" && action != "sell") {
			client.Emit("error", gin.H{"error": "Need property_id and action buy|sell"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		if !store.ImproveProperty(propertyID, action) {
			client.Emit("error", gin.H{"error": "Improvement rejected"})
		}
	}
}

// HandleTakeLoan grants a bank loan when the bank can cover it.
func HandleTakeLoan(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		playerID, _ := socketio_utils.StringField(payload, "player_id")
		amount, ok := socketio_utils.IntField(payload, "amount")
		if playerID == "" || !ok || amount <= 0 {
			client.Emit("error", gin.H{"error": "Need player_id and a positive amount"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		if !store.TakeLoan(playerID, amount) {
			client.Emit("error", gin.H{"error": "The bank cannot cover that loan"})
			return
		}
		if store.BankLow() {
			log.Printf("[BANK] Bank funds low in game %s", gameID)
			client.Emit("bank_low", gin.H{"game_id": gameID})
		}
	}
}

// HandleRepayLoan pays a loan back, in part or in full.
func HandleRepayLoan(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		playerID, _ := socketio_utils.StringField(payload, "player_id")
		amount, ok := socketio_utils.IntField(payload, "amount")
		if playerID == "" || !ok || amount <= 0 {
			client.Emit("error", gin.H{"error": "Need player_id and a positive amount"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.RepayLoan(playerID, amount)
	}
}

// HandleCalculateRent answers a rent query without mutating anything.
func HandleCalculateRent(registry *ledger.Registry, client *socket.Socket,
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
		diceTotal, _ := socketio_utils.IntField(payload, "dice_total")

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		state := store.Snapshot()
		var target *ledger.Property
		for i := range state.Properties {
			if state.Properties[i].ID == propertyID {
				target = &state.Properties[i]
				break
			}
		}
		if target == nil {
			client.Emit("error", gin.H{"error": "Unknown property"})
			return
		}
		rent := ledger.CalculateRent(*target, state.Properties, diceTotal, state.Settings.RentMode)
		client.Emit("rent_calculated", gin.H{
			"game_id":     gameID,
			"property_id": propertyID,
			"rent":        rent,
		})
	}
}

// HandleNetWorth answers a net-worth query for one player.
func HandleNetWorth(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		playerID, _ := socketio_utils.StringField(payload, "player_id")

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		state := store.Snapshot()
		for _, p := range state.Players {
			if p.ID == playerID {
				client.Emit("net_worth", gin.H{
					"game_id":   gameID,
					"player_id": playerID,
					"net_worth": ledger.CalculateNetWorth(p, state.Properties),
				})
				return
			}
		}
		client.Emit("error", gin.H{"error": "Unknown player"})
	}
}
