package handlers

import (
	"Magnate/services/ledger"
	socketio_utils "Magnate/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleCreateTrade opens a pending trade offer between two players.
func HandleCreateTrade(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		senderID, _ := socketio_utils.StringField(payload, "sender_id")
		receiverID, _ := socketio_utils.StringField(payload, "receiver_id")
		if senderID == "" || receiverID == "" || senderID == receiverID {
			client.Emit("error", gin.H{"error": "Need two distinct players"})
			return
		}
		offeredMoney, _ := socketio_utils.IntField(payload, "offered_money")
		requestedMoney, _ := socketio_utils.IntField(payload, "requested_money")
		offeredProperties := socketio_utils.IntSliceField(payload, "offered_properties")
		requestedProperties := socketio_utils.IntSliceField(payload, "requested_properties")

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		trade := store.CreateTrade(senderID, receiverID, offeredMoney, requestedMoney,
			offeredProperties, requestedProperties)
		if trade == nil {
			client.Emit("error", gin.H{"error": "Unknown player in trade"})
			return
		}
		client.Emit("trade_opened", gin.H{
			"game_id":  gameID,
			"trade_id": trade.ID,
		})
	}
}

// HandleRespondTrade accepts or rejects a pending trade. Acceptance settles
// money and property in one step.
func HandleRespondTrade(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		tradeID, _ := socketio_utils.StringField(payload, "trade_id")
		status, _ := socketio_utils.StringField(payload, "status")
		if status != string(ledger.TradeAccepted) && status != string(ledger.TradeRejected) {
			client.Emit("error", gin.H{"error": "Status must be ACCEPTED or REJECTED"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		if !store.RespondToTrade(tradeID, ledger.TradeStatus(status)) {
			client.Emit("error", gin.H{"error": "Trade is not pending"})
		}
	}
}

// HandleCancelTrade withdraws a pending trade.
func HandleCancelTrade(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		tradeID, _ := socketio_utils.StringField(payload, "trade_id")

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		if !store.CancelTrade(tradeID) {
			client.Emit("error", gin.H{"error": "Trade is not pending"})
		}
	}
}
