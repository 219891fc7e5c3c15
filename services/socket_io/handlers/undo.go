package handlers

import (
	"Magnate/services/ledger"
	socketio_utils "Magnate/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleGetUndoLog returns the session's undo history, newest first.
func HandleGetUndoLog(registry *ledger.Registry, client *socket.Socket,
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
		client.Emit("undo_log", gin.H{
			"game_id": gameID,
			"entries": store.FetchUndoEntries(),
		})
	}
}

// HandleRevertUndo reverts one movement entry. A second revert of the same
// entry is rejected.
func HandleRevertUndo(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		entryID, ok := socketio_utils.IntField(payload, "entry_id")
		if !ok {
			client.Emit("error", gin.H{"error": "Missing entry_id"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		if !store.RevertUndoEntry(entryID, clientID) {
			client.Emit("error", gin.H{"error": "Entry already reverted or unknown"})
		}
	}
}
