package handlers

import (
	"encoding/json"
	"log"

	"Magnate/services/ledger"
	socketio_utils "Magnate/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleSyncEvent ingests an event produced elsewhere (another node, or a
// client replaying a queued offline mutation) and reconciles it into the
// local store. Remote rows win at row granularity; there is no other merge
// path into the store.
func HandleSyncEvent(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing event payload"})
			return
		}

		// Round-trip through JSON to get a typed Event out of the raw map.
		raw, err := json.Marshal(payload)
		if err != nil {
			client.Emit("error", gin.H{"error": "Malformed event"})
			return
		}
		var event ledger.Event
		if err := json.Unmarshal(raw, &event); err != nil {
			client.Emit("error", gin.H{"error": "Malformed event"})
			return
		}
		if event.Type == "" || event.GameID == "" {
			client.Emit("error", gin.H{"error": "Event needs type and game_id"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, event.GameID)
		if err != nil {
			return
		}
		store.Apply(event)
		log.Printf("[SYNC] Applied %s event to game %s from client %s",
			event.Type, event.GameID, clientID)
	}
}
