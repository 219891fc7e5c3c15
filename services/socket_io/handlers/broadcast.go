package handlers

import (
	"log"

	"Magnate/services/ledger"
	socketio_types "Magnate/services/socket_io/types"
	gamesync "Magnate/sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// EnsureGameBroadcast wires a game store's event feed to its socket room,
// exactly once per game. Every mutation the store emits reaches all clients
// in the room under the event's own name, and the Redis session snapshot is
// refreshed so rejoining clients see a live header.
func EnsureGameBroadcast(sio *socketio_types.SocketServer, sm *gamesync.SyncManager,
	store *ledger.Store, gameID string) {
	if gameID == "" {
		return
	}
	if !sio.MarkBroadcast(gameID) {
		return
	}

	store.Subscribe(func(e ledger.Event) {
		sio.Sio_server.To(socket.Room(gameID)).Emit(string(e.Type), e)

		if sm != nil {
			if err := sm.SyncGameSession(store.Snapshot()); err != nil {
				log.Printf("[SYNC-ERROR] Refreshing session snapshot for game %s: %v", gameID, err)
			}
		}
	})
}
