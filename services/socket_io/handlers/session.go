package handlers

import (
	"log"
	"time"

	redis_models "Magnate/models/redis"
	"Magnate/services/ledger"
	"Magnate/services/redis"
	socketio_types "Magnate/services/socket_io/types"
	socketio_utils "Magnate/services/socket_io/utils"
	gamesync "Magnate/sync"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleJoinGame joins the client's socket to the game's room, records
// presence in Redis and hands back the full authoritative snapshot.
func HandleJoinGame(registry *ledger.Registry, client *socket.Socket,
	redisClient *redis.RedisClient, clientID string,
	sio *socketio_types.SocketServer, sm *gamesync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[JOIN] HandleJoinGame started - Client: %s, Socket ID: %s", clientID, client.Id())

		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing join payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}

		client.Join(socket.Room(gameID))
		EnsureGameBroadcast(sio, sm, store, gameID)

		if redisClient != nil {
			presence := &redis_models.ClientPresence{
				PlayerID: clientID,
				GameID:   gameID,
				Status:   redis_models.StatusOnline,
				LastPing: time.Now().Unix(),
				SocketID: string(client.Id()),
			}
			if err := redisClient.SavePresence(presence); err != nil {
				log.Printf("[JOIN-WARN] Could not save presence for %s: %v", clientID, err)
			}
		}

		snapshot := store.Snapshot()
		log.Printf("[JOIN-SUCCESS] Client %s joined game %s (%d players)",
			clientID, gameID, len(snapshot.Players))
		client.Emit("game_joined", gin.H{
			"game_id": gameID,
			"state":   snapshot,
		})

		sio.Sio_server.To(socket.Room(gameID)).Emit("client_joined", gin.H{
			"game_id":   gameID,
			"client_id": clientID,
		})
	}
}

// HandleLeaveGame removes the client from the room without touching the
// roster. Roster edits go through the REST API during setup.
func HandleLeaveGame(registry *ledger.Registry, client *socket.Socket,
	redisClient *redis.RedisClient, clientID string,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing leave payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		if gameID == "" {
			client.Emit("error", gin.H{"error": "Missing game id"})
			return
		}

		client.Leave(socket.Room(gameID))
		if redisClient != nil {
			if err := redisClient.DeletePresence(clientID); err != nil {
				log.Printf("[LEAVE-WARN] Could not delete presence for %s: %v", clientID, err)
			}
		}

		sio.Sio_server.To(socket.Room(gameID)).Emit("client_left", gin.H{
			"game_id":   gameID,
			"client_id": clientID,
			"reason":    "left",
		})
		log.Printf("[LEAVE] Client %s left game %s", clientID, gameID)
	}
}

// HandleGetSnapshot returns the current full state without joining the room.
func HandleGetSnapshot(registry *ledger.Registry, client *socket.Socket,
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
		client.Emit("game_snapshot", gin.H{
			"game_id": gameID,
			"state":   store.Snapshot(),
		})
	}
}

// HandlePing refreshes the client's presence TTL.
func HandlePing(redisClient *redis.RedisClient, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if redisClient == nil {
			client.Emit("pong", gin.H{"ts": time.Now().Unix()})
			return
		}
		presence, err := redisClient.GetPresence(clientID)
		if err != nil || presence == nil {
			presence = &redis_models.ClientPresence{
				PlayerID: clientID,
				Status:   redis_models.StatusOnline,
				SocketID: string(client.Id()),
			}
		}
		presence.LastPing = time.Now().Unix()
		if err := redisClient.SavePresence(presence); err != nil {
			log.Printf("[PING-WARN] Could not refresh presence for %s: %v", clientID, err)
		}
		client.Emit("pong", gin.H{"ts": presence.LastPing})
	}
}

// Function to handle socket.io client disconnections.
func HandleDisconnecting(clientID string, sio *socketio_types.SocketServer,
	redisClient *redis.RedisClient) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] HandleDisconnecting started - Client: %s", clientID)

		client, exists := sio.GetConnection(clientID)
		if exists {
			for _, room := range client.Rooms().Keys() {
				if string(room) == string(client.Id()) {
					continue
				}
				sio.Sio_server.To(room).Emit("client_left", gin.H{
					"game_id":   string(room),
					"client_id": clientID,
					"reason":    "disconnected",
				})
			}
		}

		if redisClient != nil {
			if err := redisClient.DeletePresence(clientID); err != nil {
				log.Printf("[DISCONNECT-WARN] Could not delete presence for %s: %v", clientID, err)
			}
		}

		sio.RemoveConnection(clientID)
		log.Printf("[DISCONNECT-DONE] Client disconnected: %s", clientID)
	}
}
