package socketio_utils

import (
	"Magnate/services/ledger"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// VerifyClientConnection checks the handshake auth for a client identifier.
// There are no user accounts: a client is whoever presents a stable
// client_id, typically the player id handed out on join.
func VerifyClientConnection(client *socket.Socket) (success bool, clientID string) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		fmt.Println("No auth data provided in handshake!")
		client.Emit("error", gin.H{"error": "Connection failed: missing auth data"})
		return false, ""
	}

	clientID, exists := authData["client_id"].(string)
	if !exists || clientID == "" {
		fmt.Println("No client_id provided in handshake!")
		client.Emit("error", gin.H{"error": "Connection failed: missing client_id"})
		return false, ""
	}

	return true, clientID
}

// ValidateGameAndClient resolves the live store for a game, emitting an
// error to the client when the session cannot be found.
func ValidateGameAndClient(registry *ledger.Registry, client *socket.Socket,
	clientID string, gameID string) (*ledger.Store, error) {

	if gameID == "" {
		client.Emit("error", gin.H{"error": "Missing game id"})
		return nil, fmt.Errorf("missing game id")
	}

	store, err := registry.GetOrLoad(gameID)
	if err != nil {
		log.Printf("[GAME-ERROR] Client %s, game %s: %v", clientID, gameID, err)
		client.Emit("error", gin.H{"error": "Game not found"})
		return nil, err
	}
	return store, nil
}
