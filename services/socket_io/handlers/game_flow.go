package handlers

import (
	"log"

	"Magnate/services/ledger"
	socketio_types "Magnate/services/socket_io/types"
	socketio_utils "Magnate/services/socket_io/utils"
	gamesync "Magnate/sync"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleStartGame flips the session from setup to active with the chosen
// dice-input mode.
func HandleStartGame(registry *ledger.Registry, client *socket.Socket,
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
			mode = string(ledger.DicePhysical)
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		state := store.Snapshot()
		if state.Status != ledger.StatusSetup {
			client.Emit("error", gin.H{"error": "Game already started"})
			return
		}
		if len(state.Players) < 2 {
			client.Emit("error", gin.H{"error": "Need at least 2 players to start"})
			return
		}
		store.StartGame(ledger.DiceMode(mode))
		log.Printf("[START] Game %s started by %s, dice mode %s", gameID, clientID, mode)
	}
}

// HandleRollDice rolls two digital dice and moves the player, awarding the
// pass-GO salary on a wrap. Rejected for jailed players.
func HandleRollDice(registry *ledger.Registry, client *socket.Socket,
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
		die1, die2, position, ok := store.RollDice(playerID)
		if !ok {
			client.Emit("error", gin.H{"error": "Cannot roll right now"})
			return
		}
		client.Emit("dice_rolled", gin.H{
			"game_id":   gameID,
			"player_id": playerID,
			"die1":      die1,
			"die2":      die2,
			"position":  position,
		})
	}
}

// HandleManualMove moves a player by a signed number of steps, recording an
// undoable entry and awarding the pass-GO salary on a forward wrap.
func HandleManualMove(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		playerID, _ := socketio_utils.StringField(payload, "player_id")
		steps, ok := socketio_utils.IntField(payload, "steps")
		if playerID == "" || !ok || steps == 0 {
			client.Emit("error", gin.H{"error": "Need player_id and non-zero steps"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		entry, ok := store.ManualMove(playerID, steps, clientID)
		if !ok {
			client.Emit("error", gin.H{"error": "Unknown player"})
			return
		}
		client.Emit("player_moved", gin.H{
			"game_id":  gameID,
			"entry_id": entry.ID,
			"position": entry.NewPosition,
		})
	}
}

// HandleMovePlayer sets a player's board position directly, no salary, no
// undo entry. Used to correct a misplaced token.
func HandleMovePlayer(registry *ledger.Registry, client *socket.Socket,
	clientID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing payload"})
			return
		}
		gameID, _ := socketio_utils.StringField(payload, "game_id")
		playerID, _ := socketio_utils.StringField(payload, "player_id")
		position, ok := socketio_utils.IntField(payload, "position")
		if playerID == "" || !ok || position < 0 || position > 39 {
			client.Emit("error", gin.H{"error": "Need player_id and position 0-39"})
			return
		}

		store, err := socketio_utils.ValidateGameAndClient(registry, client, clientID, gameID)
		if err != nil {
			return
		}
		store.MovePlayer(playerID, position)
	}
}

// HandleSendToJail jails a player, undoably.
func HandleSendToJail(registry *ledger.Registry, client *socket.Socket,
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
		if _, ok := store.SendToJail(playerID, clientID); !ok {
			client.Emit("error", gin.H{"error": "Unknown player"})
		}
	}
}

// HandleToggleJail flips a player's jail flag without moving the token.
func HandleToggleJail(registry *ledger.Registry, client *socket.Socket,
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
		store.ToggleJail(playerID)
	}
}

// HandlePayBail releases a jailed player for the configured bail amount.
func HandlePayBail(registry *ledger.Registry, client *socket.Socket,
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
		if !store.PayBail(playerID) {
			client.Emit("error", gin.H{"error": "Player is not in jail"})
		}
	}
}

// HandleIncrementJailTurns counts one jail turn, auto-releasing at three.
func HandleIncrementJailTurns(registry *ledger.Registry, client *socket.Socket,
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
		store.IncrementJailTurns(playerID)
	}
}

// HandleNextTurn advances the turn pointer.
func HandleNextTurn(registry *ledger.Registry, client *socket.Socket,
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
		store.NextTurn()
	}
}

// HandleEndAndRestart ends the session, keeps the roster and resets
// everything else to setup. The durable session is cleaned up and the store
// dropped from the registry.
func HandleEndAndRestart(registry *ledger.Registry, client *socket.Socket,
	clientID string, sio *socketio_types.SocketServer,
	sm *gamesync.SyncManager) func(args ...interface{}) {
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

		if sm != nil {
			if err := sm.CleanupGameData(store.Snapshot()); err != nil {
				log.Printf("[END-WARN] Cleanup for game %s: %v", gameID, err)
			}
		}

		store.EndAndRestart()
		registry.Remove(gameID)
		sio.UnmarkBroadcast(gameID)

		sio.Sio_server.To(socket.Room(gameID)).Emit("game_reset", gin.H{
			"game_id": gameID,
			"state":   store.Snapshot(),
		})
		log.Printf("[END] Game %s ended and reset by %s", gameID, clientID)
	}
}
