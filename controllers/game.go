package controllers

import (
	"log"
	"net/http"

	"Magnate/services/ledger"
	"Magnate/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateGame opens a new session and remembers it in the request's cookie
// session so the same browser can rejoin after a reload.
func CreateGame(registry *ledger.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, gameID, err := registry.CreateGame()
		if err != nil {
			log.Printf("Failed to create game: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating game"})
			return
		}

		session := sessions.Default(c)
		session.Set("game_id", gameID)
		if err := session.Save(); err != nil {
			log.Printf("Could not save session cookie: %v", err)
		}

		c.JSON(http.StatusOK, gin.H{"game_id": gameID, "message": "Game created successfully"})
	}
}

// GetGameInfo returns the session header for one game.
func GetGameInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("game_id")

		game, err := utils.CheckGameExists(db, gameID)
		if err != nil {
			if err.Error() == "game not found" {
				c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"game_id":              game.ID,
			"status":               game.Status,
			"current_player_index": game.CurrentPlayerIndex,
			"turn_count":           game.TurnCount,
			"created_at":           game.CreatedAt,
		})
	}
}

// JoinGame loads the game into this node if needed and returns the full
// snapshot. The cookie session is updated for rejoin.
func JoinGame(registry *ledger.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("game_id")

		store, err := registry.GetOrLoad(gameID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		session := sessions.Default(c)
		session.Set("game_id", gameID)
		if err := session.Save(); err != nil {
			log.Printf("Could not save session cookie: %v", err)
		}

		c.JSON(http.StatusOK, gin.H{
			"game_id": gameID,
			"state":   store.Snapshot(),
			"message": "Joined game successfully",
		})
	}
}

// CurrentSession resolves the game remembered in the cookie session.
func CurrentSession(registry *ledger.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		gameID, ok := session.Get("game_id").(string)
		if !ok || gameID == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active session"})
			return
		}

		store, err := registry.GetOrLoad(gameID)
		if err != nil {
			session.Delete("game_id")
			session.Save()
			c.JSON(http.StatusNotFound, gin.H{"error": "Session game no longer exists"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"game_id": gameID,
			"state":   store.Snapshot(),
		})
	}
}

// LeaveGame forgets the game remembered in the cookie session. The game
// itself keeps running for everyone else.
func LeaveGame() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		session.Delete("game_id")
		if err := session.Save(); err != nil {
			log.Printf("Could not save session cookie: %v", err)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Left game"})
	}
}

// AddPlayer puts a new player on the roster. Roster edits are meant for the
// setup phase; the physical table decides whether to allow late joins.
func AddPlayer(registry *ledger.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("game_id")

		var body struct {
			Name  string `json:"name" binding:"required"`
			Color string `json:"color"`
			Token string `json:"token"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Player name is required"})
			return
		}

		store, err := registry.GetOrLoad(gameID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		player := store.AddPlayer(body.Name, body.Color, body.Token)
		c.JSON(http.StatusOK, gin.H{
			"game_id": gameID,
			"player":  player,
			"message": "Player added successfully",
		})
	}
}

// StartGame activates a session over HTTP. Most tables start through the
// socket event instead; this exists for clients that join late.
func StartGame(registry *ledger.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("game_id")

		var body struct {
			DiceMode string `json:"dice_mode"`
		}
		_ = c.ShouldBindJSON(&body)
		mode := ledger.DiceMode(body.DiceMode)
		if mode != ledger.DiceDigital && mode != ledger.DicePhysical {
			mode = ledger.DicePhysical
		}

		store, err := registry.GetOrLoad(gameID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		state := store.Snapshot()
		if state.Status != ledger.StatusSetup {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Game already started"})
			return
		}
		if len(state.Players) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Need at least 2 players to start"})
			return
		}

		store.StartGame(mode)
		c.JSON(http.StatusOK, gin.H{"game_id": gameID, "message": "Game started"})
	}
}

// GetSnapshot returns the full game state.
func GetSnapshot(registry *ledger.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("game_id")

		store, err := registry.GetOrLoad(gameID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		c.JSON(http.StatusOK, store.Snapshot())
	}
}

// GetNetWorth returns the computed net worth of every player in a game.
func GetNetWorth(registry *ledger.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("game_id")

		store, err := registry.GetOrLoad(gameID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		state := store.Snapshot()
		worths := make([]gin.H, 0, len(state.Players))
		for _, p := range state.Players {
			worths = append(worths, gin.H{
				"player_id": p.ID,
				"name":      p.Name,
				"net_worth": ledger.CalculateNetWorth(p, state.Properties),
			})
		}
		c.JSON(http.StatusOK, gin.H{"game_id": gameID, "players": worths})
	}
}
