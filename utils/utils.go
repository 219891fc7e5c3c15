package utils

import (
	"Magnate/models/postgres"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs method, path, status and latency of each request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(startTime)),
		)
	}
}

// ErrorHandler handles global errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

// CheckGameExists returns the game row, or an error when it is unknown.
func CheckGameExists(db *gorm.DB, gameID string) (*postgres.Game, error) {
	var game postgres.Game
	result := db.Where("id = ?", gameID).First(&game)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("game not found")
		}
		return nil, result.Error
	}

	return &game, nil
}

// IsPlayerInGame reports whether a player id belongs to a game's roster.
func IsPlayerInGame(db *gorm.DB, gameID string, playerID string) (bool, error) {
	var count int64
	err := db.Model(&postgres.Player{}).
		Where("game_id = ? AND id = ?", gameID, playerID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
