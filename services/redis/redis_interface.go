package redis

import (
	redis_models "Magnate/models/redis"
	redis_utils "Magnate/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		Client: client,
		Ctx:    context.Background(),
	}
}

// SaveGameSession stores a live session snapshot in Redis
// Key format: "session:{gameID}"
// TTL: 24 hours
func (rc *RedisClient) SaveGameSession(session *redis_models.GameSession) error {
	key := redis_utils.FormatGameSessionKey(session.GameID)
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error marshaling session data: %v", err)
	}
	return rc.Client.Set(rc.Ctx, key, data, 24*time.Hour).Err()
}

// GetGameSession retrieves a live session snapshot from Redis
// Key format: "session:{gameID}"
// Returns nil without error when the key does not exist.
func (rc *RedisClient) GetGameSession(gameID string) (*redis_models.GameSession, error) {
	key := redis_utils.FormatGameSessionKey(gameID)
	data, err := rc.Client.Get(rc.Ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting session data: %v", err)
	}

	var session redis_models.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("error unmarshaling session data: %v", err)
	}
	return &session, nil
}

// DeleteGameSession removes a live session snapshot from Redis
func (rc *RedisClient) DeleteGameSession(gameID string) error {
	key := redis_utils.FormatGameSessionKey(gameID)
	if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting session data: %v", err)
	}
	return nil
}

// SavePresence stores a connected client's presence
// Key format: "presence:{playerID}"
// TTL: 1 hour, refreshed on every ping
func (rc *RedisClient) SavePresence(presence *redis_models.ClientPresence) error {
	key := redis_utils.FormatPresenceKey(presence.PlayerID)
	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("error marshaling presence data: %v", err)
	}
	return rc.Client.Set(rc.Ctx, key, data, time.Hour).Err()
}

// GetPresence retrieves a client's presence, nil when absent.
func (rc *RedisClient) GetPresence(playerID string) (*redis_models.ClientPresence, error) {
	key := redis_utils.FormatPresenceKey(playerID)
	data, err := rc.Client.Get(rc.Ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting presence data: %v", err)
	}

	var presence redis_models.ClientPresence
	if err := json.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("error unmarshaling presence data: %v", err)
	}
	return &presence, nil
}

// DeletePresence removes a client's presence on disconnect.
func (rc *RedisClient) DeletePresence(playerID string) error {
	key := redis_utils.FormatPresenceKey(playerID)
	if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting presence data: %v", err)
	}
	return nil
}
