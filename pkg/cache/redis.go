// backend/pkg/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"quizroom-system/internal/models"
)

type RedisCache struct {
    client *redis.Client
    ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
    client := redis.NewClient(&redis.Options{
        Addr: addr,
    })
    return &RedisCache{
        client: client,
        ctx:    context.Background(),
    }
}

func (c *RedisCache) SetQuiz(quiz *models.Quiz) error {
    data, err := json.Marshal(quiz)
    if err != nil {
        return err
    }

    key := "quiz:" + quiz.QuizCode
    return c.client.Set(c.ctx, key, data, 24*time.Hour).Err()
}

func (c *RedisCache) GetQuiz(code string) (*models.Quiz, error) {
    key := "quiz:" + code
    data, err := c.client.Get(c.ctx, key).Bytes()
    if err != nil {
        return nil, err
    }

    var quiz models.Quiz
    err = json.Unmarshal(data, &quiz)
    return &quiz, err
}

func (c *RedisCache) SetRoom(room *models.Room) error {
    data, err := json.Marshal(room)
    if err != nil {
        return err
    }

    key := "room:" + room.ID
    return c.client.Set(c.ctx, key, data, 24*time.Hour).Err()
}

func (c *RedisCache) GetRoom(roomID string) (*models.Room, error) {
    key := "room:" + roomID
    data, err := c.client.Get(c.ctx, key).Bytes()
    if err != nil {
        return nil, err
    }

    var room models.Room
    err = json.Unmarshal(data, &room)
    return &room, err
}

func (c *RedisCache) DeleteRoom(roomID string) error {
    return c.client.Del(c.ctx, "room:"+roomID).Err()
}

// SetLeaderboard stores the final standings for a finished room. The snapshot
// keeps the full entries (rank, percentage, completion) so it can be served
// as-is after the player rows are purged.
func (c *RedisCache) SetLeaderboard(roomID string, entries []models.LeaderboardEntry) error {
    data, err := json.Marshal(entries)
    if err != nil {
        return err
    }

    key := "leaderboard:room:" + roomID
    return c.client.Set(c.ctx, key, data, 24*time.Hour).Err()
}

func (c *RedisCache) GetLeaderboard(roomID string) ([]models.LeaderboardEntry, error) {
    key := "leaderboard:room:" + roomID
    data, err := c.client.Get(c.ctx, key).Bytes()
    if err != nil {
        return nil, err
    }

    var entries []models.LeaderboardEntry
    err = json.Unmarshal(data, &entries)
    return entries, err
}
