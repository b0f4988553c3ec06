package queuecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/trimsalon/salon-queue-api/internal/models"
)

const (
	boardTTL    = 5 * time.Minute
	lowWaitTTL  = 12 * time.Hour
	boardKeyFmt = "board:%d"
)

// Cache keeps the live queue board per barber and the once-only flags
// for "almost your turn" notifications.
type Cache struct {
	rdb *redis.Client
}

func New(addr, password string) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}

// StoreBoard caches the barber's current board as JSON.
func (c *Cache) StoreBoard(ctx context.Context, barberID uint, board []models.Appointment) error {
	payload, err := json.Marshal(board)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, fmt.Sprintf(boardKeyFmt, barberID), payload, boardTTL).Err()
}

// Board returns the cached board, or nil when the cache is cold.
func (c *Cache) Board(ctx context.Context, barberID uint) ([]models.Appointment, error) {
	payload, err := c.rdb.Get(ctx, fmt.Sprintf(boardKeyFmt, barberID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var board []models.Appointment
	if err := json.Unmarshal(payload, &board); err != nil {
		return nil, err
	}
	return board, nil
}

// MarkLowWaitNotified flips the appointment's low-wait flag. Returns
// true exactly once per appointment per TTL window, so the "almost
// your turn" push cannot repeat.
func (c *Cache) MarkLowWaitNotified(ctx context.Context, appointmentID uint) (bool, error) {
	key := fmt.Sprintf("lowwait:%d", appointmentID)
	return c.rdb.SetNX(ctx, key, 1, lowWaitTTL).Result()
}
