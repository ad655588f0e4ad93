// backend/internal/janitor/janitor.go
package janitor

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store applies a sweep and reports the affected room ids, so the cached
// copies of those rooms can be invalidated.
type Store interface {
	ExpireWaitingBefore(cutoff time.Time, now time.Time) ([]string, error)
	PurgeFinishedBefore(cutoff time.Time) ([]string, error)
}

// Cache drops cached room rows for swept rooms.
type Cache interface {
	DeleteRoom(roomID string) error
}

type Janitor struct {
	store  Store
	cache  Cache
	logger *zap.Logger
}

func New(store Store, cache Cache, logger *zap.Logger) *Janitor {
	return &Janitor{store: store, cache: cache, logger: logger}
}

// ExpireStaleRooms closes out waiting rooms idle for a day. Nothing in the
// join/leave flow ever deletes a room, so abandoned waiting rooms would
// otherwise sit forever.
func (j *Janitor) ExpireStaleRooms() {
	now := time.Now()
	ids, err := j.store.ExpireWaitingBefore(now.Add(-24*time.Hour), now)
	if err != nil {
		j.logger.Error("expire stale rooms", zap.Error(err))
		return
	}
	j.invalidate(ids)
	if len(ids) > 0 {
		j.logger.Info("expired stale waiting rooms", zap.Int("rooms", len(ids)))
	}
}

// PurgeFinishedRooms deletes finished rooms and their players two days after
// last touch.
func (j *Janitor) PurgeFinishedRooms() {
	ids, err := j.store.PurgeFinishedBefore(time.Now().Add(-48 * time.Hour))
	if err != nil {
		j.logger.Error("purge finished rooms", zap.Error(err))
		return
	}
	j.invalidate(ids)
	if len(ids) > 0 {
		j.logger.Info("purged finished rooms", zap.Int("rooms", len(ids)))
	}
}

// invalidate keeps the cache from serving a room the sweep just changed.
func (j *Janitor) invalidate(ids []string) {
	for _, id := range ids {
		if err := j.cache.DeleteRoom(id); err != nil {
			j.logger.Warn("invalidate room cache", zap.String("room_id", id), zap.Error(err))
		}
	}
}

// Start schedules the room cleanup jobs.
func Start(db *gorm.DB, cache Cache, logger *zap.Logger) *cron.Cron {
	j := New(NewRepository(db, logger), cache, logger)

	c := cron.New()
	c.AddFunc("@daily", j.ExpireStaleRooms)
	c.AddFunc("0 3 * * *", j.PurgeFinishedRooms)
	c.Start()
	return c
}
