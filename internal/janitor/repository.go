// backend/internal/janitor/repository.go
package janitor

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"quizroom-system/internal/models"
)

type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRepository(db *gorm.DB, logger *zap.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

func (r *Repository) ExpireWaitingBefore(cutoff time.Time, now time.Time) ([]string, error) {
	ids := []string{}
	err := r.db.Model(&models.Room{}).
		Where("status = ? AND updated_at <= ?", models.RoomWaiting, cutoff).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	err = r.db.Model(&models.Room{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":      models.RoomFinished,
			"finished_at": now,
		}).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) PurgeFinishedBefore(cutoff time.Time) ([]string, error) {
	ids := []string{}
	err := r.db.Model(&models.Room{}).
		Where("status = ? AND updated_at <= ?", models.RoomFinished, cutoff).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	// Players first, then the rooms themselves.
	if err := r.db.Where("room_id IN ?", ids).Delete(&models.Player{}).Error; err != nil {
		return nil, err
	}
	if err := r.db.Where("id IN ?", ids).Delete(&models.Room{}).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
