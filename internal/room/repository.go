// backend/internal/room/repository.go
package room

import (
	"errors"
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

func (r *Repository) CreateRoom(room *models.Room) error {
    if err := r.db.Create(room).Error; err != nil {
        r.logger.Error("create room", zap.Error(err))
        return err
    }
    return nil
}

func (r *Repository) CreatePlayer(player *models.Player) error {
    if err := r.db.Create(player).Error; err != nil {
        r.logger.Error("create player",
            zap.String("room_id", player.RoomID),
            zap.Uint("user_id", player.UserID),
            zap.Error(err))
        return err
    }
    return nil
}

func (r *Repository) RoomByID(roomID string) (*models.Room, error) {
    var room models.Room
    err := r.db.Where("id = ?", roomID).First(&room).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    return &room, nil
}

// WaitingRoomByCode resolves a join code. Only rooms still in the waiting
// state are joinable.
func (r *Repository) WaitingRoomByCode(code string) (*models.Room, error) {
    var room models.Room
    err := r.db.Where("room_code = ? AND status = ?", code, models.RoomWaiting).First(&room).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrNotJoinable
        }
        return nil, err
    }
    return &room, nil
}

// PlayerByRoomAndUser returns (nil, nil) when no row exists; the unique index
// on (room_id, user_id) guarantees at most one match.
func (r *Repository) PlayerByRoomAndUser(roomID string, userID uint) (*models.Player, error) {
    var player models.Player
    err := r.db.Where("room_id = ? AND user_id = ?", roomID, userID).First(&player).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, nil
        }
        return nil, err
    }
    return &player, nil
}

func (r *Repository) PlayerByID(playerID string) (*models.Player, error) {
    var player models.Player
    err := r.db.Where("id = ?", playerID).First(&player).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrPlayerNotFound
        }
        return nil, err
    }
    return &player, nil
}

func (r *Repository) Players(roomID string) ([]models.Player, error) {
    var players []models.Player
    err := r.db.Where("room_id = ?", roomID).
        Order("joined_at asc").
        Find(&players).Error
    if err != nil {
        r.logger.Error("list players", zap.String("room_id", roomID), zap.Error(err))
        return nil, err
    }
    return players, nil
}

func (r *Repository) UpdateNickname(playerID, nickname string) error {
    return r.db.Model(&models.Player{}).
        Where("id = ?", playerID).
        Update("nickname", nickname).Error
}

func (r *Repository) SetReady(playerID string, ready bool) error {
    return r.db.Model(&models.Player{}).
        Where("id = ?", playerID).
        Update("is_ready", ready).Error
}

// StartRoom flips a waiting room to playing, stamping the start times and the
// redirect target in one write so subscribers never see a playing room without
// a destination. Returns false when the room was not in the waiting state.
func (r *Repository) StartRoom(roomID string, now time.Time, redirectURL string) (bool, error) {
    result := r.db.Model(&models.Room{}).
        Where("id = ? AND status = ?", roomID, models.RoomWaiting).
        Updates(map[string]interface{}{
            "status":            models.RoomPlaying,
            "started_at":        now,
            "game_started_at":   now,
            "game_redirect_url": redirectURL,
        })
    if result.Error != nil {
        r.logger.Error("start room", zap.String("room_id", roomID), zap.Error(result.Error))
        return false, result.Error
    }
    return result.RowsAffected > 0, nil
}

// FinishRoom is forward-only: a finished room never leaves that state.
func (r *Repository) FinishRoom(roomID string, now time.Time) (bool, error) {
    result := r.db.Model(&models.Room{}).
        Where("id = ? AND status IN ?", roomID, []models.RoomStatus{models.RoomWaiting, models.RoomPlaying}).
        Updates(map[string]interface{}{
            "status":      models.RoomFinished,
            "finished_at": now,
        })
    if result.Error != nil {
        r.logger.Error("finish room", zap.String("room_id", roomID), zap.Error(result.Error))
        return false, result.Error
    }
    return result.RowsAffected > 0, nil
}

func (r *Repository) MarkCompleted(roomID string, userID uint, score int, now time.Time) (bool, error) {
    result := r.db.Model(&models.Player{}).
        Where("room_id = ? AND user_id = ?", roomID, userID).
        Updates(map[string]interface{}{
            "score":          score,
            "quiz_completed": true,
            "completed_at":   now,
        })
    if result.Error != nil {
        return false, result.Error
    }
    return result.RowsAffected > 0, nil
}

// DeletePlayerByID removes the caller's own row; the user_id predicate makes
// deleting someone else's row a no-op.
func (r *Repository) DeletePlayerByID(playerID string, userID uint) (int64, error) {
    result := r.db.Where("id = ? AND user_id = ?", playerID, userID).
        Delete(&models.Player{})
    return result.RowsAffected, result.Error
}

func (r *Repository) DeletePlayerByRoomAndUser(roomID string, userID uint) (int64, error) {
    result := r.db.Where("room_id = ? AND user_id = ?", roomID, userID).
        Delete(&models.Player{})
    return result.RowsAffected, result.Error
}
