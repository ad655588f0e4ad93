// backend/internal/room/service.go
package room

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quizroom-system/internal/models"
)

// Store is the persistence surface the service needs.
type Store interface {
    CreateRoom(room *models.Room) error
    CreatePlayer(player *models.Player) error
    RoomByID(roomID string) (*models.Room, error)
    WaitingRoomByCode(code string) (*models.Room, error)
    PlayerByRoomAndUser(roomID string, userID uint) (*models.Player, error)
    PlayerByID(playerID string) (*models.Player, error)
    Players(roomID string) ([]models.Player, error)
    UpdateNickname(playerID, nickname string) error
    SetReady(playerID string, ready bool) error
    StartRoom(roomID string, now time.Time, redirectURL string) (bool, error)
    FinishRoom(roomID string, now time.Time) (bool, error)
    MarkCompleted(roomID string, userID uint, score int, now time.Time) (bool, error)
    DeletePlayerByID(playerID string, userID uint) (int64, error)
    DeletePlayerByRoomAndUser(roomID string, userID uint) (int64, error)
}

// Notifier pushes change-feed events to room subscribers.
type Notifier interface {
    Broadcast(roomID string, eventType string, data interface{})
}

// Cache holds the room-by-id cache and the final leaderboard snapshot.
type Cache interface {
    SetRoom(room *models.Room) error
    GetRoom(roomID string) (*models.Room, error)
    SetLeaderboard(roomID string, entries []models.LeaderboardEntry) error
    GetLeaderboard(roomID string) ([]models.LeaderboardEntry, error)
}

// QuestionCounter reports how many questions a quiz has, for percentage math.
type QuestionCounter interface {
    QuestionCount(quizID uint) (int, error)
}

type Service struct {
    store     Store
    cache     Cache
    notifier  Notifier
    questions QuestionCounter
    logger    *zap.Logger
}

func NewService(store Store, cache Cache, notifier Notifier, questions QuestionCounter, logger *zap.Logger) *Service {
    return &Service{
        store:     store,
        cache:     cache,
        notifier:  notifier,
        questions: questions,
        logger:    logger,
    }
}

// CreateRoom inserts the room and then the host's player row. A failed player
// insert is logged but does not fail the call: the room already exists and the
// host picks up a row on join.
func (s *Service) CreateRoom(hostID uint, req models.CreateRoomRequest) (*models.Room, error) {
    code := req.RoomCode
    if code == "" {
        code = GenerateRoomCode()
    }

    nickname := req.HostNickname
    if nickname == "" {
        nickname = "Host"
    }

    room := &models.Room{
        ID:           uuid.NewString(),
        QuizID:       req.QuizID,
        HostID:       hostID,
        CreatedBy:    hostID,
        RoomCode:     code,
        Status:       models.RoomWaiting,
        HostNickname: nickname,
    }
    if err := s.store.CreateRoom(room); err != nil {
        return nil, err
    }

    host := &models.Player{
        ID:       uuid.NewString(),
        RoomID:   room.ID,
        UserID:   hostID,
        Nickname: nickname,
        Score:    0,
        JoinedAt: time.Now(),
        IsReady:  false,
    }
    if err := s.store.CreatePlayer(host); err != nil {
        s.logger.Error("host player insert failed, room kept",
            zap.String("room_id", room.ID),
            zap.Uint("host_id", hostID),
            zap.Error(err))
    }

    if err := s.cache.SetRoom(room); err != nil {
        s.logger.Warn("cache room", zap.String("room_id", room.ID), zap.Error(err))
    }

    return room, nil
}

// FetchRoom reads through the cache.
func (s *Service) FetchRoom(roomID string) (*models.Room, error) {
    if room, err := s.cache.GetRoom(roomID); err == nil {
        return room, nil
    }

    room, err := s.store.RoomByID(roomID)
    if err != nil {
        return nil, err
    }
    if err := s.cache.SetRoom(room); err != nil {
        s.logger.Warn("cache room", zap.String("room_id", roomID), zap.Error(err))
    }
    return room, nil
}

// JoinRoom resolves the code, then reuses or creates the caller's player row.
// Rejoining updates the nickname only and preserves score, readiness and
// completion state. The caller's own row is always returned.
func (s *Service) JoinRoom(callerID uint, req models.JoinRoomRequest) (*models.JoinRoomResponse, error) {
    r, err := s.store.WaitingRoomByCode(req.RoomCode)
    if err != nil {
        return nil, err
    }

    existing, err := s.store.PlayerByRoomAndUser(r.ID, callerID)
    if err != nil {
        return nil, err
    }

    var player *models.Player
    if r.HostID == callerID {
        if existing != nil {
            player = existing
        } else {
            nickname := r.HostNickname
            if nickname == "" {
                nickname = "Host"
            }
            // Host rejoining without a row is assumed ready.
            player = &models.Player{
                ID:       uuid.NewString(),
                RoomID:   r.ID,
                UserID:   callerID,
                Nickname: nickname,
                JoinedAt: time.Now(),
                IsReady:  true,
            }
            if err := s.store.CreatePlayer(player); err != nil {
                return nil, err
            }
        }
    } else {
        if existing != nil {
            if err := s.store.UpdateNickname(existing.ID, req.Nickname); err != nil {
                return nil, err
            }
            existing.Nickname = req.Nickname
            player = existing
        } else {
            player = &models.Player{
                ID:       uuid.NewString(),
                RoomID:   r.ID,
                UserID:   callerID,
                Nickname: req.Nickname,
                JoinedAt: time.Now(),
                IsReady:  false,
            }
            if err := s.store.CreatePlayer(player); err != nil {
                return nil, err
            }
        }
    }

    s.broadcastRoster(r.ID)

    return &models.JoinRoomResponse{Room: r, Player: player}, nil
}

// RoomState bundles the room row, roster and all-ready predicate for a fetch.
func (s *Service) RoomState(roomID string) (*models.RoomState, error) {
    r, err := s.FetchRoom(roomID)
    if err != nil {
        return nil, err
    }
    players, err := s.store.Players(roomID)
    if err != nil {
        return nil, err
    }
    return &models.RoomState{
        Room:     r,
        Players:  players,
        AllReady: AllReady(players),
    }, nil
}

func (s *Service) Players(roomID string) ([]models.Player, error) {
    return s.store.Players(roomID)
}

// StartGame transitions waiting -> playing. Host only. The status flip and the
// redirect target land in one write, so subscribers act on a single push.
func (s *Service) StartGame(roomID string, callerID uint) (*models.Room, error) {
    r, err := s.store.RoomByID(roomID)
    if err != nil {
        return nil, err
    }
    if r.HostID != callerID {
        return nil, ErrNotHost
    }
    if !r.Status.CanTransition(models.RoomPlaying) {
        return nil, ErrInvalidTransition
    }

    redirectURL := fmt.Sprintf("/quiz/%d?room=%s", r.QuizID, r.ID)
    applied, err := s.store.StartRoom(roomID, time.Now(), redirectURL)
    if err != nil {
        return nil, err
    }
    if !applied {
        // Lost a race with another transition.
        return nil, ErrInvalidTransition
    }

    return s.publishRoom(roomID)
}

// FinishGame transitions to finished, snapshots the final leaderboard to the
// cache and broadcasts it. Host only; forward-only.
func (s *Service) FinishGame(roomID string, callerID uint) (*models.Room, error) {
    r, err := s.store.RoomByID(roomID)
    if err != nil {
        return nil, err
    }
    if r.HostID != callerID {
        return nil, ErrNotHost
    }
    if !r.Status.CanTransition(models.RoomFinished) {
        return nil, ErrInvalidTransition
    }

    applied, err := s.store.FinishRoom(roomID, time.Now())
    if err != nil {
        return nil, err
    }
    if !applied {
        return nil, ErrInvalidTransition
    }

    updated, err := s.publishRoom(roomID)
    if err != nil {
        return nil, err
    }

    entries, err := s.Leaderboard(roomID)
    if err != nil {
        s.logger.Error("final leaderboard", zap.String("room_id", roomID), zap.Error(err))
        return updated, nil
    }
    if err := s.cache.SetLeaderboard(roomID, entries); err != nil {
        s.logger.Warn("snapshot leaderboard", zap.String("room_id", roomID), zap.Error(err))
    }
    s.notifier.Broadcast(roomID, "final_leaderboard", entries)

    return updated, nil
}

// SetReady is an ownership-checked last-write-wins point update.
func (s *Service) SetReady(callerID uint, playerID string, ready bool) error {
    p, err := s.store.PlayerByID(playerID)
    if err != nil {
        return err
    }
    if p.UserID != callerID {
        return ErrNotOwner
    }
    if err := s.store.SetReady(playerID, ready); err != nil {
        return err
    }
    s.broadcastRoster(p.RoomID)
    return nil
}

// MarkCompleted records the caller's final score and completion. Overwriting
// an earlier completion is allowed; the write is idempotent in effect.
func (s *Service) MarkCompleted(roomID string, callerID uint, score int) error {
    applied, err := s.store.MarkCompleted(roomID, callerID, score, time.Now())
    if err != nil {
        return err
    }
    if !applied {
        return ErrPlayerNotFound
    }
    s.broadcastRoster(roomID)
    return nil
}

// LeaveRoom deletes the caller's row, by id when known, else by (room, caller).
// Room state is untouched; the janitor reaps abandoned rooms.
func (s *Service) LeaveRoom(roomID string, callerID uint, playerID string) error {
    var (
        rows int64
        err  error
    )
    if playerID != "" {
        rows, err = s.store.DeletePlayerByID(playerID, callerID)
    } else {
        rows, err = s.store.DeletePlayerByRoomAndUser(roomID, callerID)
    }
    if err != nil {
        return err
    }
    if rows == 0 {
        return ErrPlayerNotFound
    }
    s.broadcastRoster(roomID)
    return nil
}

// Leaderboard computes the live ranking from the current roster. Finished
// rooms are served from the persisted snapshot, which outlives the janitor's
// player purge; the live path is the fallback when no snapshot exists.
func (s *Service) Leaderboard(roomID string) ([]models.LeaderboardEntry, error) {
    r, err := s.FetchRoom(roomID)
    if err != nil {
        return nil, err
    }

    if r.Status == models.RoomFinished {
        if entries, err := s.cache.GetLeaderboard(roomID); err == nil && len(entries) > 0 {
            return entries, nil
        }
    }

    players, err := s.store.Players(roomID)
    if err != nil {
        return nil, err
    }

    total, err := s.questions.QuestionCount(r.QuizID)
    if err != nil {
        s.logger.Warn("question count", zap.Uint("quiz_id", r.QuizID), zap.Error(err))
        total = 0
    }
    return Rank(players, total), nil
}

// publishRoom re-reads the room, refreshes the cache and pushes the new row
// to subscribers as a room_update event.
func (s *Service) publishRoom(roomID string) (*models.Room, error) {
    r, err := s.store.RoomByID(roomID)
    if err != nil {
        return nil, err
    }
    if err := s.cache.SetRoom(r); err != nil {
        s.logger.Warn("cache room", zap.String("room_id", roomID), zap.Error(err))
    }
    s.notifier.Broadcast(roomID, "room_update", r)
    return r, nil
}

// broadcastRoster pushes the full re-fetched player list. Sending the whole
// roster keeps subscribers correct regardless of event ordering.
func (s *Service) broadcastRoster(roomID string) {
    players, err := s.store.Players(roomID)
    if err != nil {
        s.logger.Error("roster broadcast", zap.String("room_id", roomID), zap.Error(err))
        return
    }
    s.notifier.Broadcast(roomID, "player_list", players)
}

const roomCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateRoomCode() string {
    code := make([]byte, 6)
    for i := range code {
        code[i] = roomCodeCharset[rand.Intn(len(roomCodeCharset))]
    }
    return string(code)
}
