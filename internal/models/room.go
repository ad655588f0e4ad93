// backend/internal/models/room.go
package models

import (
    "time"
)

// RoomStatus is a forward-only state machine: waiting -> playing -> finished.
type RoomStatus string

const (
    RoomWaiting  RoomStatus = "waiting"
    RoomPlaying  RoomStatus = "playing"
    RoomFinished RoomStatus = "finished"
)

func (s RoomStatus) rank() int {
    switch s {
    case RoomWaiting:
        return 0
    case RoomPlaying:
        return 1
    case RoomFinished:
        return 2
    }
    return -1
}

// CanTransition reports whether moving to next is a forward move.
// Skipping playing (waiting -> finished) is allowed; going backward never is.
func (s RoomStatus) CanTransition(next RoomStatus) bool {
    return s.rank() >= 0 && next.rank() > s.rank()
}

type Room struct {
    ID              string     `json:"id" gorm:"primaryKey;type:uuid"`
    QuizID          uint       `json:"quiz_id" gorm:"not null"`
    HostID          uint       `json:"host_id" gorm:"not null"`
    CreatedBy       uint       `json:"created_by"`
    RoomCode        string     `json:"room_code" gorm:"index;not null"`
    Status          RoomStatus `json:"status" gorm:"default:waiting"`
    CreatedAt       time.Time  `json:"created_at"`
    UpdatedAt       time.Time  `json:"updated_at"`
    StartedAt       *time.Time `json:"started_at,omitempty"`
    FinishedAt      *time.Time `json:"finished_at,omitempty"`
    GameStartedAt   *time.Time `json:"game_started_at,omitempty"`
    GameRedirectURL string     `json:"game_redirect_url,omitempty"`
    HostNickname    string     `json:"host_nickname,omitempty"`
}

// Player is a room-scoped membership record. The composite unique index keeps
// at most one row per (room_id, user_id) pair.
type Player struct {
    ID            string     `json:"id" gorm:"primaryKey;type:uuid"`
    RoomID        string     `json:"room_id" gorm:"type:uuid;uniqueIndex:idx_room_user"`
    UserID        uint       `json:"user_id" gorm:"uniqueIndex:idx_room_user"`
    Nickname      string     `json:"nickname"`
    Score         int        `json:"score"`
    JoinedAt      time.Time  `json:"joined_at"`
    IsReady       bool       `json:"is_ready"`
    QuizCompleted bool       `json:"quiz_completed"`
    CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// QuizPlay records one completed run of a quiz by a user, inside or outside a room.
type QuizPlay struct {
    ID             string    `json:"id" gorm:"primaryKey;type:uuid"`
    QuizID         uint      `json:"quiz_id" gorm:"index"`
    UserID         uint      `json:"user_id" gorm:"index"`
    Score          int       `json:"score"`
    TotalQuestions int       `json:"total_questions"`
    CorrectAnswers int       `json:"correct_answers"`
    PlayedAt       time.Time `json:"played_at"`
}

type LeaderboardEntry struct {
    Rank          int    `json:"rank"`
    PlayerID      string `json:"player_id"`
    Nickname      string `json:"nickname"`
    Score         int    `json:"score"`
    Percentage    int    `json:"percentage"`
    QuizCompleted bool   `json:"quiz_completed"`
}
