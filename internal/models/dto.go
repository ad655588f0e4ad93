// backend/internal/models/dto.go
package models

type CreateRoomRequest struct {
    QuizID       uint   `json:"quiz_id"`
    RoomCode     string `json:"room_code,omitempty"`
    HostNickname string `json:"host_nickname,omitempty"`
}

type JoinRoomRequest struct {
    RoomCode string `json:"room_code"`
    Nickname string `json:"nickname"`
}

// JoinRoomResponse always carries the caller's own player row so clients never
// have to re-derive "which row is mine" from a roster refresh.
type JoinRoomResponse struct {
    Room   *Room   `json:"room"`
    Player *Player `json:"player"`
}

// RoomState is the payload pushed on room_state fetches: the room row, the
// roster in join order, and the advisory all-ready predicate.
type RoomState struct {
    Room     *Room    `json:"room"`
    Players  []Player `json:"players"`
    AllReady bool     `json:"all_ready"`
}

type SetReadyRequest struct {
    IsReady bool `json:"is_ready"`
}

type CompleteQuizRequest struct {
    Score int `json:"score"`
}

type LeaveRoomRequest struct {
    PlayerID string `json:"player_id,omitempty"`
}

type RecordPlayRequest struct {
    QuizID         uint `json:"quiz_id"`
    Score          int  `json:"score"`
    TotalQuestions int  `json:"total_questions"`
    CorrectAnswers int  `json:"correct_answers"`
}
