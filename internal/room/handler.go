// backend/internal/room/handler.go
package room

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"quizroom-system/internal/auth"
	"quizroom-system/internal/models"
)

type Handler struct {
    service *Service
}

func NewHandler(service *Service) *Handler {
    return &Handler{service: service}
}

func statusForError(err error) int {
    switch {
    case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrNotJoinable), errors.Is(err, ErrPlayerNotFound):
        return http.StatusNotFound
    case errors.Is(err, ErrNotHost), errors.Is(err, ErrNotOwner):
        return http.StatusForbidden
    case errors.Is(err, ErrInvalidTransition):
        return http.StatusConflict
    default:
        return http.StatusInternalServerError
    }
}

func writeError(w http.ResponseWriter, err error) {
    http.Error(w, err.Error(), statusForError(err))
}

func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
    userID, ok := auth.UserID(r.Context())
    if !ok {
        http.Error(w, "Unauthorized", http.StatusUnauthorized)
        return
    }

    var req models.CreateRoomRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        http.Error(w, "Invalid request", http.StatusBadRequest)
        return
    }
    if req.QuizID == 0 {
        http.Error(w, "quiz_id is required", http.StatusBadRequest)
        return
    }

    created, err := h.service.CreateRoom(userID, req)
    if err != nil {
        writeError(w, err)
        return
    }

    w.WriteHeader(http.StatusCreated)
    json.NewEncoder(w).Encode(created)
}

func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
    roomID := mux.Vars(r)["roomID"]

    state, err := h.service.RoomState(roomID)
    if err != nil {
        writeError(w, err)
        return
    }
    json.NewEncoder(w).Encode(state)
}

func (h *Handler) JoinRoom(w http.ResponseWriter, r *http.Request) {
    userID, ok := auth.UserID(r.Context())
    if !ok {
        http.Error(w, "Unauthorized", http.StatusUnauthorized)
        return
    }

    var req models.JoinRoomRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        http.Error(w, "Invalid request", http.StatusBadRequest)
        return
    }
    if req.RoomCode == "" {
        http.Error(w, "room_code is required", http.StatusBadRequest)
        return
    }

    resp, err := h.service.JoinRoom(userID, req)
    if err != nil {
        writeError(w, err)
        return
    }
    json.NewEncoder(w).Encode(resp)
}

func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
    userID, ok := auth.UserID(r.Context())
    if !ok {
        http.Error(w, "Unauthorized", http.StatusUnauthorized)
        return
    }
    roomID := mux.Vars(r)["roomID"]

    updated, err := h.service.StartGame(roomID, userID)
    if err != nil {
        writeError(w, err)
        return
    }
    json.NewEncoder(w).Encode(updated)
}

func (h *Handler) FinishGame(w http.ResponseWriter, r *http.Request) {
    userID, ok := auth.UserID(r.Context())
    if !ok {
        http.Error(w, "Unauthorized", http.StatusUnauthorized)
        return
    }
    roomID := mux.Vars(r)["roomID"]

    updated, err := h.service.FinishGame(roomID, userID)
    if err != nil {
        writeError(w, err)
        return
    }
    json.NewEncoder(w).Encode(updated)
}

func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
    roomID := mux.Vars(r)["roomID"]

    players, err := h.service.Players(roomID)
    if err != nil {
        writeError(w, err)
        return
    }
    json.NewEncoder(w).Encode(players)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
    roomID := mux.Vars(r)["roomID"]

    entries, err := h.service.Leaderboard(roomID)
    if err != nil {
        writeError(w, err)
        return
    }
    json.NewEncoder(w).Encode(entries)
}

func (h *Handler) SetReady(w http.ResponseWriter, r *http.Request) {
    userID, ok := auth.UserID(r.Context())
    if !ok {
        http.Error(w, "Unauthorized", http.StatusUnauthorized)
        return
    }
    playerID := mux.Vars(r)["playerID"]

    var req models.SetReadyRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        http.Error(w, "Invalid request", http.StatusBadRequest)
        return
    }

    if err := h.service.SetReady(userID, playerID, req.IsReady); err != nil {
        writeError(w, err)
        return
    }
    json.NewEncoder(w).Encode(map[string]bool{"is_ready": req.IsReady})
}

func (h *Handler) CompleteQuiz(w http.ResponseWriter, r *http.Request) {
    userID, ok := auth.UserID(r.Context())
    if !ok {
        http.Error(w, "Unauthorized", http.StatusUnauthorized)
        return
    }
    roomID := mux.Vars(r)["roomID"]

    var req models.CompleteQuizRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        http.Error(w, "Invalid request", http.StatusBadRequest)
        return
    }

    if err := h.service.MarkCompleted(roomID, userID, req.Score); err != nil {
        writeError(w, err)
        return
    }
    json.NewEncoder(w).Encode(map[string]string{"status": "completed"})
}

func (h *Handler) LeaveRoom(w http.ResponseWriter, r *http.Request) {
    userID, ok := auth.UserID(r.Context())
    if !ok {
        http.Error(w, "Unauthorized", http.StatusUnauthorized)
        return
    }
    roomID := mux.Vars(r)["roomID"]

    var req models.LeaveRoomRequest
    if r.Body != nil {
        // Body is optional; an empty one means "delete by (room, caller)".
        json.NewDecoder(r.Body).Decode(&req)
    }

    if err := h.service.LeaveRoom(roomID, userID, req.PlayerID); err != nil {
        writeError(w, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}
