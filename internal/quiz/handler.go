// backend/internal/quiz/handler.go
package quiz

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

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
    userID, ok := auth.UserID(r.Context())
    if !ok {
        http.Error(w, "Unauthorized", http.StatusUnauthorized)
        return
    }

    var quiz models.Quiz
    if err := json.NewDecoder(r.Body).Decode(&quiz); err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }

    quiz.CreatorID = userID

    if err := h.service.CreateQuiz(&quiz); err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    json.NewEncoder(w).Encode(quiz)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
    quizCode := mux.Vars(r)["quizCode"]

    quiz, err := h.service.GetQuizByCode(quizCode)
    if err != nil {
        if errors.Is(err, ErrQuizNotFound) {
            http.Error(w, "Quiz not found", http.StatusNotFound)
            return
        }
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    json.NewEncoder(w).Encode(quiz)
}

func (h *Handler) GetMyQuizzes(w http.ResponseWriter, r *http.Request) {
    userID, ok := auth.UserID(r.Context())
    if !ok {
        http.Error(w, "Unauthorized", http.StatusUnauthorized)
        return
    }

    quizzes, err := h.service.GetQuizzesByCreator(userID)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    json.NewEncoder(w).Encode(quizzes)
}

func (h *Handler) RecordPlay(w http.ResponseWriter, r *http.Request) {
    userID, ok := auth.UserID(r.Context())
    if !ok {
        http.Error(w, "Unauthorized", http.StatusUnauthorized)
        return
    }

    var req models.RecordPlayRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        http.Error(w, "Invalid request", http.StatusBadRequest)
        return
    }
    if req.QuizID == 0 {
        http.Error(w, "quiz_id is required", http.StatusBadRequest)
        return
    }

    play, created, err := h.service.RecordPlay(userID, req)
    if err != nil {
        if errors.Is(err, ErrQuizNotFound) {
            http.Error(w, "Quiz not found", http.StatusNotFound)
            return
        }
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }
    if !created {
        json.NewEncoder(w).Encode(map[string]string{"status": "duplicate, skipped"})
        return
    }

    w.WriteHeader(http.StatusCreated)
    json.NewEncoder(w).Encode(play)
}
