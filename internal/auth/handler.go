// backend/internal/auth/handler.go
package auth

import (
    "encoding/json"
    "net/http"
    "strings"

    "quizroom-system/internal/models"
)

type Handler struct {
    service *Service
}

func NewHandler(service *Service) *Handler {
    return &Handler{service: service}
}

type LoginRequest struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

type RegisterRequest struct {
    Username    string `json:"username"`
    Email       string `json:"email"`
    Password    string `json:"password"`
    DisplayName string `json:"display_name,omitempty"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
    var req LoginRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        http.Error(w, "Invalid request", http.StatusBadRequest)
        return
    }

    token, err := h.service.Login(req.Username, req.Password)
    if err != nil {
        http.Error(w, "Invalid credentials", http.StatusUnauthorized)
        return
    }

    json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
    var req RegisterRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        http.Error(w, "Invalid request", http.StatusBadRequest)
        return
    }
    if req.Username == "" || req.Email == "" || req.Password == "" {
        http.Error(w, "username, email and password are required", http.StatusBadRequest)
        return
    }

    user := &models.User{
        Username:    req.Username,
        Email:       req.Email,
        Password:    req.Password,
        DisplayName: req.DisplayName,
    }

    if err := h.service.Register(user); err != nil {
        if strings.Contains(err.Error(), "duplicate key") {
            http.Error(w, "Username or email already taken", http.StatusConflict)
            return
        }
        http.Error(w, "Registration failed", http.StatusBadRequest)
        return
    }

    w.WriteHeader(http.StatusCreated)
}
