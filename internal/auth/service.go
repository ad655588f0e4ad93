// backend/internal/auth/service.go
package auth

import (
    "errors"
    "time"

    "github.com/dgrijalva/jwt-go"
    "golang.org/x/crypto/bcrypt"

    "quizroom-system/internal/models"
)

// UserStore is the persistence surface the service needs.
type UserStore interface {
    GetUserByUsername(username string) (*models.User, error)
    GetUserByID(userID uint) (*models.User, error)
    CreateUser(user *models.User) error
}

type Service struct {
    store     UserStore
    jwtSecret []byte
}

func NewService(store UserStore, jwtSecret string) *Service {
    return &Service{
        store:     store,
        jwtSecret: []byte(jwtSecret),
    }
}

func (s *Service) Login(username, password string) (string, error) {
    user, err := s.store.GetUserByUsername(username)
    if err != nil {
        return "", errors.New("user not found")
    }

    if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
        return "", errors.New("invalid password")
    }

    token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
        "user_id":  user.ID,
        "username": user.Username,
        "exp":      time.Now().Add(time.Hour * 24).Unix(),
    })

    tokenString, err := token.SignedString(s.jwtSecret)
    if err != nil {
        return "", err
    }

    return tokenString, nil
}

func (s *Service) Register(user *models.User) error {
    hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
    if err != nil {
        return err
    }

    user.Password = string(hashedPassword)
    if user.DisplayName == "" {
        user.DisplayName = user.Username
    }
    return s.store.CreateUser(user)
}

func (s *Service) GetUser(userID uint) (*models.User, error) {
    return s.store.GetUserByID(userID)
}
