// backend/internal/auth/repository.go
package auth

import (
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

func (r *Repository) GetUserByUsername(username string) (*models.User, error) {
    var user models.User
    result := r.db.Where("username = ?", username).First(&user)
    if result.Error != nil {
        r.logger.Warn("user lookup failed", zap.String("username", username), zap.Error(result.Error))
        return nil, result.Error
    }
    return &user, nil
}

func (r *Repository) GetUserByID(userID uint) (*models.User, error) {
    var user models.User
    if err := r.db.First(&user, userID).Error; err != nil {
        return nil, err
    }
    return &user, nil
}

func (r *Repository) CreateUser(user *models.User) error {
    return r.db.Create(user).Error
}
