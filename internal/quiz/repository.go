// backend/internal/quiz/repository.go
package quiz

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"quizroom-system/internal/models"
)

var ErrQuizNotFound = errors.New("quiz not found")

type Repository struct {
    db     *gorm.DB
    logger *zap.Logger
}

func NewRepository(db *gorm.DB, logger *zap.Logger) *Repository {
    return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateQuiz(quiz *models.Quiz) error {
    if err := r.db.Create(quiz).Error; err != nil {
        r.logger.Error("create quiz", zap.Error(err))
        return err
    }
    return nil
}

func (r *Repository) QuizByCode(code string) (*models.Quiz, error) {
    var quiz models.Quiz
    err := r.db.Preload("Questions.Options").
        Where("quiz_code = ?", code).
        First(&quiz).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrQuizNotFound
        }
        return nil, err
    }
    return &quiz, nil
}

func (r *Repository) QuizByID(quizID uint) (*models.Quiz, error) {
    var quiz models.Quiz
    err := r.db.First(&quiz, quizID).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrQuizNotFound
        }
        return nil, err
    }
    return &quiz, nil
}

func (r *Repository) QuizzesByCreator(userID uint) ([]models.Quiz, error) {
    var quizzes []models.Quiz
    err := r.db.Where("creator_id = ?", userID).Find(&quizzes).Error
    if err != nil {
        r.logger.Error("quizzes by creator", zap.Uint("user_id", userID), zap.Error(err))
        return nil, err
    }
    return quizzes, nil
}

func (r *Repository) QuestionCount(quizID uint) (int, error) {
    var count int64
    err := r.db.Model(&models.Question{}).
        Where("quiz_id = ?", quizID).
        Count(&count).Error
    return int(count), err
}

// RecentPlayExists checks for an identical result tuple recorded since the
// given time, the guard against double-submitting the same run.
func (r *Repository) RecentPlayExists(play *models.QuizPlay, since time.Time) (bool, error) {
    var count int64
    err := r.db.Model(&models.QuizPlay{}).
        Where("quiz_id = ? AND user_id = ? AND score = ? AND total_questions = ? AND correct_answers = ? AND played_at >= ?",
            play.QuizID, play.UserID, play.Score, play.TotalQuestions, play.CorrectAnswers, since).
        Count(&count).Error
    return count > 0, err
}

func (r *Repository) CreatePlay(play *models.QuizPlay) error {
    return r.db.Create(play).Error
}
