// backend/internal/quiz/service.go
package quiz

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quizroom-system/internal/models"
)

// Store is the persistence surface the service needs.
type Store interface {
    CreateQuiz(quiz *models.Quiz) error
    QuizByCode(code string) (*models.Quiz, error)
    QuizByID(quizID uint) (*models.Quiz, error)
    QuizzesByCreator(userID uint) ([]models.Quiz, error)
    QuestionCount(quizID uint) (int, error)
    RecentPlayExists(play *models.QuizPlay, since time.Time) (bool, error)
    CreatePlay(play *models.QuizPlay) error
}

// QuizCache caches quizzes by code.
type QuizCache interface {
    SetQuiz(quiz *models.Quiz) error
    GetQuiz(code string) (*models.Quiz, error)
}

// duplicateWindow is how long an identical result tuple suppresses a re-insert.
const duplicateWindow = time.Minute

type Service struct {
    store  Store
    cache  QuizCache
    logger *zap.Logger
}

func NewService(store Store, cache QuizCache, logger *zap.Logger) *Service {
    return &Service{
        store:  store,
        cache:  cache,
        logger: logger,
    }
}

func (s *Service) CreateQuiz(quiz *models.Quiz) error {
    quiz.QuizCode = generateQuizCode()

    if err := s.store.CreateQuiz(quiz); err != nil {
        return err
    }

    if err := s.cache.SetQuiz(quiz); err != nil {
        s.logger.Warn("cache quiz", zap.String("quiz_code", quiz.QuizCode), zap.Error(err))
    }
    return nil
}

func (s *Service) GetQuizByCode(code string) (*models.Quiz, error) {
    if quiz, err := s.cache.GetQuiz(code); err == nil {
        return quiz, nil
    }

    quiz, err := s.store.QuizByCode(code)
    if err != nil {
        return nil, err
    }

    if err := s.cache.SetQuiz(quiz); err != nil {
        s.logger.Warn("cache quiz", zap.String("quiz_code", code), zap.Error(err))
    }
    return quiz, nil
}

func (s *Service) GetQuizzesByCreator(userID uint) ([]models.Quiz, error) {
    return s.store.QuizzesByCreator(userID)
}

func (s *Service) QuestionCount(quizID uint) (int, error) {
    return s.store.QuestionCount(quizID)
}

// RecordPlay stores a completed quiz run. An identical (quiz, user, score,
// total, correct) tuple seen within the duplicate window is skipped and the
// returned bool is false.
func (s *Service) RecordPlay(userID uint, req models.RecordPlayRequest) (*models.QuizPlay, bool, error) {
    if _, err := s.store.QuizByID(req.QuizID); err != nil {
        return nil, false, err
    }

    play := &models.QuizPlay{
        ID:             uuid.NewString(),
        QuizID:         req.QuizID,
        UserID:         userID,
        Score:          req.Score,
        TotalQuestions: req.TotalQuestions,
        CorrectAnswers: req.CorrectAnswers,
        PlayedAt:       time.Now(),
    }

    exists, err := s.store.RecentPlayExists(play, play.PlayedAt.Add(-duplicateWindow))
    if err != nil {
        return nil, false, err
    }
    if exists {
        s.logger.Info("duplicate play skipped",
            zap.Uint("quiz_id", req.QuizID),
            zap.Uint("user_id", userID))
        return nil, false, nil
    }

    if err := s.store.CreatePlay(play); err != nil {
        return nil, false, err
    }
    return play, true, nil
}

func generateQuizCode() string {
    const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
    code := make([]byte, 6)
    for i := range code {
        code[i] = charset[rand.Intn(len(charset))]
    }
    return string(code)
}
