// backend/internal/models/quiz.go
package models

import (
    "time"

    "gorm.io/gorm"
)

type User struct {
    ID          uint           `json:"id" gorm:"primaryKey"`
    CreatedAt   time.Time      `json:"created_at"`
    UpdatedAt   time.Time      `json:"updated_at"`
    Username    string         `json:"username" gorm:"uniqueIndex;not null"`
    Email       string         `json:"email" gorm:"uniqueIndex;not null"`
    Password    string         `json:"-" gorm:"not null"`
    DisplayName string         `json:"display_name"`
    DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

type Quiz struct {
    ID          uint           `json:"id" gorm:"primaryKey"`
    CreatedAt   time.Time      `json:"created_at"`
    UpdatedAt   time.Time      `json:"updated_at"`
    DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
    Title       string         `json:"title" gorm:"not null"`
    Description string         `json:"description"`
    CreatorID   uint           `json:"creator_id"`
    Difficulty  string         `json:"difficulty,omitempty"`
    QuizCode    string         `json:"quiz_code" gorm:"unique"`
    Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}

type Question struct {
    ID            uint           `json:"id" gorm:"primaryKey"`
    CreatedAt     time.Time      `json:"created_at"`
    UpdatedAt     time.Time      `json:"updated_at"`
    DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
    QuizID        uint           `json:"quiz_id"`
    Content       string         `json:"content" gorm:"not null"`
    Options       []Option       `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
    CorrectAnswer int            `json:"correct_answer"`
}

type Option struct {
    ID         uint           `json:"id" gorm:"primaryKey"`
    CreatedAt  time.Time      `json:"created_at"`
    DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
    QuestionID uint           `json:"question_id"`
    Text       string         `json:"text" gorm:"not null"`
}
