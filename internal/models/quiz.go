package models

import (
	"time"
)

// Quiz 一次主题测验，提交后锁定
type Quiz struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	User           User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Topic          string    `gorm:"size:50;not null;index" json:"topic"`
	Score          int       `gorm:"default:0" json:"score"`
	TotalQuestions int       `gorm:"default:0" json:"total_questions"`
	Completed      bool      `gorm:"default:false" json:"completed"`
	CreatedAt      time.Time `json:"created_at"`
}

// QuizQuestion 测验题目，正确选项不出现在 API 响应中
type QuizQuestion struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	QuizID        uint   `gorm:"not null;index" json:"quiz_id"`
	Quiz          Quiz   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	QuestionText  string `gorm:"type:text;not null" json:"question_text"`
	OptionA       string `gorm:"not null" json:"option_a"`
	OptionB       string `gorm:"not null" json:"option_b"`
	OptionC       string `gorm:"not null" json:"option_c"`
	OptionD       string `gorm:"not null" json:"option_d"`
	CorrectOption string `gorm:"size:1;not null" json:"-"` // 'A'..'D'
}
