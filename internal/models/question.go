package models

import (
	"time"
)

type Question struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Qid         string    `gorm:"uniqueIndex;size:8;not null" json:"qid"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Tags        []Tag     `gorm:"many2many:question_tags;" json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	AnswerCount     int    `gorm:"-" json:"answer_count"`
	DescriptionHTML string `gorm:"-" json:"description_html,omitempty"`
}
