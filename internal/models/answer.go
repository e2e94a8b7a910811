package models

import (
	"time"
)

type Answer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Aid         string    `gorm:"uniqueIndex;size:8;not null" json:"aid"`
	QuestionID  uint      `gorm:"not null;index" json:"question_id"`
	Question    Question  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"question"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Description string    `gorm:"type:text;not null" json:"description"`
	IsAccepted  bool      `gorm:"default:false;index" json:"is_accepted"` // 每个问题至多一个被采纳
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 非数据库字段
	VoteScore       int    `gorm:"-" json:"vote_score"`
	DescriptionHTML string `gorm:"-" json:"description_html,omitempty"`
}
