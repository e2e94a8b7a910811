package models

import (
	"time"
)

type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_answer" json:"user_id"`
	AnswerID  uint      `gorm:"not null;index;uniqueIndex:idx_user_answer" json:"answer_id"`
	Value     int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
}

// 唯一索引 (user_id, answer_id) 保证同一用户对同一回答只有一票；
// 并发重复投票时第二个插入会失败，调用方回退到更新路径。
