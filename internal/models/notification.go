package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeAnswer  NotificationType = "answer"
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeMention NotificationType = "mention"
	NotificationTypeVote    NotificationType = "vote"
)

type Notification struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	UserID     uint             `gorm:"not null;index" json:"user_id"` // Receiver
	User       User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ActorID    *uint            `gorm:"index" json:"actor_id"` // Sender
	Actor      User             `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"actor"`
	Type       NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Content    string           `gorm:"type:text" json:"content"`
	QuestionID *uint            `gorm:"index" json:"question_id"` // 相关问题（可空）
	IsRead     bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`
}
