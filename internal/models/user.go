package models

import (
	"time"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"uniqueIndex;not null" json:"username"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"` // Hash
	Role       string    `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	Reputation int       `gorm:"default:0;index" json:"reputation"`           // 声望余额，由声望流水维护
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	// No DeletedAt for hard delete
}
