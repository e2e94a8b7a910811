package services

import (
	"fmt"
	"strings"
	"wenda/internal/db"
	"wenda/internal/models"
	"wenda/internal/utils"
)

// RegisterUser 注册新用户，用户名和邮箱全局唯一
func RegisterUser(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	db.DB.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("username or email already taken: %w", ErrConflict)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hashed,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		// 并发注册撞唯一索引
		return nil, fmt.Errorf("username or email already taken: %w", ErrConflict)
	}

	GetMailService().SendWelcomeEmail(user.Email, user.Username)
	return &user, nil
}

// AuthenticateUser 校验用户名（或邮箱）加密码。
// 不区分"用户不存在"和"密码错误"，统一返回 ErrForbidden。
func AuthenticateUser(account, password string) (*models.User, error) {
	account = strings.TrimSpace(account)

	var user models.User
	err := db.DB.Where("username = ? OR email = ?", account, strings.ToLower(account)).
		First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", ErrForbidden)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, fmt.Errorf("invalid credentials: %w", ErrForbidden)
	}
	return &user, nil
}

// GetUserByID 按主键查用户
func GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	return &user, nil
}

// GetUserByUsername 按用户名查用户
func GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	return &user, nil
}

// UserProfile 用户公开信息，带等级和注册天数
type UserProfile struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Reputation int    `json:"reputation"`
	Level      string `json:"level"`
	LevelIcon  string `json:"level_icon"`
	DaysJoined int    `json:"days_joined"`
}

// GetUserProfile 按用户名查公开资料
func GetUserProfile(username string) (*UserProfile, error) {
	user, err := GetUserByUsername(username)
	if err != nil {
		return nil, err
	}

	level, icon := utils.GetUserLevel(user.Reputation)
	return &UserProfile{
		ID:         user.ID,
		Username:   user.Username,
		Reputation: user.Reputation,
		Level:      level,
		LevelIcon:  icon,
		DaysJoined: utils.GetDaysSinceJoined(user.CreatedAt),
	}, nil
}
