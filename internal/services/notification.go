package services

import (
	"fmt"
	"log"
	"time"
	"wenda/internal/db"
	"wenda/internal/models"
)

// createNotification 写入一条通知。通知是尽力而为的副作用，
// 写入失败只记录日志，绝不让触发它的主流程失败。
func createNotification(userID uint, actorID *uint, typ models.NotificationType, content string, questionID *uint) {
	notification := models.Notification{
		UserID:     userID,
		ActorID:    actorID,
		Type:       typ,
		Content:    content,
		QuestionID: questionID,
	}
	if err := db.DB.Create(&notification).Error; err != nil {
		log.Printf("通知写入失败（已忽略）: %v", err)
	}
}

// NotifyAnswerPosted 有人回答了问题，通知提问者
func NotifyAnswerPosted(question *models.Question, actor *models.User) {
	content := fmt.Sprintf("%s 回答了你的问题：%s", actor.Username, question.Title)
	createNotification(question.UserID, &actor.ID, models.NotificationTypeAnswer, content, &question.ID)
}

// NotifyCommentPosted 有人评论了回答，通知回答者
func NotifyCommentPosted(answer *models.Answer, actor *models.User) {
	content := fmt.Sprintf("%s 评论了你的回答", actor.Username)
	createNotification(answer.UserID, &actor.ID, models.NotificationTypeComment, content, &answer.QuestionID)
}

// NotifyCommentReplied 有人回复了评论，通知被回复者
func NotifyCommentReplied(parent *models.Comment, answer *models.Answer, actor *models.User) {
	content := fmt.Sprintf("%s 回复了你的评论", actor.Username)
	createNotification(parent.UserID, &actor.ID, models.NotificationTypeComment, content, &answer.QuestionID)
}

// NotifyVoteReceived 回答收到赞同，通知回答者
func NotifyVoteReceived(answer *models.Answer, actor *models.User) {
	content := fmt.Sprintf("%s 赞同了你的回答", actor.Username)
	createNotification(answer.UserID, &actor.ID, models.NotificationTypeVote, content, &answer.QuestionID)
}

// ListNotifications 查询用户通知，倒序分页，可只看未读
func ListNotifications(userID uint, unreadOnly bool, skip, limit int) ([]models.Notification, error) {
	query := db.DB.Preload("Actor").Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkNotificationRead 标记单条通知为已读，只有接收者本人可操作
func MarkNotificationRead(userID, notificationID uint) (*models.Notification, error) {
	var notification models.Notification
	if err := db.DB.First(&notification, notificationID).Error; err != nil {
		return nil, fmt.Errorf("notification: %w", ErrNotFound)
	}
	if notification.UserID != userID {
		return nil, fmt.Errorf("not your notification: %w", ErrForbidden)
	}

	notification.IsRead = true
	if err := db.DB.Save(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkAllNotificationsRead 全部标记为已读，返回更新条数
func MarkAllNotificationsRead(userID uint) (int64, error) {
	result := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// DeleteNotification 删除单条通知，只有接收者本人可操作
func DeleteNotification(userID, notificationID uint) error {
	var notification models.Notification
	if err := db.DB.First(&notification, notificationID).Error; err != nil {
		return fmt.Errorf("notification: %w", ErrNotFound)
	}
	if notification.UserID != userID {
		return fmt.Errorf("not your notification: %w", ErrForbidden)
	}
	return db.DB.Delete(&notification).Error
}

// NotificationStats 通知统计：总数 / 未读数 / 最近 24 小时
type NotificationStats struct {
	TotalCount  int64 `json:"total_count"`
	UnreadCount int64 `json:"unread_count"`
	RecentCount int64 `json:"recent_count"`
}

func GetNotificationStats(userID uint) (*NotificationStats, error) {
	stats := &NotificationStats{}

	if err := db.DB.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalCount).Error; err != nil {
		return nil, err
	}

	if err := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&stats.UnreadCount).Error; err != nil {
		return nil, err
	}

	dayAgo := time.Now().Add(-24 * time.Hour)
	if err := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND created_at >= ?", userID, dayAgo).
		Count(&stats.RecentCount).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
