package handlers

import (
	"net/http"
	"wenda/internal/services"
	"wenda/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// List 当前用户的通知，unread_only=true 只看未读
func (h *NotificationHandler) List(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	skip, limit := pagination(c)
	unreadOnly := c.Query("unread_only") == "true"

	notifications, err := services.ListNotifications(user.ID, unreadOnly, skip, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// Stats 通知统计
func (h *NotificationHandler) Stats(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	stats, err := services.GetNotificationStats(user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// MarkRead 标记单条已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	notificationID := utils.StringToUint(c.Param("id"))
	notification, err := services.MarkNotificationRead(user.ID, notificationID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

// MarkAllRead 全部标记已读
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	updated, err := services.MarkAllNotificationsRead(user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// Delete 删除单条通知
func (h *NotificationHandler) Delete(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	notificationID := utils.StringToUint(c.Param("id"))
	if err := services.DeleteNotification(user.ID, notificationID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}
