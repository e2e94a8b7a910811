package handlers

import (
	"errors"
	"net/http"
	"wenda/internal/middleware"
	"wenda/internal/models"
	"wenda/internal/services"
	"wenda/internal/utils"

	"github.com/gin-gonic/gin"
)

// CurrentUser 从上下文取出已登录用户，LoadUser 中间件负责注入
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(middleware.CheckUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// RequireUser 取当前用户，未登录直接写 401 并中断
func RequireUser(c *gin.Context) (*models.User, bool) {
	user, ok := CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, false
	}
	return user, true
}

// AbortWithError 按错误类别映射状态码后输出统一的错误响应
func AbortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusForError(err), gin.H{"error": err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidRelation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// pagination 解析分页参数，带上限保护
func pagination(c *gin.Context) (skip, limit int) {
	skip = queryInt(c, "skip", 0)
	limit = queryInt(c, "limit", 20)
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return skip, limit
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value := c.Query(key)
	if value == "" {
		return fallback
	}
	return utils.StringToInt(value)
}
