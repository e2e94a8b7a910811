package handlers

import (
	"net/http"
	"time"
	"wenda/internal/services"
	"wenda/internal/utils"

	"github.com/gin-gonic/gin"
)

type MetricsHandler struct{}

func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

const leaderboardCacheKey = "metrics:leaderboard"

// Leaderboard 声望排行榜，默认前 10，短缓存
func (h *MetricsHandler) Leaderboard(c *gin.Context) {
	limit := queryInt(c, "limit", 10)

	cacheable := limit == 10
	if cacheable {
		if cached := utils.GetCache().Get(leaderboardCacheKey); cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	entries, err := services.Leaderboard(limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if cacheable {
		utils.GetCache().Set(leaderboardCacheKey, entries, time.Minute)
	}
	c.JSON(http.StatusOK, entries)
}

// UserMetrics 按用户名查统计
func (h *MetricsHandler) UserMetrics(c *gin.Context) {
	user, err := services.GetUserByUsername(c.Param("username"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	metrics, err := services.GetUserMetrics(user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// MyMetrics 当前用户的统计
func (h *MetricsHandler) MyMetrics(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	metrics, err := services.GetUserMetrics(user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// ReputationLogs 当前用户的声望明细
func (h *MetricsHandler) ReputationLogs(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	skip, limit := pagination(c)
	logs, err := services.ReputationLogs(user.ID, skip, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// PlatformStats 全站概览
func (h *MetricsHandler) PlatformStats(c *gin.Context) {
	stats, err := services.GetPlatformStats()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
