package handlers

import (
	"net/http"
	"wenda/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

type voteRequest struct {
	Value int `json:"value" binding:"required"`
}

// Cast 投票。同值重投撤票，异值改票。
func (h *VoteHandler) Cast(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vote, err := services.CastVote(user, c.Param("aid"), req.Value)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if vote == nil {
		// 撤票
		c.JSON(http.StatusOK, gin.H{"message": "vote removed"})
		return
	}
	c.JSON(http.StatusOK, vote)
}

// Stats 某回答的票数统计，登录时附带自己的投票
func (h *VoteHandler) Stats(c *gin.Context) {
	var userID uint
	if user, ok := CurrentUser(c); ok {
		userID = user.ID
	}

	stats, err := services.GetVoteStats(c.Param("aid"), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Remove 显式撤票
func (h *VoteHandler) Remove(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	if err := services.RemoveVote(user, c.Param("aid")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vote removed"})
}
