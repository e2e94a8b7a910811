package handlers

import (
	"net/http"
	"wenda/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

type commentRequest struct {
	Text      string `json:"text" binding:"required"`
	ParentCid string `json:"parent_cid"`
}

// Create 发表评论或回复
func (h *CommentHandler) Create(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := services.CreateComment(user, c.Param("aid"), req.ParentCid, req.Text)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListByAnswer 某回答下的评论，平铺按时间排列
func (h *CommentHandler) ListByAnswer(c *gin.Context) {
	comments, err := services.CommentsByAnswer(c.Param("aid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Threads 某回答下的评论树，嵌套回复带 reply_count
func (h *CommentHandler) Threads(c *gin.Context) {
	threads, err := services.CommentThreads(c.Param("aid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, threads)
}

// Count 某回答下的评论数
func (h *CommentHandler) Count(c *gin.Context) {
	count, err := services.CommentCountByAnswer(c.Param("aid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

type commentUpdateRequest struct {
	Text string `json:"text" binding:"required"`
}

// Update 修改评论
func (h *CommentHandler) Update(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var req commentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := services.UpdateComment(user, c.Param("cid"), req.Text)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete 删除评论及其全部子孙回复
func (h *CommentHandler) Delete(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	if err := services.DeleteComment(user, c.Param("cid")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// ByUser 某用户的评论
func (h *CommentHandler) ByUser(c *gin.Context) {
	user, err := services.GetUserByUsername(c.Param("username"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	skip, limit := pagination(c)
	comments, err := services.CommentsByUser(user.ID, skip, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Search 按内容搜索评论
func (h *CommentHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	skip, limit := pagination(c)
	comments, err := services.SearchComments(query, skip, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
