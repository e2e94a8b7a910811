package handlers

import (
	"net/http"
	"wenda/internal/services"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct{}

func NewAnswerHandler() *AnswerHandler {
	return &AnswerHandler{}
}

type answerRequest struct {
	Description string `json:"description" binding:"required"`
}

// Create 发表回答
func (h *AnswerHandler) Create(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := services.CreateAnswer(user, c.Param("qid"), req.Description)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}

// ListByQuestion 某问题下的回答，被采纳的在最前
func (h *AnswerHandler) ListByQuestion(c *gin.Context) {
	answers, err := services.AnswersByQuestion(c.Param("qid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, answers)
}

// Get 回答详情
func (h *AnswerHandler) Get(c *gin.Context) {
	answer, err := services.GetAnswer(c.Param("aid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// Update 修改回答
func (h *AnswerHandler) Update(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := services.UpdateAnswer(user, c.Param("aid"), req.Description)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// Delete 删除回答及其投票和评论
func (h *AnswerHandler) Delete(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	if err := services.DeleteAnswer(user, c.Param("aid")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "answer deleted"})
}

// Accept 采纳回答，只有提问者可操作
func (h *AnswerHandler) Accept(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	answer, err := services.AcceptAnswer(user, c.Param("aid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// Unaccept 取消采纳
func (h *AnswerHandler) Unaccept(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	answer, err := services.UnacceptAnswer(user, c.Param("aid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// ByUser 某用户的回答
func (h *AnswerHandler) ByUser(c *gin.Context) {
	user, err := services.GetUserByUsername(c.Param("username"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	skip, limit := pagination(c)
	answers, err := services.AnswersByUser(user.ID, skip, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, answers)
}
