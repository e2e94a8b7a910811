package handlers

import (
	"net/http"
	"wenda/internal/services"
	"wenda/internal/utils"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct{}

func NewQuizHandler() *QuizHandler {
	return &QuizHandler{}
}

type quizCreateRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// Create 按主题生成一次测验
func (h *QuizHandler) Create(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var req quizCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := services.CreateQuiz(user, req.Topic)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

// Topics 可选主题列表
func (h *QuizHandler) Topics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"topics": services.QuizTopics()})
}

// Questions 测验题目，不含正确答案
func (h *QuizHandler) Questions(c *gin.Context) {
	questions, err := services.QuizQuestions(utils.StringToUint(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

type quizSubmitRequest struct {
	Answers []services.QuizAnswer `json:"answers" binding:"required"`
}

// Submit 提交答卷判分，一次测验只能提交一次
func (h *QuizHandler) Submit(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var req quizSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.SubmitQuiz(user, utils.StringToUint(c.Param("id")), req.Answers)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Mine 当前用户的测验记录
func (h *QuizHandler) Mine(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	skip, limit := pagination(c)
	quizzes, err := services.UserQuizzes(user.ID, skip, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// TopicStats 当前用户在某主题下的成绩统计
func (h *QuizHandler) TopicStats(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	stats, err := services.GetTopicStats(user.ID, c.Param("topic"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
