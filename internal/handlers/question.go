package handlers

import (
	"fmt"
	"net/http"
	"time"
	"wenda/internal/services"
	"wenda/internal/utils"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct{}

func NewQuestionHandler() *QuestionHandler {
	return &QuestionHandler{}
}

type questionRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Create 发布问题
func (h *QuestionHandler) Create(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := services.CreateQuestion(user, req.Title, req.Description, req.Tags)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	utils.GetCache().Delete(questionListCacheKey)
	c.JSON(http.StatusCreated, question)
}

const questionListCacheKey = "questions:latest"

// List 问题列表，支持 search / tag / 分页。
// 无过滤条件的首页查询走本地缓存。
func (h *QuestionHandler) List(c *gin.Context) {
	search := c.Query("search")
	tag := c.Query("tag")
	skip, limit := pagination(c)

	cacheable := search == "" && tag == "" && skip == 0 && limit == 20
	if cacheable {
		if cached := utils.GetCache().Get(questionListCacheKey); cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	questions, err := services.ListQuestions(search, tag, skip, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if cacheable {
		utils.GetCache().Set(questionListCacheKey, questions, 30*time.Second)
	}
	c.JSON(http.StatusOK, questions)
}

// Get 问题详情
func (h *QuestionHandler) Get(c *gin.Context) {
	question, err := services.GetQuestion(c.Param("qid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

type questionUpdateRequest struct {
	Title       string   `json:"title" binding:"max=200"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Update 修改问题
func (h *QuestionHandler) Update(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var req questionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := services.UpdateQuestion(user, c.Param("qid"), req.Title, req.Description, req.Tags)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	utils.GetCache().Delete(questionListCacheKey)
	c.JSON(http.StatusOK, question)
}

// Delete 删除问题及其全部回答
func (h *QuestionHandler) Delete(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	qid := c.Param("qid")
	if err := services.DeleteQuestion(user, qid); err != nil {
		AbortWithError(c, err)
		return
	}

	utils.GetCache().Delete(questionListCacheKey)
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("question %s deleted", qid)})
}

// ByUser 某用户发布的问题
func (h *QuestionHandler) ByUser(c *gin.Context) {
	user, err := services.GetUserByUsername(c.Param("username"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	skip, limit := pagination(c)
	questions, err := services.QuestionsByUser(user.ID, skip, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// Metrics 问题的活跃度统计
func (h *QuestionHandler) Metrics(c *gin.Context) {
	metrics, err := services.GetQuestionMetrics(c.Param("qid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}
