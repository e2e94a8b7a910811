package handlers

import (
	"net/http"
	"wenda/internal/services"

	"github.com/gin-gonic/gin"
)

type TagHandler struct{}

func NewTagHandler() *TagHandler {
	return &TagHandler{}
}

// List 全部标签
func (h *TagHandler) List(c *gin.Context) {
	tags, err := services.AllTags()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// Popular 热门标签
func (h *TagHandler) Popular(c *gin.Context) {
	limit := queryInt(c, "limit", 10)
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	tags, err := services.PopularTags(limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// Search 按前缀搜索标签
func (h *TagHandler) Search(c *gin.Context) {
	prefix := c.Query("q")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	tags, err := services.SearchTags(prefix, 20)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}
