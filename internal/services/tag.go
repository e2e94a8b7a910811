package services

import (
	"strings"
	"wenda/internal/db"
	"wenda/internal/models"
)

// getOrCreateTags 按名称取标签，不存在则创建。名称统一小写去空白。
func getOrCreateTags(names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag models.Tag
		if err := db.DB.Where("name = ?", name).First(&tag).Error; err != nil {
			tag = models.Tag{Name: name}
			if err := db.DB.Create(&tag).Error; err != nil {
				// 并发创建同名标签时唯一索引会拦下后来者，重查即可
				if findErr := db.DB.Where("name = ?", name).First(&tag).Error; findErr != nil {
					return nil, err
				}
			}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// AllTags 全部标签，按名称排序
func AllTags() ([]models.Tag, error) {
	var tags []models.Tag
	err := db.DB.Order("name ASC").Find(&tags).Error
	return tags, err
}

// TagCount 标签及其关联的问题数
type TagCount struct {
	Name          string `json:"name"`
	QuestionCount int64  `json:"question_count"`
}

// PopularTags 按使用次数排序的热门标签
func PopularTags(limit int) ([]TagCount, error) {
	var results []TagCount
	err := db.DB.Model(&models.Tag{}).
		Select("tags.name, COUNT(question_tags.question_id) as question_count").
		Joins("JOIN question_tags ON question_tags.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("question_count DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

// SearchTags 按名称前缀搜索标签
func SearchTags(prefix string, limit int) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.DB.Where("name LIKE ?", strings.ToLower(prefix)+"%").
		Order("name ASC").
		Limit(limit).
		Find(&tags).Error
	return tags, err
}
