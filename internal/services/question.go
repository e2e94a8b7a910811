package services

import (
	"fmt"
	"strings"
	"wenda/internal/db"
	"wenda/internal/models"
	"wenda/internal/utils"
)

// questionByQid 按公开 qid 查问题
func questionByQid(qid string) (*models.Question, error) {
	var question models.Question
	if err := db.DB.Where("qid = ?", qid).First(&question).Error; err != nil {
		return nil, fmt.Errorf("question: %w", ErrNotFound)
	}
	return &question, nil
}

// CreateQuestion 发布问题，标签按需创建
func CreateQuestion(user *models.User, title, description string, tagNames []string) (*models.Question, error) {
	tags, err := getOrCreateTags(tagNames)
	if err != nil {
		return nil, err
	}

	question := models.Question{
		Qid:         utils.RandStringBytesMaskImpr(8),
		UserID:      user.ID,
		Title:       title,
		Description: description,
		Tags:        tags,
	}
	if err := db.DB.Create(&question).Error; err != nil {
		return nil, err
	}

	if err := AddReputation(user.ID, RepQuestionCreate, ActionQuestionCreate); err != nil {
		return nil, err
	}
	return &question, nil
}

// ListQuestions 问题列表，支持关键词搜索和标签过滤，倒序分页
func ListQuestions(search, tag string, skip, limit int) ([]models.Question, error) {
	query := db.DB.Preload("User").Preload("Tags").Model(&models.Question{})

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if tag != "" {
		query = query.
			Joins("JOIN question_tags ON question_tags.question_id = questions.id").
			Joins("JOIN tags ON tags.id = question_tags.tag_id").
			Where("tags.name = ?", strings.ToLower(tag))
	}

	var questions []models.Question
	if err := query.Order("questions.created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&questions).Error; err != nil {
		return nil, err
	}

	fillAnswerCounts(questions)
	return questions, nil
}

// GetQuestion 按 qid 查问题详情，带作者、标签和回答数
func GetQuestion(qid string) (*models.Question, error) {
	var question models.Question
	if err := db.DB.Preload("User").Preload("Tags").
		Where("qid = ?", qid).First(&question).Error; err != nil {
		return nil, fmt.Errorf("question: %w", ErrNotFound)
	}

	var count int64
	db.DB.Model(&models.Answer{}).Where("question_id = ?", question.ID).Count(&count)
	question.AnswerCount = int(count)
	question.DescriptionHTML = utils.RenderMarkdown(question.Description)
	return &question, nil
}

// QuestionsByUser 某用户发布的问题，倒序分页
func QuestionsByUser(userID uint, skip, limit int) ([]models.Question, error) {
	var questions []models.Question
	err := db.DB.Preload("Tags").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	fillAnswerCounts(questions)
	return questions, nil
}

// UpdateQuestion 修改问题，只允许作者本人；tagNames 为 nil 时保留原标签
func UpdateQuestion(user *models.User, qid, title, description string, tagNames []string) (*models.Question, error) {
	question, err := questionByQid(qid)
	if err != nil {
		return nil, err
	}
	if question.UserID != user.ID {
		return nil, fmt.Errorf("not the question author: %w", ErrForbidden)
	}

	if title != "" {
		question.Title = title
	}
	if description != "" {
		question.Description = description
	}
	if err := db.DB.Save(question).Error; err != nil {
		return nil, err
	}

	if tagNames != nil {
		tags, err := getOrCreateTags(tagNames)
		if err != nil {
			return nil, err
		}
		if err := db.DB.Model(question).Association("Tags").Replace(tags); err != nil {
			return nil, err
		}
		question.Tags = tags
	}
	return question, nil
}

// DeleteQuestion 删除问题，连带清掉所有回答及其投票和评论
func DeleteQuestion(user *models.User, qid string) error {
	question, err := questionByQid(qid)
	if err != nil {
		return err
	}
	if question.UserID != user.ID {
		return fmt.Errorf("not the question author: %w", ErrForbidden)
	}

	var answers []models.Answer
	if err := db.DB.Where("question_id = ?", question.ID).Find(&answers).Error; err != nil {
		return err
	}
	for i := range answers {
		if err := removeAnswer(&answers[i]); err != nil {
			return err
		}
	}

	if err := db.DB.Model(question).Association("Tags").Clear(); err != nil {
		return err
	}
	if err := db.DB.Delete(question).Error; err != nil {
		return fmt.Errorf("delete question %s: %w", qid, err)
	}
	return AddReputation(question.UserID, -RepQuestionCreate, ActionQuestionDelete)
}

// fillAnswerCounts 批量填充问题的回答数，避免逐条 count
func fillAnswerCounts(questions []models.Question) {
	if len(questions) == 0 {
		return
	}

	questionIDs := make([]uint, len(questions))
	for i := range questions {
		questionIDs[i] = questions[i].ID
	}

	type countResult struct {
		QuestionID uint
		Count      int
	}
	var results []countResult
	db.DB.Model(&models.Answer{}).
		Select("question_id, COUNT(*) as count").
		Where("question_id IN ?", questionIDs).
		Group("question_id").
		Scan(&results)

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.QuestionID] = r.Count
	}
	for i := range questions {
		questions[i].AnswerCount = countMap[questions[i].ID]
	}
}
