package services

import (
	"fmt"
	"time"
	"wenda/internal/db"
	"wenda/internal/models"
	"wenda/internal/utils"
)

// UserMetrics 用户的活跃度统计。
// 声望直接读余额，其余计数现查。
type UserMetrics struct {
	UserID          uint       `json:"user_id"`
	Username        string     `json:"username"`
	Reputation      int        `json:"reputation"`
	QuestionCount   int64      `json:"question_count"`
	AnswerCount     int64      `json:"answer_count"`
	AcceptedAnswers int64      `json:"accepted_answers"`
	CommentCount    int64      `json:"comment_count"`
	VotesReceived   int64      `json:"votes_received"`
	LastActivity    *time.Time `json:"last_activity"`
}

// GetUserMetrics 统计单个用户
func GetUserMetrics(userID uint) (*UserMetrics, error) {
	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}

	m := &UserMetrics{
		UserID:     user.ID,
		Username:   user.Username,
		Reputation: user.Reputation,
	}

	db.DB.Model(&models.Question{}).Where("user_id = ?", userID).Count(&m.QuestionCount)
	db.DB.Model(&models.Answer{}).Where("user_id = ?", userID).Count(&m.AnswerCount)
	db.DB.Model(&models.Answer{}).Where("user_id = ? AND is_accepted = ?", userID, true).Count(&m.AcceptedAnswers)
	db.DB.Model(&models.Comment{}).Where("user_id = ?", userID).Count(&m.CommentCount)

	db.DB.Model(&models.Vote{}).
		Joins("JOIN answers ON answers.id = votes.answer_id").
		Where("answers.user_id = ?", userID).
		Count(&m.VotesReceived)

	m.LastActivity = lastActivityAt(userID)
	return m, nil
}

// lastActivityAt 用户最近一次发问题/回答/评论的时间
func lastActivityAt(userID uint) *time.Time {
	var latest *time.Time
	consider := func(t time.Time) {
		if latest == nil || t.After(*latest) {
			copied := t
			latest = &copied
		}
	}

	var question models.Question
	if err := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").First(&question).Error; err == nil {
		consider(question.CreatedAt)
	}
	var answer models.Answer
	if err := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").First(&answer).Error; err == nil {
		consider(answer.CreatedAt)
	}
	var comment models.Comment
	if err := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").First(&comment).Error; err == nil {
		consider(comment.CreatedAt)
	}
	return latest
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank            int    `json:"rank"`
	UserID          uint   `json:"user_id"`
	Username        string `json:"username"`
	Level           string `json:"level"`
	Reputation      int    `json:"reputation"`
	QuestionCount   int64  `json:"question_count"`
	AnswerCount     int64  `json:"answer_count"`
	AcceptedAnswers int64  `json:"accepted_answers"`
}

// Leaderboard 按声望余额排序的排行榜。
// 余额由声望流水在写入时维护，这里只做一次排序查询加两次批量计数。
func Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var users []models.User
	if err := db.DB.Order("reputation DESC, id ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return []LeaderboardEntry{}, nil
	}

	userIDs := make([]uint, len(users))
	for i := range users {
		userIDs[i] = users[i].ID
	}

	questionCounts := countByUser(&models.Question{}, userIDs, "")
	answerCounts := countByUser(&models.Answer{}, userIDs, "")
	acceptedCounts := countByUser(&models.Answer{}, userIDs, "is_accepted = true")

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		level, _ := utils.GetUserLevel(user.Reputation)
		entries[i] = LeaderboardEntry{
			Rank:            i + 1,
			UserID:          user.ID,
			Username:        user.Username,
			Level:           level,
			Reputation:      user.Reputation,
			QuestionCount:   questionCounts[user.ID],
			AnswerCount:     answerCounts[user.ID],
			AcceptedAnswers: acceptedCounts[user.ID],
		}
	}
	return entries, nil
}

// countByUser 按 user_id 批量分组计数
func countByUser(model interface{}, userIDs []uint, extra string) map[uint]int64 {
	type countResult struct {
		UserID uint
		Count  int64
	}
	var results []countResult

	query := db.DB.Model(model).
		Select("user_id, COUNT(*) as count").
		Where("user_id IN ?", userIDs)
	if extra != "" {
		query = query.Where(extra)
	}
	query.Group("user_id").Scan(&results)

	counts := make(map[uint]int64, len(results))
	for _, r := range results {
		counts[r.UserID] = r.Count
	}
	return counts
}

// QuestionMetrics 单个问题的统计
type QuestionMetrics struct {
	Qid           string `json:"qid"`
	AnswerCount   int64  `json:"answer_count"`
	CommentCount  int64  `json:"comment_count"`
	VoteCount     int64  `json:"vote_count"`
	HasAccepted   bool   `json:"has_accepted"`
	TotalActivity int64  `json:"total_activity"`
}

// GetQuestionMetrics 统计某问题下的回答、评论和投票总量
func GetQuestionMetrics(qid string) (*QuestionMetrics, error) {
	question, err := questionByQid(qid)
	if err != nil {
		return nil, err
	}

	m := &QuestionMetrics{Qid: question.Qid}

	db.DB.Model(&models.Answer{}).
		Where("question_id = ?", question.ID).
		Count(&m.AnswerCount)

	db.DB.Model(&models.Comment{}).
		Joins("JOIN answers ON answers.id = comments.answer_id").
		Where("answers.question_id = ?", question.ID).
		Count(&m.CommentCount)

	db.DB.Model(&models.Vote{}).
		Joins("JOIN answers ON answers.id = votes.answer_id").
		Where("answers.question_id = ?", question.ID).
		Count(&m.VoteCount)

	var accepted int64
	db.DB.Model(&models.Answer{}).
		Where("question_id = ? AND is_accepted = ?", question.ID, true).
		Count(&accepted)
	m.HasAccepted = accepted > 0

	m.TotalActivity = m.AnswerCount + m.CommentCount + m.VoteCount
	return m, nil
}

// PlatformStats 全站概览
type PlatformStats struct {
	UserCount     int64 `json:"user_count"`
	QuestionCount int64 `json:"question_count"`
	AnswerCount   int64 `json:"answer_count"`
	CommentCount  int64 `json:"comment_count"`
	VoteCount     int64 `json:"vote_count"`
	TagCount      int64 `json:"tag_count"`
}

func GetPlatformStats() (*PlatformStats, error) {
	stats := &PlatformStats{}
	db.DB.Model(&models.User{}).Count(&stats.UserCount)
	db.DB.Model(&models.Question{}).Count(&stats.QuestionCount)
	db.DB.Model(&models.Answer{}).Count(&stats.AnswerCount)
	db.DB.Model(&models.Comment{}).Count(&stats.CommentCount)
	db.DB.Model(&models.Vote{}).Count(&stats.VoteCount)
	db.DB.Model(&models.Tag{}).Count(&stats.TagCount)
	return stats, nil
}
