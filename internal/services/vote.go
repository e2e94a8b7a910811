package services

import (
	"fmt"
	"wenda/internal/db"
	"wenda/internal/models"

	"gorm.io/gorm"
)

// VoteStats 某回答的实时投票统计。
// 分数永远从投票记录现算，不做冗余字段，避免漂移。
type VoteStats struct {
	AnswerID   string `json:"answer_id"`
	TotalScore int64  `json:"total_score"`
	Upvotes    int64  `json:"upvotes"`
	Downvotes  int64  `json:"downvotes"`
	UserVote   int    `json:"user_vote"`
}

// CastVote 投票开关机。每个 (用户, 回答) 至多一票：
// 重复同值撤票，异值改票，无票插入。撤票时返回 (nil, nil)。
func CastVote(user *models.User, aid string, value int) (*models.Vote, error) {
	if value != 1 && value != -1 {
		return nil, fmt.Errorf("vote value must be 1 or -1: %w", ErrInvalidRelation)
	}

	answer, err := answerByAid(aid)
	if err != nil {
		return nil, err
	}
	if answer.UserID == user.ID {
		return nil, fmt.Errorf("cannot vote on your own answer: %w", ErrForbidden)
	}

	var existing models.Vote
	err = db.DB.Where("user_id = ? AND answer_id = ?", user.ID, answer.ID).First(&existing).Error
	if err == nil {
		return applyVoteChange(&existing, answer, value)
	}

	// 无票，插入新票
	vote := models.Vote{
		UserID:   user.ID,
		AnswerID: answer.ID,
		Value:    value,
	}
	if err := db.DB.Create(&vote).Error; err != nil {
		// 并发下两个相同请求都可能看到"无票"，唯一索引会拦下第二个插入；
		// 此时重查并走更新路径
		if findErr := db.DB.Where("user_id = ? AND answer_id = ?", user.ID, answer.ID).
			First(&existing).Error; findErr == nil {
			return applyVoteChange(&existing, answer, value)
		}
		// 重查也没有票，说明不是唯一索引竞争，原始错误原样上抛
		return nil, fmt.Errorf("create vote: %w", err)
	}

	if err := AddReputation(answer.UserID, voteReputationWeight(value), voteAction(value)); err != nil {
		return nil, err
	}
	if value == 1 {
		NotifyVoteReceived(answer, user)
	}
	return &vote, nil
}

// applyVoteChange 已有投票时的状态迁移：同值撤票，异值改票
func applyVoteChange(existing *models.Vote, answer *models.Answer, value int) (*models.Vote, error) {
	if existing.Value == value {
		if err := db.DB.Delete(existing).Error; err != nil {
			return nil, err
		}
		if err := AddReputation(answer.UserID, -voteReputationWeight(value), ActionVoteReverted); err != nil {
			return nil, err
		}
		return nil, nil
	}

	delta := voteReputationWeight(value) - voteReputationWeight(existing.Value)
	existing.Value = value
	if err := db.DB.Save(existing).Error; err != nil {
		return nil, err
	}
	if err := AddReputation(answer.UserID, delta, voteAction(value)); err != nil {
		return nil, err
	}
	return existing, nil
}

func voteAction(value int) string {
	if value == 1 {
		return ActionUpvoteReceived
	}
	return ActionDownvoteReceived
}

// GetVoteStats 统计某回答的票数；userID 非零时附带该用户当前的投票值
func GetVoteStats(aid string, userID uint) (*VoteStats, error) {
	answer, err := answerByAid(aid)
	if err != nil {
		return nil, err
	}

	stats := &VoteStats{AnswerID: answer.Aid}

	if err := db.DB.Model(&models.Vote{}).
		Where("answer_id = ? AND value = 1", answer.ID).
		Count(&stats.Upvotes).Error; err != nil {
		return nil, err
	}
	if err := db.DB.Model(&models.Vote{}).
		Where("answer_id = ? AND value = -1", answer.ID).
		Count(&stats.Downvotes).Error; err != nil {
		return nil, err
	}
	stats.TotalScore = stats.Upvotes - stats.Downvotes

	if userID > 0 {
		var vote models.Vote
		if err := db.DB.Where("user_id = ? AND answer_id = ?", userID, answer.ID).
			First(&vote).Error; err == nil {
			stats.UserVote = vote.Value
		}
	}
	return stats, nil
}

// RemoveVote 显式撤销投票
func RemoveVote(user *models.User, aid string) error {
	answer, err := answerByAid(aid)
	if err != nil {
		return err
	}

	var vote models.Vote
	if err := db.DB.Where("user_id = ? AND answer_id = ?", user.ID, answer.ID).
		First(&vote).Error; err != nil {
		return fmt.Errorf("vote: %w", ErrNotFound)
	}

	if err := db.DB.Delete(&vote).Error; err != nil {
		return err
	}
	return AddReputation(answer.UserID, -voteReputationWeight(vote.Value), ActionVoteReverted)
}

// fillVoteScores 批量填充回答的票数合计
func fillVoteScores(answers []models.Answer) {
	if len(answers) == 0 {
		return
	}

	answerIDs := make([]uint, len(answers))
	for i := range answers {
		answerIDs[i] = answers[i].ID
	}

	type scoreResult struct {
		AnswerID uint
		Score    int
	}
	var results []scoreResult
	db.DB.Model(&models.Vote{}).
		Select("answer_id, COALESCE(SUM(value), 0) as score").
		Where("answer_id IN ?", answerIDs).
		Group("answer_id").
		Scan(&results)

	scoreMap := make(map[uint]int, len(results))
	for _, r := range results {
		scoreMap[r.AnswerID] = r.Score
	}
	for i := range answers {
		answers[i].VoteScore = scoreMap[answers[i].ID]
	}
}

// answerVoteScore 单个回答的票数合计
func answerVoteScore(gdb *gorm.DB, answerID uint) int64 {
	var score int64
	gdb.Model(&models.Vote{}).
		Select("COALESCE(SUM(value), 0)").
		Where("answer_id = ?", answerID).
		Scan(&score)
	return score
}
