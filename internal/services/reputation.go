package services

import (
	"wenda/internal/db"
	"wenda/internal/models"

	"gorm.io/gorm"
)

// 声望动作常量
const (
	ActionQuestionCreate   = "发布问题"
	ActionQuestionDelete   = "删除问题"
	ActionAnswerCreate     = "发布回答"
	ActionAnswerDelete     = "删除回答"
	ActionAnswerAccepted   = "回答被采纳"
	ActionAcceptRevoked    = "采纳被取消"
	ActionCommentCreate    = "发布评论"
	ActionCommentDelete    = "删除评论"
	ActionUpvoteReceived   = "回答获赞"
	ActionDownvoteReceived = "回答被踩"
	ActionVoteReverted     = "投票撤销"
)

// 声望值常量
const (
	RepQuestionCreate   = 5
	RepAnswerCreate     = 10
	RepAnswerAccepted   = 25
	RepCommentCreate    = 1
	RepUpvoteReceived   = 2
	RepDownvoteReceived = -1
)

// AddReputation 使用事务写入声望流水并更新用户余额。
// 余额在写入时维护，排行榜读取时不再全表扫描。
func AddReputation(userID uint, amount int, action string) error {
	if amount == 0 {
		return nil
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return addReputationTx(tx, userID, amount, action)
	})
}

// addReputationTx 在已有事务内写声望，供需要和其他写操作同事务的调用方使用
func addReputationTx(tx *gorm.DB, userID uint, amount int, action string) error {
	if amount == 0 {
		return nil
	}

	// 1. 创建声望明细记录
	entry := models.ReputationLog{
		UserID: userID,
		Amount: amount,
		Action: action,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	// 2. 更新用户声望余额
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("reputation", gorm.Expr("reputation + ?", amount)).
		Error
}

// ReputationLogs 查询用户的声望明细，倒序分页
func ReputationLogs(userID uint, skip, limit int) ([]models.ReputationLog, error) {
	var logs []models.ReputationLog
	err := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// voteReputationWeight 投票值对应的作者声望权重
func voteReputationWeight(value int) int {
	switch value {
	case 1:
		return RepUpvoteReceived
	case -1:
		return RepDownvoteReceived
	}
	return 0
}
