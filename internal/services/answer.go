package services

import (
	"fmt"
	"wenda/internal/db"
	"wenda/internal/models"
	"wenda/internal/utils"

	"gorm.io/gorm"
)

// answerByAid 按公开 aid 查回答
func answerByAid(aid string) (*models.Answer, error) {
	var answer models.Answer
	if err := db.DB.Where("aid = ?", aid).First(&answer).Error; err != nil {
		return nil, fmt.Errorf("answer: %w", ErrNotFound)
	}
	return &answer, nil
}

// CreateAnswer 发表回答并通知提问者
func CreateAnswer(user *models.User, qid, description string) (*models.Answer, error) {
	question, err := questionByQid(qid)
	if err != nil {
		return nil, err
	}

	answer := models.Answer{
		Aid:         utils.RandStringBytesMaskImpr(8),
		QuestionID:  question.ID,
		UserID:      user.ID,
		Description: description,
	}
	if err := db.DB.Create(&answer).Error; err != nil {
		return nil, err
	}

	if err := AddReputation(user.ID, RepAnswerCreate, ActionAnswerCreate); err != nil {
		return nil, err
	}

	if question.UserID != user.ID {
		NotifyAnswerPosted(question, user)
	}
	return &answer, nil
}

// AnswersByQuestion 某问题下的全部回答，被采纳的排最前，其余按时间倒序
func AnswersByQuestion(qid string) ([]models.Answer, error) {
	question, err := questionByQid(qid)
	if err != nil {
		return nil, err
	}

	var answers []models.Answer
	if err := db.DB.Preload("User").
		Where("question_id = ?", question.ID).
		Order("is_accepted DESC, created_at DESC").
		Find(&answers).Error; err != nil {
		return nil, err
	}

	fillVoteScores(answers)
	for i := range answers {
		answers[i].DescriptionHTML = utils.RenderMarkdown(answers[i].Description)
	}
	return answers, nil
}

// GetAnswer 按 aid 查回答，带作者和票数
func GetAnswer(aid string) (*models.Answer, error) {
	var answer models.Answer
	if err := db.DB.Preload("User").Where("aid = ?", aid).First(&answer).Error; err != nil {
		return nil, fmt.Errorf("answer: %w", ErrNotFound)
	}
	answer.VoteScore = int(answerVoteScore(db.DB, answer.ID))
	answer.DescriptionHTML = utils.RenderMarkdown(answer.Description)
	return &answer, nil
}

// AnswersByUser 某用户的回答，倒序分页
func AnswersByUser(userID uint, skip, limit int) ([]models.Answer, error) {
	var answers []models.Answer
	err := db.DB.Preload("Question").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	fillVoteScores(answers)
	return answers, nil
}

// UpdateAnswer 修改回答内容，只允许作者本人
func UpdateAnswer(user *models.User, aid, description string) (*models.Answer, error) {
	answer, err := answerByAid(aid)
	if err != nil {
		return nil, err
	}
	if answer.UserID != user.ID {
		return nil, fmt.Errorf("not the answer author: %w", ErrForbidden)
	}

	answer.Description = description
	if err := db.DB.Save(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

// DeleteAnswer 删除回答，连带清掉它的投票和评论
func DeleteAnswer(user *models.User, aid string) error {
	answer, err := answerByAid(aid)
	if err != nil {
		return err
	}
	if answer.UserID != user.ID {
		return fmt.Errorf("not the answer author: %w", ErrForbidden)
	}
	return removeAnswer(answer)
}

// removeAnswer 回答删除的公共路径，问题级联也走这里
func removeAnswer(answer *models.Answer) error {
	if err := db.DB.Where("answer_id = ?", answer.ID).Delete(&models.Vote{}).Error; err != nil {
		return fmt.Errorf("delete votes of answer %s: %w", answer.Aid, err)
	}
	if err := reverseCommentReputation(answer.ID); err != nil {
		return err
	}
	if err := deleteCommentsOfAnswer(answer.ID); err != nil {
		return fmt.Errorf("delete comments of answer %s: %w", answer.Aid, err)
	}
	if err := db.DB.Delete(answer).Error; err != nil {
		return fmt.Errorf("delete answer %s: %w", answer.Aid, err)
	}
	return AddReputation(answer.UserID, -RepAnswerCreate, ActionAnswerDelete)
}

// reverseCommentReputation 回收某回答下全部评论作者的声望
func reverseCommentReputation(answerID uint) error {
	var comments []models.Comment
	if err := db.DB.Where("answer_id = ?", answerID).Find(&comments).Error; err != nil {
		return err
	}
	for i := range comments {
		if err := AddReputation(comments[i].UserID, -RepCommentCreate, ActionCommentDelete); err != nil {
			return err
		}
	}
	return nil
}

// AcceptAnswer 采纳回答。只有提问者可以采纳，且每个问题至多一个被采纳；
// 换采纳时先清后设，中途任何读取都不会看到两个被采纳的回答。
func AcceptAnswer(user *models.User, aid string) (*models.Answer, error) {
	answer, err := answerByAid(aid)
	if err != nil {
		return nil, err
	}

	var question models.Question
	if err := db.DB.First(&question, answer.QuestionID).Error; err != nil {
		return nil, fmt.Errorf("question: %w", ErrNotFound)
	}
	if question.UserID != user.ID {
		return nil, fmt.Errorf("only the question author can accept: %w", ErrForbidden)
	}

	// 重复采纳同一个回答是幂等的
	if answer.IsAccepted {
		return answer, nil
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// 找到当前被采纳的回答，回收它作者的采纳声望
		var previous models.Answer
		hadPrevious := tx.Where("question_id = ? AND is_accepted = ?", answer.QuestionID, true).
			First(&previous).Error == nil

		// 先清后设
		if err := tx.Model(&models.Answer{}).
			Where("question_id = ?", answer.QuestionID).
			Update("is_accepted", false).Error; err != nil {
			return err
		}
		if err := tx.Model(answer).Update("is_accepted", true).Error; err != nil {
			return err
		}

		if hadPrevious {
			if err := addReputationTx(tx, previous.UserID, -RepAnswerAccepted, ActionAcceptRevoked); err != nil {
				return err
			}
		}
		return addReputationTx(tx, answer.UserID, RepAnswerAccepted, ActionAnswerAccepted)
	})
	if err != nil {
		return nil, err
	}

	answer.IsAccepted = true
	return answer, nil
}

// UnacceptAnswer 取消采纳
func UnacceptAnswer(user *models.User, aid string) (*models.Answer, error) {
	answer, err := answerByAid(aid)
	if err != nil {
		return nil, err
	}

	var question models.Question
	if err := db.DB.First(&question, answer.QuestionID).Error; err != nil {
		return nil, fmt.Errorf("question: %w", ErrNotFound)
	}
	if question.UserID != user.ID {
		return nil, fmt.Errorf("only the question author can unaccept: %w", ErrForbidden)
	}
	if !answer.IsAccepted {
		return answer, nil
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(answer).Update("is_accepted", false).Error; err != nil {
			return err
		}
		return addReputationTx(tx, answer.UserID, -RepAnswerAccepted, ActionAcceptRevoked)
	})
	if err != nil {
		return nil, err
	}

	answer.IsAccepted = false
	return answer, nil
}
