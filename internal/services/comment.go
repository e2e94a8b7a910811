package services

import (
	"fmt"
	"strings"
	"wenda/internal/db"
	"wenda/internal/models"
	"wenda/internal/utils"
)

// CommentNode 带嵌套回复的评论节点
type CommentNode struct {
	models.Comment
	Replies    []*CommentNode `json:"replies"`
	ReplyCount int            `json:"reply_count"`
}

// CreateComment 发表评论。回复评论时父评论必须存在且属于同一个回答。
func CreateComment(user *models.User, aid, parentCid, text string) (*models.Comment, error) {
	answer, err := answerByAid(aid)
	if err != nil {
		return nil, err
	}

	var parent *models.Comment
	if parentCid != "" {
		var parentComment models.Comment
		if err := db.DB.Preload("User").Where("cid = ?", parentCid).First(&parentComment).Error; err != nil {
			return nil, fmt.Errorf("parent comment: %w", ErrNotFound)
		}
		// 回复不能跨回答挂树
		if parentComment.AnswerID != answer.ID {
			return nil, fmt.Errorf("parent comment belongs to another answer: %w", ErrInvalidRelation)
		}
		parent = &parentComment
	}

	comment := models.Comment{
		Cid:      utils.RandStringBytesMaskImpr(8),
		AnswerID: answer.ID,
		UserID:   user.ID,
		Text:     text,
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, err
	}

	if err := AddReputation(user.ID, RepCommentCreate, ActionCommentCreate); err != nil {
		return nil, err
	}

	// 通知为尽力而为，失败不回滚评论
	if parent != nil && parent.UserID != user.ID {
		NotifyCommentReplied(parent, answer, user)

		var question models.Question
		if err := db.DB.First(&question, answer.QuestionID).Error; err == nil {
			GetMailService().SendReplyNotification(parent.User.Email, user.Username, question.Title, text)
		}
	}
	if answer.UserID != user.ID && (parent == nil || parent.UserID != answer.UserID) {
		NotifyCommentPosted(answer, user)
	}

	return &comment, nil
}

// CommentsByAnswer 某回答下的全部评论，按创建顺序平铺返回
func CommentsByAnswer(aid string) ([]models.Comment, error) {
	answer, err := answerByAid(aid)
	if err != nil {
		return nil, err
	}

	var comments []models.Comment
	err = db.DB.Preload("User").
		Where("answer_id = ?", answer.ID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// CommentThreads 把平铺评论组装成嵌套回复树。
// 先按 parent_id 建一次邻接表再递归挂载，整体 O(n)，不对全列表重复扫描。
func CommentThreads(aid string) ([]*CommentNode, error) {
	comments, err := CommentsByAnswer(aid)
	if err != nil {
		return nil, err
	}

	roots := make([]*CommentNode, 0)
	children := make(map[uint][]*CommentNode, len(comments))

	for i := range comments {
		node := &CommentNode{Comment: comments[i], Replies: []*CommentNode{}}
		if comments[i].ParentID == nil {
			roots = append(roots, node)
		} else {
			children[*comments[i].ParentID] = append(children[*comments[i].ParentID], node)
		}
	}

	for _, root := range roots {
		attachReplies(root, children)
	}
	return roots, nil
}

// attachReplies 递归挂载直接回复并统计 reply_count。
// 评论创建时父引用已校验，且父评论一定早于子评论，不会成环。
func attachReplies(node *CommentNode, children map[uint][]*CommentNode) {
	replies := children[node.ID]
	if replies == nil {
		replies = []*CommentNode{}
	}
	node.Replies = replies
	node.ReplyCount = len(replies)
	for _, reply := range replies {
		attachReplies(reply, children)
	}
}

// UpdateComment 修改评论内容，只允许作者本人
func UpdateComment(user *models.User, cid, text string) (*models.Comment, error) {
	var comment models.Comment
	if err := db.DB.Where("cid = ?", cid).First(&comment).Error; err != nil {
		return nil, fmt.Errorf("comment: %w", ErrNotFound)
	}
	if comment.UserID != user.ID {
		return nil, fmt.Errorf("not the comment author: %w", ErrForbidden)
	}

	comment.Text = text
	if err := db.DB.Save(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment 删除评论及其全部子孙回复，先删子孙后删本体
func DeleteComment(user *models.User, cid string) error {
	var comment models.Comment
	if err := db.DB.Where("cid = ?", cid).First(&comment).Error; err != nil {
		return fmt.Errorf("comment: %w", ErrNotFound)
	}
	if comment.UserID != user.ID {
		return fmt.Errorf("not the comment author: %w", ErrForbidden)
	}

	descendants, err := collectReplies(comment.ID)
	if err != nil {
		return fmt.Errorf("collect replies of comment %s: %w", cid, err)
	}

	for i := range descendants {
		if err := db.DB.Delete(&descendants[i]).Error; err != nil {
			return fmt.Errorf("delete reply %s: %w", descendants[i].Cid, err)
		}
	}
	if err := db.DB.Delete(&comment).Error; err != nil {
		return fmt.Errorf("delete comment %s: %w", cid, err)
	}

	// 被级联删除的评论同样回收其作者的声望
	for i := range descendants {
		if err := AddReputation(descendants[i].UserID, -RepCommentCreate, ActionCommentDelete); err != nil {
			return err
		}
	}
	return AddReputation(comment.UserID, -RepCommentCreate, ActionCommentDelete)
}

// collectReplies 反复查询直接子评论收集整棵子树，深的在前
func collectReplies(commentID uint) ([]models.Comment, error) {
	var children []models.Comment
	if err := db.DB.Where("parent_id = ?", commentID).
		Order("created_at ASC, id ASC").
		Find(&children).Error; err != nil {
		return nil, err
	}

	var all []models.Comment
	for i := range children {
		sub, err := collectReplies(children[i].ID)
		if err != nil {
			return nil, err
		}
		all = append(all, sub...)
		all = append(all, children[i])
	}
	return all, nil
}

// deleteCommentsOfAnswer 删除某回答下的全部评论。
// 评论之间只通过 parent_id 相连，按 answer_id 平铺删除即可覆盖整片树。
func deleteCommentsOfAnswer(answerID uint) error {
	return db.DB.Where("answer_id = ?", answerID).Delete(&models.Comment{}).Error
}

// CommentCountByAnswer 某回答下的评论总数
func CommentCountByAnswer(aid string) (int64, error) {
	answer, err := answerByAid(aid)
	if err != nil {
		return 0, err
	}

	var count int64
	err = db.DB.Model(&models.Comment{}).
		Where("answer_id = ?", answer.ID).
		Count(&count).Error
	return count, err
}

// CommentsByUser 某用户的评论，倒序分页
func CommentsByUser(userID uint, skip, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.DB.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

// SearchComments 按内容搜索评论
func SearchComments(query string, skip, limit int) ([]models.Comment, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var comments []models.Comment
	err := db.DB.Preload("User").
		Where("LOWER(text) LIKE ?", pattern).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}
