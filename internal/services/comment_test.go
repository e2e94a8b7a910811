package services

import (
	"errors"
	"testing"
	"wenda/internal/db"
	"wenda/internal/models"
)

func TestCommentThreadsNesting(t *testing.T) {
	setupTestDB(t)

	asker := createTestUser(t, "asker")
	answerer := createTestUser(t, "answerer")
	replier := createTestUser(t, "replier")

	question := createTestQuestion(t, asker, "How do goroutines work?")
	answer := createTestAnswer(t, answerer, question)

	// c1 和 c4 是根评论，c2 回复 c1，c3 回复 c2
	c1 := createTestComment(t, asker, answer, "", "c1 root")
	c2 := createTestComment(t, replier, answer, c1.Cid, "c2 reply to c1")
	c3 := createTestComment(t, answerer, answer, c2.Cid, "c3 reply to c2")
	c4 := createTestComment(t, replier, answer, "", "c4 root")

	threads, err := CommentThreads(answer.Aid)
	if err != nil {
		t.Fatalf("build threads: %v", err)
	}

	if len(threads) != 2 {
		t.Fatalf("expected 2 root comments, got %d", len(threads))
	}
	// 根按创建顺序排列
	if threads[0].Cid != c1.Cid || threads[1].Cid != c4.Cid {
		t.Fatalf("roots out of order: %s, %s", threads[0].Cid, threads[1].Cid)
	}

	if threads[0].ReplyCount != 1 {
		t.Fatalf("c1 reply_count = %d, want 1", threads[0].ReplyCount)
	}
	if got := threads[0].Replies[0]; got.Cid != c2.Cid {
		t.Fatalf("c1 reply = %s, want %s", got.Cid, c2.Cid)
	}
	if got := threads[0].Replies[0].Replies[0]; got.Cid != c3.Cid {
		t.Fatalf("c2 reply = %s, want %s", got.Cid, c3.Cid)
	}
	if threads[1].ReplyCount != 0 || len(threads[1].Replies) != 0 {
		t.Fatalf("c4 should have no replies")
	}

	// Replies 字段永远是数组，不是 null
	if threads[0].Replies[0].Replies[0].Replies == nil {
		t.Fatal("leaf Replies should be empty slice, not nil")
	}
}

func TestCommentThreadsRebuildIdempotent(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "user")
	question := createTestQuestion(t, user, "q")
	answer := createTestAnswer(t, user, question)

	c1 := createTestComment(t, user, answer, "", "root")
	createTestComment(t, user, answer, c1.Cid, "reply")

	first, err := CommentThreads(answer.Aid)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := CommentThreads(answer.Aid)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}

	if len(first) != len(second) || first[0].ReplyCount != second[0].ReplyCount {
		t.Fatal("rebuilding threads changed the result")
	}
}

func TestCreateCommentParentGuards(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "user")
	question := createTestQuestion(t, user, "q")
	answerA := createTestAnswer(t, user, question)
	answerB := createTestAnswer(t, user, question)

	// 父评论不存在
	if _, err := CreateComment(user, answerA.Aid, "missing1", "text"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing parent: got %v, want ErrNotFound", err)
	}

	// 父评论挂在别的回答下
	parentOnB := createTestComment(t, user, answerB, "", "on B")
	if _, err := CreateComment(user, answerA.Aid, parentOnB.Cid, "text"); !errors.Is(err, ErrInvalidRelation) {
		t.Fatalf("cross-answer parent: got %v, want ErrInvalidRelation", err)
	}

	// 回答不存在
	if _, err := CreateComment(user, "missing2", "", "text"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing answer: got %v, want ErrNotFound", err)
	}
}

func TestDeleteCommentCascades(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "user")
	other := createTestUser(t, "other")
	question := createTestQuestion(t, user, "q")
	answer := createTestAnswer(t, user, question)

	root := createTestComment(t, user, answer, "", "root")
	child := createTestComment(t, other, answer, root.Cid, "child")
	createTestComment(t, user, answer, child.Cid, "grandchild")
	sibling := createTestComment(t, other, answer, "", "sibling")

	if err := DeleteComment(user, root.Cid); err != nil {
		t.Fatalf("delete root: %v", err)
	}

	var count int64
	db.DB.Model(&models.Comment{}).Where("answer_id = ?", answer.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected only sibling to survive, got %d comments", count)
	}

	var survivor models.Comment
	db.DB.Where("answer_id = ?", answer.ID).First(&survivor)
	if survivor.Cid != sibling.Cid {
		t.Fatalf("wrong survivor: %s", survivor.Cid)
	}
}

func TestDeleteCommentLeaf(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "user")
	question := createTestQuestion(t, user, "q")
	answer := createTestAnswer(t, user, question)

	root := createTestComment(t, user, answer, "", "root")
	leaf := createTestComment(t, user, answer, root.Cid, "leaf")

	if err := DeleteComment(user, leaf.Cid); err != nil {
		t.Fatalf("delete leaf: %v", err)
	}

	var count int64
	db.DB.Model(&models.Comment{}).Where("answer_id = ?", answer.ID).Count(&count)
	if count != 1 {
		t.Fatalf("root should survive, got %d comments", count)
	}
}

func TestDeleteCommentForbidden(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "owner")
	stranger := createTestUser(t, "stranger")
	question := createTestQuestion(t, owner, "q")
	answer := createTestAnswer(t, owner, question)
	comment := createTestComment(t, owner, answer, "", "mine")

	if err := DeleteComment(stranger, comment.Cid); !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
	if _, err := UpdateComment(stranger, comment.Cid, "hacked"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("update: got %v, want ErrForbidden", err)
	}
}

func TestCommentReputationFlow(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "user")
	question := createTestQuestion(t, user, "q")
	answer := createTestAnswer(t, user, question)

	base := userReputation(t, user.ID)
	comment := createTestComment(t, user, answer, "", "c")

	if got := userReputation(t, user.ID); got != base+RepCommentCreate {
		t.Fatalf("after comment: reputation = %d, want %d", got, base+RepCommentCreate)
	}

	if err := DeleteComment(user, comment.Cid); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := userReputation(t, user.ID); got != base {
		t.Fatalf("after delete: reputation = %d, want %d", got, base)
	}
}
