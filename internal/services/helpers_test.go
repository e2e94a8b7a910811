package services

import (
	"fmt"
	"testing"
	"wenda/internal/db"
	"wenda/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 每个测试用独立的内存库
func setupTestDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// 内存库只允许单连接，避免不同连接各看一个空库
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	db.DB = gdb
}

var testUserSeq int

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()

	testUserSeq++
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s%d@example.com", username, testUserSeq),
		Password: "not-a-real-hash",
	}
	if err := db.DB.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestQuestion(t *testing.T, user *models.User, title string) *models.Question {
	t.Helper()

	question, err := CreateQuestion(user, title, "question body", []string{"go", "testing"})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	return question
}

func createTestAnswer(t *testing.T, user *models.User, question *models.Question) *models.Answer {
	t.Helper()

	answer, err := CreateAnswer(user, question.Qid, "answer body")
	if err != nil {
		t.Fatalf("create answer: %v", err)
	}
	return answer
}

func createTestComment(t *testing.T, user *models.User, answer *models.Answer, parentCid, text string) *models.Comment {
	t.Helper()

	comment, err := CreateComment(user, answer.Aid, parentCid, text)
	if err != nil {
		t.Fatalf("create comment %q: %v", text, err)
	}
	return comment
}

func userReputation(t *testing.T, userID uint) int {
	t.Helper()

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		t.Fatalf("load user %d: %v", userID, err)
	}
	return user.Reputation
}
