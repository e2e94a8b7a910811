package services

import (
	"errors"
	"testing"
	"wenda/internal/db"
	"wenda/internal/models"
)

func TestCreateQuestionWithTags(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "user")
	question, err := CreateQuestion(user, "How to test?", "body", []string{"Go", "go", " Testing "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 标签去重且统一小写
	if len(question.Tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(question.Tags))
	}
	for _, tag := range question.Tags {
		if tag.Name != "go" && tag.Name != "testing" {
			t.Fatalf("unexpected tag %q", tag.Name)
		}
	}

	if got := userReputation(t, user.ID); got != RepQuestionCreate {
		t.Fatalf("reputation = %d, want %d", got, RepQuestionCreate)
	}
}

func TestListQuestionsFilters(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "user")
	if _, err := CreateQuestion(user, "Goroutines explained", "about concurrency", []string{"go"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := CreateQuestion(user, "React hooks", "about state", []string{"react"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	bySearch, err := ListQuestions("goroutines", "", 0, 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].Title != "Goroutines explained" {
		t.Fatalf("search matched %d questions", len(bySearch))
	}

	byTag, err := ListQuestions("", "react", 0, 20)
	if err != nil {
		t.Fatalf("tag filter: %v", err)
	}
	if len(byTag) != 1 || byTag[0].Title != "React hooks" {
		t.Fatalf("tag filter matched %d questions", len(byTag))
	}

	all, err := ListQuestions("", "", 0, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d questions, want 2", len(all))
	}
}

func TestQuestionAnswerCounts(t *testing.T) {
	setupTestDB(t)

	asker := createTestUser(t, "asker")
	answerer := createTestUser(t, "answerer")

	q1 := createTestQuestion(t, asker, "q1")
	createTestQuestion(t, asker, "q2")
	createTestAnswer(t, answerer, q1)
	createTestAnswer(t, answerer, q1)

	questions, err := ListQuestions("", "", 0, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	counts := map[string]int{}
	for _, q := range questions {
		counts[q.Title] = q.AnswerCount
	}
	if counts["q1"] != 2 || counts["q2"] != 0 {
		t.Fatalf("answer counts wrong: %v", counts)
	}
}

func TestDeleteQuestionCascades(t *testing.T) {
	setupTestDB(t)

	asker := createTestUser(t, "asker")
	answerer := createTestUser(t, "answerer")
	voter := createTestUser(t, "voter")

	question := createTestQuestion(t, asker, "q")
	answer := createTestAnswer(t, answerer, question)
	createTestComment(t, voter, answer, "", "c")
	if _, err := CastVote(voter, answer.Aid, 1); err != nil {
		t.Fatalf("vote: %v", err)
	}

	if err := DeleteQuestion(asker, question.Qid); err != nil {
		t.Fatalf("delete question: %v", err)
	}

	var questions, answers, comments, votes int64
	db.DB.Model(&models.Question{}).Count(&questions)
	db.DB.Model(&models.Answer{}).Count(&answers)
	db.DB.Model(&models.Comment{}).Count(&comments)
	db.DB.Model(&models.Vote{}).Count(&votes)
	if questions != 0 || answers != 0 || comments != 0 || votes != 0 {
		t.Fatalf("cascade incomplete: q=%d a=%d c=%d v=%d", questions, answers, comments, votes)
	}
}

func TestDeleteQuestionForbidden(t *testing.T) {
	setupTestDB(t)

	asker := createTestUser(t, "asker")
	stranger := createTestUser(t, "stranger")
	question := createTestQuestion(t, asker, "q")

	if err := DeleteQuestion(stranger, question.Qid); !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestGetQuestionNotFound(t *testing.T) {
	setupTestDB(t)

	if _, err := GetQuestion("missing1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestPopularTags(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "user")
	if _, err := CreateQuestion(user, "q1", "", []string{"go", "testing"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := CreateQuestion(user, "q2", "", []string{"go"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	popular, err := PopularTags(10)
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	if len(popular) != 2 {
		t.Fatalf("got %d tags, want 2", len(popular))
	}
	if popular[0].Name != "go" || popular[0].QuestionCount != 2 {
		t.Fatalf("top tag = %s (%d), want go (2)", popular[0].Name, popular[0].QuestionCount)
	}
}
