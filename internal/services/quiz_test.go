package services

import (
	"errors"
	"testing"
)

func TestCreateQuizGeneratesQuestions(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "user")
	quiz, err := CreateQuiz(user, "Python")
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	if quiz.Topic != "python" {
		t.Fatalf("topic = %q, want python", quiz.Topic)
	}
	if quiz.TotalQuestions != 5 {
		t.Fatalf("total_questions = %d, want 5", quiz.TotalQuestions)
	}
	if quiz.Completed {
		t.Fatal("new quiz should not be completed")
	}

	questions, err := QuizQuestions(quiz.ID)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(questions))
	}
}

func TestCreateQuizUnknownTopicMixes(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "user")
	quiz, err := CreateQuiz(user, "rust")
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	// 未收录的主题从全部题库混合抽题
	if quiz.TotalQuestions != 5 {
		t.Fatalf("total_questions = %d, want 5", quiz.TotalQuestions)
	}
}

func TestSubmitQuizScoring(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "user")
	quiz, err := CreateQuiz(user, "python")
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	questions, err := QuizQuestions(quiz.ID)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}

	// 全部答对
	answers := make([]QuizAnswer, len(questions))
	for i, q := range questions {
		answers[i] = QuizAnswer{QuestionID: q.ID, SelectedOption: q.CorrectOption}
	}

	result, err := SubmitQuiz(user, quiz.ID, answers)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 5 || result.Percentage != 100 || !result.Passed {
		t.Fatalf("score=%d pct=%v passed=%v", result.Score, result.Percentage, result.Passed)
	}
}

func TestSubmitQuizPassThreshold(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "user")
	quiz, err := CreateQuiz(user, "javascript")
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	questions, err := QuizQuestions(quiz.ID)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}

	// 答对 3/5 = 60%，低于 70% 及格线
	answers := make([]QuizAnswer, len(questions))
	for i, q := range questions {
		selected := q.CorrectOption
		if i >= 3 {
			if selected == "A" {
				selected = "B"
			} else {
				selected = "A"
			}
		}
		answers[i] = QuizAnswer{QuestionID: q.ID, SelectedOption: selected}
	}

	result, err := SubmitQuiz(user, quiz.ID, answers)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 3 || result.Passed {
		t.Fatalf("score=%d passed=%v, want 3 and not passed", result.Score, result.Passed)
	}
}

func TestSubmitQuizOnlyOnce(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "user")
	quiz, err := CreateQuiz(user, "react")
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	if _, err := SubmitQuiz(user, quiz.ID, nil); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := SubmitQuiz(user, quiz.ID, nil); !errors.Is(err, ErrConflict) {
		t.Fatalf("second submit: got %v, want ErrConflict", err)
	}
}

func TestSubmitQuizForbidden(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "owner")
	stranger := createTestUser(t, "stranger")
	quiz, err := CreateQuiz(owner, "python")
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	if _, err := SubmitQuiz(stranger, quiz.ID, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestTopicStats(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "user")

	// 没有已完成的测验时统计全为零
	empty, err := GetTopicStats(user.ID, "python")
	if err != nil {
		t.Fatalf("empty stats: %v", err)
	}
	if empty.TotalQuizzes != 0 || empty.BestScore != 0 {
		t.Fatalf("expected empty stats, got %+v", empty)
	}

	quiz, err := CreateQuiz(user, "python")
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	questions, _ := QuizQuestions(quiz.ID)
	answers := make([]QuizAnswer, len(questions))
	for i, q := range questions {
		answers[i] = QuizAnswer{QuestionID: q.ID, SelectedOption: q.CorrectOption}
	}
	if _, err := SubmitQuiz(user, quiz.ID, answers); err != nil {
		t.Fatalf("submit: %v", err)
	}

	stats, err := GetTopicStats(user.ID, "python")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalQuizzes != 1 || stats.BestScore != 5 || stats.AverageScore != 100 {
		t.Fatalf("stats = %+v", stats)
	}
}
