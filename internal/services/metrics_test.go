package services

import (
	"errors"
	"testing"
)

func TestLeaderboardOrder(t *testing.T) {
	setupTestDB(t)

	low := createTestUser(t, "low")
	mid := createTestUser(t, "mid")
	high := createTestUser(t, "high")

	if err := AddReputation(low.ID, 5, ActionQuestionCreate); err != nil {
		t.Fatal(err)
	}
	if err := AddReputation(mid.ID, 20, ActionAnswerCreate); err != nil {
		t.Fatal(err)
	}
	if err := AddReputation(high.ID, 50, ActionAnswerAccepted); err != nil {
		t.Fatal(err)
	}

	entries, err := Leaderboard(10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	if entries[0].Username != "high" || entries[1].Username != "mid" || entries[2].Username != "low" {
		t.Fatalf("order wrong: %s, %s, %s", entries[0].Username, entries[1].Username, entries[2].Username)
	}
	for i, entry := range entries {
		if entry.Rank != i+1 {
			t.Fatalf("rank[%d] = %d", i, entry.Rank)
		}
	}
}

func TestLeaderboardCounts(t *testing.T) {
	setupTestDB(t)

	asker := createTestUser(t, "asker")
	answerer := createTestUser(t, "answerer")

	question := createTestQuestion(t, asker, "q")
	answer := createTestAnswer(t, answerer, question)
	if _, err := AcceptAnswer(asker, answer.Aid); err != nil {
		t.Fatalf("accept: %v", err)
	}

	entries, err := Leaderboard(10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}

	byName := map[string]LeaderboardEntry{}
	for _, entry := range entries {
		byName[entry.Username] = entry
	}
	if byName["asker"].QuestionCount != 1 || byName["asker"].AnswerCount != 0 {
		t.Fatalf("asker counts wrong: %+v", byName["asker"])
	}
	if byName["answerer"].AnswerCount != 1 || byName["answerer"].AcceptedAnswers != 1 {
		t.Fatalf("answerer counts wrong: %+v", byName["answerer"])
	}
}

func TestUserMetrics(t *testing.T) {
	setupTestDB(t)

	asker := createTestUser(t, "asker")
	answerer := createTestUser(t, "answerer")
	voter := createTestUser(t, "voter")

	question := createTestQuestion(t, asker, "q")
	answer := createTestAnswer(t, answerer, question)
	createTestComment(t, answerer, answer, "", "c")
	if _, err := CastVote(voter, answer.Aid, 1); err != nil {
		t.Fatalf("vote: %v", err)
	}

	m, err := GetUserMetrics(answerer.ID)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if m.AnswerCount != 1 || m.CommentCount != 1 || m.VotesReceived != 1 {
		t.Fatalf("metrics = %+v", m)
	}
	if m.LastActivity == nil {
		t.Fatal("last activity should be set")
	}
	if m.Reputation != userReputation(t, answerer.ID) {
		t.Fatal("metrics reputation should match balance")
	}
}

func TestUserMetricsNotFound(t *testing.T) {
	setupTestDB(t)

	if _, err := GetUserMetrics(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestQuestionMetrics(t *testing.T) {
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
	if _, err := AcceptAnswer(asker, answer.Aid); err != nil {
		t.Fatalf("accept: %v", err)
	}

	m, err := GetQuestionMetrics(question.Qid)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if m.AnswerCount != 1 || m.CommentCount != 1 || m.VoteCount != 1 {
		t.Fatalf("metrics = %+v", m)
	}
	if !m.HasAccepted {
		t.Fatal("should report an accepted answer")
	}
	if m.TotalActivity != 3 {
		t.Fatalf("total_activity = %d, want 3", m.TotalActivity)
	}
}

func TestPlatformStats(t *testing.T) {
	setupTestDB(t)

	asker := createTestUser(t, "asker")
	answerer := createTestUser(t, "answerer")
	question := createTestQuestion(t, asker, "q")
	createTestAnswer(t, answerer, question)

	stats, err := GetPlatformStats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.UserCount != 2 || stats.QuestionCount != 1 || stats.AnswerCount != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.TagCount != 2 {
		t.Fatalf("tag count = %d, want 2", stats.TagCount)
	}
}
