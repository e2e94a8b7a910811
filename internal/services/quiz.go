package services

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"wenda/internal/db"
	"wenda/internal/models"

	"gorm.io/gorm"
)

const quizQuestionCount = 5

// 及格线：答对 70% 及以上
const quizPassPercentage = 70.0

type quizQuestionSeed struct {
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string
}

// 各主题的内置题库
var quizBanks = map[string][]quizQuestionSeed{
	"python": {
		{"What is the output of print(type([]))?", "<class 'list'>", "<class 'array'>", "list", "array", "A"},
		{"Which of the following is used to define a function in Python?", "function", "def", "define", "func", "B"},
		{"What does the len() function return?", "Length of an object", "Type of an object", "Value of an object", "Memory address", "A"},
		{"Which operator is used for exponentiation in Python?", "^", "**", "exp", "pow", "B"},
		{"What is the correct way to create a dictionary in Python?", "dict = []", "dict = ()", "dict = {}", "dict = <>", "C"},
	},
	"javascript": {
		{"Which method is used to add an element to the end of an array?", "push()", "add()", "append()", "insert()", "A"},
		{"What does 'typeof null' return in JavaScript?", "null", "undefined", "object", "string", "C"},
		{"Which keyword is used to declare a constant in JavaScript?", "var", "let", "const", "final", "C"},
		{"What is the correct way to write a JavaScript array?", "var colors = 'red', 'green', 'blue'", "var colors = ['red', 'green', 'blue']", "var colors = (1:'red', 2:'green', 3:'blue')", "var colors = 1 = ('red'), 2 = ('green'), 3 = ('blue')", "B"},
		{"How do you write 'Hello World' in an alert box?", "alertBox('Hello World');", "msg('Hello World');", "alert('Hello World');", "msgBox('Hello World');", "C"},
	},
	"react": {
		{"What is JSX?", "A JavaScript library", "A syntax extension for JavaScript", "A database", "A CSS framework", "B"},
		{"Which method is used to create components in React?", "React.createComponent()", "React.createElement()", "createComponent()", "Both A and B", "B"},
		{"What is the purpose of useState hook?", "To manage component state", "To handle side effects", "To optimize performance", "To handle routing", "A"},
		{"Which of the following is used to pass data to a component?", "state", "props", "arguments", "parameters", "B"},
		{"What does the useEffect hook do?", "Manages state", "Handles side effects", "Creates components", "Handles events", "B"},
	},
}

// QuizTopics 可选的测验主题
func QuizTopics() []string {
	topics := make([]string, 0, len(quizBanks))
	for topic := range quizBanks {
		topics = append(topics, topic)
	}
	return topics
}

// pickQuizQuestions 从题库抽题。主题未收录时混合所有题库抽取。
func pickQuizQuestions(topic string, count int) []quizQuestionSeed {
	pool, ok := quizBanks[topic]
	if !ok {
		for _, questions := range quizBanks {
			pool = append(pool, questions...)
		}
	}

	if count > len(pool) {
		count = len(pool)
	}
	picked := make([]quizQuestionSeed, len(pool))
	copy(picked, pool)
	rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:count]
}

// CreateQuiz 为用户生成一次主题测验，题目随机抽取
func CreateQuiz(user *models.User, topic string) (*models.Quiz, error) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return nil, fmt.Errorf("topic is required: %w", ErrInvalidRelation)
	}

	seeds := pickQuizQuestions(topic, quizQuestionCount)

	quiz := &models.Quiz{
		UserID:         user.ID,
		Topic:          topic,
		TotalQuestions: len(seeds),
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		for _, seed := range seeds {
			question := models.QuizQuestion{
				QuizID:        quiz.ID,
				QuestionText:  seed.Text,
				OptionA:       seed.OptionA,
				OptionB:       seed.OptionB,
				OptionC:       seed.OptionC,
				OptionD:       seed.OptionD,
				CorrectOption: seed.CorrectOption,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

// GetQuiz 按 ID 查测验
func GetQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := db.DB.First(&quiz, quizID).Error; err != nil {
		return nil, fmt.Errorf("quiz: %w", ErrNotFound)
	}
	return &quiz, nil
}

// QuizQuestions 测验的题目列表，正确选项不随 JSON 返回
func QuizQuestions(quizID uint) ([]models.QuizQuestion, error) {
	if _, err := GetQuiz(quizID); err != nil {
		return nil, err
	}

	var questions []models.QuizQuestion
	err := db.DB.Where("quiz_id = ?", quizID).
		Order("id ASC").
		Find(&questions).Error
	return questions, err
}

// QuizAnswer 一道题的作答
type QuizAnswer struct {
	QuestionID     uint   `json:"question_id" binding:"required"`
	SelectedOption string `json:"selected_option" binding:"required"`
}

// QuizResult 测验判分结果
type QuizResult struct {
	QuizID         uint     `json:"quiz_id"`
	Score          int      `json:"score"`
	TotalQuestions int      `json:"total_questions"`
	Percentage     float64  `json:"percentage"`
	CorrectAnswers []string `json:"correct_answers"`
	Passed         bool     `json:"passed"`
}

// SubmitQuiz 提交答卷判分。每次测验只能提交一次，提交后锁定。
func SubmitQuiz(user *models.User, quizID uint, answers []QuizAnswer) (*QuizResult, error) {
	quiz, err := GetQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if quiz.UserID != user.ID {
		return nil, fmt.Errorf("not your quiz: %w", ErrForbidden)
	}
	if quiz.Completed {
		return nil, fmt.Errorf("quiz already completed: %w", ErrConflict)
	}

	var questions []models.QuizQuestion
	if err := db.DB.Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
		return nil, err
	}

	questionMap := make(map[uint]*models.QuizQuestion, len(questions))
	for i := range questions {
		questionMap[questions[i].ID] = &questions[i]
	}

	correctCount := 0
	correctAnswers := make([]string, 0, len(answers))
	for _, answer := range answers {
		question, ok := questionMap[answer.QuestionID]
		if !ok {
			continue
		}
		if question.CorrectOption == strings.ToUpper(answer.SelectedOption) {
			correctCount++
		}
		correctAnswers = append(correctAnswers, question.CorrectOption)
	}

	quiz.Score = correctCount
	quiz.Completed = true
	if err := db.DB.Save(quiz).Error; err != nil {
		return nil, err
	}

	percentage := 0.0
	if len(questions) > 0 {
		percentage = float64(correctCount) / float64(len(questions)) * 100
	}
	percentage = math.Round(percentage*100) / 100

	return &QuizResult{
		QuizID:         quiz.ID,
		Score:          correctCount,
		TotalQuestions: len(questions),
		Percentage:     percentage,
		CorrectAnswers: correctAnswers,
		Passed:         percentage >= quizPassPercentage,
	}, nil
}

// UserQuizzes 某用户的测验记录，倒序分页
func UserQuizzes(userID uint, skip, limit int) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&quizzes).Error
	return quizzes, err
}

// TopicStats 某主题下用户的测验统计
type TopicStats struct {
	Topic          string  `json:"topic"`
	TotalQuizzes   int     `json:"total_quizzes"`
	AverageScore   float64 `json:"average_score"`
	BestScore      int     `json:"best_score"`
	CompletionRate float64 `json:"completion_rate"`
}

// GetTopicStats 统计用户在某主题下已完成测验的成绩
func GetTopicStats(userID uint, topic string) (*TopicStats, error) {
	topic = strings.ToLower(strings.TrimSpace(topic))

	var quizzes []models.Quiz
	if err := db.DB.Where("user_id = ? AND topic = ? AND completed = ?", userID, topic, true).
		Find(&quizzes).Error; err != nil {
		return nil, err
	}

	stats := &TopicStats{Topic: topic}
	if len(quizzes) == 0 {
		return stats, nil
	}

	stats.TotalQuizzes = len(quizzes)
	stats.CompletionRate = 100

	totalScore, totalPossible := 0, 0
	for _, quiz := range quizzes {
		totalScore += quiz.Score
		totalPossible += quiz.TotalQuestions
		if quiz.Score > stats.BestScore {
			stats.BestScore = quiz.Score
		}
	}
	if totalPossible > 0 {
		stats.AverageScore = math.Round(float64(totalScore)/float64(totalPossible)*100*100) / 100
	}
	return stats, nil
}
