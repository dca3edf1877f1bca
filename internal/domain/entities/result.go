package entities

// QuestionResult records the outcome of a single answered question.
// It is created once at answer time and never mutated afterwards; the review
// list persists entries of exactly this shape, so the JSON tags are part of
// the storage format.
type QuestionResult struct {
	QuestionText  string   `json:"questionText"`
	UserAnswer    string   `json:"userAnswer"`
	CorrectAnswer string   `json:"correctAnswer"`
	IsCorrect     bool     `json:"isCorrect"`
	Choices       []string `json:"choices"` // snapshot for later review display
}

// NewQuestionResult builds a result for the given question and selected choice.
func NewQuestionResult(q Question, choice string) QuestionResult {
	choices := make([]string, len(q.Choices))
	copy(choices, q.Choices)

	return QuestionResult{
		QuestionText:  q.QuestionText,
		UserAnswer:    choice,
		CorrectAnswer: q.CorrectAnswer,
		IsCorrect:     choice == q.CorrectAnswer,
		Choices:       choices,
	}
}
