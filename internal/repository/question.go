package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Takoyaki92/goukaku/internal/domain/entities"
)

var (
	ErrNoQuestions = errors.New("question bank is empty")
	ErrInvalidBank = errors.New("invalid question bank")
)

// QuestionRepository provides read-only access to the static JLPT question
// banks, keyed by level. Banks are loaded once at startup from a JSON file.
type QuestionRepository struct {
	byLevel map[entities.Level][]entities.Question
}

// NewQuestionRepository loads and validates the question banks from path.
func NewQuestionRepository(path string) (*QuestionRepository, error) {
	byLevel, err := loadBanks(path)
	if err != nil {
		return nil, err
	}

	return &QuestionRepository{byLevel: byLevel}, nil
}

// GetByLevel returns the question bank for a level. Unknown levels fall back
// to the default level's bank rather than failing. Callers get a copy, so the
// banks themselves stay immutable.
func (r *QuestionRepository) GetByLevel(raw string) []entities.Question {
	level := entities.ParseLevel(raw)

	bank := r.byLevel[level]
	out := make([]entities.Question, len(bank))
	copy(out, bank)

	return out
}

// Levels returns the levels that have a non-empty bank.
func (r *QuestionRepository) Levels() []entities.Level {
	levels := []entities.Level{entities.LevelN3, entities.LevelN2, entities.LevelN1}

	out := make([]entities.Level, 0, len(levels))
	for _, l := range levels {
		if len(r.byLevel[l]) > 0 {
			out = append(out, l)
		}
	}

	return out
}

func loadBanks(path string) (map[entities.Level][]entities.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Questions []entities.Question `json:"questions"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}

	if len(wrapper.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	byLevel := make(map[entities.Level][]entities.Question)
	seen := make(map[string]struct{}, len(wrapper.Questions))

	for _, q := range wrapper.Questions {
		if err := validateQuestion(q); err != nil {
			return nil, fmt.Errorf("%w: question %q: %v", ErrInvalidBank, q.ID, err)
		}
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate question id %q", ErrInvalidBank, q.ID)
		}
		seen[q.ID] = struct{}{}

		byLevel[q.Level] = append(byLevel[q.Level], q)
	}

	if len(byLevel[entities.DefaultLevel]) == 0 {
		return nil, fmt.Errorf("%w: default level %s has no questions", ErrInvalidBank, entities.DefaultLevel)
	}

	return byLevel, nil
}

func validateQuestion(q entities.Question) error {
	if q.ID == "" {
		return errors.New("missing id")
	}
	if q.Level != entities.LevelN1 && q.Level != entities.LevelN2 && q.Level != entities.LevelN3 {
		return fmt.Errorf("unknown level %q", q.Level)
	}
	if q.QuestionText == "" {
		return errors.New("missing question text")
	}
	if len(q.Choices) < 2 {
		return errors.New("needs at least two choices")
	}

	// The correct answer must appear verbatim among the choices.
	for _, c := range q.Choices {
		if c == q.CorrectAnswer {
			return nil
		}
	}
	return fmt.Errorf("correct answer %q not among choices", q.CorrectAnswer)
}
