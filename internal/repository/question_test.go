package repository

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Takoyaki92/goukaku/internal/domain/entities"
)

func writeBank(t *testing.T, questions []entities.Question) string {
	t.Helper()

	wrapper := struct {
		Questions []entities.Question `json:"questions"`
	}{Questions: questions}

	data, err := json.Marshal(wrapper)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func bankQuestion(id string, level entities.Level) entities.Question {
	return entities.Question{
		ID:            id,
		Level:         level,
		QuestionText:  "text for " + id,
		Choices:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "a",
	}
}

func TestGetByLevel(t *testing.T) {
	path := writeBank(t, []entities.Question{
		bankQuestion("N1-001", entities.LevelN1),
		bankQuestion("N2-001", entities.LevelN2),
		bankQuestion("N2-002", entities.LevelN2),
		bankQuestion("N3-001", entities.LevelN3),
	})

	repo, err := NewQuestionRepository(path)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		raw     string
		wantIDs []string
	}{
		{"N1", []string{"N1-001"}},
		{"N2", []string{"N2-001", "N2-002"}},
		{"N3", []string{"N3-001"}},
		{"N5", []string{"N2-001", "N2-002"}}, // unknown level falls back to default
		{"", []string{"N2-001", "N2-002"}},
	}

	for _, tt := range tests {
		got := repo.GetByLevel(tt.raw)
		if len(got) != len(tt.wantIDs) {
			t.Fatalf("GetByLevel(%q) returned %d questions, want %d", tt.raw, len(got), len(tt.wantIDs))
		}
		for i, id := range tt.wantIDs {
			if got[i].ID != id {
				t.Errorf("GetByLevel(%q)[%d].ID = %s, want %s", tt.raw, i, got[i].ID, id)
			}
		}
	}
}

func TestGetByLevelReturnsCopy(t *testing.T) {
	path := writeBank(t, []entities.Question{bankQuestion("N2-001", entities.LevelN2)})

	repo, err := NewQuestionRepository(path)
	if err != nil {
		t.Fatal(err)
	}

	first := repo.GetByLevel("N2")
	first[0].QuestionText = "mutated"

	second := repo.GetByLevel("N2")
	if second[0].QuestionText == "mutated" {
		t.Fatal("bank must not be mutable through GetByLevel results")
	}
}

func TestLoadRejectsCorrectAnswerNotInChoices(t *testing.T) {
	q := bankQuestion("N2-001", entities.LevelN2)
	q.CorrectAnswer = "nope"
	path := writeBank(t, []entities.Question{q})

	_, err := NewQuestionRepository(path)
	if !errors.Is(err, ErrInvalidBank) {
		t.Fatalf("got %v, want ErrInvalidBank", err)
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	path := writeBank(t, []entities.Question{
		bankQuestion("N2-001", entities.LevelN2),
		bankQuestion("N2-001", entities.LevelN2),
	})

	_, err := NewQuestionRepository(path)
	if !errors.Is(err, ErrInvalidBank) {
		t.Fatalf("got %v, want ErrInvalidBank", err)
	}
}

func TestLoadRequiresDefaultLevelBank(t *testing.T) {
	path := writeBank(t, []entities.Question{bankQuestion("N1-001", entities.LevelN1)})

	_, err := NewQuestionRepository(path)
	if !errors.Is(err, ErrInvalidBank) {
		t.Fatalf("got %v, want ErrInvalidBank", err)
	}
}

func TestShippedBankIsValid(t *testing.T) {
	repo, err := NewQuestionRepository(filepath.Join("..", "..", "assets", "data", "questions.json"))
	if err != nil {
		t.Fatal(err)
	}

	for _, level := range []string{"N1", "N2", "N3"} {
		if got := len(repo.GetByLevel(level)); got != 10 {
			t.Errorf("level %s has %d questions, want 10", level, got)
		}
	}
}
