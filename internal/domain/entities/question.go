package entities

// Level is a JLPT proficiency tier. N1 is the hardest, N3 the easiest.
type Level string

const (
	LevelN1 Level = "N1"
	LevelN2 Level = "N2"
	LevelN3 Level = "N3"
)

// DefaultLevel is used when a level parameter cannot be recognized.
const DefaultLevel = LevelN2

// ParseLevel maps a raw level parameter to a known Level.
// Unknown values fall back to DefaultLevel instead of failing,
// matching the menu contract (case-sensitive: "n2" is not "N2").
func ParseLevel(raw string) Level {
	switch Level(raw) {
	case LevelN1, LevelN2, LevelN3:
		return Level(raw)
	default:
		return DefaultLevel
	}
}

// Question is a single multiple-choice question from a level's bank.
// Choices keep their authored order for display; correctness is checked
// against CorrectAnswer, which must appear verbatim among Choices.
type Question struct {
	ID            string   `json:"id"` // unique within a level, e.g. "N2-003"
	Level         Level    `json:"level"`
	QuestionText  string   `json:"questionText"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correctAnswer"`
}
