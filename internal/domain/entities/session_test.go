package entities

import (
	"errors"
	"testing"
)

func testQuestions(n int) []Question {
	qs := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, Question{
			ID:            string(rune('A' + i)),
			Level:         LevelN2,
			QuestionText:  "question " + string(rune('A'+i)),
			Choices:       []string{"right", "wrong1", "wrong2", "wrong3"},
			CorrectAnswer: "right",
		})
	}
	return qs
}

func TestNewSessionEmptySetIsTerminal(t *testing.T) {
	s := NewSession(nil, 60, 30)

	if s.Active() {
		t.Fatal("session over empty question set must be terminal")
	}
	if _, ok := s.CurrentQuestion(); ok {
		t.Fatal("terminal session must not expose a current question")
	}
	if s.FinalScore() != 0 {
		t.Fatalf("expected zero final score, got %d", s.FinalScore())
	}
}

func TestSessionAnswerAllQuestions(t *testing.T) {
	qs := testQuestions(5)
	s := NewSession(qs, 60, 30)

	for i := 0; i < len(qs); i++ {
		if !s.Active() {
			t.Fatalf("session terminal before question %d", i)
		}
		if _, err := s.SubmitAnswer("right"); err != nil {
			t.Fatalf("submit answer %d: %v", i, err)
		}
		s.Advance()
	}

	if s.Active() {
		t.Fatal("session must be terminal after answering every question")
	}
	if got, want := len(s.Results), len(qs); got != want {
		t.Fatalf("results length = %d, want %d", got, want)
	}
	if s.Score != len(qs) {
		t.Fatalf("score = %d, want %d", s.Score, len(qs))
	}
}

func TestSessionScoreInvariants(t *testing.T) {
	qs := testQuestions(4)
	s := NewSession(qs, 60, 30)

	answers := []string{"right", "wrong1", "right", "wrong2"}
	for _, a := range answers {
		if _, err := s.SubmitAnswer(a); err != nil {
			t.Fatalf("submit %q: %v", a, err)
		}
		if s.Score > len(s.Results) {
			t.Fatalf("score %d exceeds results length %d", s.Score, len(s.Results))
		}
		if len(s.Results) > len(s.Questions) {
			t.Fatalf("results length %d exceeds question count %d", len(s.Results), len(s.Questions))
		}
		s.Advance()
	}

	if s.Score != 2 {
		t.Fatalf("score = %d, want 2", s.Score)
	}
}

func TestSubmitAnswerDoesNotAdvance(t *testing.T) {
	s := NewSession(testQuestions(3), 60, 30)

	if _, err := s.SubmitAnswer("right"); err != nil {
		t.Fatal(err)
	}
	if s.CurrentIndex != 0 {
		t.Fatalf("submit must not move the cursor, index = %d", s.CurrentIndex)
	}

	_, err := s.SubmitAnswer("right")
	if !errors.Is(err, ErrAnswerPending) {
		t.Fatalf("second submit before advance: got %v, want ErrAnswerPending", err)
	}
	if len(s.Results) != 1 || s.Score != 1 {
		t.Fatalf("rejected submit must not mutate: results=%d score=%d", len(s.Results), s.Score)
	}

	s.Advance()
	if s.CurrentIndex != 1 {
		t.Fatalf("advance moved index to %d, want 1", s.CurrentIndex)
	}
	if _, err := s.SubmitAnswer("wrong1"); err != nil {
		t.Fatalf("submit after advance: %v", err)
	}
}

func TestSubmitAnswerOnTerminalSession(t *testing.T) {
	s := NewSession(testQuestions(1), 60, 30)
	if _, err := s.SubmitAnswer("right"); err != nil {
		t.Fatal(err)
	}
	s.Advance()

	_, err := s.SubmitAnswer("right")
	if !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("got %v, want ErrSessionFinished", err)
	}
}

func TestTickExpiryIsTerminalAndIdempotent(t *testing.T) {
	s := NewSession(testQuestions(3), 1, 30)

	s.Tick()
	if s.Active() {
		t.Fatal("tick to zero must leave the session terminal")
	}
	if s.TimeRemaining != 0 {
		t.Fatalf("time remaining = %d, want 0", s.TimeRemaining)
	}

	// Further ticks are no-ops, time never goes negative.
	s.Tick()
	s.Tick()
	if s.TimeRemaining != 0 {
		t.Fatalf("time remaining after extra ticks = %d, want 0", s.TimeRemaining)
	}
}

func TestLastQuestionAnsweredBeatsLaterTick(t *testing.T) {
	// Once the final answer is recorded, the advance that follows makes the
	// session terminal by exhaustion, independent of the clock.
	s := NewSession(testQuestions(1), 2, 30)

	if _, err := s.SubmitAnswer("right"); err != nil {
		t.Fatal(err)
	}
	s.Tick()
	s.Tick() // expires the clock after the answer was recorded
	s.Advance()

	if s.Active() {
		t.Fatal("session must be terminal")
	}
	if len(s.Results) != 1 || s.Score != 1 {
		t.Fatalf("recorded answer lost: results=%d score=%d", len(s.Results), s.Score)
	}
}

func TestAdvanceOnTerminalSessionIsNoop(t *testing.T) {
	s := NewSession(testQuestions(1), 60, 30)
	if _, err := s.SubmitAnswer("right"); err != nil {
		t.Fatal(err)
	}
	s.Advance()
	s.Advance()
	s.Advance()

	if s.CurrentIndex != 1 {
		t.Fatalf("index = %d, cursor must stop at questions length", s.CurrentIndex)
	}
}

func TestFinalScoreUsesConfiguredReward(t *testing.T) {
	qs := testQuestions(10)
	s := NewSession(qs, 60, 30)

	for range qs {
		if _, err := s.SubmitAnswer("right"); err != nil {
			t.Fatal(err)
		}
		s.Advance()
	}

	if got := s.FinalScore(); got != 300 {
		t.Fatalf("final score = %d, want 300", got)
	}
	if r := RankFor(s.FinalScore()); r != RankB {
		t.Fatalf("rank = %s, want B", r)
	}
}

func TestResultSnapshotsChoices(t *testing.T) {
	q := Question{
		ID:            "N2-001",
		Level:         LevelN2,
		QuestionText:  "謙虚",
		Choices:       []string{"けんきょ", "けんぎょ"},
		CorrectAnswer: "けんきょ",
	}
	s := NewSession([]Question{q}, 60, 30)

	res, err := s.SubmitAnswer("けんぎょ")
	if err != nil {
		t.Fatal(err)
	}
	if res.IsCorrect {
		t.Fatal("wrong answer marked correct")
	}
	if res.UserAnswer != "けんぎょ" || res.CorrectAnswer != "けんきょ" {
		t.Fatalf("unexpected result %+v", res)
	}

	// The snapshot must be independent of the source slice.
	q.Choices[0] = "mutated"
	if res.Choices[0] != "けんきょ" {
		t.Fatal("result choices must be a copy, not an alias")
	}
}
