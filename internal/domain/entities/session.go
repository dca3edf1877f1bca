package entities

import (
	"errors"
	"time"
)

var (
	// ErrSessionFinished is returned when an answer arrives after the
	// session has already reached its terminal state.
	ErrSessionFinished = errors.New("quiz session is finished")

	// ErrAnswerPending is returned when a second answer arrives for the
	// same question before the session has advanced past it.
	ErrAnswerPending = errors.New("answer already recorded for this question")
)

// Session is the in-progress state of one quiz attempt. It is a pure state
// machine driven by three events: Tick, SubmitAnswer and Advance. The caller
// is responsible for serializing those events; Session itself holds no locks.
//
// A session is active while it still has a current question and time left.
// Once terminal it accepts no further mutation: Tick and Advance become
// no-ops and SubmitAnswer returns ErrSessionFinished.
type Session struct {
	Questions     []Question       // fixed for the session's lifetime
	CurrentIndex  int              // 0-based cursor, only ever increases
	Score         int              // count of correct answers
	TimeRemaining int              // seconds left on the countdown
	Results       []QuestionResult // append-only, one per answered question
	StartedAt     time.Time

	pointsPerCorrect int
	answered         bool // current question answered, waiting for Advance
}

// NewSession creates a session over the given question set. An empty set is
// legal and yields an immediately terminal, zero-score session.
func NewSession(questions []Question, timeLimitSeconds, pointsPerCorrect int) *Session {
	return &Session{
		Questions:        questions,
		TimeRemaining:    timeLimitSeconds,
		Results:          make([]QuestionResult, 0, len(questions)),
		StartedAt:        time.Now(),
		pointsPerCorrect: pointsPerCorrect,
	}
}

// Active reports whether the session still has a current question and time
// left on the clock.
func (s *Session) Active() bool {
	return s.CurrentIndex < len(s.Questions) && s.TimeRemaining > 0
}

// CurrentQuestion returns the question under the cursor, or false once the
// session is terminal.
func (s *Session) CurrentQuestion() (Question, bool) {
	if !s.Active() {
		return Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Tick decrements the countdown by one second. Reaching zero makes the
// session terminal. Ticking a terminal session is a no-op, so the countdown
// never goes negative.
func (s *Session) Tick() {
	if !s.Active() {
		return
	}
	s.TimeRemaining--
}

// SubmitAnswer records the outcome for the current question and, if the
// choice was correct, adds exactly one point to the raw score. It does not
// advance the cursor: advancement is a separate, delayed event so transient
// feedback can be shown first. A repeated submit before Advance is rejected
// with ErrAnswerPending rather than silently recording a second result.
func (s *Session) SubmitAnswer(choice string) (QuestionResult, error) {
	q, ok := s.CurrentQuestion()
	if !ok {
		return QuestionResult{}, ErrSessionFinished
	}
	if s.answered {
		return QuestionResult{}, ErrAnswerPending
	}

	result := NewQuestionResult(q, choice)
	s.Results = append(s.Results, result)
	if result.IsCorrect {
		s.Score++
	}
	s.answered = true

	return result, nil
}

// Advance moves the cursor to the next question. Moving past the last
// question makes the session terminal regardless of time left. Advancing a
// terminal session is a no-op.
func (s *Session) Advance() {
	if s.CurrentIndex >= len(s.Questions) {
		return
	}
	s.CurrentIndex++
	s.answered = false
}

// FinalScore is the display score: raw correct count times the configured
// per-question reward. It may be read mid-session, reflecting progress so far.
func (s *Session) FinalScore() int {
	return s.Score * s.pointsPerCorrect
}
