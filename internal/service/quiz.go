package service

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Takoyaki92/goukaku/internal/config"
	"github.com/Takoyaki92/goukaku/internal/domain/entities"
	"github.com/Takoyaki92/goukaku/internal/storage"
)

var (
	ErrNoActiveSession = errors.New("no active quiz session")
	ErrInvalidChoice   = errors.New("invalid choice index")
	ErrStaleAnswer     = errors.New("answer refers to a question that is no longer current")
)

// QuestionView is what the delivery layer needs to render the current question.
type QuestionView struct {
	Question      entities.Question
	Number        int // 1-based position in the session
	Total         int
	Score         int // display score, already multiplied by the reward
	TimeRemaining int
}

// FeedbackView is the transient correct/incorrect overlay after an answer.
type FeedbackView struct {
	Result        entities.QuestionResult
	Score         int
	TimeRemaining int
}

// Summary is the final state of a finished session.
type Summary struct {
	Level      entities.Level
	FinalScore int
	Rank       entities.Rank
	Results    []entities.QuestionResult
	Correct    int
	Total      int
	TimedOut   bool
}

// quizRun couples a session with the resources driving it: the ticker
// goroutine and the pending one-shot advance. Both must be released the
// moment the session leaves its active state.
type quizRun struct {
	chatID  int64
	level   entities.Level
	session *entities.Session

	mu       sync.Mutex
	advance  *time.Timer   // pending delayed Advance, nil when none
	done     chan struct{} // closed exactly once, stops the ticker goroutine
	finished bool
}

// QuizService owns every in-progress quiz, one per chat. The session state
// machine itself is lock-free; the service serializes its two stimuli (the
// 1-second tick and user answers) behind a per-run mutex and notifies the
// delivery layer of every visible change.
type QuizService struct {
	questions QuestionSource
	results   *storage.ResultStorage
	notifier  QuizNotifier
	logger    *zap.Logger
	cfg       config.Quiz

	mu   sync.Mutex
	runs map[int64]*quizRun
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	questions QuestionSource,
	results *storage.ResultStorage,
	cfg config.Quiz,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		questions: questions,
		results:   results,
		cfg:       cfg,
		logger:    logger,
		runs:      make(map[int64]*quizRun),
	}
}

// SetNotifier sets the notifier (called after the handler is created).
func (s *QuizService) SetNotifier(notifier QuizNotifier) {
	s.notifier = notifier
}

// Start begins a new quiz for the chat over the given level's bank, replacing
// any run already in progress there. An empty bank yields an immediate,
// zero-score results screen.
func (s *QuizService) Start(chatID int64, rawLevel string) {
	s.Abort(chatID)

	level := entities.ParseLevel(rawLevel)
	session := entities.NewSession(
		s.questions.GetByLevel(rawLevel),
		s.cfg.TimeLimitSeconds,
		s.cfg.PointsPerCorrect,
	)

	run := &quizRun{
		chatID:  chatID,
		level:   level,
		session: session,
		done:    make(chan struct{}),
	}

	if !session.Active() {
		run.finished = true
		close(run.done)
		summary := s.summarize(run, false)
		s.results.Store(chatID, summary.Results)
		s.notifier.ShowResults(chatID, summary)
		return
	}

	s.mu.Lock()
	s.runs[chatID] = run
	s.mu.Unlock()

	s.logger.Info("quiz started",
		zap.Int64("chat_id", chatID),
		zap.String("level", string(level)),
		zap.Int("questions", len(session.Questions)),
	)

	s.notifier.ShowQuestion(chatID, s.questionView(run))
	go s.tickLoop(run)
}

// SubmitAnswer records the user's choice for the question at questionIndex.
// Answers for a question that is no longer current (a tap on an outdated
// message) are rejected with ErrStaleAnswer. The cursor does not move here;
// a one-shot timer advances the session after the feedback delay.
func (s *QuizService) SubmitAnswer(chatID int64, questionIndex, choiceIndex int) error {
	run := s.getRun(chatID)
	if run == nil {
		return ErrNoActiveSession
	}

	run.mu.Lock()
	if run.finished {
		run.mu.Unlock()
		return ErrNoActiveSession
	}

	q, ok := run.session.CurrentQuestion()
	if !ok {
		run.mu.Unlock()
		return ErrNoActiveSession
	}
	if questionIndex != run.session.CurrentIndex {
		run.mu.Unlock()
		return ErrStaleAnswer
	}
	if choiceIndex < 0 || choiceIndex >= len(q.Choices) {
		run.mu.Unlock()
		return ErrInvalidChoice
	}

	result, err := run.session.SubmitAnswer(q.Choices[choiceIndex])
	if err != nil {
		run.mu.Unlock()
		return err
	}

	run.advance = time.AfterFunc(s.cfg.FeedbackDelay, func() { s.advanceRun(run) })

	view := FeedbackView{
		Result:        result,
		Score:         run.session.FinalScore(),
		TimeRemaining: run.session.TimeRemaining,
	}
	run.mu.Unlock()

	s.notifier.ShowFeedback(chatID, view)
	return nil
}

// Abort tears down the chat's run, if any: the ticker goroutine exits and a
// pending advance is canceled instead of firing against disposed state. No
// results are kept. Reports whether a live run was actually canceled.
func (s *QuizService) Abort(chatID int64) bool {
	s.mu.Lock()
	run := s.runs[chatID]
	delete(s.runs, chatID)
	s.mu.Unlock()

	if run == nil {
		return false
	}

	run.mu.Lock()
	defer run.mu.Unlock()
	if run.finished {
		return false
	}
	run.finished = true
	close(run.done)
	if run.advance != nil {
		run.advance.Stop()
	}

	s.logger.Info("quiz aborted", zap.Int64("chat_id", chatID))
	return true
}

// Shutdown aborts every live run. Called on process exit.
func (s *QuizService) Shutdown() {
	s.mu.Lock()
	chatIDs := make([]int64, 0, len(s.runs))
	for chatID := range s.runs {
		chatIDs = append(chatIDs, chatID)
	}
	s.mu.Unlock()

	for _, chatID := range chatIDs {
		s.Abort(chatID)
	}
}

// LastResults returns the result list of the chat's most recent finished quiz.
func (s *QuizService) LastResults(chatID int64) []entities.QuestionResult {
	return s.results.Get(chatID)
}

func (s *QuizService) getRun(chatID int64) *quizRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[chatID]
}

func (s *QuizService) removeRun(run *quizRun) {
	s.mu.Lock()
	if s.runs[run.chatID] == run {
		delete(s.runs, run.chatID)
	}
	s.mu.Unlock()
}

// tickLoop drives the countdown, one tick per second, until the session
// expires or the run is torn down.
func (s *QuizService) tickLoop(run *quizRun) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-run.done:
			return
		case <-ticker.C:
			if s.tick(run) {
				return
			}
		}
	}
}

// tick applies one countdown second. It returns true once the run is over so
// the ticker goroutine can exit.
func (s *QuizService) tick(run *quizRun) bool {
	run.mu.Lock()
	if run.finished {
		run.mu.Unlock()
		return true
	}

	run.session.Tick()
	if !run.session.Active() {
		summary := s.finishLocked(run, true)
		run.mu.Unlock()

		s.removeRun(run)
		s.notifier.ShowResults(run.chatID, summary)
		return true
	}

	view := s.questionView(run)
	answered := run.advance != nil
	run.mu.Unlock()

	// While feedback is on screen the question view is gone; only the live
	// question gets countdown updates.
	if !answered {
		s.notifier.UpdateCountdown(run.chatID, view)
	}
	return false
}

// advanceRun is the delayed continuation scheduled by SubmitAnswer.
func (s *QuizService) advanceRun(run *quizRun) {
	run.mu.Lock()
	if run.finished {
		run.mu.Unlock()
		return
	}

	run.advance = nil
	run.session.Advance()

	if !run.session.Active() {
		summary := s.finishLocked(run, false)
		run.mu.Unlock()

		s.removeRun(run)
		s.notifier.ShowResults(run.chatID, summary)
		return
	}

	view := s.questionView(run)
	run.mu.Unlock()

	s.notifier.ShowQuestion(run.chatID, view)
}

// finishLocked marks the run finished, releases its timer resources and
// stores the results for later save-to-review actions. Callers hold run.mu.
func (s *QuizService) finishLocked(run *quizRun, timedOut bool) Summary {
	run.finished = true
	close(run.done)
	if run.advance != nil {
		run.advance.Stop()
		run.advance = nil
	}

	summary := s.summarize(run, timedOut)
	s.results.Store(run.chatID, summary.Results)

	s.logger.Info("quiz finished",
		zap.Int64("chat_id", run.chatID),
		zap.String("level", string(run.level)),
		zap.Int("final_score", summary.FinalScore),
		zap.String("rank", string(summary.Rank)),
		zap.Bool("timed_out", timedOut),
	)

	return summary
}

func (s *QuizService) summarize(run *quizRun, timedOut bool) Summary {
	finalScore := run.session.FinalScore()
	return Summary{
		Level:      run.level,
		FinalScore: finalScore,
		Rank:       entities.RankFor(finalScore),
		Results:    run.session.Results,
		Correct:    run.session.Score,
		Total:      len(run.session.Questions),
		TimedOut:   timedOut,
	}
}

func (s *QuizService) questionView(run *quizRun) QuestionView {
	q, _ := run.session.CurrentQuestion()
	return QuestionView{
		Question:      q,
		Number:        run.session.CurrentIndex + 1,
		Total:         len(run.session.Questions),
		Score:         run.session.FinalScore(),
		TimeRemaining: run.session.TimeRemaining,
	}
}
