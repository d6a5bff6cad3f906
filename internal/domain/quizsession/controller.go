package quizsession

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/maturski-kviz/backend/internal/domain/questionbank"
	"github.com/maturski-kviz/backend/internal/worker"
)

var (
	ErrNoActiveSession   = errors.New("no active quiz session")
	ErrEmptyPool         = errors.New("no questions available for the chosen criterion")
	ErrInvalidCount      = errors.New("question count must be positive")
	ErrNotAwaitingAnswer = errors.New("operation only valid while awaiting an answer")
	ErrEmptySelection    = errors.New("cannot submit an empty selection")
	ErrNotCompleted      = errors.New("quiz session is not completed")
	ErrUnknownOption     = errors.New("option key does not belong to the current question")
)

// WrongAnswerFunc receives every incorrectly answered question.
type WrongAnswerFunc func(q questionbank.Question, at time.Time)

// CompletedFunc receives the summary of a finished (non-abandoned) session.
type CompletedFunc func(summary Summary)

// Controller owns the active quiz session and drives its state machine:
// AwaitingAnswer → ShowingResult → (next question | Completed). All mutation
// goes through the controller's mutex because user requests and the reveal
// timer callback arrive on different goroutines.
type Controller struct {
	revealDelay   time.Duration
	onWrongAnswer WrongAnswerFunc
	onCompleted   CompletedFunc

	// schedule is swappable so tests can fire the reveal callback by hand.
	schedule func(delay time.Duration, fn func()) *worker.Deferred

	mu      sync.Mutex
	session *Session
	pending *worker.Deferred
}

// NewController creates a Controller. The event callbacks may be nil.
func NewController(revealDelay time.Duration, onWrongAnswer WrongAnswerFunc, onCompleted CompletedFunc) *Controller {
	return &Controller{
		revealDelay:   revealDelay,
		onWrongAnswer: onWrongAnswer,
		onCompleted:   onCompleted,
		schedule:      worker.Defer,
	}
}

// Start draws min(requestedCount, len(pool)) distinct questions from an
// unbiased permutation of the pool and begins a new session on the first
// question. Any previous session is abandoned: its reveal timer is
// cancelled and no completion event is emitted for it.
func (c *Controller) Start(pool []questionbank.Question, requestedCount int) error {
	if requestedCount <= 0 {
		return ErrInvalidCount
	}
	if len(pool) == 0 {
		return ErrEmptyPool
	}

	drawn := make([]questionbank.Question, len(pool))
	copy(drawn, pool)
	rand.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})
	if requestedCount < len(drawn) {
		drawn = drawn[:requestedCount]
	}

	total := 0
	for _, q := range drawn {
		total += q.Points
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelPendingLocked()
	c.session = &Session{
		ID:          uuid.NewString(),
		Questions:   drawn,
		TotalPoints: total,
		AnswerLog:   make([]AnswerRecord, 0, len(drawn)),
	}
	c.enterQuestionLocked(0)
	return nil
}

// ToggleSelection flips membership of an option key in the current
// selection. Valid only while awaiting an answer.
func (c *Controller) ToggleSelection(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return ErrNoActiveSession
	}
	if c.session.State != StateAwaitingAnswer {
		return ErrNotAwaitingAnswer
	}

	known := false
	for _, opt := range c.session.ShuffledOptions {
		if opt.Key == key {
			known = true
			break
		}
	}
	if !known {
		return ErrUnknownOption
	}

	if c.session.Selected[key] {
		delete(c.session.Selected, key)
	} else {
		c.session.Selected[key] = true
	}
	return nil
}

// Submit scores the current selection, records it, and schedules the
// automatic advance after the reveal delay. Empty selections are rejected
// rather than silently ignored.
func (c *Controller) Submit() error {
	c.mu.Lock()

	if c.session == nil {
		c.mu.Unlock()
		return ErrNoActiveSession
	}
	if c.session.State != StateAwaitingAnswer {
		c.mu.Unlock()
		return ErrNotAwaitingAnswer
	}
	if len(c.session.Selected) == 0 {
		c.mu.Unlock()
		return ErrEmptySelection
	}

	question := c.session.Current()
	correct, points := Evaluate(question, c.session.Selected)
	if correct {
		c.session.Score += points
	}

	selected := make([]string, 0, len(c.session.Selected))
	for key := range c.session.Selected {
		selected = append(selected, key)
	}
	sort.Strings(selected)

	c.session.AnswerLog = append(c.session.AnswerLog, AnswerRecord{
		Question:     question,
		SelectedKeys: selected,
		Correct:      correct,
	})
	c.session.State = StateShowingResult

	sessionID := c.session.ID
	c.pending = c.schedule(c.revealDelay, func() {
		c.advance(sessionID)
	})

	c.mu.Unlock()

	if !correct && c.onWrongAnswer != nil {
		c.onWrongAnswer(question, time.Now())
	}
	return nil
}

// advance moves to the next question or completes the session. It ignores
// stale timer callbacks: the session may have been exited or replaced while
// the timer was pending, and a defensively re-fired timer must not emit a
// second completion event.
func (c *Controller) advance(sessionID string) {
	c.mu.Lock()

	if c.session == nil || c.session.ID != sessionID || c.session.State != StateShowingResult {
		c.mu.Unlock()
		return
	}

	if c.session.CurrentIndex+1 < len(c.session.Questions) {
		c.enterQuestionLocked(c.session.CurrentIndex + 1)
		c.mu.Unlock()
		return
	}

	c.session.State = StateCompleted
	if c.session.completionFired {
		c.mu.Unlock()
		return
	}
	c.session.completionFired = true
	summary := c.session.summary()
	c.mu.Unlock()

	if c.onCompleted != nil {
		c.onCompleted(summary)
	}
}

// Exit abandons the active session without a completion event. Calling it
// with no active session is a no-op.
func (c *Controller) Exit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()
	c.session = nil
}

func (c *Controller) cancelPendingLocked() {
	if c.pending != nil {
		c.pending.Cancel()
		c.pending = nil
	}
}

// enterQuestionLocked positions the session on a question: fresh unbiased
// shuffle of its answer entries, empty selection, back to AwaitingAnswer.
func (c *Controller) enterQuestionLocked(index int) {
	c.session.CurrentIndex = index
	c.session.ShuffledOptions = shuffleOptions(c.session.Current().Answers)
	c.session.Selected = make(map[string]bool)
	c.session.State = StateAwaitingAnswer
}

func shuffleOptions(answers map[string]string) []Option {
	options := make([]Option, 0, len(answers))
	for key, text := range answers {
		options = append(options, Option{Key: key, Text: text})
	}
	// Map iteration order is unspecified but not uniformly random, so the
	// slice gets an explicit Fisher-Yates pass.
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
