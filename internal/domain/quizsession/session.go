package quizsession

import (
	"math"

	"github.com/maturski-kviz/backend/internal/domain/questionbank"
)

// State is the phase the active session is in.
type State string

const (
	// StateAwaitingAnswer means the current question is shown and the user
	// is toggling selections.
	StateAwaitingAnswer State = "awaiting_answer"
	// StateShowingResult is the reveal window between submit and the
	// automatic advance.
	StateShowingResult State = "showing_result"
	// StateCompleted is terminal until the session is discarded or replaced.
	StateCompleted State = "completed"
)

// Option is one shuffled answer entry presented to the user.
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// AnswerRecord captures one submitted answer.
type AnswerRecord struct {
	Question     questionbank.Question `json:"question"`
	SelectedKeys []string              `json:"selected_keys"`
	Correct      bool                  `json:"correct"`
}

// Session is the mutable state of one quiz attempt. It lives only in memory
// and is discarded on exit or when a new quiz starts.
type Session struct {
	ID              string
	Questions       []questionbank.Question
	CurrentIndex    int
	ShuffledOptions []Option
	Selected        map[string]bool
	Score           int
	TotalPoints     int
	AnswerLog       []AnswerRecord
	State           State

	// completionFired guards the quiz-completed event: at most one per
	// session, even if the reveal timer fires more than once.
	completionFired bool
}

// Current returns the question at the session's current index.
func (s *Session) Current() questionbank.Question {
	return s.Questions[s.CurrentIndex]
}

// Summary is the immutable result of a completed session, consumed by the
// statistics aggregator and the results view.
type Summary struct {
	SessionID         string         `json:"session_id"`
	Score             int            `json:"score"`
	TotalPoints       int            `json:"total_points"`
	QuestionsAnswered int            `json:"questions_answered"`
	CorrectCount      int            `json:"correct_count"`
	AnswerLog         []AnswerRecord `json:"answer_log"`
}

// IncorrectCount is the number of missed questions.
func (s Summary) IncorrectCount() int {
	return s.QuestionsAnswered - s.CorrectCount
}

// Percentage is the rounded score ratio. A zero-point session reports 0
// rather than dividing by zero; the aggregator additionally skips such
// sessions entirely.
func (s Summary) Percentage() int {
	if s.TotalPoints == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.Score) / float64(s.TotalPoints)))
}

func (s *Session) summary() Summary {
	correct := 0
	for _, rec := range s.AnswerLog {
		if rec.Correct {
			correct++
		}
	}
	log := make([]AnswerRecord, len(s.AnswerLog))
	copy(log, s.AnswerLog)
	return Summary{
		SessionID:         s.ID,
		Score:             s.Score,
		TotalPoints:       s.TotalPoints,
		QuestionsAnswered: len(s.AnswerLog),
		CorrectCount:      correct,
		AnswerLog:         log,
	}
}
