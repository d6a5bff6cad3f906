package stats

import (
	"math"

	"github.com/maturski-kviz/backend/internal/domain/quizsession"
)

// Record holds the rolling cross-session statistics. It is persisted
// wholesale after every completed quiz and survives restarts.
type Record struct {
	TotalQuizzes           int   `json:"total_quizzes"`
	TotalQuestionsAnswered int   `json:"total_questions_answered"`
	TotalCorrect           int   `json:"total_correct"`
	TotalPointsEarned      int   `json:"total_points_earned"`
	TotalPointsPossible    int   `json:"total_points_possible"`
	HighScorePercentage    int   `json:"high_score_percentage"`
	PercentageHistory      []int `json:"percentage_history"`
}

// Apply folds one completed session into the record. Zero-point sessions
// are skipped entirely: they arise only from degenerate configurations and
// would otherwise push an undefined percentage into persisted state.
func (r *Record) Apply(summary quizsession.Summary) {
	if summary.TotalPoints == 0 {
		return
	}

	percentage := summary.Percentage()

	r.TotalQuizzes++
	r.TotalQuestionsAnswered += summary.QuestionsAnswered
	r.TotalCorrect += summary.CorrectCount
	r.TotalPointsEarned += summary.Score
	r.TotalPointsPossible += summary.TotalPoints
	if percentage > r.HighScorePercentage {
		r.HighScorePercentage = percentage
	}
	r.PercentageHistory = append(r.PercentageHistory, percentage)
}

// AveragePercentage is the mean of the per-quiz percentages, rounded.
func (r *Record) AveragePercentage() int {
	if len(r.PercentageHistory) == 0 {
		return 0
	}
	sum := 0
	for _, p := range r.PercentageHistory {
		sum += p
	}
	return int(math.Round(float64(sum) / float64(len(r.PercentageHistory))))
}

// AnswerAccuracy is the share of individual questions answered correctly,
// as a rounded percentage.
func (r *Record) AnswerAccuracy() int {
	if r.TotalQuestionsAnswered == 0 {
		return 0
	}
	return int(math.Round(100 * float64(r.TotalCorrect) / float64(r.TotalQuestionsAnswered)))
}
