// internal/api/progress_handler.go
package api

import (
	"net/http"
	"time"
)

// ── Request / Response types ────────────────────────────────────────────────

type StatisticsResponse struct {
	TotalQuizzes           int   `json:"total_quizzes" example:"12"`
	TotalQuestionsAnswered int   `json:"total_questions_answered" example:"240"`
	TotalCorrect           int   `json:"total_correct" example:"183"`
	TotalPointsEarned      int   `json:"total_points_earned" example:"366"`
	TotalPointsPossible    int   `json:"total_points_possible" example:"480"`
	HighScorePercentage    int   `json:"high_score_percentage" example:"95"`
	AveragePercentage      int   `json:"average_percentage" example:"76"`
	AnswerAccuracy         int   `json:"answer_accuracy" example:"76"`
	PercentageHistory      []int `json:"percentage_history"`
}

type WrongAnswerEntryResponse struct {
	Question     QuestionResponse `json:"question"`
	MissCount    int              `json:"miss_count" example:"3"`
	Severity     string           `json:"severity" example:"medium"`
	LastMissedAt time.Time        `json:"last_missed_at"`
}

type WrongAnswersResponse struct {
	Total   int                        `json:"total" example:"7"`
	Entries []WrongAnswerEntryResponse `json:"entries"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getStatistics returns the persisted cross-session statistics.
// @Summary      Quiz statistics
// @Description  Rolling totals plus derived averages across all completed quizzes.
// @Tags         Progress
// @Produce      json
// @Success      200  {object}  StatisticsResponse
// @Router       /statistics [get]
func (h *Handler) getStatistics(w http.ResponseWriter, r *http.Request) {
	record := h.progress.Statistics()
	respondJSON(w, http.StatusOK, StatisticsResponse{
		TotalQuizzes:           record.TotalQuizzes,
		TotalQuestionsAnswered: record.TotalQuestionsAnswered,
		TotalCorrect:           record.TotalCorrect,
		TotalPointsEarned:      record.TotalPointsEarned,
		TotalPointsPossible:    record.TotalPointsPossible,
		HighScorePercentage:    record.HighScorePercentage,
		AveragePercentage:      record.AveragePercentage(),
		AnswerAccuracy:         record.AnswerAccuracy(),
		PercentageHistory:      record.PercentageHistory,
	})
}

// resetStatistics wipes the statistics record.
// @Summary      Reset statistics
// @Description  Irreversibly restores the empty statistics record.
// @Tags         Progress
// @Success      204
// @Router       /statistics [delete]
func (h *Handler) resetStatistics(w http.ResponseWriter, r *http.Request) {
	h.progress.ResetStatistics()
	w.WriteHeader(http.StatusNoContent)
}

// listWrongAnswers returns missed questions, most-missed first.
// @Summary      Wrong-answer log
// @Description  Questions answered incorrectly, ordered by miss count descending.
// @Tags         Progress
// @Produce      json
// @Success      200  {object}  WrongAnswersResponse
// @Router       /wrong-answers [get]
func (h *Handler) listWrongAnswers(w http.ResponseWriter, r *http.Request) {
	entries := h.progress.WrongAnswers()

	response := make([]WrongAnswerEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = WrongAnswerEntryResponse{
			Question:     questionResponse(entry.Question),
			MissCount:    entry.MissCount,
			Severity:     string(entry.Severity()),
			LastMissedAt: entry.LastMissedAt,
		}
	}

	respondJSON(w, http.StatusOK, WrongAnswersResponse{
		Total:   len(response),
		Entries: response,
	})
}

// clearWrongAnswers empties the wrong-answer log.
// @Summary      Clear the wrong-answer log
// @Tags         Progress
// @Success      204
// @Router       /wrong-answers [delete]
func (h *Handler) clearWrongAnswers(w http.ResponseWriter, r *http.Request) {
	h.progress.ClearWrongAnswers()
	w.WriteHeader(http.StatusNoContent)
}
