// internal/api/quiz_handler.go
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/maturski-kviz/backend/internal/domain/questionbank"
)

// ── Request / Response types ────────────────────────────────────────────────

const (
	minQuestionCount  = 5
	maxQuestionCount  = 50
	questionCountStep = 5
)

type StartQuizRequest struct {
	Criterion     questionbank.Criterion `json:"criterion"`
	QuestionCount int                    `json:"question_count" example:"20"`
}

func (r *StartQuizRequest) Validate() error {
	if err := r.Criterion.Validate(); err != nil {
		return err
	}
	if r.Criterion.Kind == questionbank.CriterionSection && r.Criterion.Section <= 0 {
		return errors.New("section must be positive")
	}
	if r.QuestionCount < minQuestionCount || r.QuestionCount > maxQuestionCount || r.QuestionCount%questionCountStep != 0 {
		return fmt.Errorf("question_count must be a multiple of %d between %d and %d",
			questionCountStep, minQuestionCount, maxQuestionCount)
	}
	return nil
}

type ToggleSelectionRequest struct {
	Key string `json:"key" example:"b"`
}

func (r *ToggleSelectionRequest) Validate() error {
	if r.Key == "" {
		return errors.New("key is required")
	}
	return nil
}

type ResultsResponse struct {
	SessionID         string           `json:"session_id" example:"7f3c2c1e-54e1-4f86-9d5e-2c3f7a1b0d42"`
	Score             int              `json:"score" example:"31"`
	TotalPoints       int              `json:"total_points" example:"40"`
	Percentage        int              `json:"percentage" example:"78"`
	QuestionsAnswered int              `json:"questions_answered" example:"20"`
	CorrectCount      int              `json:"correct_count" example:"15"`
	IncorrectCount    int              `json:"incorrect_count" example:"5"`
	Answers           []AnswerResponse `json:"answers"`
}

type AnswerResponse struct {
	Question     QuestionResponse `json:"question"`
	SelectedKeys []string         `json:"selected_keys"`
	Correct      bool             `json:"correct" example:"true"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startQuiz starts a new quiz session, abandoning any active one.
// @Summary      Start a quiz
// @Description  Samples questions matching the chosen criterion and begins a new session.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        body  body      StartQuizRequest  true  "Quiz configuration"
// @Success      201   {object}  quizsession.Snapshot
// @Failure      400   {object}  map[string]string  "invalid configuration or empty pool"
// @Router       /quiz [post]
func (h *Handler) startQuiz(w http.ResponseWriter, r *http.Request) {
	var req StartQuizRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pool := questionbank.SelectPool(h.bank.Sections, req.Criterion)
	if err := h.quiz.Start(pool, req.QuestionCount); h.handleSessionError(w, err) {
		return
	}

	snap, err := h.quiz.Snapshot()
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, snap)
}

// getQuiz returns the current session snapshot.
// @Summary      Current quiz state
// @Tags         Quiz
// @Produce      json
// @Success      200  {object}  quizsession.Snapshot
// @Failure      404  {object}  map[string]string  "no active session"
// @Router       /quiz [get]
func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	snap, err := h.quiz.Snapshot()
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// exitQuiz abandons the active session. Nothing is recorded.
// @Summary      Exit the quiz
// @Description  Abandons the active session without touching statistics.
// @Tags         Quiz
// @Success      204
// @Router       /quiz [delete]
func (h *Handler) exitQuiz(w http.ResponseWriter, r *http.Request) {
	h.quiz.Exit()
	w.WriteHeader(http.StatusNoContent)
}

// toggleSelection flips one option in the current selection.
// @Summary      Toggle an answer option
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        body  body      ToggleSelectionRequest  true  "Option key"
// @Success      200   {object}  quizsession.Snapshot
// @Failure      400   {object}  map[string]string  "unknown option"
// @Failure      409   {object}  map[string]string  "not awaiting an answer"
// @Router       /quiz/selection [post]
func (h *Handler) toggleSelection(w http.ResponseWriter, r *http.Request) {
	var req ToggleSelectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.quiz.ToggleSelection(req.Key); h.handleSessionError(w, err) {
		return
	}

	snap, err := h.quiz.Snapshot()
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// submitAnswer scores the current selection and starts the reveal window.
// @Summary      Submit the selection
// @Description  Scores the selection, reveals the correct answers, and schedules the auto-advance.
// @Tags         Quiz
// @Produce      json
// @Success      200  {object}  quizsession.Snapshot
// @Failure      400  {object}  map[string]string  "empty selection"
// @Failure      409  {object}  map[string]string  "not awaiting an answer"
// @Router       /quiz/submit [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	if err := h.quiz.Submit(); h.handleSessionError(w, err) {
		return
	}

	snap, err := h.quiz.Snapshot()
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// getResults returns the summary of the completed session.
// @Summary      Quiz results
// @Tags         Quiz
// @Produce      json
// @Success      200  {object}  ResultsResponse
// @Failure      404  {object}  map[string]string  "no active session"
// @Failure      409  {object}  map[string]string  "session not completed"
// @Router       /quiz/results [get]
func (h *Handler) getResults(w http.ResponseWriter, r *http.Request) {
	summary, err := h.quiz.Results()
	if h.handleSessionError(w, err) {
		return
	}

	answers := make([]AnswerResponse, len(summary.AnswerLog))
	for i, record := range summary.AnswerLog {
		answers[i] = AnswerResponse{
			Question:     questionResponse(record.Question),
			SelectedKeys: record.SelectedKeys,
			Correct:      record.Correct,
		}
	}

	respondJSON(w, http.StatusOK, ResultsResponse{
		SessionID:         summary.SessionID,
		Score:             summary.Score,
		TotalPoints:       summary.TotalPoints,
		Percentage:        summary.Percentage(),
		QuestionsAnswered: summary.QuestionsAnswered,
		CorrectCount:      summary.CorrectCount,
		IncorrectCount:    summary.IncorrectCount(),
		Answers:           answers,
	})
}
