// internal/api/bank_handler.go
package api

import (
	"net/http"
	"strconv"

	"github.com/maturski-kviz/backend/internal/domain/questionbank"
)

// ── Request / Response types ────────────────────────────────────────────────

type BankOverviewResponse struct {
	TotalQuestions int               `json:"total_questions" example:"177"`
	HardCount      int               `json:"hard_count" example:"34"`
	ExtremeCount   int               `json:"extreme_count" example:"12"`
	Sections       []SectionResponse `json:"sections"`
}

type SectionResponse struct {
	Number        int    `json:"number" example:"3"`
	Name          string `json:"name" example:"Relacione baze podataka"`
	QuestionCount int    `json:"question_count" example:"24"`
}

type SectionDetailResponse struct {
	Number    int                `json:"number" example:"3"`
	Name      string             `json:"name" example:"Relacione baze podataka"`
	Questions []QuestionResponse `json:"questions"`
}

// QuestionResponse exposes a bank question for browsing. Correct answers are
// included here: the bank view is study material, not an active quiz.
type QuestionResponse struct {
	Number         int               `json:"number" example:"42"`
	Text           string            `json:"question" example:"Koji je rezultat izraza 2 + 2?"`
	HasPicture     bool              `json:"has_picture" example:"false"`
	ImageFile      string            `json:"image_file,omitempty" example:"042.png"`
	Points         int               `json:"points" example:"2"`
	Answers        map[string]string `json:"answers"`
	CorrectAnswers []string          `json:"correct_answers"`
	IsHard         bool              `json:"is_hard" example:"false"`
	IsExtreme      bool              `json:"is_extreme" example:"false"`
}

func questionResponse(q questionbank.Question) QuestionResponse {
	resp := QuestionResponse{
		Number:         q.Number,
		Text:           q.Text,
		HasPicture:     q.HasPicture,
		Points:         q.Points,
		Answers:        q.Answers,
		CorrectAnswers: q.CorrectAnswers,
		IsHard:         q.IsHard,
		IsExtreme:      q.IsExtreme,
	}
	if q.HasPicture {
		resp.ImageFile = q.ImageFile()
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getBank returns the bank overview.
// @Summary      Question bank overview
// @Description  Section list with question counts and difficulty-tier totals.
// @Tags         Bank
// @Produce      json
// @Success      200  {object}  BankOverviewResponse
// @Router       /bank [get]
func (h *Handler) getBank(w http.ResponseWriter, r *http.Request) {
	hard, extreme := h.bank.TierCounts()

	sections := make([]SectionResponse, len(h.bank.Sections))
	for i, section := range h.bank.Sections {
		sections[i] = SectionResponse{
			Number:        section.Number,
			Name:          section.Name,
			QuestionCount: len(section.Questions),
		}
	}

	respondJSON(w, http.StatusOK, BankOverviewResponse{
		TotalQuestions: h.bank.TotalQuestions(),
		HardCount:      hard,
		ExtremeCount:   extreme,
		Sections:       sections,
	})
}

// getSection returns one section with all its questions.
// @Summary      Section detail
// @Description  Returns a section's questions, correct answers included.
// @Tags         Bank
// @Produce      json
// @Param        sectionNumber  path      int  true  "Section number"
// @Success      200  {object}  SectionDetailResponse
// @Failure      404  {object}  map[string]string  "section not found"
// @Router       /bank/sections/{sectionNumber} [get]
func (h *Handler) getSection(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(r.PathValue("sectionNumber"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "section number must be an integer")
		return
	}

	section, ok := h.bank.SectionByNumber(number)
	if !ok {
		respondError(w, http.StatusNotFound, "section not found")
		return
	}

	questions := make([]QuestionResponse, len(section.Questions))
	for i, q := range section.Questions {
		questions[i] = questionResponse(q)
	}

	respondJSON(w, http.StatusOK, SectionDetailResponse{
		Number:    section.Number,
		Name:      section.Name,
		Questions: questions,
	})
}
