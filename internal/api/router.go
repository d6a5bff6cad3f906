// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Question bank
	mux.HandleFunc("GET /bank", h.getBank)
	mux.HandleFunc("GET /bank/sections/{sectionNumber}", h.getSection)

	// Quiz session
	mux.HandleFunc("POST /quiz", h.startQuiz)
	mux.HandleFunc("GET /quiz", h.getQuiz)
	mux.HandleFunc("DELETE /quiz", h.exitQuiz)
	mux.HandleFunc("POST /quiz/selection", h.toggleSelection)
	mux.HandleFunc("POST /quiz/submit", h.submitAnswer)
	mux.HandleFunc("GET /quiz/results", h.getResults)

	// Progress
	mux.HandleFunc("GET /statistics", h.getStatistics)
	mux.HandleFunc("DELETE /statistics", h.resetStatistics)
	mux.HandleFunc("GET /wrong-answers", h.listWrongAnswers)
	mux.HandleFunc("DELETE /wrong-answers", h.clearWrongAnswers)

	// Settings
	mux.HandleFunc("GET /settings/dark-mode", h.getDarkMode)
	mux.HandleFunc("PUT /settings/dark-mode", h.setDarkMode)
}
