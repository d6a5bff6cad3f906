// internal/api/settings_handler.go
package api

import "net/http"

// ── Request / Response types ────────────────────────────────────────────────

type DarkModeResponse struct {
	Enabled bool `json:"enabled" example:"true"`
}

type SetDarkModeRequest struct {
	Enabled bool `json:"enabled" example:"true"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getDarkMode returns the persisted presentation preference.
// @Summary      Dark-mode preference
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  DarkModeResponse
// @Router       /settings/dark-mode [get]
func (h *Handler) getDarkMode(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DarkModeResponse{Enabled: h.progress.DarkMode()})
}

// setDarkMode stores the presentation preference.
// @Summary      Set dark-mode preference
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        body  body      SetDarkModeRequest  true  "Preference"
// @Success      200   {object}  DarkModeResponse
// @Router       /settings/dark-mode [put]
func (h *Handler) setDarkMode(w http.ResponseWriter, r *http.Request) {
	var req SetDarkModeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.progress.SetDarkMode(req.Enabled)
	respondJSON(w, http.StatusOK, DarkModeResponse{Enabled: req.Enabled})
}
