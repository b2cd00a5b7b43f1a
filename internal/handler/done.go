package handler

import (
	"errors"
	"net/http"

	"github.com/dokim/shuttleboard/internal/domain"
)

// PostDoneToggle handles POST /api/done/toggle.
// The toggle applies immediately; the response reports the new state.
func (s *Server) PostDoneToggle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		LineKey string `json:"lineKey"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondBadRequest(w, "request body is required")
		return
	}

	nowDone, err := s.board.ToggleDone(r.Context(), body.LineKey)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			respondValidation(w, err)
			return
		}
		respondInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"lineKey": body.LineKey,
		"done":    nowDone,
	})
}
