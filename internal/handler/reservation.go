package handler

import (
	"errors"
	"net/http"

	"github.com/dokim/shuttleboard/internal/domain"
)

// PostReservation handles POST /api/reservations.
func (s *Server) PostReservation(w http.ResponseWriter, r *http.Request) {
	var body domain.Reservation
	if err := decodeJSON(r, &body); err != nil {
		respondBadRequest(w, "request body is required")
		return
	}

	created, err := s.board.AddReservation(r.Context(), body)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			respondValidation(w, err)
			return
		}
		respondInternal(w)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
