package handler

import (
	"errors"
	"net/http"

	"github.com/dokim/shuttleboard/internal/domain"
)

// PostPerson handles POST /api/people.
func (s *Server) PostPerson(w http.ResponseWriter, r *http.Request) {
	var body domain.Person
	if err := decodeJSON(r, &body); err != nil {
		respondBadRequest(w, "request body is required")
		return
	}

	created, err := s.board.AddPerson(r.Context(), body)
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
