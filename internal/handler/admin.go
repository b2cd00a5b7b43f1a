package handler

import "net/http"

// GetUI handles GET /api/admin/ui: the opaque display settings blob.
func (s *Server) GetUI(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.board.UI())
}

// PutUI handles PUT /api/admin/ui. The blob replaces the stored one
// wholesale; the board treats its contents as opaque.
func (s *Server) PutUI(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeJSON(r, &body); err != nil {
		respondBadRequest(w, "request body is required")
		return
	}

	s.board.SetUI(r.Context(), body)
	writeJSON(w, http.StatusOK, s.board.UI())
}

// PutDayOffset handles PUT /api/admin/day-offset: the "operate as if it
// were N days from now" override.
func (s *Server) PutDayOffset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Days int `json:"days"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondBadRequest(w, "request body is required")
		return
	}

	s.board.SetDayOffset(r.Context(), body.Days)
	writeJSON(w, http.StatusOK, s.board.Status())
}
