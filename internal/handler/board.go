package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dokim/shuttleboard/internal/domain"
)

// dayResponse is the rendered board for one day.
type dayResponse struct {
	Date    string        `json:"date"`
	DayKey  domain.DayKey `json:"dayKey"`
	Pickup  []domain.Line `json:"pickup"`
	Dropoff []domain.Line `json:"dropoff"`
}

// GetToday handles GET /api/board/today.
// Weekends render with an empty dayKey and empty line lists.
func (s *Server) GetToday(w http.ResponseWriter, _ *http.Request) {
	date, day, set := s.board.TodayLines()
	writeJSON(w, http.StatusOK, dayResponse{
		Date:    date,
		DayKey:  day,
		Pickup:  set.Pickup,
		Dropoff: set.Dropoff,
	})
}

// GetDay handles GET /api/board/days/{dayKey}.
// Reservations still resolve against the operating date, so browsing another
// weekday shows that weekday's defaults plus any still-valid overrides.
func (s *Server) GetDay(w http.ResponseWriter, r *http.Request) {
	day := domain.DayKey(chi.URLParam(r, "dayKey"))
	set, err := s.board.Lines(day)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			respondNotFound(w, "unknown day key")
			return
		}
		respondInternal(w)
		return
	}

	st := s.board.Status()
	writeJSON(w, http.StatusOK, dayResponse{
		Date:    st.OperatingDate,
		DayKey:  day,
		Pickup:  set.Pickup,
		Dropoff: set.Dropoff,
	})
}

// GetStatus handles GET /api/board/status: the board's clock, operating
// date and per-resource error state.
func (s *Server) GetStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.board.Status())
}
