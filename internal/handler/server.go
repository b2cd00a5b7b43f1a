// Package handler implements the HTTP handlers for the shuttle board API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (health.go, board.go, done.go, etc.) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dokim/shuttleboard/internal/domain"
	"github.com/dokim/shuttleboard/internal/service"
)

// Boarder defines the business operations the handlers depend on. Defining
// the interface here (in the consumer package) follows the Go convention:
// "accept interfaces, return concrete types". It lets handler tests inject a
// mock without a store or a running board.
type Boarder interface {
	TodayLines() (date string, day domain.DayKey, set domain.DaySet)
	Lines(day domain.DayKey) (domain.DaySet, error)
	Status() service.Status
	ExportDay(day domain.DayKey) ([]domain.ExportRow, error)

	ToggleDone(ctx context.Context, lineKey string) (nowDone bool, err error)
	AddReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error)
	AddPerson(ctx context.Context, p domain.Person) (domain.Person, error)

	UI() map[string]any
	SetUI(ctx context.Context, ui map[string]any)
	SetDayOffset(ctx context.Context, days int)
}

// Server holds the handlers' dependencies. Wire it in main.go via Routes.
type Server struct {
	board Boarder
}

// NewServer constructs the Server with all its dependencies.
func NewServer(board Boarder) *Server {
	return &Server{board: board}
}

// Routes mounts every endpoint on a fresh chi router. Middleware is the
// caller's concern; main.go stacks it around this router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/board/today", s.GetToday)
		r.Get("/board/days/{dayKey}", s.GetDay)
		r.Get("/board/export.csv", s.GetExportCSV)
		r.Get("/board/status", s.GetStatus)

		r.Post("/done/toggle", s.PostDoneToggle)
		r.Post("/reservations", s.PostReservation)
		r.Post("/people", s.PostPerson)

		r.Get("/admin/ui", s.GetUI)
		r.Put("/admin/ui", s.PutUI)
		r.Put("/admin/day-offset", s.PutDayOffset)
	})

	return r
}

// writeJSON renders v with the given status. Encoding errors are ignored:
// by the time Encode fails the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into dst. A missing or malformed body
// is the caller's validation failure, reported as an error string. Unknown
// fields are tolerated; older clients send fields this version ignores.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
