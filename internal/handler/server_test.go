package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dokim/shuttleboard/internal/domain"
	"github.com/dokim/shuttleboard/internal/handler"
	"github.com/dokim/shuttleboard/internal/service"
)

// mockBoarder is a test double for handler.Boarder.
// Set only the method fields your test needs.
type mockBoarder struct {
	todayLines     func() (string, domain.DayKey, domain.DaySet)
	lines          func(day domain.DayKey) (domain.DaySet, error)
	status         func() service.Status
	exportDay      func(day domain.DayKey) ([]domain.ExportRow, error)
	toggleDone     func(ctx context.Context, lineKey string) (bool, error)
	addReservation func(ctx context.Context, r domain.Reservation) (domain.Reservation, error)
	addPerson      func(ctx context.Context, p domain.Person) (domain.Person, error)
	ui             func() map[string]any
	setUI          func(ctx context.Context, ui map[string]any)
	setDayOffset   func(ctx context.Context, days int)
}

func (m *mockBoarder) TodayLines() (string, domain.DayKey, domain.DaySet) {
	return m.todayLines()
}
func (m *mockBoarder) Lines(day domain.DayKey) (domain.DaySet, error) {
	return m.lines(day)
}
func (m *mockBoarder) Status() service.Status {
	return m.status()
}
func (m *mockBoarder) ExportDay(day domain.DayKey) ([]domain.ExportRow, error) {
	return m.exportDay(day)
}
func (m *mockBoarder) ToggleDone(ctx context.Context, lineKey string) (bool, error) {
	return m.toggleDone(ctx, lineKey)
}
func (m *mockBoarder) AddReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	return m.addReservation(ctx, r)
}
func (m *mockBoarder) AddPerson(ctx context.Context, p domain.Person) (domain.Person, error) {
	return m.addPerson(ctx, p)
}
func (m *mockBoarder) UI() map[string]any {
	return m.ui()
}
func (m *mockBoarder) SetUI(ctx context.Context, ui map[string]any) {
	m.setUI(ctx, ui)
}
func (m *mockBoarder) SetDayOffset(ctx context.Context, days int) {
	m.setDayOffset(ctx, days)
}

// compile-time check: mockBoarder must satisfy handler.Boarder.
var _ handler.Boarder = (*mockBoarder)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mock into its chi router,
// mirroring how main.go wires it in production.
func newHTTPHandler(board handler.Boarder) http.Handler {
	return handler.NewServer(board).Routes()
}

func doRequest(t *testing.T, board handler.Boarder, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(b)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newHTTPHandler(board).ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// errorCode extracts error.code from an error envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

func lineFixture() domain.Line {
	return domain.Line{
		LineKey:   "pickup:tue:s1",
		Direction: domain.Pickup,
		Time:      "08:00",
		Place:     "Oak",
		Names:     []string{"Kim"},
	}
}
