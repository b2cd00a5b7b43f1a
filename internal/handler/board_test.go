package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dokim/shuttleboard/internal/domain"
	"github.com/dokim/shuttleboard/internal/service"
)

func TestGetHealth_200(t *testing.T) {
	rec := doRequest(t, &mockBoarder{}, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "ok", body["status"])
}

func TestGetToday_200(t *testing.T) {
	board := &mockBoarder{
		todayLines: func() (string, domain.DayKey, domain.DaySet) {
			return "2026-09-01", domain.Tue, domain.DaySet{
				Pickup:  []domain.Line{lineFixture()},
				Dropoff: []domain.Line{},
			}
		},
	}

	rec := doRequest(t, board, http.MethodGet, "/api/board/today", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "2026-09-01", body["date"])
	assert.Equal(t, "tue", body["dayKey"])
	assert.Len(t, body["pickup"], 1)
	assert.Empty(t, body["dropoff"])
}

func TestGetToday_weekendRendersEmpty(t *testing.T) {
	board := &mockBoarder{
		todayLines: func() (string, domain.DayKey, domain.DaySet) {
			return "2026-09-05", "", domain.DaySet{Pickup: []domain.Line{}, Dropoff: []domain.Line{}}
		},
	}

	rec := doRequest(t, board, http.MethodGet, "/api/board/today", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	// Read the raw body before decoding drains the recorder buffer.
	raw := rec.Body.String()
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "", body["dayKey"])
	// Empty lists must encode as [], not null.
	assert.Contains(t, raw, `"pickup":[]`)
	assert.Contains(t, raw, `"dropoff":[]`)
}

func TestGetDay_200(t *testing.T) {
	board := &mockBoarder{
		lines: func(day domain.DayKey) (domain.DaySet, error) {
			assert.Equal(t, domain.Wed, day)
			return domain.DaySet{Pickup: []domain.Line{lineFixture()}, Dropoff: []domain.Line{}}, nil
		},
		status: func() service.Status {
			return service.Status{OperatingDate: "2026-09-01", DayKey: domain.Tue}
		},
	}

	rec := doRequest(t, board, http.MethodGet, "/api/board/days/wed", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "wed", body["dayKey"])
	assert.Equal(t, "2026-09-01", body["date"])
}

func TestGetDay_404_UnknownDayKey(t *testing.T) {
	board := &mockBoarder{
		lines: func(day domain.DayKey) (domain.DaySet, error) {
			return domain.DaySet{}, fmt.Errorf("%w: unknown day key", domain.ErrValidation)
		},
	}

	rec := doRequest(t, board, http.MethodGet, "/api/board/days/sat", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestGetStatus_200(t *testing.T) {
	board := &mockBoarder{
		status: func() service.Status {
			return service.Status{
				OperatingDate: "2026-09-01",
				DayKey:        domain.Tue,
				DayOffset:     0,
				Errors:        map[string]string{"schedule": "flush failed"},
			}
		},
	}

	rec := doRequest(t, board, http.MethodGet, "/api/board/status", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "2026-09-01", body["operatingDate"])
	errs, _ := body["errors"].(map[string]any)
	assert.Contains(t, errs, "schedule")
}
