// Package handler — export.go implements GET /api/board/export.csv.
// Returns the resolved lines of one day as a flat CSV table.
package handler

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dokim/shuttleboard/internal/domain"
)

// csvHeaders defines the column names written as the first row of any export.
var csvHeaders = []string{
	"date", "day", "direction", "time", "place", "names", "done",
}

// GetExportCSV handles GET /api/board/export.csv.
// Use ?day=mon..fri to export a specific weekday; default is the operating day.
func (s *Server) GetExportCSV(w http.ResponseWriter, r *http.Request) {
	day := domain.DayKey(r.URL.Query().Get("day"))
	rows, err := s.board.ExportDay(day)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			respondNotFound(w, "unknown day key")
			return
		}
		respondInternal(w)
		return
	}

	buf := buildCSV(rows)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="board.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	buf.WriteTo(w)
}

// buildCSV encodes export rows as CSV. Names within a row are pipe-separated
// ("|") to keep each line on a single record.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(rowToRecord(r))
	}
	w.Flush()
	return &buf
}

// rowToRecord encodes one export row as a flat string slice.
func rowToRecord(r domain.ExportRow) []string {
	return []string{
		r.Date,
		string(r.DayKey),
		string(r.Direction),
		r.Time,
		r.Place,
		strings.Join(r.Names, "|"),
		strconv.FormatBool(r.Done),
	}
}
