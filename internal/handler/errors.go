package handler

import (
	"net/http"
	"strings"
)

// errorDetail is the machine-readable part of an error response.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the uniform error envelope for every non-2xx body.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// respondNotFound writes a 404. The caller supplies the human-readable
// message (e.g. "unknown day key") because the handler is the layer that
// knows what was being looked up.
func respondNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, errorResponse{errorDetail{Code: "not_found", Message: message}})
}

// respondValidation writes a 422 for a domain validation failure. The
// message is extracted from the wrapped domain.ErrValidation error.
func respondValidation(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity,
		errorResponse{errorDetail{Code: "validation_error", Message: unwrapMessage(err)}})
}

// respondBadRequest writes a 422 for a request rejected before reaching the
// service layer (e.g. missing or malformed body).
func respondBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity,
		errorResponse{errorDetail{Code: "validation_error", Message: message}})
}

// respondInternal writes a 500 with a generic body; the real error belongs
// in the log, not on the wire.
func respondInternal(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError,
		errorResponse{errorDetail{Code: "internal_error", Message: "internal server error"}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.Board.ToggleDone: validation error: bad key" → "bad key".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, "validation error: "); i >= 0 {
		return msg[i+len("validation error: "):]
	}
	return msg
}
