package server

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/KaramelBytes/odpanel/internal/odmatrix"
	"github.com/KaramelBytes/odpanel/internal/session"
)

// Response is the envelope of every API reply. Code is 0 on success and the HTTP
// status otherwise.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// errBadQuery marks malformed query parameters.
var errBadQuery = errors.New("bad query")

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("encode response", zap.Error(err))
	}
}

func success(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Code: 0, Message: "success", Data: data})
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Code: status, Message: message})
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, dataset.ErrTableNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadQuery),
		errors.Is(err, odmatrix.ErrDuplicateCode),
		errors.Is(err, odmatrix.ErrEmptySelection):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func failErr(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
	}
	fail(w, status, err.Error())
}
