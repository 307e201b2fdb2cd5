package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "rinkbot/internal/platform/errors"
)

// Envelope is the standard response body for ops endpoints
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondOK writes a 200 envelope with data
func RespondOK(w stdhttp.ResponseWriter, data any) {
	JSON(w, stdhttp.StatusOK, Envelope{
		StatusCode: stdhttp.StatusOK,
		Status:     stdhttp.StatusText(stdhttp.StatusOK),
		Data:       data,
	})
}

// RespondError writes a 503 envelope carrying the error code and message
func RespondError(w stdhttp.ResponseWriter, err error) {
	JSON(w, stdhttp.StatusServiceUnavailable, Envelope{
		StatusCode: stdhttp.StatusServiceUnavailable,
		Status:     stdhttp.StatusText(stdhttp.StatusServiceUnavailable),
		Code:       perr.CodeOf(err),
		Error:      err.Error(),
	})
}
