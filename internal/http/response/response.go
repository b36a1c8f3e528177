package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"internboard/internal/common"
	"internboard/internal/http/metrics"
)

var errorCollector *metrics.Collector

// SetErrorCollector wires the metrics collector error responses are counted
// against. Called once at startup.
func SetErrorCollector(collector *metrics.Collector) {
	errorCollector = collector
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorBody struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error translates a domain error into its HTTP shape. Internal failures
// render a generic message; the cause stays server-side.
func Error(w http.ResponseWriter, err error) {
	code := common.CodeOf(err)
	errorCollector.ObserveError(string(code))

	body := errorBody{Code: code, Message: "something went wrong"}
	var appErr *common.Error
	if errors.As(err, &appErr) && code != common.CodeInternal {
		body.Message = appErr.Message
		body.Fields = appErr.Fields
	}
	JSON(w, statusFor(code), map[string]errorBody{"error": body})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeValidation, common.CodeInvalidState:
		return http.StatusBadRequest
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
