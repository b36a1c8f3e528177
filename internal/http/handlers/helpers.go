package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"internboard/internal/common"
)

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// idFromPath extracts a UUID path segment counting from the end of the
// path: 1 is the last segment (/offers/{id}), 2 the one before it
// (/applications/{id}/status).
func idFromPath(r *http.Request, position int) (common.UUID, error) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < position {
		return "", common.NewError(common.CodeValidation, "missing id in path", nil)
	}
	raw := parts[len(parts)-position]
	parsed, err := common.ParseUUID(raw)
	if err != nil {
		return "", common.NewValidationError("invalid id", map[string]string{"id": "invalid uuid"})
	}
	return parsed, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "access token required", nil)
}
