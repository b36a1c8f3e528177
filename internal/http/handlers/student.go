package handlers

import (
	"net/http"

	"internboard/internal/app"
	"internboard/internal/http/middleware"
	"internboard/internal/http/response"
)

type StudentHandler struct {
	accounts *app.AccountService
}

func NewStudentHandler(accounts *app.AccountService) *StudentHandler {
	return &StudentHandler{accounts: accounts}
}

type cvRequest struct {
	CVURL string `json:"cv_url"`
}

// SetCV updates the CV reference snapshotted onto future applications.
func (h *StudentHandler) SetCV(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req cvRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.accounts.SetStudentCV(r.Context(), actor, req.CVURL)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
