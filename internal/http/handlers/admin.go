package handlers

import (
	"net/http"

	"internboard/internal/app"
	"internboard/internal/common"
	"internboard/internal/http/response"
)

type AdminHandler struct {
	accounts *app.AccountService
	stats    *app.StatsService
}

func NewAdminHandler(accounts *app.AccountService, stats *app.StatsService) *AdminHandler {
	return &AdminHandler{accounts: accounts, stats: stats}
}

func (h *AdminHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	items, err := h.accounts.ListCompanies(r.Context(), intQuery(query.Get("limit")), intQuery(query.Get("offset")))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

type approvalRequest struct {
	Approved *bool `json:"approved"`
}

func (h *AdminHandler) SetCompanyApproval(w http.ResponseWriter, r *http.Request) {
	companyID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req approvalRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Approved == nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"approved": "approved is required"}))
		return
	}
	updated, err := h.accounts.SetCompanyApproval(r.Context(), companyID, *req.Approved)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Collect(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}
