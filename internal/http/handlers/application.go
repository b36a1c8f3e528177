package handlers

import (
	"net/http"
	"strings"
	"time"

	"internboard/internal/app"
	"internboard/internal/common"
	"internboard/internal/domain/application"
	"internboard/internal/domain/identity"
	"internboard/internal/http/middleware"
	"internboard/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type applyRequest struct {
	OfferID     string `json:"offer_id"`
	CoverLetter string `json:"cover_letter"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.OfferID) == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"offer_id": "offer_id is required"}))
		return
	}
	offerID, err := common.ParseUUID(req.OfferID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"offer_id": "invalid uuid"}))
		return
	}
	if h.limiter != nil {
		key := "apply:" + offerID.String() + ":" + actor.ID.String()
		if !h.limiter.Allow(key, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	created, err := h.applications.Apply(r.Context(), actor, offerID, req.CoverLetter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

// List dispatches on the caller's role: students see their own
// applications, companies those against their offers, admins everything.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var items []application.Application
	var err error
	switch actor.Role {
	case identity.RoleStudent:
		items, err = h.applications.ListByStudent(r.Context(), actor.ID)
	case identity.RoleCompany:
		items, err = h.applications.ListByCompany(r.Context(), actor.ID)
	case identity.RoleAdmin:
		query := r.URL.Query()
		items, err = h.applications.ListAll(r.Context(), intQuery(query.Get("limit")), intQuery(query.Get("offset")))
	default:
		err = common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applications.Get(r.Context(), actor, applicationID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

type applicationStatusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req applicationStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"status": "status is required"}))
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), actor, applicationID, application.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

// Withdraw removes the caller's own pending application.
func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.applications.Withdraw(r.Context(), actor, applicationID); err != nil {
		response.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
