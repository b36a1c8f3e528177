package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"internboard/internal/app"
	"internboard/internal/common"
	"internboard/internal/domain/offer"
	"internboard/internal/http/middleware"
	"internboard/internal/http/response"
)

type OfferHandler struct {
	offers       *app.OfferService
	applications *app.ApplicationService
}

func NewOfferHandler(offers *app.OfferService, applications *app.ApplicationService) *OfferHandler {
	return &OfferHandler{offers: offers, applications: applications}
}

type offerRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
	Deadline    string   `json:"deadline"`
	Status      string   `json:"status"`
}

func (req offerRequest) toInput() (app.OfferInput, error) {
	input := app.OfferInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Tags:        req.Tags,
		Status:      offer.Status(req.Status),
	}
	if strings.TrimSpace(req.Deadline) != "" {
		deadline, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			return app.OfferInput{}, common.NewValidationError("invalid deadline", map[string]string{"deadline": "deadline must be RFC 3339"})
		}
		input.Deadline = &deadline
	}
	return input, nil
}

func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req offerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.offers.Create(r.Context(), actor, input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *OfferHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	offerID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req offerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.offers.Update(r.Context(), actor, offerID, input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type offerStatusRequest struct {
	Status string `json:"status"`
}

func (h *OfferHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	offerID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req offerStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.offers.UpdateStatus(r.Context(), actor, offerID, offer.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *OfferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	offerID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.offers.Delete(r.Context(), actor, offerID); err != nil {
		response.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OfferHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	offerID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.offers.Get(r.Context(), actor, offerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	query := r.URL.Query()
	filter := app.OfferFilter{
		Status:   offer.Status(query.Get("status")),
		Category: query.Get("category"),
		Limit:    intQuery(query.Get("limit")),
		Offset:   intQuery(query.Get("offset")),
	}
	items, err := h.offers.List(r.Context(), actor, filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

// ListApplications serves /offers/{id}/applications for the owning company
// or an admin.
func (h *OfferHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	offerID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.ListByOffer(r.Context(), actor, offerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func intQuery(value string) int {
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}
