package app

import (
	"context"
	"strings"
	"time"

	"internboard/internal/common"
	"internboard/internal/domain/identity"
	"internboard/internal/domain/offer"
)

type OfferService struct {
	repo      offer.Repository
	accounts  identity.Repository
	ownership *OwnershipResolver
}

func NewOfferService(repo offer.Repository, accounts identity.Repository, ownership *OwnershipResolver) *OfferService {
	return &OfferService{repo: repo, accounts: accounts, ownership: ownership}
}

type OfferInput struct {
	Title       string
	Description string
	Category    string
	Location    string
	Tags        []string
	Deadline    *time.Time
	Status      offer.Status
}

func (s *OfferService) Create(ctx context.Context, actor identity.Actor, input OfferInput) (*offer.Offer, error) {
	if !actor.IsCompany() {
		return nil, common.NewError(common.CodeForbidden, "only companies may post offers", nil)
	}
	account, err := s.accounts.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !account.IsApproved {
		return nil, common.NewError(common.CodeForbidden, "company must be approved to post offers", nil)
	}
	if err := validateOfferInput(input); err != nil {
		return nil, err
	}
	if input.Status == "" {
		input.Status = offer.StatusDraft
	}
	status, err := normalizeOfferStatus(input.Status)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, offer.Offer{
		CompanyID:   actor.ID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		Tags:        input.Tags,
		Deadline:    input.Deadline,
		Status:      status,
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *OfferService) Update(ctx context.Context, actor identity.Actor, offerID common.UUID, input OfferInput) (*offer.Offer, error) {
	owned, err := s.ownership.ResolveOffer(ctx, offerID, actor)
	if err != nil {
		return nil, err
	}
	if !owned.IsOwner {
		return nil, common.NewError(common.CodeForbidden, "offer belongs to another company", nil)
	}
	if err := validateOfferInput(input); err != nil {
		return nil, err
	}
	current := owned.Offer
	if input.Status == "" {
		input.Status = current.Status
	}
	status, err := normalizeOfferStatus(input.Status)
	if err != nil {
		return nil, err
	}
	current.Title = input.Title
	current.Description = input.Description
	current.Category = input.Category
	current.Location = input.Location
	current.Tags = input.Tags
	current.Deadline = input.Deadline
	current.Status = status
	return s.repo.Update(ctx, *current)
}

// UpdateStatus moves the offer between draft, active, and closed. All
// transitions among the three are legal for the owner or an admin; deadline
// expiry never transitions an offer by itself.
func (s *OfferService) UpdateStatus(ctx context.Context, actor identity.Actor, offerID common.UUID, status offer.Status) (*offer.Offer, error) {
	owned, err := s.ownership.ResolveOffer(ctx, offerID, actor)
	if err != nil {
		return nil, err
	}
	if !owned.IsOwner {
		return nil, common.NewError(common.CodeForbidden, "offer belongs to another company", nil)
	}
	normalized, err := normalizeOfferStatus(status)
	if err != nil {
		return nil, err
	}
	current := owned.Offer
	current.Status = normalized
	return s.repo.Update(ctx, *current)
}

func (s *OfferService) Delete(ctx context.Context, actor identity.Actor, offerID common.UUID) error {
	owned, err := s.ownership.ResolveOffer(ctx, offerID, actor)
	if err != nil {
		return err
	}
	if !owned.IsOwner {
		return common.NewError(common.CodeForbidden, "offer belongs to another company", nil)
	}
	return s.repo.Delete(ctx, offerID)
}

// Get applies the same visibility rule as List: students only ever see
// active offers from approved companies, and anything outside that window
// reads as not_found rather than forbidden.
func (s *OfferService) Get(ctx context.Context, actor identity.Actor, offerID common.UUID) (*offer.Offer, error) {
	item, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return item, nil
	}
	if actor.IsCompany() && item.CompanyID == actor.ID {
		return item, nil
	}
	if item.Status != offer.StatusActive {
		return nil, common.NewError(common.CodeNotFound, "offer not found", nil)
	}
	company, err := s.accounts.GetByID(ctx, item.CompanyID)
	if err != nil {
		return nil, err
	}
	if !company.IsApproved {
		return nil, common.NewError(common.CodeNotFound, "offer not found", nil)
	}
	return item, nil
}

type OfferFilter struct {
	Status   offer.Status
	Category string
	Limit    int
	Offset   int
}

// List is role-asymmetric by design: student callers are restricted
// server-side to active offers from approved companies no matter what
// filter they pass; companies see their own offers in any status; admins
// see everything.
func (s *OfferService) List(ctx context.Context, actor identity.Actor, filter OfferFilter) ([]offer.Offer, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	switch actor.Role {
	case identity.RoleStudent:
		return s.repo.ListActiveApproved(ctx, limit, offset, filter.Category)
	case identity.RoleCompany:
		return s.repo.ListByCompany(ctx, actor.ID)
	case identity.RoleAdmin:
		status := filter.Status
		if status != "" {
			normalized, err := normalizeOfferStatus(status)
			if err != nil {
				return nil, err
			}
			status = normalized
		}
		return s.repo.ListAll(ctx, limit, offset, status, filter.Category)
	default:
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
}

func validateOfferInput(input OfferInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "title is required"
	} else if len(input.Title) < 4 || len(input.Title) > 120 {
		fields["title"] = "title must be between 4 and 120 characters"
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["description"] = "description is required"
	}
	if strings.TrimSpace(input.Category) == "" {
		fields["category"] = "category is required"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid offer", fields)
	}
	return nil
}

func normalizeOfferStatus(status offer.Status) (offer.Status, error) {
	normalized := offer.Status(strings.ToLower(strings.TrimSpace(string(status))))
	switch normalized {
	case offer.StatusDraft, offer.StatusActive, offer.StatusClosed:
		return normalized, nil
	default:
		return "", common.NewValidationError("invalid offer status", map[string]string{"status": "status must be draft, active, or closed"})
	}
}
