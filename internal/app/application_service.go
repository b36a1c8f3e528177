package app

import (
	"context"
	"strings"
	"time"

	"internboard/internal/common"
	"internboard/internal/domain/application"
	"internboard/internal/domain/identity"
	"internboard/internal/domain/offer"
)

type ApplicationService struct {
	repo      application.Repository
	offers    offer.Repository
	accounts  identity.Repository
	ownership *OwnershipResolver
	now       func() time.Time
}

func NewApplicationService(repo application.Repository, offers offer.Repository, accounts identity.Repository, ownership *OwnershipResolver) *ApplicationService {
	return &ApplicationService{repo: repo, offers: offers, accounts: accounts, ownership: ownership, now: time.Now}
}

// Apply creates a pending application for the acting student. Preconditions
// are checked in a fixed order so each failure maps to one distinct error:
// offer exists, offer is active, its company is approved, the deadline has
// not passed, and the student has not already applied. The duplicate
// pre-check is advisory only; the store's unique constraint on
// (offer_id, student_id) is what actually closes the race, and its
// violation surfaces as the same conflict.
func (s *ApplicationService) Apply(ctx context.Context, actor identity.Actor, offerID common.UUID, coverLetter string) (*application.Application, error) {
	if !actor.IsStudent() {
		return nil, common.NewError(common.CodeForbidden, "only students may apply", nil)
	}
	item, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if item.Status != offer.StatusActive {
		return nil, common.NewError(common.CodeInvalidState, "offer not accepting applications", nil)
	}
	company, err := s.accounts.GetByID(ctx, item.CompanyID)
	if err != nil {
		return nil, err
	}
	if !company.IsApproved {
		return nil, common.NewError(common.CodeForbidden, "company not approved", nil)
	}
	if item.Deadline != nil && s.now().UTC().After(*item.Deadline) {
		return nil, common.NewError(common.CodeInvalidState, "deadline passed", nil)
	}
	if _, err := s.repo.FindByOfferAndStudent(ctx, offerID, actor.ID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	student, err := s.accounts.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, application.Application{
		OfferID:     offerID,
		StudentID:   actor.ID,
		Status:      application.StatusPending,
		CoverLetter: strings.TrimSpace(coverLetter),
		CVURL:       student.CVURL,
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStatus moves a pending application to accepted or rejected. Only
// the company owning the parent offer or an admin may call this. A second
// transition out of a terminal status is rejected rather than treated as an
// idempotent no-op: silently accepting it would swallow a company retrying
// the opposite decision.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor identity.Actor, applicationID common.UUID, status application.Status) (*application.Application, error) {
	app, access, err := s.ownership.ResolveApplication(ctx, applicationID, actor)
	if err != nil {
		return nil, err
	}
	if access != AccessCompany && access != AccessAdmin {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another company", nil)
	}
	normalized := application.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if normalized != application.StatusAccepted && normalized != application.StatusRejected {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be accepted or rejected"})
	}
	if app.Status.IsTerminal() {
		return nil, common.NewError(common.CodeInvalidState, "application already finalized", nil)
	}
	return s.repo.UpdateStatus(ctx, applicationID, normalized)
}

// Withdraw removes a pending application entirely. Only the owning student
// may withdraw, and only while the application is still pending. The record
// is hard-deleted; a withdrawn application leaves no trail.
func (s *ApplicationService) Withdraw(ctx context.Context, actor identity.Actor, applicationID common.UUID) error {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if !actor.IsStudent() || app.StudentID != actor.ID {
		return common.NewError(common.CodeForbidden, "application belongs to another student", nil)
	}
	if app.Status != application.StatusPending {
		return common.NewError(common.CodeInvalidState, "can only withdraw pending applications", nil)
	}
	return s.repo.Delete(ctx, applicationID)
}

// Get returns the application to its student, the company owning the parent
// offer, or an admin. Nonexistence is reported before ownership so a probe
// with an unknown id cannot tell forbidden from not_found.
func (s *ApplicationService) Get(ctx context.Context, actor identity.Actor, applicationID common.UUID) (*application.Application, error) {
	app, access, err := s.ownership.ResolveApplication(ctx, applicationID, actor)
	if err != nil {
		return nil, err
	}
	if access == AccessNone {
		return nil, common.NewError(common.CodeForbidden, "no access to this application", nil)
	}
	return app, nil
}

func (s *ApplicationService) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *ApplicationService) ListByCompany(ctx context.Context, companyID common.UUID) ([]application.Application, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *ApplicationService) ListAll(ctx context.Context, limit, offset int) ([]application.Application, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListAll(ctx, limit, offset)
}

// ListByOffer returns the applications submitted against one offer, visible
// only to the offer's owning company or an admin.
func (s *ApplicationService) ListByOffer(ctx context.Context, actor identity.Actor, offerID common.UUID) ([]application.Application, error) {
	owned, err := s.ownership.ResolveOffer(ctx, offerID, actor)
	if err != nil {
		return nil, err
	}
	if !owned.IsOwner {
		return nil, common.NewError(common.CodeForbidden, "offer belongs to another company", nil)
	}
	return s.repo.ListByOffer(ctx, offerID)
}
