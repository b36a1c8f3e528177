package app

import (
	"context"
	"strings"

	"internboard/internal/common"
	"internboard/internal/domain/identity"
)

type AccountService struct {
	accounts identity.Repository
}

func NewAccountService(accounts identity.Repository) *AccountService {
	return &AccountService{accounts: accounts}
}

func (s *AccountService) ListCompanies(ctx context.Context, limit, offset int) ([]identity.Identity, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.accounts.ListByRole(ctx, identity.RoleCompany, limit, offset)
}

// SetCompanyApproval flips a company's approval flag. Unapproved companies
// cannot post offers and their offers are invisible to students.
func (s *AccountService) SetCompanyApproval(ctx context.Context, companyID common.UUID, approved bool) (*identity.Identity, error) {
	account, err := s.accounts.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if account.Role != identity.RoleCompany {
		return nil, common.NewError(common.CodeNotFound, "company not found", nil)
	}
	return s.accounts.SetApproval(ctx, companyID, approved)
}

// SetStudentCV updates the CV reference later snapshotted onto new
// applications. Already-submitted applications keep the reference they were
// created with.
func (s *AccountService) SetStudentCV(ctx context.Context, actor identity.Actor, cvURL string) (*identity.Identity, error) {
	if !actor.IsStudent() {
		return nil, common.NewError(common.CodeForbidden, "only students have a CV", nil)
	}
	cvURL = strings.TrimSpace(cvURL)
	if cvURL == "" {
		return nil, common.NewValidationError("invalid cv", map[string]string{"cv_url": "cv_url is required"})
	}
	return s.accounts.SetCVURL(ctx, actor.ID, cvURL)
}
