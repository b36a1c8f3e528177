package application

import (
	"context"

	"internboard/internal/common"
)

type Repository interface {
	// Create inserts the application. The store enforces the compound
	// unique constraint on (offer_id, student_id); a violation is returned
	// as a conflict error, which is the authoritative duplicate guard.
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByOfferAndStudent(ctx context.Context, offerID, studentID common.UUID) (*Application, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
	Delete(ctx context.Context, id common.UUID) error
	ListByStudent(ctx context.Context, studentID common.UUID) ([]Application, error)
	ListByOffer(ctx context.Context, offerID common.UUID) ([]Application, error)
	ListByCompany(ctx context.Context, companyID common.UUID) ([]Application, error)
	ListAll(ctx context.Context, limit, offset int) ([]Application, error)
	Count(ctx context.Context) (int, error)
}
