package offer

import (
	"context"

	"internboard/internal/common"
)

type Repository interface {
	Create(ctx context.Context, o Offer) (*Offer, error)
	Update(ctx context.Context, o Offer) (*Offer, error)
	GetByID(ctx context.Context, id common.UUID) (*Offer, error)
	// Delete removes the offer and, through the store-level cascade, all of
	// its applications.
	Delete(ctx context.Context, id common.UUID) error
	// ListActiveApproved returns active offers belonging to approved
	// companies only. This is the student-visible listing.
	ListActiveApproved(ctx context.Context, limit, offset int, category string) ([]Offer, error)
	ListByCompany(ctx context.Context, companyID common.UUID) ([]Offer, error)
	ListAll(ctx context.Context, limit, offset int, status Status, category string) ([]Offer, error)
	Count(ctx context.Context) (int, error)
}
