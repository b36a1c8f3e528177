package identity

import (
	"context"

	"internboard/internal/common"
)

type Repository interface {
	Create(ctx context.Context, account Identity) (*Identity, error)
	GetByID(ctx context.Context, id common.UUID) (*Identity, error)
	FindByEmailAndRole(ctx context.Context, email string, role Role) (*Identity, error)
	ListByRole(ctx context.Context, role Role, limit, offset int) ([]Identity, error)
	SetApproval(ctx context.Context, id common.UUID, approved bool) (*Identity, error)
	SetCVURL(ctx context.Context, id common.UUID, cvURL string) (*Identity, error)
	CountByRole(ctx context.Context, role Role) (int, error)
}
