package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"internboard/internal/common"
	"internboard/internal/domain/identity"
)

type IdentityRepository struct {
	db *sql.DB
}

func NewIdentityRepository(db *sql.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

const identityColumns = `id, email, role, password_hash, company_name, is_approved, cv_url, created_at, updated_at`

func (r *IdentityRepository) Create(ctx context.Context, account identity.Identity) (*identity.Identity, error) {
	account.ID = common.NewUUID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO identities (id, email, role, password_hash, company_name, is_approved, cv_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		account.ID, account.Email, account.Role, account.PasswordHash, account.CompanyName, account.IsApproved, account.CVURL, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "email already registered", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create identity", err)
	}
	return &account, nil
}

func (r *IdentityRepository) GetByID(ctx context.Context, id common.UUID) (*identity.Identity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+identityColumns+` FROM identities WHERE id = $1`, id)
	return scanIdentity(row)
}

func (r *IdentityRepository) FindByEmailAndRole(ctx context.Context, email string, role identity.Role) (*identity.Identity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+identityColumns+` FROM identities WHERE email = $1 AND role = $2`, email, role)
	return scanIdentity(row)
}

func (r *IdentityRepository) ListByRole(ctx context.Context, role identity.Role, limit, offset int) ([]identity.Identity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+identityColumns+` FROM identities WHERE role = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, role, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list identities", err)
	}
	defer rows.Close()
	var items []identity.Identity
	for rows.Next() {
		var account identity.Identity
		if err := rows.Scan(&account.ID, &account.Email, &account.Role, &account.PasswordHash, &account.CompanyName, &account.IsApproved, &account.CVURL, &account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan identity", err)
		}
		items = append(items, account)
	}
	return items, nil
}

func (r *IdentityRepository) SetApproval(ctx context.Context, id common.UUID, approved bool) (*identity.Identity, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE identities SET is_approved = $1, updated_at = $2 WHERE id = $3`, approved, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update approval", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "identity not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *IdentityRepository) SetCVURL(ctx context.Context, id common.UUID, cvURL string) (*identity.Identity, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE identities SET cv_url = $1, updated_at = $2 WHERE id = $3`, cvURL, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update cv", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "identity not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *IdentityRepository) CountByRole(ctx context.Context, role identity.Role) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM identities WHERE role = $1`, role).Scan(&count); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count identities", err)
	}
	return count, nil
}

func scanIdentity(row *sql.Row) (*identity.Identity, error) {
	var account identity.Identity
	if err := row.Scan(&account.ID, &account.Email, &account.Role, &account.PasswordHash, &account.CompanyName, &account.IsApproved, &account.CVURL, &account.CreatedAt, &account.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "identity not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load identity", err)
	}
	return &account, nil
}
