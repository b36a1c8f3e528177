package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/lib/pq"

	"internboard/internal/common"
	"internboard/internal/domain/offer"
)

type OfferRepository struct {
	db *sql.DB
}

func NewOfferRepository(db *sql.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

const offerColumns = `id, company_id, title, description, category, location, tags, deadline, status, posted_at, updated_at`

func (r *OfferRepository) Create(ctx context.Context, o offer.Offer) (*offer.Offer, error) {
	o.ID = common.NewUUID()
	now := time.Now().UTC()
	o.PostedAt = now
	o.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO offers (id, company_id, title, description, category, location, tags, deadline, status, posted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.CompanyID, o.Title, o.Description, o.Category, o.Location, pq.Array(o.Tags), o.Deadline, o.Status, o.PostedAt, o.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create offer", err)
	}
	return &o, nil
}

func (r *OfferRepository) Update(ctx context.Context, o offer.Offer) (*offer.Offer, error) {
	o.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE offers SET title = $1, description = $2, category = $3, location = $4, tags = $5, deadline = $6, status = $7, updated_at = $8
		WHERE id = $9`,
		o.Title, o.Description, o.Category, o.Location, pq.Array(o.Tags), o.Deadline, o.Status, o.UpdatedAt, o.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update offer", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "offer not found", sql.ErrNoRows)
	}
	return &o, nil
}

func (r *OfferRepository) GetByID(ctx context.Context, id common.UUID) (*offer.Offer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id)
	var o offer.Offer
	if err := row.Scan(&o.ID, &o.CompanyID, &o.Title, &o.Description, &o.Category, &o.Location, pq.Array(&o.Tags), &o.Deadline, &o.Status, &o.PostedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "offer not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load offer", err)
	}
	return &o, nil
}

func (r *OfferRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete offer", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "offer not found", sql.ErrNoRows)
	}
	return nil
}

func (r *OfferRepository) ListActiveApproved(ctx context.Context, limit, offset int, category string) ([]offer.Offer, error) {
	query := `SELECT o.id, o.company_id, o.title, o.description, o.category, o.location, o.tags, o.deadline, o.status, o.posted_at, o.updated_at
		FROM offers o
		JOIN identities c ON c.id = o.company_id
		WHERE o.status = $1 AND c.is_approved = TRUE`
	args := []any{offer.StatusActive}
	if category != "" {
		query += ` AND o.category = $2 ORDER BY o.posted_at DESC LIMIT $3 OFFSET $4`
		args = append(args, category, limit, offset)
	} else {
		query += ` ORDER BY o.posted_at DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	return r.list(ctx, query, args...)
}

func (r *OfferRepository) ListByCompany(ctx context.Context, companyID common.UUID) ([]offer.Offer, error) {
	return r.list(ctx, `SELECT `+offerColumns+` FROM offers WHERE company_id = $1 ORDER BY posted_at DESC`, companyID)
}

func (r *OfferRepository) ListAll(ctx context.Context, limit, offset int, status offer.Status, category string) ([]offer.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += ` AND status = $1`
	}
	if category != "" {
		args = append(args, category)
		query += ` AND category = $` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += ` ORDER BY posted_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))
	return r.list(ctx, query, args...)
}

func (r *OfferRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM offers`).Scan(&count); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count offers", err)
	}
	return count, nil
}

func (r *OfferRepository) list(ctx context.Context, query string, args ...any) ([]offer.Offer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list offers", err)
	}
	defer rows.Close()
	var items []offer.Offer
	for rows.Next() {
		var o offer.Offer
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.Title, &o.Description, &o.Category, &o.Location, pq.Array(&o.Tags), &o.Deadline, &o.Status, &o.PostedAt, &o.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan offer", err)
		}
		items = append(items, o)
	}
	return items, nil
}
