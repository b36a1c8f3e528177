package app

import (
	"context"
	"sync"
	"time"

	"internboard/internal/common"
	"internboard/internal/domain/application"
	"internboard/internal/domain/identity"
	"internboard/internal/domain/offer"
)

type fakeIdentityRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*identity.Identity
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{byID: make(map[common.UUID]*identity.Identity)}
}

func (r *fakeIdentityRepo) Create(ctx context.Context, account identity.Identity) (*identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == account.Email && existing.Role == account.Role {
			return nil, common.NewError(common.CodeConflict, "email already registered", nil)
		}
	}
	account.ID = common.NewUUID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	stored := account
	r.byID[account.ID] = &stored
	return cloneIdentity(&stored), nil
}

func (r *fakeIdentityRepo) GetByID(ctx context.Context, id common.UUID) (*identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "identity not found", nil)
	}
	return cloneIdentity(account), nil
}

func (r *fakeIdentityRepo) FindByEmailAndRole(ctx context.Context, email string, role identity.Role) (*identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.byID {
		if account.Email == email && account.Role == role {
			return cloneIdentity(account), nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "identity not found", nil)
}

func (r *fakeIdentityRepo) ListByRole(ctx context.Context, role identity.Role, limit, offset int) ([]identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []identity.Identity
	for _, account := range r.byID {
		if account.Role == role {
			items = append(items, *cloneIdentity(account))
		}
	}
	return items, nil
}

func (r *fakeIdentityRepo) SetApproval(ctx context.Context, id common.UUID, approved bool) (*identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "identity not found", nil)
	}
	account.IsApproved = approved
	return cloneIdentity(account), nil
}

func (r *fakeIdentityRepo) SetCVURL(ctx context.Context, id common.UUID, cvURL string) (*identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "identity not found", nil)
	}
	account.CVURL = cvURL
	return cloneIdentity(account), nil
}

func (r *fakeIdentityRepo) CountByRole(ctx context.Context, role identity.Role) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, account := range r.byID {
		if account.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *fakeIdentityRepo) add(account identity.Identity) identity.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	if account.ID == "" {
		account.ID = common.NewUUID()
	}
	stored := account
	r.byID[account.ID] = &stored
	return stored
}

func (r *fakeIdentityRepo) isApprovedCompany(id common.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	return account != nil && account.IsApproved
}

func cloneIdentity(account *identity.Identity) *identity.Identity {
	clone := *account
	return &clone
}

type fakeOfferRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*offer.Offer
	// set to model the store-level cascade and the approved-company join
	applications *fakeApplicationRepo
	identities   *fakeIdentityRepo
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{byID: make(map[common.UUID]*offer.Offer)}
}

func (r *fakeOfferRepo) Create(ctx context.Context, o offer.Offer) (*offer.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = common.NewUUID()
	now := time.Now().UTC()
	o.PostedAt = now
	o.UpdatedAt = now
	stored := o
	r.byID[o.ID] = &stored
	return cloneOffer(&stored), nil
}

func (r *fakeOfferRepo) Update(ctx context.Context, o offer.Offer) (*offer.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[o.ID] == nil {
		return nil, common.NewError(common.CodeNotFound, "offer not found", nil)
	}
	o.UpdatedAt = time.Now().UTC()
	stored := o
	r.byID[o.ID] = &stored
	return cloneOffer(&stored), nil
}

func (r *fakeOfferRepo) GetByID(ctx context.Context, id common.UUID) (*offer.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.byID[id]
	if item == nil {
		return nil, common.NewError(common.CodeNotFound, "offer not found", nil)
	}
	return cloneOffer(item), nil
}

func (r *fakeOfferRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	if r.byID[id] == nil {
		r.mu.Unlock()
		return common.NewError(common.CodeNotFound, "offer not found", nil)
	}
	delete(r.byID, id)
	r.mu.Unlock()
	if r.applications != nil {
		r.applications.deleteByOffer(id)
	}
	return nil
}

func (r *fakeOfferRepo) ListActiveApproved(ctx context.Context, limit, offset int, category string) ([]offer.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []offer.Offer
	for _, item := range r.byID {
		if item.Status != offer.StatusActive {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		if !r.approved(item.CompanyID) {
			continue
		}
		items = append(items, *cloneOffer(item))
	}
	return items, nil
}

func (r *fakeOfferRepo) approved(companyID common.UUID) bool {
	if r.identities == nil {
		return true
	}
	return r.identities.isApprovedCompany(companyID)
}

func (r *fakeOfferRepo) ListByCompany(ctx context.Context, companyID common.UUID) ([]offer.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []offer.Offer
	for _, item := range r.byID {
		if item.CompanyID == companyID {
			items = append(items, *cloneOffer(item))
		}
	}
	return items, nil
}

func (r *fakeOfferRepo) ListAll(ctx context.Context, limit, offset int, status offer.Status, category string) ([]offer.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []offer.Offer
	for _, item := range r.byID {
		if status != "" && item.Status != status {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		items = append(items, *cloneOffer(item))
	}
	return items, nil
}

func (r *fakeOfferRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID), nil
}

func (r *fakeOfferRepo) add(o offer.Offer) offer.Offer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == "" {
		o.ID = common.NewUUID()
	}
	stored := o
	r.byID[o.ID] = &stored
	return stored
}

func cloneOffer(o *offer.Offer) *offer.Offer {
	clone := *o
	return &clone
}

type fakeApplicationRepo struct {
	mu     sync.Mutex
	byID   map[common.UUID]*application.Application
	offers *fakeOfferRepo
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{byID: make(map[common.UUID]*application.Application)}
}

// Create enforces the (offer_id, student_id) uniqueness atomically under
// the repo lock, mirroring the store-level constraint.
func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.OfferID == app.OfferID && existing.StudentID == app.StudentID {
			return nil, common.NewError(common.CodeConflict, "already applied", nil)
		}
	}
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	stored := app
	r.byID[app.ID] = &stored
	return cloneApplication(&stored), nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.byID[id]
	if item == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return cloneApplication(item), nil
}

func (r *fakeApplicationRepo) FindByOfferAndStudent(ctx context.Context, offerID, studentID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.byID {
		if item.OfferID == offerID && item.StudentID == studentID {
			return cloneApplication(item), nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.byID[id]
	if item == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	item.Status = status
	item.UpdatedAt = time.Now().UTC()
	return cloneApplication(item), nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[id] == nil {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeApplicationRepo) deleteByOffer(offerID common.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.byID {
		if item.OfferID == offerID {
			delete(r.byID, id)
		}
	}
}

func (r *fakeApplicationRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, item := range r.byID {
		if item.StudentID == studentID {
			items = append(items, *cloneApplication(item))
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByOffer(ctx context.Context, offerID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, item := range r.byID {
		if item.OfferID == offerID {
			items = append(items, *cloneApplication(item))
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByCompany(ctx context.Context, companyID common.UUID) ([]application.Application, error) {
	owned := make(map[common.UUID]bool)
	if r.offers != nil {
		items, _ := r.offers.ListByCompany(ctx, companyID)
		for _, o := range items {
			owned[o.ID] = true
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, item := range r.byID {
		if owned[item.OfferID] {
			items = append(items, *cloneApplication(item))
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListAll(ctx context.Context, limit, offset int) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, item := range r.byID {
		items = append(items, *cloneApplication(item))
	}
	return items, nil
}

func (r *fakeApplicationRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID), nil
}

func (r *fakeApplicationRepo) add(app application.Application) application.Application {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app.ID == "" {
		app.ID = common.NewUUID()
	}
	stored := app
	r.byID[app.ID] = &stored
	return stored
}

func cloneApplication(app *application.Application) *application.Application {
	clone := *app
	return &clone
}
