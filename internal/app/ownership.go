package app

import (
	"context"

	"internboard/internal/common"
	"internboard/internal/domain/application"
	"internboard/internal/domain/identity"
	"internboard/internal/domain/offer"
)

// AccessLevel is the resolved relationship between an actor and an
// application. An application has two legitimate owners for read purposes
// (the applying student and the company owning the parent offer); which of
// them may write depends on the operation.
type AccessLevel int

const (
	AccessNone AccessLevel = iota
	AccessStudent
	AccessCompany
	AccessAdmin
)

type OfferOwnership struct {
	Offer   *offer.Offer
	IsOwner bool
}

// OwnershipResolver answers whether a verified actor owns or participates in
// a specific resource instance. Ownership is always derived from store-side
// foreign keys compared against the actor's verified id; identity fields in
// request payloads are never part of the decision.
type OwnershipResolver struct {
	offers       offer.Repository
	applications application.Repository
}

func NewOwnershipResolver(offers offer.Repository, applications application.Repository) *OwnershipResolver {
	return &OwnershipResolver{offers: offers, applications: applications}
}

// ResolveOffer loads the offer and decides ownership. Nonexistence surfaces
// as the repository's not_found before any ownership question is asked.
func (r *OwnershipResolver) ResolveOffer(ctx context.Context, offerID common.UUID, actor identity.Actor) (*OfferOwnership, error) {
	item, err := r.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case identity.RoleAdmin:
		return &OfferOwnership{Offer: item, IsOwner: true}, nil
	case identity.RoleCompany:
		return &OfferOwnership{Offer: item, IsOwner: item.CompanyID == actor.ID}, nil
	default:
		return &OfferOwnership{Offer: item, IsOwner: false}, nil
	}
}

// ResolveApplication decides the actor's access level for one application.
// Requires two lookups: the application's student_id and the parent offer's
// company_id.
func (r *OwnershipResolver) ResolveApplication(ctx context.Context, applicationID common.UUID, actor identity.Actor) (*application.Application, AccessLevel, error) {
	app, err := r.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, AccessNone, err
	}
	if actor.Role == identity.RoleAdmin {
		return app, AccessAdmin, nil
	}
	if actor.Role == identity.RoleStudent && app.StudentID == actor.ID {
		return app, AccessStudent, nil
	}
	if actor.Role == identity.RoleCompany {
		parent, err := r.offers.GetByID(ctx, app.OfferID)
		if err != nil {
			return nil, AccessNone, err
		}
		if parent.CompanyID == actor.ID {
			return app, AccessCompany, nil
		}
	}
	return app, AccessNone, nil
}
