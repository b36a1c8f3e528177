package app

import (
	"context"

	"internboard/internal/domain/application"
	"internboard/internal/domain/identity"
	"internboard/internal/domain/offer"
)

type StatsService struct {
	accounts     identity.Repository
	offers       offer.Repository
	applications application.Repository
}

func NewStatsService(accounts identity.Repository, offers offer.Repository, applications application.Repository) *StatsService {
	return &StatsService{accounts: accounts, offers: offers, applications: applications}
}

type Stats struct {
	Students     int `json:"students"`
	Companies    int `json:"companies"`
	Offers       int `json:"offers"`
	Applications int `json:"applications"`
}

func (s *StatsService) Collect(ctx context.Context) (*Stats, error) {
	students, err := s.accounts.CountByRole(ctx, identity.RoleStudent)
	if err != nil {
		return nil, err
	}
	companies, err := s.accounts.CountByRole(ctx, identity.RoleCompany)
	if err != nil {
		return nil, err
	}
	offers, err := s.offers.Count(ctx)
	if err != nil {
		return nil, err
	}
	applications, err := s.applications.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{Students: students, Companies: companies, Offers: offers, Applications: applications}, nil
}
