package service

import (
	"context"

	"github.com/aHaldin/pickmyartist/internal/domains/admin"
)

const (
	newestSignupLimit = 5
	searchResultLimit = 50
)

type adminService struct {
	repo admin.Repository
}

func NewAdminService(repo admin.Repository) admin.Service {
	return &adminService{repo: repo}
}

func (s *adminService) Stats(ctx context.Context) (*admin.StatsDTO, error) {
	total, published, err := s.repo.CountProfiles(ctx)
	if err != nil {
		return nil, err
	}

	newEnquiries, err := s.repo.CountNewEnquiries(ctx)
	if err != nil {
		return nil, err
	}

	signups, err := s.repo.NewestSignups(ctx, newestSignupLimit)
	if err != nil {
		return nil, err
	}

	return &admin.StatsDTO{
		TotalProfiles:     total,
		PublishedProfiles: published,
		NewEnquiries:      newEnquiries,
		NewestSignups:     signups,
	}, nil
}

func (s *adminService) SearchUsers(ctx context.Context, term string) ([]admin.UserRowDTO, error) {
	return s.repo.SearchUsers(ctx, term, searchResultLimit)
}
