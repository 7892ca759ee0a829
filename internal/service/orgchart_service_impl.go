package service

import (
	"context"

	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/repository"
)

type orgChartService struct {
	rec record[domain.OrgChart]
}

func NewOrgChartService(store repository.KVStore) OrgChartService {
	return &orgChartService{rec: record[domain.OrgChart]{
		store:    store,
		key:      repository.KeyOrgChart,
		defaults: func() domain.OrgChart { return domain.OrgChart{} },
	}}
}

func (s *orgChartService) List(ctx context.Context) (domain.OrgChart, error) {
	return s.rec.load(ctx)
}

func (s *orgChartService) Add(ctx context.Context, draft domain.Role) (domain.Role, error) {
	role, err := domain.NewRole(draft.Title, draft.Name, draft.Department, draft.Responsibilities, draft.ReportsTo, draft.PhotoAssetID)
	if err != nil {
		return role, err
	}
	o, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return role, err
	}
	return role, s.rec.save(ctx, o.Add(role))
}

func (s *orgChartService) Remove(ctx context.Context, id string) (domain.OrgChart, error) {
	o, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return o, err
	}
	if o, err = o.Remove(id); err != nil {
		return o, err
	}
	return o, s.rec.save(ctx, o)
}

// Check reports reporting labels that name no role or loop back.
func (s *orgChartService) Check(ctx context.Context) ([]domain.ReportingIssue, error) {
	o, err := s.rec.load(ctx)
	if err != nil {
		return nil, err
	}
	return o.ReportingIssues(), nil
}
