package service

import (
	"context"

	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/repository"
)

type checklistService struct {
	rec record[domain.Checklist]
}

func NewChecklistService(store repository.KVStore) ChecklistService {
	return &checklistService{rec: record[domain.Checklist]{
		store:    store,
		key:      repository.KeyChecklist,
		defaults: func() domain.Checklist { return domain.Checklist{} },
		backfill: func(c *domain.Checklist) {
			for i := range *c {
				(*c)[i].Category = domain.CoalesceStr((*c)[i].Category, domain.DefaultChecklistCategory)
			}
		},
	}}
}

func (s *checklistService) List(ctx context.Context) (domain.Checklist, error) {
	return s.rec.load(ctx)
}

func (s *checklistService) Add(ctx context.Context, title, description, category string) (domain.ChecklistItem, error) {
	it, err := domain.NewChecklistItem(title, description, category)
	if err != nil {
		return it, err
	}
	c, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return it, err
	}
	return it, s.rec.save(ctx, c.Add(it))
}

func (s *checklistService) Toggle(ctx context.Context, id string) (bool, error) {
	c, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return false, err
	}
	done, err := c.Toggle(id)
	if err != nil {
		return false, err
	}
	return done, s.rec.save(ctx, c)
}

func (s *checklistService) Remove(ctx context.Context, id string) (domain.Checklist, error) {
	c, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return c, err
	}
	if c, err = c.Remove(id); err != nil {
		return c, err
	}
	return c, s.rec.save(ctx, c)
}
