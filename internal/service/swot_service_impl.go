package service

import (
	"context"

	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/repository"
)

type swotService struct {
	rec record[domain.SWOT]
}

func NewSWOTService(store repository.KVStore) SWOTService {
	return &swotService{rec: record[domain.SWOT]{
		store:    store,
		key:      repository.KeySWOT,
		defaults: domain.NewSWOT,
		backfill: (*domain.SWOT).Backfill,
	}}
}

func (s *swotService) Get(ctx context.Context) (domain.SWOT, error) {
	return s.rec.load(ctx)
}

func (s *swotService) Add(ctx context.Context, q domain.Quadrant, text string) (domain.SWOTItem, error) {
	a, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return domain.SWOTItem{}, err
	}
	it, err := a.Add(q, text)
	if err != nil {
		return it, err
	}
	return it, s.rec.save(ctx, a)
}

func (s *swotService) Remove(ctx context.Context, q domain.Quadrant, id string) (domain.SWOT, error) {
	a, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return a, err
	}
	if err := a.Remove(q, id); err != nil {
		return a, err
	}
	return a, s.rec.save(ctx, a)
}
