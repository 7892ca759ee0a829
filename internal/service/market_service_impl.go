package service

import (
	"context"

	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/repository"
)

type marketService struct {
	rec record[domain.MarketResearch]
}

func NewMarketService(store repository.KVStore) MarketService {
	return &marketService{rec: record[domain.MarketResearch]{
		store:    store,
		key:      repository.KeyMarketResearch,
		defaults: domain.NewMarketResearch,
		backfill: (*domain.MarketResearch).Backfill,
	}}
}

func (s *marketService) Get(ctx context.Context) (domain.MarketResearch, error) {
	return s.rec.load(ctx)
}

func (s *marketService) Save(ctx context.Context, m domain.MarketResearch) error {
	m.Backfill()
	return s.rec.save(ctx, m)
}

// edit applies fn to the stored worksheet and saves it when fn succeeds.
func (s *marketService) edit(ctx context.Context, fn func(m *domain.MarketResearch) error) (domain.MarketResearch, error) {
	m, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return m, err
	}
	if err := fn(&m); err != nil {
		return m, err
	}
	return m, s.rec.save(ctx, m)
}

func (s *marketService) SetField(ctx context.Context, key, value string) (domain.MarketResearch, error) {
	return s.edit(ctx, func(m *domain.MarketResearch) error { return m.Set(key, value) })
}

func (s *marketService) AddSegment(ctx context.Context, seg domain.CustomerSegment) (out domain.CustomerSegment, err error) {
	_, err = s.edit(ctx, func(m *domain.MarketResearch) error {
		out, err = m.AddSegment(seg)
		return err
	})
	return out, err
}

func (s *marketService) AddCompetitor(ctx context.Context, c domain.Competitor) (out domain.Competitor, err error) {
	_, err = s.edit(ctx, func(m *domain.MarketResearch) error {
		out, err = m.AddCompetitor(c)
		return err
	})
	return out, err
}

func (s *marketService) AddRisk(ctx context.Context, r domain.Risk) (out domain.Risk, err error) {
	_, err = s.edit(ctx, func(m *domain.MarketResearch) error {
		out, err = m.AddRisk(r)
		return err
	})
	return out, err
}

func (s *marketService) AddExperiment(ctx context.Context, e domain.Experiment) (out domain.Experiment, err error) {
	_, err = s.edit(ctx, func(m *domain.MarketResearch) error {
		out, err = m.AddExperiment(e)
		return err
	})
	return out, err
}

func (s *marketService) Remove(ctx context.Context, list domain.MarketList, id string) (domain.MarketResearch, error) {
	return s.edit(ctx, func(m *domain.MarketResearch) error { return m.Remove(list, id) })
}
