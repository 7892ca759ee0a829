package service

import (
	"context"
	"time"

	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/repository"
)

type roadmapService struct {
	rec      record[domain.Roadmap]
	observer UseCaseObserver
}

func NewRoadmapService(store repository.KVStore, observers ...UseCaseObserver) RoadmapService {
	return &roadmapService{
		rec: record[domain.Roadmap]{
			store:    store,
			key:      repository.KeyRoadmap,
			defaults: func() domain.Roadmap { return domain.Roadmap{} },
		},
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *roadmapService) List(ctx context.Context) (domain.Roadmap, error) {
	return s.rec.load(ctx)
}

func (s *roadmapService) Add(ctx context.Context, title, description, timeframe string, category domain.MilestoneCategory) (m domain.Milestone, err error) {
	fields := map[string]any{"category": string(category)}
	defer observe(ctx, s.observer, "add-milestone", time.Now().UTC(), &err, fields)

	m, err = domain.NewMilestone(title, description, timeframe, category)
	if err != nil {
		return m, err
	}
	r, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return m, err
	}
	r = r.Add(m)
	fields["count"] = len(r)
	return m, s.rec.save(ctx, r)
}

func (s *roadmapService) Remove(ctx context.Context, id string) (domain.Roadmap, error) {
	r, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return r, err
	}
	if r, err = r.Remove(id); err != nil {
		return r, err
	}
	return r, s.rec.save(ctx, r)
}
