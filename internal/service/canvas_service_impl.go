package service

import (
	"context"

	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/repository"
)

type canvasService struct {
	rec record[domain.Canvas]
}

func NewCanvasService(store repository.KVStore) CanvasService {
	return &canvasService{rec: record[domain.Canvas]{
		store:    store,
		key:      repository.KeyCanvas,
		defaults: func() domain.Canvas { return domain.Canvas{} },
	}}
}

func (s *canvasService) Get(ctx context.Context) (domain.Canvas, error) {
	return s.rec.load(ctx)
}

func (s *canvasService) Save(ctx context.Context, c domain.Canvas) error {
	return s.rec.save(ctx, c)
}

func (s *canvasService) SetBlock(ctx context.Context, key, value string) (domain.Canvas, error) {
	c, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return c, err
	}
	if err := c.Set(key, value); err != nil {
		return c, err
	}
	return c, s.rec.save(ctx, c)
}
