package service

import (
	"context"

	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/repository"
)

type forecastService struct {
	rec record[domain.Forecast]
}

func NewForecastService(store repository.KVStore) ForecastService {
	return &forecastService{rec: record[domain.Forecast]{
		store:    store,
		key:      repository.KeyForecasting,
		defaults: func() domain.Forecast { return domain.Forecast{} },
	}}
}

func (s *forecastService) Get(ctx context.Context) (domain.Forecast, error) {
	return s.rec.load(ctx)
}

func (s *forecastService) Save(ctx context.Context, f domain.Forecast) error {
	for n := 1; n <= domain.ForecastYears; n++ {
		if err := (&domain.Forecast{}).SetYear(n, f.Year(n)); err != nil {
			return err
		}
	}
	return s.rec.save(ctx, f)
}

func (s *forecastService) SetYear(ctx context.Context, year int, y domain.ForecastYear) (domain.Forecast, error) {
	f, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return f, err
	}
	if err := f.SetYear(year, y); err != nil {
		return f, err
	}
	return f, s.rec.save(ctx, f)
}

func (s *forecastService) SetAssumptions(ctx context.Context, text string) (domain.Forecast, error) {
	f, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return f, err
	}
	f.Assumptions = text
	return f, s.rec.save(ctx, f)
}
