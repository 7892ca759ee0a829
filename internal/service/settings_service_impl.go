package service

import (
	"context"

	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/repository"
)

type settingsService struct {
	ai    record[domain.AISettings]
	theme record[domain.Theme]
}

func NewSettingsService(store repository.KVStore) SettingsService {
	return &settingsService{
		ai: record[domain.AISettings]{
			store:    store,
			key:      repository.KeyAISettings,
			defaults: domain.DefaultAISettings,
		},
		theme: record[domain.Theme]{
			store:    store,
			key:      repository.KeyTheme,
			defaults: func() domain.Theme { return domain.ThemeLight },
		},
	}
}

func (s *settingsService) AI(ctx context.Context) (domain.AISettings, error) {
	return s.ai.load(ctx)
}

func (s *settingsService) SaveAI(ctx context.Context, ai domain.AISettings) error {
	p, err := domain.ParseProvider(string(ai.Provider))
	if err != nil {
		return err
	}
	ai.Provider = p
	return s.ai.save(ctx, ai)
}

func (s *settingsService) Theme(ctx context.Context) (domain.Theme, error) {
	return s.theme.load(ctx)
}

func (s *settingsService) SetTheme(ctx context.Context, t domain.Theme) error {
	t, err := domain.ParseTheme(string(t))
	if err != nil {
		return err
	}
	return s.theme.save(ctx, t)
}
