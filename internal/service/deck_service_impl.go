package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/repository"
)

type deckService struct {
	slides record[[]domain.Slide]
	logo   record[string]
}

func NewDeckService(store repository.KVStore) DeckService {
	return &deckService{
		slides: record[[]domain.Slide]{
			store:    store,
			key:      repository.KeyPitchDeck,
			defaults: domain.DefaultDeck,
			backfill: func(s *[]domain.Slide) { *s = domain.BackfillDeck(*s) },
		},
		logo: record[string]{
			store:    store,
			key:      repository.KeyPitchDeckLogo,
			defaults: func() string { return "" },
		},
	}
}

func (s *deckService) Slides(ctx context.Context) ([]domain.Slide, error) {
	return s.slides.load(ctx)
}

func (s *deckService) SetSlide(ctx context.Context, n int, slide domain.Slide) ([]domain.Slide, error) {
	slides, err := s.slides.loadForEdit(ctx)
	if err != nil {
		return slides, err
	}
	if err := domain.SetSlide(slides, n, slide); err != nil {
		return slides, err
	}
	return slides, s.slides.save(ctx, slides)
}

func (s *deckService) Reset(ctx context.Context) ([]domain.Slide, error) {
	slides := domain.DefaultDeck()
	return slides, s.slides.save(ctx, slides)
}

func (s *deckService) Logo(ctx context.Context) (string, error) {
	return s.logo.load(ctx)
}

func (s *deckService) SetLogo(ctx context.Context, dataURL string) error {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return &domain.ValidationError{Field: "logo", Message: "please upload an image file"}
	}
	return s.logo.save(ctx, dataURL)
}

func (s *deckService) ClearLogo(ctx context.Context) error {
	return s.logo.store.Delete(ctx, repository.KeyPitchDeckLogo)
}
