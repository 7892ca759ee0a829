package service

import (
	"context"
	"time"

	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/repository"
)

type assetService struct {
	rec      record[domain.Assets]
	observer UseCaseObserver
}

func NewAssetService(store repository.KVStore, observers ...UseCaseObserver) AssetService {
	return &assetService{
		rec: record[domain.Assets]{
			store:    store,
			key:      repository.KeyBrandAssets,
			defaults: func() domain.Assets { return domain.Assets{} },
		},
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *assetService) List(ctx context.Context) (domain.Assets, error) {
	return s.rec.load(ctx)
}

func (s *assetService) Add(ctx context.Context, name string, t domain.AssetType, mimeType string, data []byte) (a domain.BrandAsset, err error) {
	fields := map[string]any{"mime": mimeType, "bytes": len(data)}
	defer observe(ctx, s.observer, "add-asset", time.Now().UTC(), &err, fields)

	a, err = domain.NewBrandAsset(name, t, mimeType, data)
	if err != nil {
		return a, err
	}
	assets, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return a, err
	}
	return a, s.rec.save(ctx, assets.Add(a))
}

// Remove deletes the asset only; org chart roles keep their reference and
// resolve it to no photo.
func (s *assetService) Remove(ctx context.Context, id string) (domain.Assets, error) {
	assets, err := s.rec.loadForEdit(ctx)
	if err != nil {
		return assets, err
	}
	if assets, err = assets.Remove(id); err != nil {
		return assets, err
	}
	return assets, s.rec.save(ctx, assets)
}
