package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/planforge/internal/db"
	"github.com/alexanderramin/planforge/internal/repository"
)

// backupFields maps envelope field names to store keys, in envelope order.
var backupFields = []struct {
	Field string
	Key   repository.Key
}{
	{"canvas", repository.KeyCanvas},
	{"pitchDeck", repository.KeyPitchDeck},
	{"roadmap", repository.KeyRoadmap},
	{"orgChart", repository.KeyOrgChart},
	{"checklist", repository.KeyChecklist},
	{"forecasting", repository.KeyForecasting},
	{"brandAssets", repository.KeyBrandAssets},
}

// BackupEnvelope carries the raw stored strings; absent keys are null.
type BackupEnvelope struct {
	Canvas      *string `json:"canvas"`
	PitchDeck   *string `json:"pitchDeck"`
	Roadmap     *string `json:"roadmap"`
	OrgChart    *string `json:"orgChart"`
	Checklist   *string `json:"checklist"`
	Forecasting *string `json:"forecasting"`
	BrandAssets *string `json:"brandAssets"`
	ExportDate  string  `json:"exportDate"`
}

func (e *BackupEnvelope) slot(field string) **string {
	switch field {
	case "canvas":
		return &e.Canvas
	case "pitchDeck":
		return &e.PitchDeck
	case "roadmap":
		return &e.Roadmap
	case "orgChart":
		return &e.OrgChart
	case "checklist":
		return &e.Checklist
	case "forecasting":
		return &e.Forecasting
	case "brandAssets":
		return &e.BrandAssets
	}
	return nil
}

// BackupFileName is the download name for a backup taken at t.
func BackupFileName(t time.Time) string {
	return "business-plan-backup-" + t.UTC().Format("2006-01-02") + ".json"
}

type backupService struct {
	store    repository.KVStore
	uow      db.UnitOfWork
	quota    int64
	observer UseCaseObserver
}

// NewBackupService reads through store and restores inside uow, building a
// tx-scoped store with the same quota.
func NewBackupService(store repository.KVStore, uow db.UnitOfWork, quota int64, observers ...UseCaseObserver) BackupService {
	return &backupService{
		store:    store,
		uow:      uow,
		quota:    quota,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *backupService) Export(ctx context.Context, now time.Time) (file *BackupFile, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "backup-export", time.Now().UTC(), &err, fields)

	env := BackupEnvelope{ExportDate: now.UTC().Format("2006-01-02T15:04:05.000Z07:00")}
	present := 0
	for _, f := range backupFields {
		raw, found, err := s.store.Get(ctx, f.Key)
		if err != nil {
			return nil, fmt.Errorf("reading %s for backup: %w", f.Key, err)
		}
		if found {
			v := raw
			*env.slot(f.Field) = &v
			present++
		}
	}
	fields["keys"] = present

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}
	return &BackupFile{Name: BackupFileName(now), Data: data}, nil
}

// Import restores every recognized, non-null field verbatim. The file is
// fully validated before the first write, and all writes share one
// transaction, so a failure leaves the store untouched.
func (s *backupService) Import(ctx context.Context, data []byte) (written []repository.Key, err error) {
	fields := map[string]any{"bytes": len(data)}
	defer observe(ctx, s.observer, "backup-import", time.Now().UTC(), &err, fields)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	type entry struct {
		key   repository.Key
		value string
	}
	var entries []entry
	for _, f := range backupFields {
		msg, ok := raw[f.Field]
		if !ok || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			continue
		}
		var v string
		if err := json.Unmarshal(msg, &v); err != nil {
			return nil, fmt.Errorf("%w: field %q must be a string", ErrInvalidBackup, f.Field)
		}
		if v == "" {
			continue
		}
		entries = append(entries, entry{key: f.Key, value: v})
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := repository.NewSQLiteKVRepo(tx, s.quota)
		for _, e := range entries {
			if err := store.Set(ctx, e.key, e.value); err != nil {
				return fmt.Errorf("restoring %s: %w", e.key, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		written = append(written, e.key)
	}
	fields["keys"] = len(written)
	return written, nil
}
