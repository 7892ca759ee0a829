package service

import (
	"context"
	"time"

	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/repository"
)

// Every mutating method loads the record, applies one edit and saves the
// whole record back. When the save fails with repository.ErrQuotaExceeded
// the returned record still carries the edit so callers can keep showing it.

type CanvasService interface {
	Get(ctx context.Context) (domain.Canvas, error)
	Save(ctx context.Context, c domain.Canvas) error
	SetBlock(ctx context.Context, key, value string) (domain.Canvas, error)
}

type DeckService interface {
	Slides(ctx context.Context) ([]domain.Slide, error)
	SetSlide(ctx context.Context, n int, s domain.Slide) ([]domain.Slide, error)
	Reset(ctx context.Context) ([]domain.Slide, error)
	Logo(ctx context.Context) (string, error)
	SetLogo(ctx context.Context, dataURL string) error
	ClearLogo(ctx context.Context) error
}

type RoadmapService interface {
	List(ctx context.Context) (domain.Roadmap, error)
	Add(ctx context.Context, title, description, timeframe string, category domain.MilestoneCategory) (domain.Milestone, error)
	Remove(ctx context.Context, id string) (domain.Roadmap, error)
}

type OrgChartService interface {
	List(ctx context.Context) (domain.OrgChart, error)
	Add(ctx context.Context, draft domain.Role) (domain.Role, error)
	Remove(ctx context.Context, id string) (domain.OrgChart, error)
	Check(ctx context.Context) ([]domain.ReportingIssue, error)
}

type ChecklistService interface {
	List(ctx context.Context) (domain.Checklist, error)
	Add(ctx context.Context, title, description, category string) (domain.ChecklistItem, error)
	Toggle(ctx context.Context, id string) (bool, error)
	Remove(ctx context.Context, id string) (domain.Checklist, error)
}

type ForecastService interface {
	Get(ctx context.Context) (domain.Forecast, error)
	Save(ctx context.Context, f domain.Forecast) error
	SetYear(ctx context.Context, year int, y domain.ForecastYear) (domain.Forecast, error)
	SetAssumptions(ctx context.Context, text string) (domain.Forecast, error)
}

type SWOTService interface {
	Get(ctx context.Context) (domain.SWOT, error)
	Add(ctx context.Context, q domain.Quadrant, text string) (domain.SWOTItem, error)
	Remove(ctx context.Context, q domain.Quadrant, id string) (domain.SWOT, error)
}

type MarketService interface {
	Get(ctx context.Context) (domain.MarketResearch, error)
	Save(ctx context.Context, m domain.MarketResearch) error
	SetField(ctx context.Context, key, value string) (domain.MarketResearch, error)
	AddSegment(ctx context.Context, s domain.CustomerSegment) (domain.CustomerSegment, error)
	AddCompetitor(ctx context.Context, c domain.Competitor) (domain.Competitor, error)
	AddRisk(ctx context.Context, r domain.Risk) (domain.Risk, error)
	AddExperiment(ctx context.Context, e domain.Experiment) (domain.Experiment, error)
	Remove(ctx context.Context, list domain.MarketList, id string) (domain.MarketResearch, error)
}

type AssetService interface {
	List(ctx context.Context) (domain.Assets, error)
	Add(ctx context.Context, name string, t domain.AssetType, mimeType string, data []byte) (domain.BrandAsset, error)
	Remove(ctx context.Context, id string) (domain.Assets, error)
}

type SettingsService interface {
	AI(ctx context.Context) (domain.AISettings, error)
	SaveAI(ctx context.Context, s domain.AISettings) error
	Theme(ctx context.Context) (domain.Theme, error)
	SetTheme(ctx context.Context, t domain.Theme) error
}

// BackupFile is a serialized backup envelope ready to be written out.
type BackupFile struct {
	Name string
	Data []byte
}

type BackupService interface {
	Export(ctx context.Context, now time.Time) (*BackupFile, error)
	Import(ctx context.Context, data []byte) ([]repository.Key, error)
}
