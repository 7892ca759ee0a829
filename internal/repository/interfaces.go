package repository

import "context"

// Key names one entry of the store. Only the keys below are accepted.
type Key string

const (
	KeyCanvas         Key = "businessModelCanvas"
	KeyPitchDeck      Key = "pitchDeck"
	KeyPitchDeckLogo  Key = "pitchDeckLogo"
	KeyRoadmap        Key = "roadmap"
	KeyOrgChart       Key = "orgChart"
	KeyChecklist      Key = "checklist"
	KeyForecasting    Key = "forecasting"
	KeySWOT           Key = "swotAnalysis"
	KeyMarketResearch Key = "marketResearch"
	KeyBrandAssets    Key = "brandAssets"
	KeyAISettings     Key = "aiSettings"
	KeyTheme          Key = "theme"
)

// Keys is the fixed namespace in display order.
var Keys = []Key{
	KeyCanvas, KeyPitchDeck, KeyPitchDeckLogo, KeyRoadmap, KeyOrgChart,
	KeyChecklist, KeyForecasting, KeySWOT, KeyMarketResearch,
	KeyBrandAssets, KeyAISettings, KeyTheme,
}

// Known reports whether k belongs to the namespace.
func (k Key) Known() bool {
	for _, known := range Keys {
		if k == known {
			return true
		}
	}
	return false
}

// KVStore holds one serialized JSON snapshot per key.
type KVStore interface {
	Get(ctx context.Context, key Key) (value string, found bool, err error)
	Set(ctx context.Context, key Key, value string) error
	Delete(ctx context.Context, key Key) error
	Keys(ctx context.Context) ([]Key, error)
	// Usage is the number of bytes currently stored across all keys.
	Usage(ctx context.Context) (int64, error)
}
