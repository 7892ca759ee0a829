package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// MaxAssetBytes is the upload limit for a single brand asset.
const MaxAssetBytes = 5 * 1024 * 1024

type AssetType string

const (
	AssetLogo  AssetType = "logo"
	AssetImage AssetType = "image"
	AssetOther AssetType = "other"
)

func ParseAssetType(s string) (AssetType, error) {
	switch t := AssetType(strings.ToLower(s)); t {
	case AssetLogo, AssetImage, AssetOther:
		return t, nil
	case "":
		return AssetLogo, nil
	}
	return "", &ValidationError{Field: "type", Message: fmt.Sprintf("unknown asset type %q", s)}
}

// BrandAsset is an uploaded image embedded as a base64 data URL.
type BrandAsset struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Type    AssetType `json:"type"`
	DataURL string    `json:"dataUrl"`
}

// NewBrandAsset validates an upload and encodes it as a data URL.
func NewBrandAsset(name string, t AssetType, mimeType string, data []byte) (BrandAsset, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return BrandAsset{}, &ValidationError{Field: "file", Message: "please upload an image file"}
	}
	if len(data) > MaxAssetBytes {
		return BrandAsset{}, &ValidationError{Field: "file", Message: "file size must be less than 5MB"}
	}
	return BrandAsset{
		ID:      NewID("asset"),
		Name:    name,
		Type:    t,
		DataURL: "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// DecodeDataURL splits a base64 data URL into its media type and bytes.
func DecodeDataURL(u string) (mimeType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(u, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL")
	}
	mimeType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return mimeType, []byte(payload), nil
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding data URL: %w", err)
	}
	return mimeType, data, nil
}

type Assets []BrandAsset

func (a Assets) Find(id string) (BrandAsset, bool) {
	for _, it := range a {
		if it.ID == id {
			return it, true
		}
	}
	return BrandAsset{}, false
}

func (a Assets) Add(it BrandAsset) Assets {
	return append(a, it)
}

// Remove deletes an asset. References held elsewhere (org chart photos) are
// left dangling on purpose and resolve to "no photo".
func (a Assets) Remove(id string) (Assets, error) {
	out, ok := removeByID(a, id, func(it BrandAsset) string { return it.ID })
	if !ok {
		return a, ErrItemNotFound
	}
	return out, nil
}
