package testutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync/atomic"

	"github.com/alexanderramin/planforge/internal/domain"
)

var testIDCounter atomic.Int64

func nextID(prefix string) string {
	return fmt.Sprintf("%s-test-%d", prefix, testIDCounter.Add(1))
}

// Role options
type RoleOption func(*domain.Role)

func WithDepartment(d string) RoleOption {
	return func(r *domain.Role) { r.Department = d }
}

func WithReportsTo(title string) RoleOption {
	return func(r *domain.Role) { r.ReportsTo = title }
}

func WithPhoto(assetID string) RoleOption {
	return func(r *domain.Role) { r.PhotoAssetID = assetID }
}

func WithPerson(name string) RoleOption {
	return func(r *domain.Role) { r.Name = name }
}

func NewTestRole(title string, opts ...RoleOption) domain.Role {
	r := domain.Role{
		ID:    nextID("role"),
		Title: title,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Milestone options
type MilestoneOption func(*domain.Milestone)

func WithCategory(c domain.MilestoneCategory) MilestoneOption {
	return func(m *domain.Milestone) { m.Category = c }
}

func WithTimeframe(tf string) MilestoneOption {
	return func(m *domain.Milestone) { m.Timeframe = tf }
}

func NewTestMilestone(title string, opts ...MilestoneOption) domain.Milestone {
	m := domain.Milestone{
		ID:       nextID("milestone"),
		Title:    title,
		Category: domain.Horizon1Year,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// NewTestCanvas returns a canvas with the given blocks filled in.
func NewTestCanvas(blocks map[string]string) domain.Canvas {
	var c domain.Canvas
	for k, v := range blocks {
		if err := c.Set(k, v); err != nil {
			panic(err)
		}
	}
	return c
}

// PNG encodes a solid w×h image.
func PNG(w, h int, c color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// PNGDataURL is PNG wrapped as a base64 data URL.
func PNGDataURL(w, h int) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(PNG(w, h, color.RGBA{R: 200, A: 255}))
}
