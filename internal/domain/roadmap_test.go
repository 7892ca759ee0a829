package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMilestone_RequiresTitle(t *testing.T) {
	_, err := NewMilestone("  ", "", "", Horizon1Year)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestNewMilestone_DefaultsCategory(t *testing.T) {
	m, err := NewMilestone("Launch", "", "Q1", "")
	require.NoError(t, err)
	assert.Equal(t, Horizon1Year, m.Category)
	assert.True(t, strings.HasPrefix(m.ID, "milestone-"))
}

func TestNewMilestone_RejectsUnknownCategory(t *testing.T) {
	_, err := NewMilestone("Launch", "", "", "3-year")
	assert.True(t, IsValidation(err))
}

func TestRoadmap_AddRemove(t *testing.T) {
	a, _ := NewMilestone("A", "", "", Horizon1Year)
	b, _ := NewMilestone("B", "", "", Horizon5Year)
	c, _ := NewMilestone("C", "", "", Horizon1Year)
	r := Roadmap{}.Add(a).Add(b).Add(c)

	assert.Equal(t, []Milestone{a, c}, r.InCategory(Horizon1Year))

	r, err := r.Remove(b.ID)
	require.NoError(t, err)
	assert.Equal(t, Roadmap{a, c}, r)

	_, err = r.Remove("missing")
	assert.ErrorIs(t, err, ErrItemNotFound)
}
