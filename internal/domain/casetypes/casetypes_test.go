package casetypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBySlug(t *testing.T) {
	ct, ok := BySlug(" Roundup ")
	assert.True(t, ok)
	assert.Equal(t, "Roundup", ct.Name)

	_, ok = BySlug("does-not-exist")
	assert.False(t, ok)
}

func TestAllReturnsCopy(t *testing.T) {
	list := All()
	list[0].Name = "changed"
	assert.Equal(t, "Roundup", All()[0].Name)
}

func TestSlugsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, ct := range All() {
		assert.False(t, seen[ct.Slug], ct.Slug)
		seen[ct.Slug] = true
		assert.NotEmpty(t, ct.ExposurePeriods, ct.Slug)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Camp Lejeune", DisplayName("camp-lejeune"))
	assert.Equal(t, "other", DisplayName("other"))
}
