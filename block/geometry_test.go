package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPredefinedGeometry_KnownSlug(t *testing.T) {
	geometry, err := GetPredefinedGeometry("tiny")
	require.NoError(t, err)
	assert.Equal(t, uint32(MinBlocks), geometry.TotalBlocks)
}

func TestGetPredefinedGeometry_UnknownSlug(t *testing.T) {
	_, err := GetPredefinedGeometry("does-not-exist")
	assert.Error(t, err)
}

func TestPredefinedGeometrySlugs_IncludesLoadedRows(t *testing.T) {
	slugs := PredefinedGeometrySlugs()
	assert.Contains(t, slugs, "tiny")
	assert.Contains(t, slugs, "floppy1440")
}
