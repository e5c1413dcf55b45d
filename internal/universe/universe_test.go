package universe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HirschPicks/internal/model"
)

func TestCategories_CapBandsAreDisjoint(t *testing.T) {
	caps := []float64{5e8, 5e9, 5e10, 5e11}
	for _, mc := range caps {
		hits := 0
		for _, c := range Categories {
			if c.ByCap() && c.Fits(100, model.Float(mc)) {
				hits++
			}
		}
		assert.Equal(t, 1, hits, "market cap %.0f should fit exactly one cap tier", mc)
	}
}

func TestCandidates_EveryCategoryHasUniverse(t *testing.T) {
	seen := map[string]string{}
	for _, c := range Categories {
		list := Candidates[c.ID]
		require.NotEmpty(t, list, c.ID)
		for _, cand := range list {
			prev, dup := seen[cand.Ticker]
			assert.False(t, dup, "%s registered in both %s and %s", cand.Ticker, prev, c.ID)
			seen[cand.Ticker] = c.ID
		}
		_, ok := SignalLabels[c.ID]
		assert.True(t, ok, "missing signal labels for %s", c.ID)
	}
}

func TestCategory_Lookup(t *testing.T) {
	c, ok := Category("mid")
	require.True(t, ok)
	assert.Equal(t, "Mid Cap", c.Label)
	_, ok = Category("nano")
	assert.False(t, ok)
}
