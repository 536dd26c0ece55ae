package room

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTypes_IsACopy(t *testing.T) {
	t.Parallel()

	types := DefaultTypes()
	types[0].Mul = 99

	fresh := DefaultTypes()
	assert.Equal(t, 1.0, fresh[0].Mul)
}

func TestSanitizeTypes_AppliesOverrides(t *testing.T) {
	t.Parallel()

	mul := 7.0
	off := false
	types := sanitizeTypes([]TypeOverride{
		{ID: "niu_niu", Mul: &mul},
		{ID: "no_niu", On: &off},
	})

	byID := make(map[string]HandType)
	for _, ht := range types {
		byID[ht.ID] = ht
	}

	assert.Equal(t, 7.0, byID["niu_niu"].Mul)
	assert.False(t, byID["no_niu"].On)
	// Untouched entries keep template values
	assert.Equal(t, 3.0, byID["niu_9"].Mul)
}

func TestSanitizeTypes_NegativeMulIgnored(t *testing.T) {
	t.Parallel()

	mul := -2.0
	types := sanitizeTypes([]TypeOverride{{ID: "niu_niu", Mul: &mul}})
	for _, ht := range types {
		if ht.ID == "niu_niu" {
			assert.Equal(t, 4.0, ht.Mul)
		}
	}
}

func TestSanitizeTypes_AllDisabledReenablesFirst(t *testing.T) {
	t.Parallel()

	off := false
	overrides := make([]TypeOverride, 0, len(DefaultTypes()))
	for _, ht := range DefaultTypes() {
		o := off
		overrides = append(overrides, TypeOverride{ID: ht.ID, On: &o})
	}

	types := sanitizeTypes(overrides)
	require.NotEmpty(t, types)
	assert.True(t, types[0].On, "first type must be re-enabled as fallback")
	for _, ht := range types[1:] {
		assert.False(t, ht.On)
	}
}

func TestRankWeight_TablePosition(t *testing.T) {
	t.Parallel()

	// Weight follows table position: K highest, A lowest.
	assert.Greater(t, rankWeight("K"), rankWeight("Q"))
	assert.Greater(t, rankWeight("2"), rankWeight("A"))
	assert.Equal(t, 1, rankWeight("A"))
	assert.Equal(t, 13, rankWeight("K"))
	assert.Equal(t, 0, rankWeight("joker"))
}

func TestSuitWeight_SpadeHighest(t *testing.T) {
	t.Parallel()

	assert.Greater(t, suitWeight("spade"), suitWeight("heart"))
	assert.Greater(t, suitWeight("heart"), suitWeight("club"))
	assert.Greater(t, suitWeight("club"), suitWeight("diamond"))
	assert.Equal(t, 0, suitWeight("star"))
}

func TestSanitizeRankAndSuit_Fallbacks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10", sanitizeRank("10"))
	assert.Equal(t, "K", sanitizeRank("14"))
	assert.Equal(t, "K", sanitizeRank(""))

	assert.Equal(t, "heart", sanitizeSuit("heart"))
	assert.Equal(t, "spade", sanitizeSuit("flower"))
}

func TestNumericHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.1, round2(0.10000000001))
	assert.Equal(t, 2.35, round2(2.345000001))

	assert.Equal(t, 5.0, finite(math.NaN(), 5))
	assert.Equal(t, 5.0, finite(math.Inf(1), 5))
	assert.Equal(t, 1.0, positive(-3, 1))
	assert.Equal(t, 1.0, positive(0, 1))
	assert.Equal(t, 2.5, positive(2.5, 1))
	assert.Equal(t, 1.0, nonNegative(-0.01, 1))
	assert.Equal(t, 0.0, nonNegative(0, 1))
}
