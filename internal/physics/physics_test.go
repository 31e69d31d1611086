package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangesOverlap(t *testing.T) {
	assert.True(t, RangesOverlap(0, 10, 5, 15))
	assert.True(t, RangesOverlap(5, 15, 0, 10))
	assert.True(t, RangesOverlap(0, 10, 10, 20), "touching edges overlap")
	assert.True(t, RangesOverlap(0, 100, 40, 50), "containment")
	assert.False(t, RangesOverlap(0, 10, 10.5, 20))
	assert.False(t, RangesOverlap(30, 40, 0, 29))
}

func TestSameRow(t *testing.T) {
	assert.True(t, SameRow(83, 83))
	assert.False(t, SameRow(83, 166))
}

func TestSanitizeDelta(t *testing.T) {
	assert.Equal(t, 0.5, SanitizeDelta(0.5))
	assert.Equal(t, 3.0, SanitizeDelta(3.0))
	assert.Zero(t, SanitizeDelta(-1))
	assert.Zero(t, SanitizeDelta(math.NaN()))
	assert.Zero(t, SanitizeDelta(math.Inf(1)))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, ClampInt(-3, 0, 15))
	assert.Equal(t, 15, ClampInt(99, 0, 15))
	assert.Equal(t, 7, ClampInt(7, 0, 15))
}
