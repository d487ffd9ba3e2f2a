package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sasgp-api/internal/utils"
)

type rating struct {
	estrelas int
}

func (r rating) StarRating() int { return r.estrelas }

func TestAverageRating(t *testing.T) {
	require.Zero(t, utils.AverageRating([]rating{}))
	require.Zero(t, utils.AverageRating[rating](nil))
	require.InDelta(t, 4.0, utils.AverageRating([]rating{{3}, {5}}), 0.0001)
	require.InDelta(t, 4.5, utils.AverageRating([]rating{{4}, {5}}), 0.0001)
}

func TestStarDisplayHalfStarThreshold(t *testing.T) {
	require.Equal(t, "⭐⭐⭐⭐½", utils.StarDisplay(4.5))
	require.Equal(t, "⭐⭐⭐⭐☆", utils.StarDisplay(4.4))
	require.Equal(t, "⭐⭐⭐⭐⭐", utils.StarDisplay(5))
	require.Equal(t, "⭐⭐⭐☆☆", utils.StarDisplay(3))
	require.Equal(t, "☆☆☆☆☆", utils.StarDisplay(0))
	require.Equal(t, "½☆☆☆☆", utils.StarDisplay(0.5))
}
